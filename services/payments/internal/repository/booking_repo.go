package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kormo-mela/kormo-services/services/payments/internal/domain"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// AdvanceOnPayment locks the booking row and walks it through the remaining
// happy-path statuses up to COMPLETED, one UPDATE per hop, all inside a
// single transaction. Terminal bookings are returned unchanged, which makes
// repeated webhook deliveries safe.
func (r *BookingRepo) AdvanceOnPayment(ctx context.Context, id int64) (domain.Status, error) {
	var final domain.Status
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Take(&b, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		if err != nil {
			return err
		}

		cur := b.Status
		for {
			next, ok := domain.Next(cur)
			if !ok {
				break
			}
			err := tx.Model(&domain.Booking{}).Where("id = ?", id).
				Updates(map[string]any{
					"status":     next,
					"updated_at": time.Now().UTC(),
				}).Error
			if err != nil {
				return err
			}
			cur = next
		}
		final = cur
		return nil
	})
	if err != nil {
		return "", err
	}
	return final, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kormo-mela/kormo-services/services/notifications/internal/domain"
)

type DeviceRepo struct{ db *gorm.DB }

func NewDeviceRepo(db *gorm.DB) *DeviceRepo {
	return &DeviceRepo{db: db}
}

// ForUsers fetches every device belonging to any of the given users in one
// batched query.
func (r *DeviceRepo) ForUsers(ctx context.Context, userIDs []int64) ([]domain.Device, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var out []domain.Device
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&out).Error
	return out, err
}

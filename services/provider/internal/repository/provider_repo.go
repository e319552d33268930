package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kormo-mela/kormo-services/services/provider/internal/domain"
)

type ProviderRepo struct{ db *gorm.DB }

func NewProviderRepo(db *gorm.DB) *ProviderRepo {
	return &ProviderRepo{db: db}
}

func (r *ProviderRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Provider{}, &domain.Device{})
}

func (r *ProviderRepo) List(ctx context.Context, limit int) ([]domain.Provider, error) {
	var out []domain.Provider
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *ProviderRepo) Create(ctx context.Context, p *domain.Provider) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// RegisterDevice inserts a device registration; an existing
// (user_id, push_token) pair is left untouched.
func (r *ProviderRepo) RegisterDevice(ctx context.Context, d *domain.Device) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(d).Error
}

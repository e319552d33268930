package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kormo-mela/kormo-services/services/auth/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.User{})
}

// GetOrCreateByPhone returns the user for a phone number, creating it on
// first login.
func (r *UserRepo) GetOrCreateByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Where("phone_e164 = ?", phone).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	u = domain.User{PhoneE164: phone}
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

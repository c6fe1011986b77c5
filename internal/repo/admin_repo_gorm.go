package repo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"autohub-api/internal/domain"
)

type AdminRepo struct{ db *gorm.DB }

func NewAdminRepo(db *gorm.DB) *AdminRepo { return &AdminRepo{db: db} }

func (r *AdminRepo) FindActiveByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.WithContext(ctx).First(&a, "email = ? AND active = ?", email, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

func (r *AdminRepo) TouchLastLogin(ctx context.Context, adminID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.Admin{}).Where("id = ?", adminID).
		Update("last_login", &now).Error
}

package domain

import (
	"context"
	"time"
)

type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash   string     `gorm:"size:191" json:"-"`
	FirstName      string     `gorm:"size:64" json:"firstName"`
	LastName       string     `gorm:"size:64" json:"lastName"`
	Phone          string     `gorm:"size:32" json:"phone,omitempty"`
	Avatar         string     `gorm:"size:255" json:"avatar,omitempty"`
	GoogleID       *string    `gorm:"uniqueIndex;size:64" json:"-"`
	LoyaltyPoints  int        `gorm:"not null;default:100" json:"loyaltyPoints"`
	MembershipTier string     `gorm:"size:16;not null;default:bronze" json:"membershipTier"`
	EmailVerified  bool       `gorm:"not null;default:false" json:"emailVerified"`
	LastLogin      *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*User, error)
	LinkGoogleID(ctx context.Context, userID uint, googleID string) error
	TouchLastLogin(ctx context.Context, userID uint) error
	Update(ctx context.Context, u *User) error
}

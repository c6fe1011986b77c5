package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Admin is a separate principal from User; the two tables share no
// identity space.
type Admin struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string     `gorm:"size:191;not null" json:"-"`
	FirstName    string     `gorm:"size:64" json:"firstName"`
	LastName     string     `gorm:"size:64" json:"lastName"`
	Role         string     `gorm:"size:32;not null;default:admin" json:"role"`
	Permissions  string     `gorm:"type:text" json:"-"` // JSON-encoded list
	Avatar       string     `gorm:"size:255" json:"avatar,omitempty"`
	Active       bool       `gorm:"not null;default:true" json:"-"`
	LastLogin    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (Admin) TableName() string { return "admins" }

func (a *Admin) PermissionList() []string {
	var out []string
	if a.Permissions == "" {
		return out
	}
	_ = json.Unmarshal([]byte(a.Permissions), &out)
	return out
}

func (a *Admin) HasPermission(perm string) bool {
	for _, p := range a.PermissionList() {
		if p == perm {
			return true
		}
	}
	return false
}

type AdminRepository interface {
	FindActiveByEmail(ctx context.Context, email string) (*Admin, error)
	TouchLastLogin(ctx context.Context, adminID uint) error
}

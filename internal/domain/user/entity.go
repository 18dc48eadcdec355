// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"
)

// Roles carried in the access token
const (
	// RoleUser is granted to every registered account
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents the user entity
type User struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Username    string     `gorm:"uniqueIndex;not null;size:50" json:"username"`
	Email       string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string     `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	FirstName   string     `gorm:"size:100" json:"first_name"`
	LastName    string     `gorm:"size:100" json:"last_name"`
	Roles       []string   `gorm:"serializer:json;type:jsonb" json:"roles"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// GetDisplayName returns display name (full name or username)
func (u *User) GetDisplayName() string {
	fullName := u.GetFullName()
	if fullName != "" {
		return fullName
	}
	return u.Username
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

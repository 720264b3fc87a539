package user

import "time"

// Dashboard roles. Editors manage content; admins additionally manage
// accounts and can purge leads.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User is an administrative account for the dashboard. There is no
// public registration path: accounts are created by the seed command or
// by another admin.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:64;not null;uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialized.
	DisplayName  string     `gorm:"size:128" json:"display_name"`
	Role         string     `gorm:"size:16;not null;default:'editor'" json:"role"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

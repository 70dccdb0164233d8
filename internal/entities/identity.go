package entities

import (
	"strings"
	"time"
)

// Role names seeded at schema creation.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User is a login account. Role membership lives in the separate
// user_roles relation rather than on the record itself.
type User struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Email           string    `gorm:"uniqueIndex;size:256;not null" json:"email"`
	NormalizedEmail string    `gorm:"uniqueIndex;size:256;not null" json:"-"`
	UserName        string    `gorm:"uniqueIndex;size:256;not null" json:"user_name"`
	FirstName       string    `gorm:"size:50" json:"first_name"`
	LastName        string    `gorm:"size:50" json:"last_name"`
	PasswordHash    string    `gorm:"size:255;not null" json:"-"`
	Roles           []Role    `gorm:"many2many:user_roles;" json:"roles,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RoleNames returns the names of the loaded roles.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole reports whether the loaded roles include name (case-insensitive).
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}

type Role struct {
	ID             string `gorm:"primaryKey;size:36" json:"id"`
	Name           string `gorm:"uniqueIndex;size:256;not null" json:"name"`
	NormalizedName string `gorm:"uniqueIndex;size:256;not null" json:"-"`
}

// UserRole assigns a role to a user.
type UserRole struct {
	UserID    string    `gorm:"primaryKey;size:36"`
	RoleID    string    `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

func (UserRole) TableName() string {
	return "user_roles"
}

// Normalize upper-cases identity lookup keys.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

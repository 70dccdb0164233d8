package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/entities"
)

// Fixed identifiers for the seeded identity rows. Existing deployments and
// clients refer to these ids, so they must not change.
const (
	UserRoleID  = "8343074e-8623-4e1a-b0c1-84fb8678c8f3"
	AdminRoleID = "c7ac6cfe-1f10-4baf-b604-cde350db9554"

	AdminUserID = "8e448afa-f008-446e-a52f-13c449803c2e"
	UserUserID  = "30a24107-d279-4e37-96fd-01af5b38cb27"

	AdminEmail      = "admin@bookstore.com"
	UserEmail       = "user@bookstore.com"
	DefaultPassword = "P@ssword1"
)

var defaultRoles = []entities.Role{
	{ID: UserRoleID, Name: entities.RoleUser},
	{ID: AdminRoleID, Name: entities.RoleAdmin},
}

type seedUser struct {
	user   entities.User
	roleID string
}

var defaultUsers = []seedUser{
	{
		user: entities.User{
			ID:        AdminUserID,
			Email:     AdminEmail,
			UserName:  AdminEmail,
			FirstName: "System",
			LastName:  "Admin",
		},
		roleID: AdminRoleID,
	},
	{
		user: entities.User{
			ID:        UserUserID,
			Email:     UserEmail,
			UserName:  UserEmail,
			FirstName: "System",
			LastName:  "User",
		},
		roleID: UserRoleID,
	},
}

// Seed creates the default roles, accounts and role assignments when they
// are missing. Running it again is a no-op.
func (d *Database) Seed(ctx context.Context, bcryptCost int) error {
	return d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedRoles(tx); err != nil {
			return err
		}
		for _, su := range defaultUsers {
			if err := seedUserWithRole(tx, su, bcryptCost); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedRoles(tx *gorm.DB) error {
	for _, role := range defaultRoles {
		var existing entities.Role
		err := tx.Where("id = ?", role.ID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up role %s: %w", role.Name, err)
		}

		role.NormalizedName = entities.Normalize(role.Name)
		if err := tx.Create(&role).Error; err != nil {
			return fmt.Errorf("failed to create role %s: %w", role.Name, err)
		}
		log.Info().Str("role", role.Name).Msg("Created role")
	}
	return nil
}

func seedUserWithRole(tx *gorm.DB, su seedUser, bcryptCost int) error {
	var existing entities.User
	err := tx.Where("id = ?", su.user.ID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user := su.user
		user.NormalizedEmail = entities.Normalize(user.Email)
		hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", user.Email, err)
		}
		user.PasswordHash = string(hash)
		// Omit Roles so the assignment below stays the only writer of user_roles.
		if err := tx.Omit("Roles").Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.Email, err)
		}
		log.Info().Str("email", user.Email).Msg("Created user")
	case err != nil:
		return fmt.Errorf("failed to look up user %s: %w", su.user.Email, err)
	}

	var count int64
	err = tx.Model(&entities.UserRole{}).
		Where("user_id = ? AND role_id = ?", su.user.ID, su.roleID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to look up role assignment for %s: %w", su.user.Email, err)
	}
	if count > 0 {
		return nil
	}

	assignment := entities.UserRole{UserID: su.user.ID, RoleID: su.roleID}
	if err := tx.Create(&assignment).Error; err != nil {
		return fmt.Errorf("failed to assign role to %s: %w", su.user.Email, err)
	}
	return nil
}

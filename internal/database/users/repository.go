// Package users provides database operations for accounts and their roles.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByEmail(ctx, "admin@bookstore.com")
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrRoleNotFound = errors.New("role not found")
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser stores a new account and assigns it roleName in one transaction.
// A missing ID is generated.
func (r *Repository) CreateUser(ctx context.Context, user *entities.User, roleName string) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.NormalizedEmail = entities.Normalize(user.Email)
	if user.UserName == "" {
		user.UserName = user.Email
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role entities.Role
		err := tx.Where("normalized_name = ?", entities.Normalize(roleName)).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrRoleNotFound, roleName)
		}
		if err != nil {
			return err
		}

		if err := tx.Omit("Roles").Create(user).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return ErrUserExists
			}
			return err
		}

		if err := tx.Create(&entities.UserRole{UserID: user.ID, RoleID: role.ID}).Error; err != nil {
			return fmt.Errorf("failed to assign role %s: %w", roleName, err)
		}
		user.Roles = []entities.Role{role}
		return nil
	})
}

// GetUserByEmail looks a user up case-insensitively and loads their roles.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Preload("Roles").
		Where("normalized_email = ?", entities.Normalize(email)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID with their roles.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Preload("Roles").Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether an account already uses email.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("normalized_email = ?", entities.Normalize(email)).
		Count(&count).Error
	return count > 0, err
}

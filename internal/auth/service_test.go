package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/users"
	"github.com/mrlokans/bookstore/internal/entities"
)

func setupService(t *testing.T, limiter *RateLimiter) (*Service, *TokenManager) {
	t.Helper()
	db, err := database.NewDatabase(config.Database{
		Driver:   config.DatabaseDriverSQLite,
		Path:     filepath.Join(t.TempDir(), "auth.db"),
		LogLevel: "silent",
	}, bcrypt.MinCost)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tokens := NewTokenManager("test-secret", "BookStoreAPI", "BookStoreAPIClient", time.Hour)
	svc := NewService(users.NewRepository(db.DB), tokens, limiter, config.Auth{BcryptCost: bcrypt.MinCost})
	return svc, tokens
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc, tokens := setupService(t, nil)

	t.Run("seeded admin", func(t *testing.T) {
		res, err := svc.Login(ctx, database.AdminEmail, database.DefaultPassword, "127.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, database.AdminUserID, res.UserID)
		assert.Equal(t, database.AdminEmail, res.Email)

		claims, err := tokens.Validate(res.Token)
		require.NoError(t, err)
		assert.Equal(t, []string{entities.RoleAdmin}, claims.Roles)
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		_, err := svc.Login(ctx, "USER@bookstore.com", database.DefaultPassword, "127.0.0.1")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, database.AdminEmail, "wrong-password", "127.0.0.1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@bookstore.com", database.DefaultPassword, "127.0.0.1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_Login_RateLimited(t *testing.T) {
	ctx := context.Background()
	limiter := NewRateLimiter(RateLimitConfig{MaxAttempts: 2, WindowDuration: time.Minute, LockoutDuration: time.Minute, CleanupInterval: time.Hour})
	defer limiter.Stop()
	svc, _ := setupService(t, limiter)

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, database.UserEmail, "bad-password", "10.0.0.1")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := svc.Login(ctx, database.UserEmail, database.DefaultPassword, "10.0.0.1")
	require.ErrorIs(t, err, ErrTooManyAttempts)
	var locked *LockedError
	require.True(t, errors.As(err, &locked))
	assert.Greater(t, locked.RetryAfter, time.Duration(0))

	// Another client address is not affected.
	_, err = svc.Login(ctx, database.UserEmail, database.DefaultPassword, "10.0.0.2")
	assert.NoError(t, err)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t, nil)

	t.Run("defaults to User role", func(t *testing.T) {
		user, err := svc.Register(ctx, Registration{
			Email:     "reader@example.com",
			FirstName: "Avid",
			LastName:  "Reader",
			Password:  "longenough1",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{entities.RoleUser}, user.RoleNames())

		res, err := svc.Login(ctx, "reader@example.com", "longenough1", "127.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, res.UserID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, Registration{Email: "reader@example.com", Password: "longenough1"})
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.Register(ctx, Registration{Email: "x@example.com", Password: "longenough1", Role: "Owner"})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("admin cannot be self-assigned", func(t *testing.T) {
		for _, role := range []string{entities.RoleAdmin, "admin", " ADMIN "} {
			_, err := svc.Register(ctx, Registration{Email: "boss@example.com", Password: "longenough1", Role: role})
			assert.ErrorIs(t, err, ErrRoleNotAllowed, role)
		}
		_, err := svc.Login(ctx, "boss@example.com", "longenough1", "127.0.0.1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("explicit User role", func(t *testing.T) {
		user, err := svc.Register(ctx, Registration{Email: "plain@example.com", Password: "longenough1", Role: "user"})
		require.NoError(t, err)
		assert.Equal(t, []string{entities.RoleUser}, user.RoleNames())
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(ctx, Registration{Email: "y@example.com", Password: "short"})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(config.Database{
		Driver:   config.DatabaseDriverSQLite,
		Path:     filepath.Join(t.TempDir(), "users.db"),
		LogLevel: "silent",
	}, bcrypt.MinCost)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func TestRepository_GetSeededUsers(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t)

	admin, err := repo.GetUserByEmail(ctx, "ADMIN@bookstore.com")
	require.NoError(t, err)
	assert.Equal(t, database.AdminUserID, admin.ID)
	assert.True(t, admin.HasRole(entities.RoleAdmin))

	user, err := repo.GetUserByID(ctx, database.UserUserID)
	require.NoError(t, err)
	assert.Equal(t, database.UserEmail, user.Email)
	assert.Equal(t, []string{entities.RoleUser}, user.RoleNames())

	_, err = repo.GetUserByEmail(ctx, "nobody@bookstore.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_CreateUser(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t)

	t.Run("creates user with role", func(t *testing.T) {
		user := &entities.User{Email: "reader@example.com", FirstName: "Avid", LastName: "Reader", PasswordHash: "hash"}
		require.NoError(t, repo.CreateUser(ctx, user, "user"))
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "reader@example.com", user.UserName)

		stored, err := repo.GetUserByEmail(ctx, "reader@example.com")
		require.NoError(t, err)
		assert.True(t, stored.HasRole(entities.RoleUser))
	})

	t.Run("duplicate email", func(t *testing.T) {
		user := &entities.User{Email: "Reader@Example.com", PasswordHash: "hash"}
		assert.ErrorIs(t, repo.CreateUser(ctx, user, entities.RoleUser), ErrUserExists)
	})

	t.Run("unknown role", func(t *testing.T) {
		user := &entities.User{Email: "boss@example.com", PasswordHash: "hash"}
		assert.ErrorIs(t, repo.CreateUser(ctx, user, "Superuser"), ErrRoleNotFound)

		exists, err := repo.EmailExists(ctx, "boss@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

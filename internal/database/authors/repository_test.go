package authors

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

func setupTestRepo(t *testing.T) (*Repository, *database.Database) {
	t.Helper()
	db, err := database.NewDatabase(config.Database{
		Driver:   config.DatabaseDriverSQLite,
		Path:     filepath.Join(t.TempDir(), "authors.db"),
		LogLevel: "silent",
	}, bcrypt.MinCost)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB), db
}

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRepo(t)

	author := &entities.Author{FirstName: "Octavia", LastName: "Butler", Bio: "Kindred"}
	require.NoError(t, repo.CreateAuthor(ctx, author))
	require.NotZero(t, author.ID)

	author.Bio = ""
	require.NoError(t, repo.UpdateAuthor(ctx, author))

	got, err := repo.GetAuthorByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Octavia Butler", got.FullName())
	assert.Empty(t, got.Bio)

	require.NoError(t, repo.DeleteAuthor(ctx, author.ID))
	_, err = repo.GetAuthorByID(ctx, author.ID)
	assert.ErrorIs(t, err, ErrAuthorNotFound)
	assert.ErrorIs(t, repo.DeleteAuthor(ctx, author.ID), ErrAuthorNotFound)
}

func TestRepository_ListAuthorsOrdered(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRepo(t)

	for _, a := range []entities.Author{
		{FirstName: "Isaac", LastName: "Asimov"},
		{FirstName: "Arthur", LastName: "Clarke"},
		{FirstName: "Alfred", LastName: "Bester"},
	} {
		a := a
		require.NoError(t, repo.CreateAuthor(ctx, &a))
	}

	list, err := repo.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Asimov", list[0].LastName)
	assert.Equal(t, "Bester", list[1].LastName)
	assert.Equal(t, "Clarke", list[2].LastName)
}

func TestRepository_DeleteAuthorWithBooks(t *testing.T) {
	ctx := context.Background()
	repo, db := setupTestRepo(t)

	author := &entities.Author{FirstName: "N.K.", LastName: "Jemisin"}
	require.NoError(t, repo.CreateAuthor(ctx, author))
	require.NoError(t, db.DB.Create(&entities.Book{Title: "The Fifth Season", ISBN: "978-0316229296", AuthorID: author.ID}).Error)

	assert.ErrorIs(t, repo.DeleteAuthor(ctx, author.ID), ErrAuthorHasBooks)

	got, err := repo.GetAuthorByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Len(t, got.Books, 1)
}

func TestRepository_UpdateMissingAuthor(t *testing.T) {
	repo, _ := setupTestRepo(t)
	err := repo.UpdateAuthor(context.Background(), &entities.Author{ID: 404, FirstName: "No", LastName: "One"})
	assert.ErrorIs(t, err, ErrConcurrencyConflict)
}

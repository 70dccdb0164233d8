package books

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
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
		Path:     filepath.Join(t.TempDir(), "books.db"),
		LogLevel: "silent",
	}, bcrypt.MinCost)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB), db
}

func createAuthor(t *testing.T, db *database.Database, first, last string) entities.Author {
	t.Helper()
	author := entities.Author{FirstName: first, LastName: last}
	require.NoError(t, db.DB.Create(&author).Error)
	return author
}

func newBook(authorID uint, isbn string) *entities.Book {
	return &entities.Book{
		Title:    "Book " + isbn,
		ISBN:     isbn,
		Price:    decimal.RequireFromString("19.99"),
		Summary:  "A summary",
		Image:    "cover.png",
		AuthorID: authorID,
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo, db := setupTestRepo(t)
	author := createAuthor(t, db, "Frank", "Herbert")

	book := newBook(author.ID, "978-0441013593")
	require.NoError(t, repo.CreateBook(ctx, book))
	assert.NotZero(t, book.ID)

	got, err := repo.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.Title, got.Title)
	assert.Equal(t, book.ISBN, got.ISBN)
	assert.True(t, book.Price.Equal(got.Price))
	require.NotNil(t, got.Author)
	assert.Equal(t, "Frank Herbert", got.Author.FullName())
}

func TestRepository_CreateBook_Errors(t *testing.T) {
	ctx := context.Background()
	repo, db := setupTestRepo(t)
	author := createAuthor(t, db, "Iain", "Banks")
	require.NoError(t, repo.CreateBook(ctx, newBook(author.ID, "isbn-1")))

	t.Run("duplicate ISBN", func(t *testing.T) {
		err := repo.CreateBook(ctx, newBook(author.ID, "isbn-1"))
		assert.ErrorIs(t, err, ErrDuplicateISBN)

		count, err := repo.CountBooks(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown author", func(t *testing.T) {
		err := repo.CreateBook(ctx, newBook(4242, "isbn-2"))
		assert.ErrorIs(t, err, ErrAuthorNotFound)
	})
}

func TestRepository_ListBooks(t *testing.T) {
	ctx := context.Background()
	repo, db := setupTestRepo(t)
	author := createAuthor(t, db, "Ann", "Leckie")

	for _, isbn := range []string{"a", "b", "c"} {
		require.NoError(t, repo.CreateBook(ctx, newBook(author.ID, isbn)))
	}

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "a", books[0].ISBN)
	for _, b := range books {
		require.NotNil(t, b.Author)
		assert.Equal(t, author.ID, b.Author.ID)
	}
}

func TestRepository_UpdateBook(t *testing.T) {
	ctx := context.Background()
	repo, db := setupTestRepo(t)
	author := createAuthor(t, db, "Ted", "Chiang")
	other := createAuthor(t, db, "Greg", "Egan")

	book := newBook(author.ID, "isbn-u")
	require.NoError(t, repo.CreateBook(ctx, book))

	t.Run("writes all mutable fields", func(t *testing.T) {
		book.Title = "Exhalation"
		book.Summary = ""
		book.Price = decimal.Zero
		book.AuthorID = other.ID
		require.NoError(t, repo.UpdateBook(ctx, book))

		got, err := repo.GetBookByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Exhalation", got.Title)
		assert.Empty(t, got.Summary)
		assert.True(t, got.Price.IsZero())
		assert.Equal(t, other.ID, got.AuthorID)
	})

	t.Run("vanished row is a concurrency conflict", func(t *testing.T) {
		ghost := newBook(author.ID, "isbn-ghost")
		ghost.ID = 9876
		assert.ErrorIs(t, repo.UpdateBook(ctx, ghost), ErrConcurrencyConflict)
	})

	t.Run("unknown author", func(t *testing.T) {
		book.AuthorID = 5555
		assert.ErrorIs(t, repo.UpdateBook(ctx, book), ErrAuthorNotFound)
		book.AuthorID = other.ID
	})

	t.Run("ISBN taken by another book", func(t *testing.T) {
		second := newBook(author.ID, "isbn-second")
		require.NoError(t, repo.CreateBook(ctx, second))

		second.ISBN = book.ISBN
		assert.ErrorIs(t, repo.UpdateBook(ctx, second), ErrDuplicateISBN)
	})
}

func TestRepository_DeleteBook(t *testing.T) {
	ctx := context.Background()
	repo, db := setupTestRepo(t)
	author := createAuthor(t, db, "Becky", "Chambers")

	book := newBook(author.ID, "isbn-d")
	require.NoError(t, repo.CreateBook(ctx, book))

	require.NoError(t, repo.DeleteBook(ctx, book.ID))

	exists, err := repo.BookExists(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetBookByID(ctx, book.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)

	assert.ErrorIs(t, repo.DeleteBook(ctx, book.ID), ErrBookNotFound)
}

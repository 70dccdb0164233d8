// Package books provides database operations for the book catalogue.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(ctx, 123)
package books

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

var (
	ErrBookNotFound        = errors.New("book not found")
	ErrAuthorNotFound      = errors.New("author not found")
	ErrDuplicateISBN       = errors.New("a book with this ISBN already exists")
	ErrConcurrencyConflict = errors.New("book was modified or removed concurrently")
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns every book with its author loaded, ordered by id.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Preload("Author").Order("id ASC").Find(&books).Error
	return books, err
}

// GetBookByID retrieves a book and its author.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Preload("Author").First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// BookExists reports whether a book with the given id is stored.
func (r *Repository) BookExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CountBooks returns the number of stored books.
func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// CreateBook inserts a new book. The author must exist and the ISBN must be unused.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAuthor(tx, book.AuthorID); err != nil {
			return err
		}
		if err := tx.Omit("Author").Create(book).Error; err != nil {
			return translate(err)
		}
		return nil
	})
}

// UpdateBook writes the mutable fields of book with a conditional update.
// Zero affected rows means the row vanished after it was loaded and is
// reported as ErrConcurrencyConflict.
func (r *Repository) UpdateBook(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAuthor(tx, book.AuthorID); err != nil {
			return err
		}

		book.UpdatedAt = time.Now()
		result := tx.Model(&entities.Book{}).
			Where("id = ?", book.ID).
			Updates(map[string]any{
				"title":      book.Title,
				"price":      book.Price,
				"isbn":       book.ISBN,
				"summary":    book.Summary,
				"image":      book.Image,
				"author_id":  book.AuthorID,
				"updated_at": book.UpdatedAt,
			})
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrConcurrencyConflict
		}
		return nil
	})
}

// DeleteBook removes a book by id.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

func ensureAuthor(tx *gorm.DB, authorID uint) error {
	var count int64
	if err := tx.Model(&entities.Author{}).Where("id = ?", authorID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up author %d: %w", authorID, err)
	}
	if count == 0 {
		return ErrAuthorNotFound
	}
	return nil
}

func translate(err error) error {
	switch {
	case database.IsDuplicateKey(err):
		return fmt.Errorf("%w: %v", ErrDuplicateISBN, err)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", ErrAuthorNotFound, err)
	}
	return err
}

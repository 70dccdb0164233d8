// Package authors provides database operations for authors.
package authors

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
	ErrAuthorNotFound      = errors.New("author not found")
	ErrAuthorHasBooks      = errors.New("author still has books")
	ErrConcurrencyConflict = errors.New("author was modified or removed concurrently")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAuthors returns all authors ordered by last and first name.
func (r *Repository) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC, id ASC").Find(&authors).Error
	return authors, err
}

// GetAuthorByID retrieves an author together with their books.
func (r *Repository) GetAuthorByID(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Order("title ASC")
	}).First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAuthorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *Repository) AuthorExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Author{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateAuthor(ctx context.Context, author *entities.Author) error {
	return r.db.WithContext(ctx).Omit("Books").Create(author).Error
}

// UpdateAuthor writes the mutable fields; zero affected rows is a conflict.
func (r *Repository) UpdateAuthor(ctx context.Context, author *entities.Author) error {
	author.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&entities.Author{}).
		Where("id = ?", author.ID).
		Updates(map[string]any{
			"first_name": author.FirstName,
			"last_name":  author.LastName,
			"bio":        author.Bio,
			"updated_at": author.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConcurrencyConflict
	}
	return nil
}

// DeleteAuthor removes an author who owns no books.
func (r *Repository) DeleteAuthor(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var books int64
		if err := tx.Model(&entities.Book{}).Where("author_id = ?", id).Count(&books).Error; err != nil {
			return fmt.Errorf("failed to count books of author %d: %w", id, err)
		}
		if books > 0 {
			return ErrAuthorHasBooks
		}

		result := tx.Delete(&entities.Author{}, id)
		if database.IsForeignKeyViolation(result.Error) {
			return fmt.Errorf("%w: %v", ErrAuthorHasBooks, result.Error)
		}
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAuthorNotFound
		}
		return nil
	})
}

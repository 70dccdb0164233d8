package http

import (
	"context"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/entities"
)

// This file consolidates the store interfaces used by HTTP controllers.
// Each controller depends only on the operations it calls.

// BookStore is the book persistence the books controller needs.
type BookStore interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBookByID(ctx context.Context, id uint) (*entities.Book, error)
	BookExists(ctx context.Context, id uint) (bool, error)
	CreateBook(ctx context.Context, book *entities.Book) error
	UpdateBook(ctx context.Context, book *entities.Book) error
	DeleteBook(ctx context.Context, id uint) error
}

// AuthorStore is the author persistence the authors controller needs.
type AuthorStore interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthorByID(ctx context.Context, id uint) (*entities.Author, error)
	AuthorExists(ctx context.Context, id uint) (bool, error)
	CreateAuthor(ctx context.Context, author *entities.Author) error
	UpdateAuthor(ctx context.Context, author *entities.Author) error
	DeleteAuthor(ctx context.Context, id uint) error
}

// MutationRecorder receives create/update/delete events. *audit.Service
// implements it.
type MutationRecorder interface {
	LogMutation(m audit.Mutation)
}

// AuthRecorder receives login and registration events.
type AuthRecorder interface {
	LogAuth(userID, action, ipAddr, userAgent string, success bool)
}

// AuditReader lists recorded events.
type AuditReader interface {
	GetEvents(ctx context.Context, userID string, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

type nopRecorder struct{}

func (nopRecorder) LogMutation(audit.Mutation)        {}
func (nopRecorder) LogAuth(_, _, _, _ string, _ bool) {}

package services

import (
	"context"

	"github.com/mrlokans/bookstore/internal/models"
	"github.com/mrlokans/bookstore/internal/ui/storage"
)

// BookClient is the slice of the API client the book service uses.
type BookClient interface {
	ListBooks(ctx context.Context) ([]models.BookReadOnlyDTO, error)
	GetBook(ctx context.Context, id uint) (*models.BookDetailsDTO, error)
	CreateBook(ctx context.Context, dto models.BookCreateDTO) (*models.BookReadOnlyDTO, error)
	UpdateBook(ctx context.Context, id uint, dto models.BookUpdateDTO) error
	DeleteBook(ctx context.Context, id uint) error
}

type BookService struct {
	base
	client BookClient
}

func NewBookService(client BookClient, store storage.LocalStorage) *BookService {
	return &BookService{base: base{storage: store}, client: client}
}

func (s *BookService) GetBooks(ctx context.Context) Response[[]models.BookReadOnlyDTO] {
	return call(ctx, s.base, s.client.ListBooks)
}

func (s *BookService) GetBook(ctx context.Context, id uint) Response[*models.BookDetailsDTO] {
	return call(ctx, s.base, func(ctx context.Context) (*models.BookDetailsDTO, error) {
		return s.client.GetBook(ctx, id)
	})
}

func (s *BookService) CreateBook(ctx context.Context, book models.BookCreateDTO) Response[*models.BookReadOnlyDTO] {
	return call(ctx, s.base, func(ctx context.Context) (*models.BookReadOnlyDTO, error) {
		return s.client.CreateBook(ctx, book)
	})
}

func (s *BookService) UpdateBook(ctx context.Context, id uint, book models.BookUpdateDTO) Response[struct{}] {
	return call(ctx, s.base, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.UpdateBook(ctx, id, book)
	})
}

func (s *BookService) DeleteBook(ctx context.Context, id uint) Response[struct{}] {
	return call(ctx, s.base, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.DeleteBook(ctx, id)
	})
}

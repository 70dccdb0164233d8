package services

import (
	"context"

	"github.com/mrlokans/bookstore/internal/models"
	"github.com/mrlokans/bookstore/internal/ui/storage"
)

// AuthorClient is the slice of the API client the author service uses.
type AuthorClient interface {
	ListAuthors(ctx context.Context) ([]models.AuthorReadOnlyDTO, error)
	GetAuthor(ctx context.Context, id uint) (*models.AuthorDetailsDTO, error)
	CreateAuthor(ctx context.Context, dto models.AuthorCreateDTO) (*models.AuthorReadOnlyDTO, error)
	UpdateAuthor(ctx context.Context, id uint, dto models.AuthorUpdateDTO) error
	DeleteAuthor(ctx context.Context, id uint) error
}

type AuthorService struct {
	base
	client AuthorClient
}

func NewAuthorService(client AuthorClient, store storage.LocalStorage) *AuthorService {
	return &AuthorService{base: base{storage: store}, client: client}
}

func (s *AuthorService) GetAuthors(ctx context.Context) Response[[]models.AuthorReadOnlyDTO] {
	return call(ctx, s.base, s.client.ListAuthors)
}

func (s *AuthorService) GetAuthor(ctx context.Context, id uint) Response[*models.AuthorDetailsDTO] {
	return call(ctx, s.base, func(ctx context.Context) (*models.AuthorDetailsDTO, error) {
		return s.client.GetAuthor(ctx, id)
	})
}

// CreateAuthor returns the created author on success.
func (s *AuthorService) CreateAuthor(ctx context.Context, author models.AuthorCreateDTO) Response[*models.AuthorReadOnlyDTO] {
	return call(ctx, s.base, func(ctx context.Context) (*models.AuthorReadOnlyDTO, error) {
		return s.client.CreateAuthor(ctx, author)
	})
}

func (s *AuthorService) UpdateAuthor(ctx context.Context, id uint, author models.AuthorUpdateDTO) Response[struct{}] {
	return call(ctx, s.base, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.UpdateAuthor(ctx, id, author)
	})
}

func (s *AuthorService) DeleteAuthor(ctx context.Context, id uint) Response[struct{}] {
	return call(ctx, s.base, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.DeleteAuthor(ctx, id)
	})
}

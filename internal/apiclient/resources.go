package apiclient

import (
	"context"
	"net/http"

	"github.com/mrlokans/bookstore/internal/models"
)

const (
	booksPath   = "/api/Books"
	authorsPath = "/api/Authors"
	authPath    = "/api/Auth"
)

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, dto models.LoginUserDTO) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, authPath+"/login", dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register opens an account. The API answers 202 with no body.
func (c *Client) Register(ctx context.Context, dto models.UserDTO) error {
	return c.do(ctx, http.MethodPost, authPath+"/register", dto, nil)
}

// --- Books ---

func (c *Client) ListBooks(ctx context.Context) ([]models.BookReadOnlyDTO, error) {
	var out []models.BookReadOnlyDTO
	if err := c.get(ctx, booksPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBook(ctx context.Context, id uint) (*models.BookDetailsDTO, error) {
	var out models.BookDetailsDTO
	if err := c.get(ctx, idPath(booksPath, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBook(ctx context.Context, dto models.BookCreateDTO) (*models.BookReadOnlyDTO, error) {
	var out models.BookReadOnlyDTO
	if err := c.do(ctx, http.MethodPost, booksPath, dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBook(ctx context.Context, id uint, dto models.BookUpdateDTO) error {
	return c.do(ctx, http.MethodPut, idPath(booksPath, id), dto, nil)
}

func (c *Client) DeleteBook(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, idPath(booksPath, id), nil, nil)
}

// --- Authors ---

func (c *Client) ListAuthors(ctx context.Context) ([]models.AuthorReadOnlyDTO, error) {
	var out []models.AuthorReadOnlyDTO
	if err := c.get(ctx, authorsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAuthor(ctx context.Context, id uint) (*models.AuthorDetailsDTO, error) {
	var out models.AuthorDetailsDTO
	if err := c.get(ctx, idPath(authorsPath, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAuthor(ctx context.Context, dto models.AuthorCreateDTO) (*models.AuthorReadOnlyDTO, error) {
	var out models.AuthorReadOnlyDTO
	if err := c.do(ctx, http.MethodPost, authorsPath, dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAuthor(ctx context.Context, id uint, dto models.AuthorUpdateDTO) error {
	return c.do(ctx, http.MethodPut, idPath(authorsPath, id), dto, nil)
}

func (c *Client) DeleteAuthor(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, idPath(authorsPath, id), nil, nil)
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/bookstore/internal/models"
	"github.com/mrlokans/bookstore/internal/ui/authstate"
	"github.com/mrlokans/bookstore/internal/ui/storage"
)

var ErrEmptyToken = errors.New("login response carried no token")

// AuthClient is the slice of the API client used for sign-in.
type AuthClient interface {
	Login(ctx context.Context, dto models.LoginUserDTO) (*models.AuthResponse, error)
	Register(ctx context.Context, dto models.UserDTO) error
}

// AuthenticationService signs the browser in and out.
type AuthenticationService struct {
	client   AuthClient
	storage  storage.LocalStorage
	notifier authstate.Notifier
}

func NewAuthenticationService(client AuthClient, store storage.LocalStorage, notifier authstate.Notifier) *AuthenticationService {
	return &AuthenticationService{client: client, storage: store, notifier: notifier}
}

// Authenticate logs in, stores the token and announces the new state.
// Nothing is stored when the API refuses the credentials.
func (s *AuthenticationService) Authenticate(ctx context.Context, login models.LoginUserDTO) error {
	resp, err := s.client.Login(ctx, login)
	if err != nil {
		return err
	}
	if resp.Token == "" {
		return ErrEmptyToken
	}

	if err := s.storage.SetItem(ctx, authstate.AccessTokenKey, resp.Token); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	return s.notifier.NotifyLoggedIn(ctx)
}

// Logout clears the stored token through the state holder.
func (s *AuthenticationService) Logout(ctx context.Context) error {
	return s.notifier.NotifyLoggedOut(ctx)
}

// Register opens an account without signing in.
func (s *AuthenticationService) Register(ctx context.Context, user models.UserDTO) Response[struct{}] {
	if err := s.client.Register(ctx, user); err != nil {
		return convertError[struct{}](err)
	}
	return ok(struct{}{})
}

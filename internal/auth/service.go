package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database/users"
	"github.com/mrlokans/bookstore/internal/entities"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrRoleNotAllowed     = errors.New("role cannot be self-assigned")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// LockedError is returned by Login while the rate limiter blocks a caller.
type LockedError struct {
	RetryAfter time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s, retry after %s", ErrTooManyAttempts, e.RetryAfter.Round(time.Second))
}

func (e *LockedError) Unwrap() error {
	return ErrTooManyAttempts
}

// UserStore defines the user data access the service needs.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, user *entities.User, roleName string) error
}

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	UserID    string
	Email     string
	Token     string
	ExpiresAt time.Time
}

// Registration holds the fields needed to open an account.
type Registration struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      string
}

// Service handles login and registration.
type Service struct {
	users   UserStore
	tokens  *TokenManager
	limiter *RateLimiter
	config  config.Auth
}

// NewService creates a new authentication service. limiter may be nil.
func NewService(users UserStore, tokens *TokenManager, limiter *RateLimiter, cfg config.Auth) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		limiter: limiter,
		config:  cfg,
	}
}

// Login checks credentials and issues an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password, clientIP string) (*LoginResult, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	if s.limiter != nil {
		if allowed, retryAfter := s.limiter.Allow(clientIP, key); !allowed {
			return nil, &LockedError{RetryAfter: retryAfter}
		}
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			s.recordFailure(clientIP, key)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		s.recordFailure(clientIP, key)
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if s.limiter != nil {
		s.limiter.RecordSuccess(clientIP, key)
	}

	token, expires, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expires,
	}, nil
}

// Register opens an account with the User role. Naming Admin yields
// ErrRoleNotAllowed, any other role ErrInvalidRole.
func (s *Service) Register(ctx context.Context, reg Registration) (*entities.User, error) {
	role := strings.TrimSpace(reg.Role)
	switch entities.Normalize(role) {
	case "", entities.Normalize(entities.RoleUser):
		role = entities.RoleUser
	case entities.Normalize(entities.RoleAdmin):
		return nil, fmt.Errorf("%w: %s", ErrRoleNotAllowed, role)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	passwordHash, err := HashPassword(reg.Password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        strings.TrimSpace(reg.Email),
		UserName:     strings.TrimSpace(reg.Email),
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		PasswordHash: passwordHash,
	}

	err = s.users.CreateUser(ctx, user, role)
	switch {
	case errors.Is(err, users.ErrUserExists):
		return nil, ErrUserExists
	case errors.Is(err, users.ErrRoleNotFound):
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	case err != nil:
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ValidateToken verifies an access token issued by this service.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return s.tokens.Validate(token)
}

func (s *Service) recordFailure(ip, key string) {
	if s.limiter != nil {
		s.limiter.RecordFailure(ip, key)
	}
}

package http

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/models"
)

// Authenticator is the part of auth.Service the controller calls.
type Authenticator interface {
	Login(ctx context.Context, email, password, clientIP string) (*auth.LoginResult, error)
	Register(ctx context.Context, reg auth.Registration) (*entities.User, error)
}

// AuthController serves /api/Auth.
type AuthController struct {
	service  Authenticator
	recorder AuthRecorder
}

func NewAuthController(service Authenticator, recorder AuthRecorder) *AuthController {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &AuthController{service: service, recorder: recorder}
}

// Login exchanges credentials for an access token.
// POST /api/Auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondValidation(c, err)
		return
	}

	result, err := ac.service.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		var locked *auth.LockedError
		switch {
		case errors.As(err, &locked):
			log.Warn().Str("email", req.Email).Str("ip", c.ClientIP()).Msg("Login rate limited")
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(locked.RetryAfter.Seconds()))))
			c.JSON(http.StatusTooManyRequests, ErrorResponse{
				Error: "too many login attempts, try again later",
				Code:  "rate_limited",
			})
		case errors.Is(err, auth.ErrInvalidCredentials):
			log.Warn().Str("email", req.Email).Msg("Invalid login attempt")
			ac.recorder.LogAuth("", "login", c.ClientIP(), c.Request.UserAgent(), false)
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		default:
			respondInternalError(c, err, "Login")
		}
		return
	}

	ac.recorder.LogAuth(result.UserID, "login", c.ClientIP(), c.Request.UserAgent(), true)
	c.JSON(http.StatusOK, models.AuthResponse{
		UserID: result.UserID,
		Token:  result.Token,
		Email:  result.Email,
	})
}

// Register opens an account. The body of a 202 is empty.
// POST /api/Auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.UserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := ac.service.Register(c.Request.Context(), auth.Registration{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Role:      req.Role,
	})
	switch {
	case errors.Is(err, auth.ErrUserExists):
		log.Warn().Str("email", req.Email).Msg("Registration for existing email")
		respondConflict(c, "an account with this email already exists")
		return
	case errors.Is(err, auth.ErrRoleNotAllowed):
		log.Warn().Str("email", req.Email).Str("role", req.Role).Str("ip", c.ClientIP()).Msg("Registration asked for a privileged role")
		ac.recorder.LogAuth("", "register", c.ClientIP(), c.Request.UserAgent(), false)
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "only the User role can be requested at registration",
			Code:  "forbidden",
		})
		return
	case errors.Is(err, auth.ErrInvalidRole):
		log.Warn().Str("role", req.Role).Msg("Registration with unknown role")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Code:    "validation",
			Details: map[string]string{"role": "unknown role"},
		})
		return
	case err != nil:
		respondInternalError(c, err, "Register")
		return
	}

	ac.recorder.LogAuth(user.ID, "register", c.ClientIP(), c.Request.UserAgent(), true)
	c.Status(http.StatusAccepted)
}

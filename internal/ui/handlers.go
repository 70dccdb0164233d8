package ui

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookstore/internal/apiclient"
	"github.com/mrlokans/bookstore/internal/models"
	"github.com/mrlokans/bookstore/internal/ui/authstate"
	"github.com/mrlokans/bookstore/internal/ui/services"
	"github.com/mrlokans/bookstore/internal/ui/storage"
)

type handlers struct {
	sessions *storage.SessionStorage
	state    *authstate.Provider
	auth     *services.AuthenticationService
	authors  *services.AuthorService
	books    *services.BookService
}

type stateResponse struct {
	authstate.State
	CSRFToken string `json:"csrfToken"`
}

// GET /state
func (h *handlers) getState(c *gin.Context) {
	state, err := h.state.State(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read authentication state")
		c.JSON(http.StatusInternalServerError, services.Response[any]{Message: services.MsgFailure})
		return
	}
	c.JSON(http.StatusOK, stateResponse{State: state, CSRFToken: GetCSRFToken(c)})
}

// POST /login
func (h *handlers) login(c *gin.Context) {
	var req models.LoginUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, services.Response[any]{Message: services.MsgValidation})
		return
	}

	ctx := c.Request.Context()
	// New identity, new session token.
	if err := h.sessions.RenewToken(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to renew session token")
		c.JSON(http.StatusInternalServerError, services.Response[any]{Message: services.MsgFailure})
		return
	}

	if err := h.auth.Authenticate(ctx, req); err != nil {
		if apiErr, ok := apiclient.AsAPIError(err); ok && apiErr.StatusCode == http.StatusUnauthorized {
			c.JSON(http.StatusUnauthorized, services.Response[any]{Message: "Invalid email or password."})
			return
		}
		log.Warn().Err(err).Str("email", req.Email).Msg("Login through the API failed")
		c.JSON(http.StatusBadGateway, services.Response[any]{Message: services.MsgFailure})
		return
	}

	state, err := h.state.State(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read authentication state after login")
		c.JSON(http.StatusInternalServerError, services.Response[any]{Message: services.MsgFailure})
		return
	}
	c.JSON(http.StatusOK, services.Response[authstate.State]{Success: true, Data: state})
}

// POST /logout
func (h *handlers) logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("Failed to clear session token")
		c.JSON(http.StatusInternalServerError, services.Response[any]{Message: services.MsgFailure})
		return
	}
	c.JSON(http.StatusOK, services.Response[authstate.State]{Success: true, Data: authstate.Anonymous})
}

// POST /register
func (h *handlers) register(c *gin.Context) {
	var req models.UserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, services.Response[any]{Message: services.MsgValidation})
		return
	}
	respond(c, h.auth.Register(c.Request.Context(), req))
}

func (h *handlers) listAuthors(c *gin.Context) {
	respond(c, h.authors.GetAuthors(c.Request.Context()))
}

func (h *handlers) getAuthor(c *gin.Context) {
	if id, ok := pathID(c); ok {
		respond(c, h.authors.GetAuthor(c.Request.Context(), id))
	}
}

func (h *handlers) createAuthor(c *gin.Context) {
	var req models.AuthorCreateDTO
	if bindJSON(c, &req) {
		respond(c, h.authors.CreateAuthor(c.Request.Context(), req))
	}
}

func (h *handlers) updateAuthor(c *gin.Context) {
	id, ok := pathID(c)
	var req models.AuthorUpdateDTO
	if ok && bindJSON(c, &req) {
		respond(c, h.authors.UpdateAuthor(c.Request.Context(), id, req))
	}
}

func (h *handlers) deleteAuthor(c *gin.Context) {
	if id, ok := pathID(c); ok {
		respond(c, h.authors.DeleteAuthor(c.Request.Context(), id))
	}
}

func (h *handlers) listBooks(c *gin.Context) {
	respond(c, h.books.GetBooks(c.Request.Context()))
}

func (h *handlers) getBook(c *gin.Context) {
	if id, ok := pathID(c); ok {
		respond(c, h.books.GetBook(c.Request.Context(), id))
	}
}

func (h *handlers) createBook(c *gin.Context) {
	var req models.BookCreateDTO
	if bindJSON(c, &req) {
		respond(c, h.books.CreateBook(c.Request.Context(), req))
	}
}

func (h *handlers) updateBook(c *gin.Context) {
	id, ok := pathID(c)
	var req models.BookUpdateDTO
	if ok && bindJSON(c, &req) {
		respond(c, h.books.UpdateBook(c.Request.Context(), id, req))
	}
}

func (h *handlers) deleteBook(c *gin.Context) {
	if id, ok := pathID(c); ok {
		respond(c, h.books.DeleteBook(c.Request.Context(), id))
	}
}

// respond writes an envelope with a status that matches its message.
func respond[T any](c *gin.Context, resp services.Response[T]) {
	status := http.StatusOK
	if !resp.Success {
		switch resp.Message {
		case services.MsgValidation:
			status = http.StatusBadRequest
		case services.MsgNotFound:
			status = http.StatusNotFound
		case services.MsgUnauthorized:
			status = http.StatusUnauthorized
		case services.MsgForbidden:
			status = http.StatusForbidden
		case services.MsgConflict:
			status = http.StatusConflict
		default:
			status = http.StatusBadGateway
		}
	}
	c.JSON(status, resp)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, services.Response[any]{
			Message:          services.MsgValidation,
			ValidationErrors: map[string]string{"id": "must be a positive integer"},
		})
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, services.Response[any]{
			Message:          services.MsgValidation,
			ValidationErrors: map[string]string{"": err.Error()},
		})
		return false
	}
	return true
}

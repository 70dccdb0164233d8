// Package ui is the browser-facing host. It keeps each browser's access
// token in a server-side session and proxies author and book operations
// to the bookstore API through the client services, answering with JSON
// envelopes.
package ui

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/logging"
	"github.com/mrlokans/bookstore/internal/ui/authstate"
	"github.com/mrlokans/bookstore/internal/ui/services"
	"github.com/mrlokans/bookstore/internal/ui/storage"
)

// Config holds the UI host's dependencies.
type Config struct {
	Sessions      *storage.SessionStorage
	CSRFKey       []byte
	SecureCookies bool

	State   *authstate.Provider
	Auth    *services.AuthenticationService
	Authors *services.AuthorService
	Books   *services.BookService
}

// NewRouter wires the UI host.
func NewRouter(cfg Config) *gin.Engine {
	router := gin.New()
	router.Use(logging.RequestLogger())
	router.Use(logging.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// Session runs first so CSRF's request replacement keeps its context.
	router.Use(cfg.Sessions.SessionLoadSave())
	router.Use(CSRFMiddleware(cfg.CSRFKey, cfg.SecureCookies))

	h := &handlers{
		sessions: cfg.Sessions,
		state:    cfg.State,
		auth:     cfg.Auth,
		authors:  cfg.Authors,
		books:    cfg.Books,
	}

	router.GET("/state", h.getState)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
	router.POST("/register", h.register)

	router.GET("/authors", h.listAuthors)
	router.GET("/authors/:id", h.getAuthor)
	router.POST("/authors", h.createAuthor)
	router.PUT("/authors/:id", h.updateAuthor)
	router.DELETE("/authors/:id", h.deleteAuthor)

	router.GET("/books", h.listBooks)
	router.GET("/books/:id", h.getBook)
	router.POST("/books", h.createBook)
	router.PUT("/books/:id", h.updateBook)
	router.DELETE("/books/:id", h.deleteBook)

	return router
}

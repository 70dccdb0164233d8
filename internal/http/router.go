package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/logging"
)

// BearerAuthenticator produces the middleware guarding /api.
type BearerAuthenticator interface {
	RequireAuth() gin.HandlerFunc
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(logging.RequestLogger())
	router.Use(logging.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.EnableHSTS {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	var recorder Recorder = nopRecorder{}
	if cfg.Recorder != nil {
		recorder = cfg.Recorder
	}

	health := NewHealthController(cfg.Pinger, cfg.Version)
	books := NewBooksController(cfg.Books, recorder)
	authors := NewAuthorsController(cfg.Authors, recorder)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	api := router.Group("/api")

	// Anonymous endpoints
	if cfg.AuthService != nil {
		authController := NewAuthController(cfg.AuthService, recorder)
		api.POST("/Auth/login", authController.Login)
		api.POST("/Auth/register", authController.Register)
	}

	protected := api.Group("")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}
	admin := auth.RequireRole(entities.RoleAdmin)

	// Books API endpoints
	protected.GET("/Books", books.GetBooks)
	protected.GET("/Books/:id", books.GetBook)
	protected.PUT("/Books/:id", admin, books.PutBook)
	protected.POST("/Books", admin, books.PostBook)
	protected.DELETE("/Books/:id", admin, books.DeleteBook)

	// Authors API endpoints
	protected.GET("/Authors", authors.GetAuthors)
	protected.GET("/Authors/:id", authors.GetAuthor)
	protected.PUT("/Authors/:id", admin, authors.PutAuthor)
	protected.POST("/Authors", admin, authors.PostAuthor)
	protected.DELETE("/Authors/:id", admin, authors.DeleteAuthor)

	if cfg.AuditEvents != nil {
		auditController := NewAuditController(cfg.AuditEvents)
		protected.GET("/Audit", admin, auditController.GetAuditEvents)
	}

	return router
}

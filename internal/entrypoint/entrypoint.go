package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	auditrepo "github.com/mrlokans/bookstore/internal/database/audit"
	"github.com/mrlokans/bookstore/internal/database/authors"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/users"
	http_controllers "github.com/mrlokans/bookstore/internal/http"
	"github.com/mrlokans/bookstore/internal/scheduler"
	"github.com/mrlokans/bookstore/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs handler on addr until SIGINT or SIGTERM, then shuts down
// within the configured timeout.
func Serve(handler http.Handler, addr string, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown")
	}

	// Background work stops after the last request has been served.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info().Msg("Server exiting")
}

// jwtSecret returns the configured signing secret or a random one. Tokens
// signed with a random secret do not survive a restart.
func jwtSecret(cfg config.Auth) string {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret
	}
	secret, err := auth.GenerateSecret()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate JWT secret")
	}
	log.Warn().Msg("Generated JWT secret (set AUTH_JWT_SECRET to persist tokens across restarts)")
	return secret
}

// inlineCleanup runs audit cleanup synchronously when the task queue is off.
type inlineCleanup struct {
	service *audit.Service
}

func (c inlineCleanup) ScheduleAuditCleanup(ctx context.Context, retentionDays int) error {
	return tasks.CleanupAuditEventsProcessor(c.service)(ctx, tasks.CleanupAuditEventsTask{RetentionDays: retentionDays})
}

// RunAPI starts the bookstore API.
func RunAPI(cfg *config.Config, version string) {
	log.Info().Str("version", version).Msg("Starting Bookstore API")

	db, err := database.NewDatabase(cfg.Database, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	tokens := auth.NewTokenManager(jwtSecret(cfg.Auth), cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, cfg.Auth.TokenLifetime)
	limiter := auth.NewRateLimiter(auth.RateLimitConfigFrom(cfg.Auth))
	defer limiter.Stop()

	authService := auth.NewService(users.NewRepository(db.DB), tokens, limiter, cfg.Auth)

	routerCfg := http_controllers.RouterConfig{
		Books:          books.NewRepository(db.DB),
		Authors:        authors.NewRepository(db.DB),
		Pinger:         db,
		AuthService:    authService,
		AuthMiddleware: auth.NewMiddleware(tokens),
		EnableHSTS:     cfg.UI.SecureCookies,
		Version:        version,
	}

	var auditService *audit.Service
	if cfg.Audit.Enabled {
		auditService = audit.NewService(auditrepo.NewRepository(db.DB))
		routerCfg.Recorder = auditService
		routerCfg.AuditEvents = auditService
	} else {
		log.Info().Msg("Audit trail disabled")
	}

	// Task queue for background maintenance
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled && auditService != nil && cfg.Database.Driver == config.DatabaseDriverSQLite {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize task queue")
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing task client")
			}
		}()

		taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditService))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	var retention *scheduler.AuditRetentionScheduler
	if auditService != nil {
		var cleaner scheduler.AuditCleaner = inlineCleanup{service: auditService}
		if taskClient != nil {
			cleaner = taskClient
		}
		retention = scheduler.NewAuditRetentionScheduler(cleaner, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
		if err := retention.Start(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to start audit retention scheduler")
		}
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if retention != nil {
			retention.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if auditService != nil {
			auditService.Wait()
		}
	}

	Serve(router, fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port), cfg, onShutdown)
}

// Seed creates the schema and the identity seed data, then exits.
func Seed(cfg *config.Config) error {
	db, err := database.NewDatabase(cfg.Database, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	log.Info().
		Str("admin", database.AdminEmail).
		Str("user", database.UserEmail).
		Msg("Seed data in place")
	return db.Close()
}

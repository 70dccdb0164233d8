package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookstore/internal/apiclient"
	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/ui"
	"github.com/mrlokans/bookstore/internal/ui/authstate"
	"github.com/mrlokans/bookstore/internal/ui/services"
	"github.com/mrlokans/bookstore/internal/ui/storage"
)

// csrfKey decodes the configured session secret. A value that is not hex
// is used as raw bytes; an empty one is replaced by a random key.
func csrfKey(cfg config.UI) []byte {
	if cfg.SessionSecret != "" {
		key, err := hex.DecodeString(cfg.SessionSecret)
		if err != nil {
			key = []byte(cfg.SessionSecret)
		}
		return key
	}

	secret, err := auth.GenerateSecret()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate CSRF secret")
	}
	key, _ := hex.DecodeString(secret)
	log.Warn().Msg("Generated session secret (set UI_SESSION_SECRET to persist)")
	return key
}

func newAPIClient(cfg config.UI) (*apiclient.Client, error) {
	return apiclient.NewClient(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithRetries(cfg.APIRetries, cfg.APIRetryDelay),
	)
}

// RunUI starts the browser-facing host in front of the API.
func RunUI(cfg *config.Config, version string) {
	log.Info().Str("version", version).Str("api", cfg.UI.APIBaseURL).Msg("Starting Bookstore UI")

	client, err := newAPIClient(cfg.UI)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid API base URL")
	}

	sessionDB, err := storage.OpenSessionDB(cfg.UI.SessionDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open session database")
	}
	defer func() {
		if err := sessionDB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing session database")
		}
	}()

	sessions := storage.NewSessionStorage(sessionDB, cfg.UI)
	provider := authstate.NewProvider(sessions)
	provider.Subscribe(func(_ context.Context, state authstate.State) {
		log.Debug().Bool("authenticated", state.Authenticated).Str("user_id", state.UserID).Msg("Authentication state changed")
	})

	router := ui.NewRouter(ui.Config{
		Sessions:      sessions,
		CSRFKey:       csrfKey(cfg.UI),
		SecureCookies: cfg.UI.SecureCookies,
		State:         provider,
		Auth:          services.NewAuthenticationService(client, sessions, provider),
		Authors:       services.NewAuthorService(client, sessions),
		Books:         services.NewBookService(client, sessions),
	})

	Serve(router, fmt.Sprintf("%s:%d", cfg.UI.Host, cfg.UI.Port), cfg, nil)
}

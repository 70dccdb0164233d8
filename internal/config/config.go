package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"
	DatabaseDriverPostgres DatabaseDriver = "postgres"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Audit
		Tasks
		Log
		UI
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   DatabaseDriver
		Path     string // sqlite file path
		DSN      string // postgres connection string
		LogLevel string // gorm logger level: silent, error, warn, info
	}
	Auth struct {
		JWTSecret     string
		JWTIssuer     string
		JWTAudience   string
		TokenLifetime time.Duration
		BcryptCost    int

		// Rate limiting configuration
		MaxLoginAttempts int           // Max failed attempts before lockout (default: 5)
		RateLimitWindow  time.Duration // Time window for counting attempts (default: 15m)
		LockoutDuration  time.Duration // How long to lock out (default: 30m)
	}
	Audit struct {
		Enabled         bool
		RetentionDays   int    // Days to keep audit events (default: 30)
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Log struct {
		Level  string // debug, info, warn, error
		Pretty bool   // console writer instead of JSON
	}
	UI struct {
		Port            int32
		Host            string
		APIBaseURL      string
		APITimeout      time.Duration
		APIRetries      int           // Extra attempts for reads on 429/5xx
		APIRetryDelay   time.Duration // First backoff, doubled per attempt
		SessionDBPath   string
		SessionLifetime time.Duration
		SessionSecret   string // CSRF key; hex or raw bytes, generated when empty
		SecureCookies   bool   // Set to false for local dev without HTTPS
	}
)

func NewConfig() *Config {
	// A missing .env file is fine, the environment may be set elsewhere.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("database_driver", string(DatabaseDriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")

	// Auth defaults
	v.SetDefault("auth_jwt_secret", "") // Auto-generated if empty
	v.SetDefault("auth_jwt_issuer", DefaultJWTIssuer)
	v.SetDefault("auth_jwt_audience", DefaultJWTAudience)
	v.SetDefault("auth_token_lifetime", "8h")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")

	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")

	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)

	// UI host defaults
	v.SetDefault("ui_port", 8189)
	v.SetDefault("ui_host", "0.0.0.0")
	v.SetDefault("ui_api_base_url", "http://localhost:8188")
	v.SetDefault("ui_api_timeout", "30s")
	v.SetDefault("ui_api_retries", 2)
	v.SetDefault("ui_api_retry_delay", "500ms")
	v.SetDefault("ui_session_db_path", DefaultSessionDatabasePath)
	v.SetDefault("ui_session_lifetime", "8h")
	v.SetDefault("ui_session_secret", "")
	v.SetDefault("ui_secure_cookies", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   DatabaseDriver(v.GetString("DATABASE_DRIVER")),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Auth: Auth{
			JWTSecret:        v.GetString("AUTH_JWT_SECRET"),
			JWTIssuer:        v.GetString("AUTH_JWT_ISSUER"),
			JWTAudience:      v.GetString("AUTH_JWT_AUDIENCE"),
			TokenLifetime:    v.GetDuration("AUTH_TOKEN_LIFETIME"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Audit: Audit{
			Enabled:         v.GetBool("AUDIT_ENABLED"),
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
		UI: UI{
			Port:            v.GetInt32("UI_PORT"),
			Host:            v.GetString("UI_HOST"),
			APIBaseURL:      v.GetString("UI_API_BASE_URL"),
			APITimeout:      v.GetDuration("UI_API_TIMEOUT"),
			APIRetries:      v.GetInt("UI_API_RETRIES"),
			APIRetryDelay:   v.GetDuration("UI_API_RETRY_DELAY"),
			SessionDBPath:   v.GetString("UI_SESSION_DB_PATH"),
			SessionLifetime: v.GetDuration("UI_SESSION_LIFETIME"),
			SessionSecret:   v.GetString("UI_SESSION_SECRET"),
			SecureCookies:   v.GetBool("UI_SECURE_COOKIES"),
		},
	}
}

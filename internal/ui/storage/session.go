package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mrlokans/bookstore/internal/config"
)

const sessionsSchema = `CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	expiry REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`

// OpenSessionDB opens (and creates if needed) the sqlite file holding sessions.
func OpenSessionDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if _, err := db.Exec(sessionsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}
	return db, nil
}

// SessionStorage keeps each browser's items in its scs session.
type SessionStorage struct {
	*scs.SessionManager
}

// NewSessionStorage creates a session-backed store over sqlDB.
func NewSessionStorage(sqlDB *sql.DB, cfg config.UI) *SessionStorage {
	sm := scs.New()

	// Configure session store (SQLite)
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = cfg.SessionLifetime
	if sm.Lifetime <= 0 {
		sm.Lifetime = 24 * time.Hour
	}
	sm.IdleTimeout = sm.Lifetime / 2

	// Configure cookie security
	sm.Cookie.Name = "bookstore_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionStorage{SessionManager: sm}
}

// The ctx passed to the item methods must come from a request that went
// through SessionLoadSave.

func (s *SessionStorage) GetItem(ctx context.Context, key string) (string, error) {
	return s.GetString(ctx, key), nil
}

func (s *SessionStorage) SetItem(ctx context.Context, key, value string) error {
	s.Put(ctx, key, value)
	return nil
}

func (s *SessionStorage) RemoveItem(ctx context.Context, key string) error {
	s.Remove(ctx, key)
	return nil
}

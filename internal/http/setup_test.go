package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/authors"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/users"
	"github.com/mrlokans/bookstore/internal/entities"
)

// recordingRecorder keeps audited events in memory.
type recordingRecorder struct {
	mu        sync.Mutex
	mutations []audit.Mutation
	logins    []bool
}

func (r *recordingRecorder) LogMutation(m audit.Mutation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations = append(r.mutations, m)
}

func (r *recordingRecorder) LogAuth(_, _, _, _ string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins = append(r.logins, success)
}

func (r *recordingRecorder) Mutations() []audit.Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Mutation(nil), r.mutations...)
}

type testEnv struct {
	router     *gin.Engine
	db         *database.Database
	books      *books.Repository
	authors    *authors.Repository
	recorder   *recordingRecorder
	adminToken string
	userToken  string
}

func newTestEnv(t *testing.T, limiter *auth.RateLimiter) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(config.Database{
		Driver:   config.DatabaseDriverSQLite,
		Path:     filepath.Join(t.TempDir(), "api.db"),
		LogLevel: "silent",
	}, bcrypt.MinCost)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	usersRepo := users.NewRepository(db.DB)
	tokens := auth.NewTokenManager("test-secret", "BookStoreAPI", "BookStoreAPIClient", time.Hour)
	service := auth.NewService(usersRepo, tokens, limiter, config.Auth{BcryptCost: bcrypt.MinCost})

	env := &testEnv{
		db:       db,
		books:    books.NewRepository(db.DB),
		authors:  authors.NewRepository(db.DB),
		recorder: &recordingRecorder{},
	}

	env.router = NewRouter(RouterConfig{
		Books:          env.books,
		Authors:        env.authors,
		Pinger:         db,
		AuthService:    service,
		AuthMiddleware: auth.NewMiddleware(tokens),
		Recorder:       env.recorder,
		Version:        "test",
	})

	env.adminToken = issueToken(t, usersRepo, tokens, database.AdminEmail)
	env.userToken = issueToken(t, usersRepo, tokens, database.UserEmail)
	return env
}

func issueToken(t *testing.T, repo *users.Repository, tokens *auth.TokenManager, email string) string {
	t.Helper()
	user, err := repo.GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	token, _, err := tokens.Issue(user)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, e.router, method, path, body, token)
}

func serve(t *testing.T, router http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedAuthor(t *testing.T, first, last string) *entities.Author {
	t.Helper()
	author := &entities.Author{FirstName: first, LastName: last}
	require.NoError(t, e.authors.CreateAuthor(context.Background(), author))
	return author
}

func (e *testEnv) seedBook(t *testing.T, authorID uint, title, isbn string) *entities.Book {
	t.Helper()
	book := &entities.Book{
		Title:    title,
		ISBN:     isbn,
		Price:    decimal.RequireFromString("10.00"),
		AuthorID: authorID,
	}
	require.NoError(t, e.books.CreateBook(context.Background(), book))
	return book
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

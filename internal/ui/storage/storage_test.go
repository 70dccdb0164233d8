package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstore/internal/config"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	v, err := s.GetItem(ctx, "accessToken")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.SetItem(ctx, "accessToken", "abc"))
	v, _ = s.GetItem(ctx, "accessToken")
	assert.Equal(t, "abc", v)

	require.NoError(t, s.RemoveItem(ctx, "accessToken"))
	v, _ = s.GetItem(ctx, "accessToken")
	assert.Empty(t, v)
}

func TestSessionStorage_PersistsAcrossRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := OpenSessionDB(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewSessionStorage(db, config.UI{SessionLifetime: time.Hour})
	var _ LocalStorage = store

	router := gin.New()
	router.Use(store.SessionLoadSave())
	router.POST("/set", func(c *gin.Context) {
		require.NoError(t, store.SetItem(c.Request.Context(), "accessToken", c.Query("v")))
		c.Status(http.StatusNoContent)
	})
	router.GET("/get", func(c *gin.Context) {
		v, _ := store.GetItem(c.Request.Context(), "accessToken")
		c.String(http.StatusOK, v)
	})
	router.POST("/clear", func(c *gin.Context) {
		require.NoError(t, store.RemoveItem(c.Request.Context(), "accessToken"))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/set?v=tok-1", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "bookstore_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	get := func(withCookie bool) string {
		req := httptest.NewRequest(http.MethodGet, "/get", nil)
		if withCookie {
			req.AddCookie(cookies[0])
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Body.String()
	}

	assert.Equal(t, "tok-1", get(true))
	assert.Empty(t, get(false), "another browser sees nothing")

	req := httptest.NewRequest(http.MethodPost, "/clear", nil)
	req.AddCookie(cookies[0])
	router.ServeHTTP(httptest.NewRecorder(), req)
	assert.Empty(t, get(true))
}

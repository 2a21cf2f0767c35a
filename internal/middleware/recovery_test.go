package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-frontend/internal/backend"
	"gym-frontend/internal/config"
	"gym-frontend/internal/session"
)

func TestPanicRecovery(t *testing.T) {
	handler := PanicRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("template exploded")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/dashboard", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestPanicRecoveryPassesThrough(t *testing.T) {
	handler := PanicRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRequireOwnerRedirectsAnonymous(t *testing.T) {
	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.CookieName = "gym_session"
	cfg.Session.Issuer = "gym-frontend"
	sessions := session.NewManager(session.NewMemoryStore(), cfg)
	guard := NewSessionGuard(sessions)

	reached := false
	handler := guard.RequireOwner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/dashboard", nil))

	assert.False(t, reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireOwnerInjectsContext(t *testing.T) {
	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.CookieName = "gym_session"
	cfg.Session.Issuer = "gym-frontend"
	sessions := session.NewManager(session.NewMemoryStore(), cfg)
	guard := NewSessionGuard(sessions)

	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Begin(context.Background(), rec, &backend.Owner{ID: "gym-1"}))

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "gym_session" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	handler := guard.RequireOwner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, ok := OwnerFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "gym-1", owner.ID)

		id, ok := SessionIDFromContext(r.Context())
		assert.True(t, ok)
		assert.NotEmpty(t, id)
	}))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(cookie)
	out := httptest.NewRecorder()
	handler.ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)
}

package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gym-frontend/internal/backend"
	"gym-frontend/internal/config"
)

// Claims is the cookie token payload. It carries only identifiers; the
// owner profile itself lives in the Store.
type Claims struct {
	SessionID string `json:"session_id"`
	GymID     string `json:"gym_id"`
	jwt.RegisteredClaims
}

// Manager issues and resolves the session cookie.
type Manager struct {
	store      Store
	secret     string
	issuer     string
	cookieName string
}

func NewManager(store Store, cfg *config.Config) *Manager {
	return &Manager{
		store:      store,
		secret:     cfg.Session.Secret,
		issuer:     cfg.Session.Issuer,
		cookieName: cfg.Session.CookieName,
	}
}

// Begin creates a session for the owner and sets the cookie. Any
// previous session cookie is replaced; the old server-side record is
// left to be overwritten or cleared on its own logout.
func (m *Manager) Begin(ctx context.Context, w http.ResponseWriter, owner *backend.Owner) error {
	id := uuid.NewString()
	if err := m.store.Save(ctx, id, owner); err != nil {
		return err
	}

	now := time.Now()
	claims := &Claims{
		SessionID: id,
		GymID:     owner.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Current resolves the request's session cookie to the stored owner.
// Returns ErrNotFound for missing, invalid or logged-out sessions.
func (m *Manager) Current(r *http.Request) (*backend.Owner, string, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, "", ErrNotFound
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, "", ErrNotFound
	}

	owner, err := m.store.Load(r.Context(), claims.SessionID)
	if err != nil {
		return nil, "", err
	}
	return owner, claims.SessionID, nil
}

// Update rewrites the stored owner for an existing session, used after
// profile changes so the dashboard shows fresh data without re-login.
func (m *Manager) Update(ctx context.Context, sessionID string, owner *backend.Owner) error {
	return m.store.Save(ctx, sessionID, owner)
}

// End clears the server-side session and expires the cookie. Reports
// whether a live session was actually cleared, so callers can skip
// bookkeeping on logouts that had no session to begin with.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) bool {
	cleared := false
	if _, id, err := m.Current(r); err == nil {
		m.store.Clear(ctx, id)
		cleared = true
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return cleared
}

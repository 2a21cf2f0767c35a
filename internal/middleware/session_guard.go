package middleware

import (
	"context"
	"net/http"

	"gym-frontend/internal/backend"
	"gym-frontend/internal/session"
)

type contextKey string

const (
	OwnerKey     contextKey = "owner"
	SessionIDKey contextKey = "session_id"
)

// SessionGuard protects operator routes. Requests without a resolvable
// session are bounced to the landing page rather than given an error.
type SessionGuard struct {
	sessions *session.Manager
}

func NewSessionGuard(sessions *session.Manager) *SessionGuard {
	return &SessionGuard{sessions: sessions}
}

func (g *SessionGuard) RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, sessionID, err := g.sessions.Current(r)
		if err != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), OwnerKey, owner)
		ctx = context.WithValue(ctx, SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OwnerFromContext returns the logged-in owner placed by RequireOwner.
func OwnerFromContext(ctx context.Context) (*backend.Owner, bool) {
	owner, ok := ctx.Value(OwnerKey).(*backend.Owner)
	return owner, ok
}

// SessionIDFromContext returns the session ID placed by RequireOwner.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok
}

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-frontend/internal/backend"
	"gym-frontend/internal/config"
	"gym-frontend/internal/handlers"
	"gym-frontend/internal/health"
	"gym-frontend/internal/middleware"
	"gym-frontend/internal/monitoring"
	"gym-frontend/internal/session"
)

// fakeBackend imitates the gym backend's JSON surface for router tests.
func fakeBackend(t *testing.T) *httptest.Server {
	owner := backend.Owner{
		ID:         "gym-1",
		Name:       "Ravi",
		Phone:      "9876543210",
		GymName:    "Iron Temple",
		MonthlyFee: 1500,
		QRCode:     "cXI=",
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/gym-owner/login":
			var req backend.LoginRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Password != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid phone number or password"})
				return
			}
			json.NewEncoder(w).Encode(owner)
		case r.URL.Path == "/api/gym-owner/gym-1":
			json.NewEncoder(w).Encode(owner)
		case r.URL.Path == "/api/gym/gym-1/members":
			json.NewEncoder(w).Encode([]backend.Member{
				{ID: "m1", Name: "Asha Verma", FeeStatus: "paid", CurrentMonthFee: 1500, IsActive: true},
			})
		case r.URL.Path == "/api/member/register":
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/":
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Not found"})
		}
	}))
}

func newTestApp(t *testing.T, backendURL string) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.CookieName = "gym_session"
	cfg.Session.Issuer = "gym-frontend"

	client := backend.NewClient(backendURL, 5*time.Second)
	store := session.NewMemoryStore()
	sessions := session.NewManager(store, cfg)
	guard := middleware.NewSessionGuard(sessions)

	pageHandler := handlers.NewPageHandler()
	authHandler := handlers.NewAuthHandler(client, sessions)
	dashboardHandler := handlers.NewDashboardHandler(client, sessions, pageHandler.Templates())
	memberHandler := handlers.NewMemberHandler(client, pageHandler.Templates())
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(client, store))
	opsHandler := handlers.NewOpsHandler(monitoring.NewCollector(client))

	return NewRouter(pageHandler, authHandler, dashboardHandler, memberHandler, healthHandler, opsHandler, guard)
}

func postForm(handler http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func getPath(handler http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestDashboardRequiresSession(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	app := newTestApp(t, srv.URL)

	rec := getPath(app, "/dashboard")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLoginThenDashboard(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	app := newTestApp(t, srv.URL)

	rec := postForm(app, "/login", url.Values{
		"phone":    {"9876543210"},
		"password": {"secret"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	cookie := findCookie(rec, "gym_session")
	require.NotNil(t, cookie)

	dash := getPath(app, "/dashboard", cookie)
	assert.Equal(t, http.StatusOK, dash.Code)
	assert.Contains(t, dash.Body.String(), "Iron Temple")
	assert.Contains(t, dash.Body.String(), "Asha Verma")
}

func TestFailedLoginKeepsExistingSession(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	app := newTestApp(t, srv.URL)

	good := postForm(app, "/login", url.Values{"phone": {"9876543210"}, "password": {"secret"}})
	cookie := findCookie(good, "gym_session")
	require.NotNil(t, cookie)

	bad := postForm(app, "/login", url.Values{"phone": {"9876543210"}, "password": {"wrong"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, bad.Code)
	assert.Contains(t, bad.Header().Get("Location"), "/login?error=")
	assert.Contains(t, bad.Header().Get("Location"), "Invalid")
	assert.Nil(t, findCookie(bad, "gym_session"))

	// Original session still valid.
	dash := getPath(app, "/dashboard", cookie)
	assert.Equal(t, http.StatusOK, dash.Code)
}

func TestLogoutEndsSession(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	app := newTestApp(t, srv.URL)

	login := postForm(app, "/login", url.Values{"phone": {"9876543210"}, "password": {"secret"}})
	cookie := findCookie(login, "gym_session")
	require.NotNil(t, cookie)

	out := postForm(app, "/logout", url.Values{}, cookie)
	assert.Equal(t, http.StatusSeeOther, out.Code)
	assert.Equal(t, "/", out.Header().Get("Location"))

	cleared := findCookie(out, "gym_session")
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)

	// The stale cookie no longer opens the dashboard.
	dash := getPath(app, "/dashboard", cookie)
	assert.Equal(t, http.StatusSeeOther, dash.Code)
	assert.Equal(t, "/", dash.Header().Get("Location"))
}

func TestPublicMemberRegistration(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	app := newTestApp(t, srv.URL)

	page := getPath(app, "/register-member/gym-1")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Join Iron Temple")

	submit := postForm(app, "/register-member/gym-1", url.Values{
		"name":  {"New Member"},
		"phone": {"9000000009"},
	})
	require.Equal(t, http.StatusSeeOther, submit.Code)
	assert.Equal(t, "/register-member/gym-1?ok=registered", submit.Header().Get("Location"))

	done := getPath(app, "/register-member/gym-1?ok=registered")
	assert.Equal(t, http.StatusOK, done.Code)
	assert.Contains(t, done.Body.String(), "Welcome to Iron Temple")
}

func TestPublicPageUnknownGym(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	app := newTestApp(t, srv.URL)

	rec := getPath(app, "/register-member/nope")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gym Not Found")
}

func TestHealthEndpoints(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	app := newTestApp(t, srv.URL)

	live := getPath(app, "/health")
	assert.Equal(t, http.StatusOK, live.Code)
	assert.JSONEq(t, `{"status":"ok"}`, live.Body.String())

	ready := getPath(app, "/health/ready")
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), `"healthy"`)
}

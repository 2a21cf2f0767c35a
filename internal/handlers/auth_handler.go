package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"gym-frontend/internal/backend"
	"gym-frontend/internal/metrics"
	"gym-frontend/internal/money"
	"gym-frontend/internal/session"
)

type AuthHandler struct {
	client   *backend.Client
	sessions *session.Manager
}

func NewAuthHandler(client *backend.Client, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{client: client, sessions: sessions}
}

// Register handles the owner signup form. On success the owner is
// logged in immediately and lands on the dashboard.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()

	name := strings.TrimSpace(r.FormValue("name"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	password := r.FormValue("password")
	gymName := strings.TrimSpace(r.FormValue("gym_name"))
	address := strings.TrimSpace(r.FormValue("address"))

	if name == "" || phone == "" || password == "" || gymName == "" {
		redirectError(w, r, "/register", "All fields except address are required.")
		return
	}

	fee, err := money.ParseRupees(r.FormValue("monthly_fee"))
	if err != nil || fee <= 0 {
		redirectError(w, r, "/register", "Enter a valid monthly fee.")
		return
	}

	owner, err := h.client.RegisterOwner(r.Context(), backend.RegisterOwnerRequest{
		Name:       name,
		Phone:      phone,
		Password:   password,
		GymName:    gymName,
		Address:    address,
		MonthlyFee: fee.Float(),
	})
	if err != nil {
		log.Printf("[Auth] owner registration failed: %v", err)
		redirectError(w, r, "/register", backend.Detail(err))
		return
	}

	if err := h.sessions.Begin(r.Context(), w, owner); err != nil {
		log.Printf("[Auth] session begin failed: %v", err)
		redirectError(w, r, "/login", "Account created, please log in.")
		return
	}

	metrics.ActiveSessions.Inc()
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Login authenticates against the backend. A failed attempt never
// disturbs an existing session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()

	phone := strings.TrimSpace(r.FormValue("phone"))
	password := r.FormValue("password")
	if phone == "" || password == "" {
		redirectError(w, r, "/login", "Phone and password are required.")
		return
	}

	owner, err := h.client.LoginOwner(r.Context(), backend.LoginRequest{
		Phone:    phone,
		Password: password,
	})
	if err != nil {
		redirectError(w, r, "/login", backend.Detail(err))
		return
	}

	if err := h.sessions.Begin(r.Context(), w, owner); err != nil {
		log.Printf("[Auth] session begin failed: %v", err)
		redirectError(w, r, "/login", "Could not start your session. Please try again.")
		return
	}

	metrics.ActiveSessions.Inc()
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout ends the session and returns to the landing page. The gauge
// only moves when a live session was cleared, so stray logout posts
// cannot drive it negative.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.sessions.End(r.Context(), w, r) {
		metrics.ActiveSessions.Dec()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// redirectError sends the browser back to a form page with the message
// in the query string, where MakeFlash picks it up.
func redirectError(w http.ResponseWriter, r *http.Request, path, msg string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

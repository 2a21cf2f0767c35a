package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gym-frontend/internal/handlers"
	"gym-frontend/internal/middleware"
	"gym-frontend/static"
)

func NewRouter(
	pageHandler *handlers.PageHandler,
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
	memberHandler *handlers.MemberHandler,
	healthHandler *handlers.HealthHandler,
	opsHandler *handlers.OpsHandler,
	guard *middleware.SessionGuard,
) *mux.Router {
	r := mux.NewRouter()

	// Serve embedded static files
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static.FS))))

	// Public HTML pages
	r.HandleFunc("/", pageHandler.HomePage).Methods("GET")
	r.HandleFunc("/login", pageHandler.LoginPage).Methods("GET")
	r.HandleFunc("/register", pageHandler.RegisterPage).Methods("GET")

	// Authentication form submissions
	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	// Public QR landing pages (no session; gym identified by URL)
	r.HandleFunc("/register-member/{gym_id}", memberHandler.RegisterMemberPage).Methods("GET")
	r.HandleFunc("/register-member/{gym_id}", memberHandler.RegisterMemberSubmit).Methods("POST")
	r.HandleFunc("/verify-cash-payment/{gym_id}", memberHandler.VerifyCashPage).Methods("GET")
	r.HandleFunc("/verify-cash-payment/{gym_id}", memberHandler.VerifyCashSubmit).Methods("POST")

	// Operator dashboard (session required)
	dashboard := r.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(guard.RequireOwner)
	dashboard.HandleFunc("", dashboardHandler.Dashboard).Methods("GET")
	dashboard.HandleFunc("/members/{member_id}/payment", dashboardHandler.MarkPaid).Methods("POST")
	dashboard.HandleFunc("/members/{member_id}/toggle-active", dashboardHandler.ToggleActive).Methods("POST")
	dashboard.HandleFunc("/members/{member_id}/delete", dashboardHandler.DeleteMember).Methods("POST")
	dashboard.HandleFunc("/members/{member_id}/notify", dashboardHandler.SendNotification).Methods("POST")
	dashboard.HandleFunc("/members/{member_id}/payment-session", dashboardHandler.GeneratePaymentSession).Methods("POST")
	dashboard.HandleFunc("/send-reminders", dashboardHandler.SendBulkReminders).Methods("POST")
	dashboard.HandleFunc("/whatsapp-config", dashboardHandler.UpdateWhatsAppConfig).Methods("POST")

	// Health and ops endpoints
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/ops/status", opsHandler.Status).Methods("GET")

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}

package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"gym-frontend/internal/backend"
	"gym-frontend/internal/config"
	"gym-frontend/internal/handlers"
	"gym-frontend/internal/health"
	h "gym-frontend/internal/http"
	"gym-frontend/internal/middleware"
	"gym-frontend/internal/monitoring"
	"gym-frontend/internal/session"
)

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Backend API client
	client := backend.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)

	// Session store: Redis when reachable, in-memory otherwise
	var store session.Store
	if redisStore, err := session.NewRedisStore(); err != nil {
		log.Printf("[Redis] Unavailable: %v (sessions will not survive restarts)", err)
		store = session.NewMemoryStore()
	} else {
		log.Println("[Redis] Session store connected successfully")
		store = redisStore
	}

	sessions := session.NewManager(store, cfg)
	guard := middleware.NewSessionGuard(sessions)

	// Health checker and ops stats
	healthChecker := health.NewHealthChecker(client, store)
	collector := monitoring.NewCollector(client)

	// Initialize handlers
	pageHandler := handlers.NewPageHandler()
	authHandler := handlers.NewAuthHandler(client, sessions)
	dashboardHandler := handlers.NewDashboardHandler(client, sessions, pageHandler.Templates())
	memberHandler := handlers.NewMemberHandler(client, pageHandler.Templates())
	healthHandler := handlers.NewHealthHandler(healthChecker)
	opsHandler := handlers.NewOpsHandler(collector)

	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		pageHandler,
		authHandler,
		dashboardHandler,
		memberHandler,
		healthHandler,
		opsHandler,
		guard,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s (backend: %s)", addr, cfg.Backend.BaseURL)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

package health

import (
	"context"
	"time"

	"gym-frontend/internal/backend"
	"gym-frontend/internal/session"
)

type HealthChecker struct {
	client *backend.Client
	store  session.Store
}

type HealthStatus struct {
	Status   string        `json:"status"`
	Backend  BackendHealth `json:"backend"`
	Sessions SessionHealth `json:"sessions"`
}

type BackendHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type SessionHealth struct {
	Status string `json:"status"`
}

func NewHealthChecker(client *backend.Client, store session.Store) *HealthChecker {
	return &HealthChecker{client: client, store: store}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	backendHealth := h.checkBackend()
	sessionHealth := h.checkSessions()

	status := "healthy"
	if backendHealth.Status != "healthy" || sessionHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Backend:  backendHealth,
		Sessions: sessionHealth,
	}
}

func (h *HealthChecker) checkBackend() BackendHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.client.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return BackendHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return BackendHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func (h *HealthChecker) checkSessions() SessionHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// A missing probe key means the store answered, which is what we
	// care about here.
	_, err := h.store.Load(ctx, "health-probe")
	if err != nil && err != session.ErrNotFound {
		return SessionHealth{Status: "unhealthy"}
	}
	return SessionHealth{Status: "healthy"}
}

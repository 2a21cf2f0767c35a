package handlers

import (
	"net/http"

	"gym-frontend/internal/monitoring"
	"gym-frontend/pkg/utils"
)

type OpsHandler struct {
	collector *monitoring.Collector
}

func NewOpsHandler(collector *monitoring.Collector) *OpsHandler {
	return &OpsHandler{collector: collector}
}

// Status returns process and host stats for the ops dashboard.
func (h *OpsHandler) Status(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.collector.Collect())
}

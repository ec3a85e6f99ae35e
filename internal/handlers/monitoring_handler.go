package handlers

import (
	"encoding/json"
	"net/http"

	"labtrack-backend/internal/monitoring"
)

type MonitoringHandler struct{}

func NewMonitoringHandler() *MonitoringHandler {
	return &MonitoringHandler{}
}

// SystemStats returns a host resource snapshot for the lab-admin page.
func (h *MonitoringHandler) SystemStats(w http.ResponseWriter, r *http.Request) {
	stats := monitoring.CollectSystemStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

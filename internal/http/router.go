package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"labtrack-backend/internal/handlers"
)

func NewRouter(
	sessionHandler *handlers.SessionHandler,
	healthHandler *handlers.HealthHandler,
	monitoringHandler *handlers.MonitoringHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Kiosk and dashboard assets
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Session API
	r.HandleFunc("/api/login", sessionHandler.Login).Methods("POST")
	r.HandleFunc("/api/logout", sessionHandler.Logout).Methods("POST")
	r.HandleFunc("/api/force_logout", sessionHandler.ForceLogout).Methods("POST")
	r.HandleFunc("/api/clear_logs", sessionHandler.ClearLogs).Methods("POST")
	r.HandleFunc("/api/logs", sessionHandler.ListLogs).Methods("GET")
	r.HandleFunc("/api/print_logs", sessionHandler.ListPrintLogs).Methods("GET")

	// Monitoring
	r.HandleFunc("/api/monitoring/system", monitoringHandler.SystemStats).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Health checks
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	return r
}

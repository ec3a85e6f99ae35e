package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"labtrack-backend/internal/cache"
	"labtrack-backend/internal/metrics"
	"labtrack-backend/internal/models"
	"labtrack-backend/internal/services"
	"labtrack-backend/pkg/utils"
)

type SessionHandler struct {
	Service *services.SessionService
}

func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{Service: service}
}

// Login starts a session for a student at a PC.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Missing Student ID or PC Number")
		return
	}

	_, err := h.Service.StartSession(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			utils.RespondError(w, http.StatusBadRequest, "Missing Student ID or PC Number")
		case errors.Is(err, services.ErrPCInUse):
			utils.RespondError(w, http.StatusConflict, fmt.Sprintf("PC %s is already in use!", req.PCNumber))
		default:
			log.Printf("[Sessions] login failed: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to start session")
		}
		return
	}

	metrics.SessionsStarted.Inc()
	cache.InvalidateSessionCaches(r.Context())

	utils.JSON(w, http.StatusOK, map[string]string{
		"message": "Session started successfully",
		"status":  "success",
	})
}

// Logout ends the session the student started at a PC.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req models.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Missing info")
		return
	}

	if err := h.Service.EndSession(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			utils.RespondError(w, http.StatusBadRequest, "Missing info")
		case errors.Is(err, services.ErrNoActiveSession):
			utils.RespondError(w, http.StatusNotFound, "No active session found.")
		default:
			log.Printf("[Sessions] logout failed: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to end session")
		}
		return
	}

	metrics.SessionsEnded.WithLabelValues("self").Inc()
	cache.InvalidateSessionCaches(r.Context())

	utils.JSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
		"status":  "success",
	})
}

// ForceLogout ends all open sessions of a student, on a teacher's request.
func (h *SessionHandler) ForceLogout(w http.ResponseWriter, r *http.Request) {
	var req models.ForceLogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Student is not currently active.")
		return
	}

	if err := h.Service.ForceEndSession(r.Context(), req.StudentID); err != nil {
		if errors.Is(err, services.ErrStudentNotActive) {
			utils.RespondError(w, http.StatusBadRequest, "Student is not currently active.")
			return
		}
		log.Printf("[Sessions] force logout failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to end session")
		return
	}

	metrics.SessionsEnded.WithLabelValues("forced").Inc()
	cache.InvalidateSessionCaches(r.Context())

	utils.RespondMessage(w, http.StatusOK, "Session ended successfully.")
}

// ClearLogs hides all visible sessions from the dashboard. Rows stay in the
// table for the print view.
func (h *SessionHandler) ClearLogs(w http.ResponseWriter, r *http.Request) {
	hidden, err := h.Service.ArchiveVisibleSessions(r.Context())
	if err != nil {
		log.Printf("[Sessions] clear logs failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to clear dashboard")
		return
	}

	metrics.SessionsArchived.Add(float64(hidden))
	cache.InvalidateSessionCaches(r.Context())

	utils.RespondMessage(w, http.StatusOK, "Dashboard cleared successfully")
}

// ListLogs returns the dashboard rows: visible sessions, newest first.
func (h *SessionHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	h.listLogs(w, r, cache.DashboardLogsKey, h.Service.ListVisibleSessions)
}

// ListPrintLogs returns every session ever recorded, for the print view.
func (h *SessionHandler) ListPrintLogs(w http.ResponseWriter, r *http.Request) {
	h.listLogs(w, r, cache.PrintLogsKey, h.Service.ListAllSessions)
}

func (h *SessionHandler) listLogs(
	w http.ResponseWriter,
	r *http.Request,
	cacheKey string,
	list func(ctx context.Context) ([]models.SessionView, error),
) {
	// Status depends on wall-clock time, so cached listings carry a short TTL.
	if data, ok := cache.GetCached(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	views, err := list(r.Context())
	if err != nil {
		log.Printf("[Sessions] listing failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve logs")
		return
	}

	data, err := json.Marshal(views)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve logs")
		return
	}

	cache.SetCached(r.Context(), cacheKey, data, cache.ListingTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

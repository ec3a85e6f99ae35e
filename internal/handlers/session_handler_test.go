package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"labtrack-backend/internal/models"
	"labtrack-backend/internal/services"
)

type stubStore struct {
	activeByPC map[string]*models.Session
	sessions   []models.Session
	closeOK    bool
	closedAll  int64
	hidden     int64
	createErr  error
}

func (s *stubStore) FindActiveByPC(ctx context.Context, pcNumber string) (*models.Session, error) {
	return s.activeByPC[pcNumber], nil
}

func (s *stubStore) CreateSession(ctx context.Context, sess *models.Session) error {
	if s.createErr != nil {
		return s.createErr
	}
	sess.ID = len(s.sessions) + 1
	s.sessions = append(s.sessions, *sess)
	return nil
}

func (s *stubStore) CloseSession(ctx context.Context, studentID, pcNumber string) (bool, error) {
	return s.closeOK, nil
}

func (s *stubStore) CloseAllForStudent(ctx context.Context, studentID string) (int64, error) {
	return s.closedAll, nil
}

func (s *stubStore) ListVisible(ctx context.Context) ([]models.Session, error) {
	return s.sessions, nil
}

func (s *stubStore) ListAll(ctx context.Context) ([]models.Session, error) {
	return s.sessions, nil
}

func (s *stubStore) HideVisible(ctx context.Context) (int64, error) {
	return s.hidden, nil
}

func newTestHandler(store *stubStore) *SessionHandler {
	return NewSessionHandler(services.NewSessionService(store, 7200))
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestSessionHandler_Login_Succeeds(t *testing.T) {
	h := newTestHandler(&stubStore{})

	rr := postJSON(t, h.Login, "/api/login", models.LoginRequest{StudentID: "S1", PCNumber: "PC1"})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := decodeMessage(t, rr)
	if body["message"] != "Session started successfully" || body["status"] != "success" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestSessionHandler_Login_MissingFields_Returns400(t *testing.T) {
	h := newTestHandler(&stubStore{})

	rr := postJSON(t, h.Login, "/api/login", models.LoginRequest{StudentID: "S1"})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if body := decodeMessage(t, rr); body["message"] != "Missing Student ID or PC Number" {
		t.Errorf("unexpected message: %q", body["message"])
	}
}

func TestSessionHandler_Login_PCInUse_Returns409(t *testing.T) {
	now := time.Now()
	store := &stubStore{
		activeByPC: map[string]*models.Session{
			"PC1": {ID: 1, StudentID: "S1", PCNumber: "PC1", LoginTime: &now},
		},
	}
	h := newTestHandler(store)

	rr := postJSON(t, h.Login, "/api/login", models.LoginRequest{StudentID: "S2", PCNumber: "PC1"})

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
	if body := decodeMessage(t, rr); body["message"] != "PC PC1 is already in use!" {
		t.Errorf("conflict message must identify the PC, got %q", body["message"])
	}
}

func TestSessionHandler_Logout_Succeeds(t *testing.T) {
	h := newTestHandler(&stubStore{closeOK: true})

	rr := postJSON(t, h.Logout, "/api/logout", models.LogoutRequest{StudentID: "S1", PCNumber: "PC1"})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := decodeMessage(t, rr)
	if body["message"] != "Logged out successfully" || body["status"] != "success" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestSessionHandler_Logout_NoActiveSession_Returns404(t *testing.T) {
	h := newTestHandler(&stubStore{closeOK: false})

	rr := postJSON(t, h.Logout, "/api/logout", models.LogoutRequest{StudentID: "S1", PCNumber: "PC1"})

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if body := decodeMessage(t, rr); body["message"] != "No active session found." {
		t.Errorf("unexpected message: %q", body["message"])
	}
}

func TestSessionHandler_Logout_MissingFields_Returns400(t *testing.T) {
	h := newTestHandler(&stubStore{})

	rr := postJSON(t, h.Logout, "/api/logout", models.LogoutRequest{StudentID: "S1"})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if body := decodeMessage(t, rr); body["message"] != "Missing info" {
		t.Errorf("unexpected message: %q", body["message"])
	}
}

func TestSessionHandler_ForceLogout_Succeeds(t *testing.T) {
	h := newTestHandler(&stubStore{closedAll: 1})

	rr := postJSON(t, h.ForceLogout, "/api/force_logout", models.ForceLogoutRequest{StudentID: "S1"})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := decodeMessage(t, rr); body["message"] != "Session ended successfully." {
		t.Errorf("unexpected message: %q", body["message"])
	}
}

func TestSessionHandler_ForceLogout_NotActive_Returns400(t *testing.T) {
	h := newTestHandler(&stubStore{closedAll: 0})

	rr := postJSON(t, h.ForceLogout, "/api/force_logout", models.ForceLogoutRequest{StudentID: "S1"})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if body := decodeMessage(t, rr); body["message"] != "Student is not currently active." {
		t.Errorf("unexpected message: %q", body["message"])
	}
}

func TestSessionHandler_ClearLogs_Succeeds(t *testing.T) {
	h := newTestHandler(&stubStore{hidden: 5})

	req := httptest.NewRequest(http.MethodPost, "/api/clear_logs", nil)
	rr := httptest.NewRecorder()
	h.ClearLogs(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := decodeMessage(t, rr); body["message"] != "Dashboard cleared successfully" {
		t.Errorf("unexpected message: %q", body["message"])
	}
}

func TestSessionHandler_ListLogs_ReturnsViews(t *testing.T) {
	now := time.Now()
	store := &stubStore{
		sessions: []models.Session{
			{ID: 1, StudentID: "S1", Section: "A", PCNumber: "PC1", Teacher: "Mr. Cruz", LoginTime: &now, Visible: true},
		},
	}
	h := newTestHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	rr := httptest.NewRecorder()
	h.ListLogs(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var views []models.SessionView
	if err := json.NewDecoder(rr.Body).Decode(&views); err != nil {
		t.Fatalf("decode views: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}

	v := views[0]
	if v.ID != 1 || v.StudentID != "S1" || v.PC != "PC1" || v.Teacher != "Mr. Cruz" {
		t.Errorf("unexpected view: %+v", v)
	}
	if v.Status != models.StatusActive {
		t.Errorf("fresh session should be Active, got %q", v.Status)
	}
	if v.TimeOut != "-" {
		t.Errorf("open session should render timeOut as -, got %q", v.TimeOut)
	}
}

func TestSessionHandler_ListLogs_EmptyReturnsJSONArray(t *testing.T) {
	h := newTestHandler(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	rr := httptest.NewRecorder()
	h.ListLogs(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := bytes.TrimSpace(rr.Body.Bytes()); string(got) != "[]" {
		t.Errorf("expected empty JSON array, got %s", got)
	}
}

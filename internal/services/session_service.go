package services

import (
	"context"
	"errors"
	"time"

	"labtrack-backend/internal/models"
	"labtrack-backend/internal/repositories"
	"labtrack-backend/internal/timeutil"
)

// Domain errors mapped to HTTP status codes in the handler layer.
var (
	ErrMissingFields    = errors.New("student id and pc number are required")
	ErrPCInUse          = errors.New("pc already in use")
	ErrNoActiveSession  = errors.New("no active session found")
	ErrStudentNotActive = errors.New("student has no active session")
)

// SessionStore is the persistence surface the service depends on.
type SessionStore interface {
	FindActiveByPC(ctx context.Context, pcNumber string) (*models.Session, error)
	CreateSession(ctx context.Context, s *models.Session) error
	CloseSession(ctx context.Context, studentID, pcNumber string) (bool, error)
	CloseAllForStudent(ctx context.Context, studentID string) (int64, error)
	ListVisible(ctx context.Context) ([]models.Session, error)
	ListAll(ctx context.Context) ([]models.Session, error)
	HideVisible(ctx context.Context) (int64, error)
}

type SessionService struct {
	Repo  SessionStore
	Limit time.Duration

	// now is swappable in tests
	now func() time.Time
}

func NewSessionService(repo SessionStore, limitSeconds int) *SessionService {
	return &SessionService{
		Repo:  repo,
		Limit: time.Duration(limitSeconds) * time.Second,
		now:   timeutil.Now,
	}
}

// StartSession records a student logging in at a PC. The PC must not already
// host an open session.
func (s *SessionService) StartSession(ctx context.Context, req *models.LoginRequest) (*models.Session, error) {
	if req.StudentID == "" || req.PCNumber == "" {
		return nil, ErrMissingFields
	}

	// Friendly pre-check; the partial unique index on open sessions catches
	// the interleaving case at insert time.
	active, err := s.Repo.FindActiveByPC(ctx, req.PCNumber)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrPCInUse
	}

	session := &models.Session{
		StudentID: req.StudentID,
		Section:   req.Section,
		PCNumber:  req.PCNumber,
		Teacher:   req.Teacher,
		Room:      req.Room,
		Visible:   true,
	}

	if err := s.Repo.CreateSession(ctx, session); err != nil {
		if errors.Is(err, repositories.ErrActiveSessionExists) {
			return nil, ErrPCInUse
		}
		return nil, err
	}

	return session, nil
}

// EndSession records the logout for the open session matching a student and
// PC. A repeated logout for the same pair finds no open session.
func (s *SessionService) EndSession(ctx context.Context, req *models.LogoutRequest) error {
	if req.StudentID == "" || req.PCNumber == "" {
		return ErrMissingFields
	}

	closed, err := s.Repo.CloseSession(ctx, req.StudentID, req.PCNumber)
	if err != nil {
		return err
	}
	if !closed {
		return ErrNoActiveSession
	}

	return nil
}

// ForceEndSession closes every open session of a student, regardless of PC.
// Used by teachers to end a session on the student's behalf.
func (s *SessionService) ForceEndSession(ctx context.Context, studentID string) error {
	closed, err := s.Repo.CloseAllForStudent(ctx, studentID)
	if err != nil {
		return err
	}
	if closed == 0 {
		return ErrStudentNotActive
	}

	return nil
}

// ListVisibleSessions returns the dashboard rows: non-archived sessions,
// newest login first, with the display status derived at read time.
func (s *SessionService) ListVisibleSessions(ctx context.Context) ([]models.SessionView, error) {
	sessions, err := s.Repo.ListVisible(ctx)
	if err != nil {
		return nil, err
	}

	return s.buildViews(sessions), nil
}

// ListAllSessions returns every recorded session including archived ones.
// Backs the print view.
func (s *SessionService) ListAllSessions(ctx context.Context) ([]models.SessionView, error) {
	sessions, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return s.buildViews(sessions), nil
}

// ArchiveVisibleSessions hides all currently visible sessions from the
// dashboard without deleting anything. Returns the number of rows hidden.
func (s *SessionService) ArchiveVisibleSessions(ctx context.Context) (int64, error) {
	return s.Repo.HideVisible(ctx)
}

func (s *SessionService) buildViews(sessions []models.Session) []models.SessionView {
	now := s.now()

	views := make([]models.SessionView, 0, len(sessions))
	for _, sess := range sessions {
		views = append(views, s.buildView(sess, now))
	}
	return views
}

// buildView projects a session row into its dashboard shape. A row with a
// broken login_time still renders, with placeholder time fields.
func (s *SessionService) buildView(sess models.Session, now time.Time) models.SessionView {
	view := models.SessionView{
		ID:        sess.ID,
		StudentID: sess.StudentID,
		Section:   sess.Section,
		PC:        sess.PCNumber,
		Teacher:   sess.Teacher,
		TimeIn:    "Error",
		TimeOut:   "-",
		Status:    models.StatusActive,
	}

	if sess.LoginTime != nil {
		view.TimeIn = timeutil.FormatClock(*sess.LoginTime)
		view.Date = timeutil.FormatDate(*sess.LoginTime)
	}

	switch {
	case sess.LogoutTime != nil:
		view.TimeOut = timeutil.FormatClock(*sess.LogoutTime)
		view.Status = models.StatusCompleted
	case sess.LoginTime != nil && now.Sub(*sess.LoginTime) > s.Limit:
		view.Status = models.StatusTimeout
	}

	return view
}

package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"labtrack-backend/internal/models"
)

// ErrActiveSessionExists is returned when an insert loses the race against a
// concurrent login on the same PC (partial unique index on open sessions).
var ErrActiveSessionExists = errors.New("pc already has an active session")

type SessionRepository struct {
	DB *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{DB: db}
}

// FindActiveByPC returns the open session on a PC, or nil if the PC is free.
func (r *SessionRepository) FindActiveByPC(ctx context.Context, pcNumber string) (*models.Session, error) {
	query := `
		SELECT id, student_id, COALESCE(section, ''), pc_number, COALESCE(teacher, ''),
		       COALESCE(room, ''), login_time, logout_time, visible
		FROM sessions
		WHERE pc_number = $1 AND logout_time IS NULL
	`

	var s models.Session
	err := r.DB.QueryRow(ctx, query, pcNumber).Scan(
		&s.ID, &s.StudentID, &s.Section, &s.PCNumber, &s.Teacher,
		&s.Room, &s.LoginTime, &s.LogoutTime, &s.Visible,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &s, nil
}

// CreateSession inserts a new session with login_time set by the database
// clock, and fills in the assigned id.
func (r *SessionRepository) CreateSession(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (student_id, section, pc_number, teacher, room, login_time)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), NOW())
		RETURNING id
	`

	err := r.DB.QueryRow(ctx, query,
		s.StudentID, s.Section, s.PCNumber, s.Teacher, s.Room,
	).Scan(&s.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrActiveSessionExists
		}
		return err
	}

	return nil
}

// CloseSession records the logout time for the open session matching a
// student and PC. Returns false when no such session exists.
func (r *SessionRepository) CloseSession(ctx context.Context, studentID, pcNumber string) (bool, error) {
	query := `
		UPDATE sessions
		SET logout_time = NOW()
		WHERE student_id = $1 AND pc_number = $2 AND logout_time IS NULL
	`

	cmd, err := r.DB.Exec(ctx, query, studentID, pcNumber)
	if err != nil {
		return false, err
	}

	return cmd.RowsAffected() > 0, nil
}

// CloseAllForStudent records the logout time on every open session of a
// student and returns the number of sessions closed. Defined as a bulk
// update: at most one row in practice, but no uniqueness is assumed.
func (r *SessionRepository) CloseAllForStudent(ctx context.Context, studentID string) (int64, error) {
	query := `
		UPDATE sessions
		SET logout_time = NOW()
		WHERE student_id = $1 AND logout_time IS NULL
	`

	cmd, err := r.DB.Exec(ctx, query, studentID)
	if err != nil {
		return 0, err
	}

	return cmd.RowsAffected(), nil
}

// ListVisible returns all non-archived sessions, newest login first.
func (r *SessionRepository) ListVisible(ctx context.Context) ([]models.Session, error) {
	return r.list(ctx, `
		SELECT id, student_id, COALESCE(section, ''), pc_number, COALESCE(teacher, ''),
		       COALESCE(room, ''), login_time, logout_time, visible
		FROM sessions
		WHERE visible = TRUE
		ORDER BY login_time DESC
	`)
}

// ListAll returns every session ever recorded, archived or not, newest login
// first. Used by the print view.
func (r *SessionRepository) ListAll(ctx context.Context) ([]models.Session, error) {
	return r.list(ctx, `
		SELECT id, student_id, COALESCE(section, ''), pc_number, COALESCE(teacher, ''),
		       COALESCE(room, ''), login_time, logout_time, visible
		FROM sessions
		ORDER BY login_time DESC
	`)
}

func (r *SessionRepository) list(ctx context.Context, query string) ([]models.Session, error) {
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(
			&s.ID, &s.StudentID, &s.Section, &s.PCNumber, &s.Teacher,
			&s.Room, &s.LoginTime, &s.LogoutTime, &s.Visible,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// HideVisible archives every visible session and returns how many rows were
// hidden. Calling it again when nothing is visible affects zero rows.
func (r *SessionRepository) HideVisible(ctx context.Context) (int64, error) {
	cmd, err := r.DB.Exec(ctx, `UPDATE sessions SET visible = FALSE WHERE visible = TRUE`)
	if err != nil {
		return 0, err
	}

	return cmd.RowsAffected(), nil
}

package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/homespun/homespun/internal/sessions/domain"
)

const sessionColumns = `id, entity_id, project_id, status, model, mode, created_at, last_activity_at`

// sessionRepository implements domain.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

func newSessionRepository(db *sql.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

var _ domain.SessionRepository = (*sessionRepository)(nil)

func scanSession(scanner interface{ Scan(...any) error }) (*SessionModel, error) {
	var m SessionModel
	err := scanner.Scan(
		&m.ID, &m.EntityID, &m.ProjectID, &m.Status, &m.Model, &m.Mode,
		&m.CreatedAt, &m.LastActivityAt,
	)
	return &m, err
}

// Save inserts the session or replaces the row with the same id.
// created_at is preserved on update.
func (r *sessionRepository) Save(session *domain.Session) error {
	m := toSessionModel(session)
	_, err := r.db.Exec(
		`INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entity_id = excluded.entity_id,
			project_id = excluded.project_id,
			status = excluded.status,
			model = excluded.model,
			mode = excluded.mode,
			last_activity_at = excluded.last_activity_at`,
		m.ID, m.EntityID, m.ProjectID, m.Status, m.Model, m.Mode, m.CreatedAt, m.LastActivityAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// FindByID returns SessionNotFoundError if no matching session exists.
func (r *sessionRepository) FindByID(id string) (*domain.Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	m, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.SessionNotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return m.toDomain(), nil
}

// List returns sessions matching filter, newest activity first.
func (r *sessionRepository) List(filter domain.ListFilter) ([]*domain.Session, error) {
	where, args := filterClause(filter, "project_id", "status")
	limit, args := limitClause(filter, args)
	query := `SELECT ` + sessionColumns + ` FROM sessions` + where + ` ORDER BY last_activity_at DESC, id ASC` + limit

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := []*domain.Session{}
	for rows.Next() {
		m, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}
	return sessions, nil
}

// Delete returns SessionNotFoundError if no matching session exists.
func (r *sessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return &domain.SessionNotFoundError{ID: id}
	}
	return nil
}

package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/homespun/homespun/internal/sessions/domain"
)

const containerColumns = `container_id, container_name, work_dir, project_id, project_name,
	issue_id, issue_title, status, created_at`

type containerRepository struct {
	db *sql.DB
}

func newContainerRepository(db *sql.DB) *containerRepository {
	return &containerRepository{db: db}
}

var _ domain.ContainerRepository = (*containerRepository)(nil)

func scanContainer(scanner interface{ Scan(...any) error }) (*ContainerModel, error) {
	var m ContainerModel
	err := scanner.Scan(
		&m.ContainerID, &m.ContainerName, &m.WorkDir, &m.ProjectID, &m.ProjectName,
		&m.IssueID, &m.IssueTitle, &m.Status, &m.CreatedAt,
	)
	return &m, err
}

func (r *containerRepository) Save(container domain.Container) error {
	m := toContainerModel(container)
	_, err := r.db.Exec(
		`INSERT OR REPLACE INTO containers (`+containerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ContainerID, m.ContainerName, m.WorkDir, m.ProjectID, m.ProjectName,
		m.IssueID, m.IssueTitle, m.Status, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save container: %w", err)
	}
	return nil
}

func (r *containerRepository) FindByID(id string) (domain.Container, error) {
	row := r.db.QueryRow(`SELECT `+containerColumns+` FROM containers WHERE container_id = ?`, id)
	m, err := scanContainer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Container{}, &domain.ContainerNotFoundError{ID: id}
	}
	if err != nil {
		return domain.Container{}, fmt.Errorf("failed to find container: %w", err)
	}
	return m.toDomain(), nil
}

// List returns containers matching filter ordered by creation time, oldest first.
func (r *containerRepository) List(filter domain.ListFilter) ([]domain.Container, error) {
	where, args := filterClause(filter, "project_id", "status")
	limit, args := limitClause(filter, args)
	query := `SELECT ` + containerColumns + ` FROM containers` + where + ` ORDER BY created_at ASC, container_id ASC` + limit

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	containers := []domain.Container{}
	for rows.Next() {
		m, err := scanContainer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan container row: %w", err)
		}
		containers = append(containers, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating container rows: %w", err)
	}
	return containers, nil
}

func (r *containerRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM containers WHERE container_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete container: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return &domain.ContainerNotFoundError{ID: id}
	}
	return nil
}

package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/homespun/homespun/internal/sessions/domain"
)

const entityColumns = `id, type, title, branch, project_id, project_name`

type entityRepository struct {
	db *sql.DB
}

func newEntityRepository(db *sql.DB) *entityRepository {
	return &entityRepository{db: db}
}

var _ domain.EntityRepository = (*entityRepository)(nil)

func scanEntity(scanner interface{ Scan(...any) error }) (*EntityModel, error) {
	var m EntityModel
	err := scanner.Scan(&m.ID, &m.Type, &m.Title, &m.Branch, &m.ProjectID, &m.ProjectName)
	return &m, err
}

func (r *entityRepository) Save(info domain.EntityInfo) error {
	m := toEntityModel(info)
	if m.Type == "" {
		m.Type = string(domain.EntityTypePR)
	}
	_, err := r.db.Exec(
		`INSERT OR REPLACE INTO entities (`+entityColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Type, m.Title, m.Branch, m.ProjectID, m.ProjectName,
	)
	if err != nil {
		return fmt.Errorf("failed to save entity: %w", err)
	}
	return nil
}

func (r *entityRepository) FindByID(id string) (domain.EntityInfo, error) {
	row := r.db.QueryRow(`SELECT `+entityColumns+` FROM entities WHERE id = ?`, id)
	m, err := scanEntity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.EntityInfo{}, &domain.EntityNotFoundError{ID: id}
	}
	if err != nil {
		return domain.EntityInfo{}, fmt.Errorf("failed to find entity: %w", err)
	}
	return m.toDomain(), nil
}

func (r *entityRepository) List(filter domain.ListFilter) ([]domain.EntityInfo, error) {
	where, args := filterClause(filter, "project_id", "")
	limit, args := limitClause(filter, args)
	query := `SELECT ` + entityColumns + ` FROM entities` + where + ` ORDER BY id ASC` + limit

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entities := []domain.EntityInfo{}
	for rows.Next() {
		m, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity row: %w", err)
		}
		entities = append(entities, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entity rows: %w", err)
	}
	return entities, nil
}

package sqlite

import (
	"time"

	"github.com/homespun/homespun/internal/sessions/domain"
)

// SessionModel represents the database row for the sessions table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type SessionModel struct {
	ID             string
	EntityID       string
	ProjectID      *string // nullable
	Status         string
	Model          *string // nullable
	Mode           string
	CreatedAt      int64 // Unix timestamp
	LastActivityAt int64 // Unix timestamp
}

// ContainerModel represents the database row for the containers table.
type ContainerModel struct {
	ContainerID   string
	ContainerName string
	WorkDir       *string // nullable
	ProjectID     *string // nullable
	ProjectName   *string // nullable
	IssueID       *string // nullable
	IssueTitle    *string // nullable
	Status        string
	CreatedAt     int64 // Unix timestamp
}

// EntityModel represents the database row for the entities table.
type EntityModel struct {
	ID          string
	Type        string
	Title       *string // nullable
	Branch      *string // nullable
	ProjectID   *string // nullable
	ProjectName *string // nullable
}

// nullable maps the empty string to NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toSessionModel(s *domain.Session) *SessionModel {
	return &SessionModel{
		ID:             s.ID(),
		EntityID:       s.EntityID(),
		ProjectID:      nullable(s.ProjectID()),
		Status:         s.Status().String(),
		Model:          nullable(s.Model()),
		Mode:           string(s.Mode()),
		CreatedAt:      s.CreatedAt().Unix(),
		LastActivityAt: s.LastActivityAt().Unix(),
	}
}

// toDomain keeps the raw status string so unknown values survive a round trip.
func (m *SessionModel) toDomain() *domain.Session {
	return domain.ReconstituteSession(
		m.ID,
		m.EntityID,
		deref(m.ProjectID),
		domain.Status(m.Status),
		deref(m.Model),
		domain.Mode(m.Mode),
		time.Unix(m.CreatedAt, 0),
		time.Unix(m.LastActivityAt, 0),
	)
}

func toContainerModel(c domain.Container) *ContainerModel {
	return &ContainerModel{
		ContainerID:   c.ContainerID,
		ContainerName: c.ContainerName,
		WorkDir:       nullable(c.WorkDir),
		ProjectID:     nullable(c.ProjectID),
		ProjectName:   nullable(c.ProjectName),
		IssueID:       nullable(c.IssueID),
		IssueTitle:    nullable(c.IssueTitle),
		Status:        c.Status.String(),
		CreatedAt:     c.CreatedAt.Unix(),
	}
}

func (m *ContainerModel) toDomain() domain.Container {
	return domain.Container{
		ContainerID:   m.ContainerID,
		ContainerName: m.ContainerName,
		WorkDir:       deref(m.WorkDir),
		ProjectID:     deref(m.ProjectID),
		ProjectName:   deref(m.ProjectName),
		IssueID:       deref(m.IssueID),
		IssueTitle:    deref(m.IssueTitle),
		Status:        domain.Status(m.Status),
		CreatedAt:     time.Unix(m.CreatedAt, 0),
	}
}

func toEntityModel(e domain.EntityInfo) *EntityModel {
	return &EntityModel{
		ID:          e.ID,
		Type:        string(e.Type),
		Title:       nullable(e.Title),
		Branch:      nullable(e.Branch),
		ProjectID:   nullable(e.ProjectID),
		ProjectName: nullable(e.ProjectName),
	}
}

func (m *EntityModel) toDomain() domain.EntityInfo {
	return domain.EntityInfo{
		ID:          m.ID,
		Type:        domain.ParseEntityType(m.Type),
		Title:       deref(m.Title),
		Branch:      deref(m.Branch),
		ProjectID:   deref(m.ProjectID),
		ProjectName: deref(m.ProjectName),
	}
}

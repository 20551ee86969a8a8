package presentation

import (
	"time"

	"github.com/homespun/homespun/internal/format"
	"github.com/homespun/homespun/internal/grouping"
	"github.com/homespun/homespun/internal/sessions/domain"
	"github.com/homespun/homespun/internal/snapshot"
	"github.com/homespun/homespun/internal/status"
)

// SummaryDTO is the aggregate indicator state.
type SummaryDTO struct {
	Indicator      string        `json:"indicator" yaml:"indicator"`
	Tooltip        string        `json:"tooltip" yaml:"tooltip"`
	Total          int           `json:"total" yaml:"total"`
	NeedsAttention bool          `json:"needs_attention" yaml:"needs_attention"`
	Counts         status.Counts `json:"counts" yaml:"counts"`
}

// SessionDTO is a session with its entity metadata resolved.
type SessionDTO struct {
	ID           string    `json:"id" yaml:"id"`
	EntityID     string    `json:"entity_id" yaml:"entity_id"`
	EntityType   string    `json:"entity_type" yaml:"entity_type"`
	BadgeClass   string    `json:"badge_class" yaml:"badge_class"`
	Title        string    `json:"title" yaml:"title"`
	Branch       string    `json:"branch,omitempty" yaml:"branch,omitempty"`
	ProjectID    string    `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	ProjectName  string    `json:"project_name" yaml:"project_name"`
	Status       string    `json:"status" yaml:"status"`
	StatusLabel  string    `json:"status_label" yaml:"status_label"`
	Priority     int       `json:"priority" yaml:"priority"`
	Model        string    `json:"model,omitempty" yaml:"model,omitempty"`
	ModelName    string    `json:"model_name,omitempty" yaml:"model_name,omitempty"`
	Mode         string    `json:"mode" yaml:"mode"`
	LastActivity time.Time `json:"last_activity" yaml:"last_activity"`
	LastActive   string    `json:"last_active" yaml:"last_active"`
}

type ProjectGroupDTO struct {
	Name     string       `json:"name" yaml:"name"`
	Sessions []SessionDTO `json:"sessions" yaml:"sessions"`
}

type StatusGroupDTO struct {
	Status   string       `json:"status" yaml:"status"`
	Label    string       `json:"label" yaml:"label"`
	Priority int          `json:"priority" yaml:"priority"`
	Sessions []SessionDTO `json:"sessions" yaml:"sessions"`
}

// ContainerDTO is a container row. Uptime is empty when not requested.
type ContainerDTO struct {
	ID          string    `json:"id" yaml:"id"`
	ShortID     string    `json:"short_id" yaml:"short_id"`
	Name        string    `json:"name" yaml:"name"`
	WorkDir     string    `json:"work_dir,omitempty" yaml:"work_dir,omitempty"`
	IssueID     string    `json:"issue_id,omitempty" yaml:"issue_id,omitempty"`
	IssueTitle  string    `json:"issue_title,omitempty" yaml:"issue_title,omitempty"`
	Status      string    `json:"status" yaml:"status"`
	StatusLabel string    `json:"status_label" yaml:"status_label"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Uptime      string    `json:"uptime,omitempty" yaml:"uptime,omitempty"`
}

type ContainerGroupDTO struct {
	Key        string         `json:"key" yaml:"key"`
	Name       string         `json:"name" yaml:"name"`
	Counts     status.Counts  `json:"counts" yaml:"counts"`
	Summary    string         `json:"summary" yaml:"summary"`
	Containers []ContainerDTO `json:"containers" yaml:"containers"`
}

// SnapshotDTO is everything the live view renders in one refresh.
type SnapshotDTO struct {
	GeneratedAt time.Time           `json:"generated_at" yaml:"generated_at"`
	Summary     SummaryDTO          `json:"summary" yaml:"summary"`
	ByProject   []ProjectGroupDTO   `json:"by_project" yaml:"by_project"`
	ByStatus    []StatusGroupDTO    `json:"by_status" yaml:"by_status"`
	Containers  []ContainerGroupDTO `json:"containers" yaml:"containers"`
}

// ImportResultDTO summarises a snapshot import.
type ImportResultDTO struct {
	ImportID        string `json:"import_id" yaml:"import_id"`
	Sessions        int    `json:"sessions" yaml:"sessions"`
	Containers      int    `json:"containers" yaml:"containers"`
	Entities        int    `json:"entities" yaml:"entities"`
	UnknownStatuses int    `json:"unknown_statuses" yaml:"unknown_statuses"`
	GeneratedIDs    int    `json:"generated_ids" yaml:"generated_ids"`
}

func FromImportResult(r snapshot.Result) ImportResultDTO {
	return ImportResultDTO{
		ImportID:        r.ImportID,
		Sessions:        r.Sessions,
		Containers:      r.Containers,
		Entities:        r.Entities,
		UnknownStatuses: r.UnknownStatuses,
		GeneratedIDs:    r.GeneratedIDs,
	}
}

// FromCounts converts classifier counts.
func FromCounts(c status.Counts) SummaryDTO {
	return SummaryDTO{
		Indicator:      c.Indicator().String(),
		Tooltip:        c.Tooltip(),
		Total:          c.Total(),
		NeedsAttention: c.NeedsAttention(),
		Counts:         c,
	}
}

// FromSession converts a session, resolving display fields through lookup.
func FromSession(s *domain.Session, lookup domain.EntityLookup, clock format.Clock) SessionDTO {
	info, _ := lookup.Get(s.EntityID())
	entityType := string(info.Type)
	if entityType == "" {
		entityType = string(domain.EntityTypePR)
	}
	return SessionDTO{
		ID:           s.ID(),
		EntityID:     s.EntityID(),
		EntityType:   entityType,
		BadgeClass:   format.EntityTypeBadgeClass(entityType),
		Title:        grouping.SessionTitle(s, lookup),
		Branch:       info.Branch,
		ProjectID:    s.ProjectID(),
		ProjectName:  grouping.ProjectName(s, lookup),
		Status:       s.Status().String(),
		StatusLabel:  s.Status().Label(),
		Priority:     s.Status().Priority(),
		Model:        s.Model(),
		ModelName:    format.ModelDisplayName(s.Model()),
		Mode:         string(s.Mode()),
		LastActivity: s.LastActivityAt(),
		LastActive:   format.FormatRelativeTime(s.LastActivityAt(), clock),
	}
}

func fromSessions(sessions []*domain.Session, lookup domain.EntityLookup, clock format.Clock) []SessionDTO {
	out := make([]SessionDTO, len(sessions))
	for i, s := range sessions {
		out[i] = FromSession(s, lookup, clock)
	}
	return out
}

func FromProjectGroups(groups []grouping.ProjectGroup, lookup domain.EntityLookup, clock format.Clock) []ProjectGroupDTO {
	out := make([]ProjectGroupDTO, len(groups))
	for i, g := range groups {
		out[i] = ProjectGroupDTO{Name: g.Name, Sessions: fromSessions(g.Sessions, lookup, clock)}
	}
	return out
}

func FromStatusGroups(groups []grouping.StatusGroup, lookup domain.EntityLookup, clock format.Clock) []StatusGroupDTO {
	out := make([]StatusGroupDTO, len(groups))
	for i, g := range groups {
		out[i] = StatusGroupDTO{
			Status:   g.Status.String(),
			Label:    g.Label,
			Priority: g.Status.Priority(),
			Sessions: fromSessions(g.Sessions, lookup, clock),
		}
	}
	return out
}

// FromContainer converts a container. A nil clock leaves Uptime empty.
func FromContainer(c domain.Container, clock format.Clock) ContainerDTO {
	dto := ContainerDTO{
		ID:          c.ContainerID,
		ShortID:     format.FormatContainerID(c.ContainerID),
		Name:        c.ContainerName,
		WorkDir:     c.WorkDir,
		IssueID:     c.IssueID,
		IssueTitle:  c.IssueTitle,
		Status:      c.Status.String(),
		StatusLabel: c.Status.Label(),
		CreatedAt:   c.CreatedAt,
	}
	if clock != nil {
		dto.Uptime = format.ContainerUptime(c, clock)
	}
	return dto
}

// FromContainerGroups converts container groups; see FromContainer for clock.
func FromContainerGroups(groups []grouping.ContainerProjectGroup, clock format.Clock) []ContainerGroupDTO {
	out := make([]ContainerGroupDTO, len(groups))
	for i, g := range groups {
		containers := make([]ContainerDTO, len(g.Containers))
		statuses := make([]domain.Status, len(g.Containers))
		for j, c := range g.Containers {
			containers[j] = FromContainer(c, clock)
			statuses[j] = c.Status
		}
		counts := status.ClassifyStatuses(statuses)
		out[i] = ContainerGroupDTO{
			Key:        g.Key,
			Name:       g.Name,
			Counts:     counts,
			Summary:    counts.Tooltip(),
			Containers: containers,
		}
	}
	return out
}

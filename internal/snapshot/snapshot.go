// Package snapshot loads dashboard state from YAML or JSON files and imports
// it into the store.
package snapshot

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/homespun/homespun/internal/log"
	"github.com/homespun/homespun/internal/sessions/domain"
	"github.com/homespun/homespun/internal/tracing"
)

// File is the on-disk snapshot layout. JSON input is accepted since JSON
// is a subset of YAML.
type File struct {
	Sessions   []SessionRecord   `yaml:"sessions" json:"sessions"`
	Containers []ContainerRecord `yaml:"containers" json:"containers"`
	Entities   []EntityRecord    `yaml:"entities" json:"entities"`
}

// SessionRecord is one session entry. Timestamps are RFC 3339.
type SessionRecord struct {
	ID             string `yaml:"id" json:"id"`
	EntityID       string `yaml:"entity_id" json:"entity_id"`
	ProjectID      string `yaml:"project_id,omitempty" json:"project_id,omitempty"`
	Status         string `yaml:"status" json:"status"`
	Model          string `yaml:"model,omitempty" json:"model,omitempty"`
	Mode           string `yaml:"mode,omitempty" json:"mode,omitempty"`
	CreatedAt      string `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	LastActivityAt string `yaml:"last_activity_at,omitempty" json:"last_activity_at,omitempty"`
}

type ContainerRecord struct {
	ContainerID   string `yaml:"container_id" json:"container_id"`
	ContainerName string `yaml:"container_name" json:"container_name"`
	WorkDir       string `yaml:"work_dir,omitempty" json:"work_dir,omitempty"`
	ProjectID     string `yaml:"project_id,omitempty" json:"project_id,omitempty"`
	ProjectName   string `yaml:"project_name,omitempty" json:"project_name,omitempty"`
	IssueID       string `yaml:"issue_id,omitempty" json:"issue_id,omitempty"`
	IssueTitle    string `yaml:"issue_title,omitempty" json:"issue_title,omitempty"`
	Status        string `yaml:"status" json:"status"`
	CreatedAt     string `yaml:"created_at,omitempty" json:"created_at,omitempty"`
}

type EntityRecord struct {
	ID          string `yaml:"id" json:"id"`
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Branch      string `yaml:"branch,omitempty" json:"branch,omitempty"`
	ProjectID   string `yaml:"project_id,omitempty" json:"project_id,omitempty"`
	ProjectName string `yaml:"project_name,omitempty" json:"project_name,omitempty"`
}

// Load reads and parses the snapshot at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user supplied on purpose
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	snap, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Parse decodes a YAML or JSON snapshot.
func Parse(data []byte) (*File, error) {
	var snap File
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Repositories are the stores an import writes to.
type Repositories struct {
	Sessions   domain.SessionRepository
	Containers domain.ContainerRepository
	Entities   domain.EntityRepository
}

// Options control import behaviour.
type Options struct {
	// Strict rejects the whole snapshot if any status is unknown.
	Strict bool

	// Now stamps records that carry no timestamps. Defaults to time.Now.
	Now func() time.Time

	// NewID generates ids for records that have none. Defaults to uuid.NewString.
	NewID func() string
}

// Result summarises an import.
type Result struct {
	ImportID        string `yaml:"import_id" json:"import_id"`
	Sessions        int    `yaml:"sessions" json:"sessions"`
	Containers      int    `yaml:"containers" json:"containers"`
	Entities        int    `yaml:"entities" json:"entities"`
	UnknownStatuses int    `yaml:"unknown_statuses" json:"unknown_statuses"`
	GeneratedIDs    int    `yaml:"generated_ids" json:"generated_ids"`
}

var tracer = otel.Tracer("github.com/homespun/homespun/internal/snapshot")

// Import validates snap and saves it through repos. Validation covers the
// whole file before anything is written, so a rejected strict import
// leaves the store untouched.
func Import(ctx context.Context, snap *File, repos Repositories, opts Options) (res Result, err error) {
	ctx, span := tracer.Start(ctx, tracing.SpanImport, trace.WithAttributes(
		attribute.Bool(tracing.AttrStrict, opts.Strict),
		attribute.Int(tracing.AttrSessionCount, len(snap.Sessions)),
		attribute.Int(tracing.AttrContainerCount, len(snap.Containers)),
		attribute.Int(tracing.AttrEntityCount, len(snap.Entities)),
	))
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	now, newID := opts.Now, opts.NewID
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	res.ImportID = newID()

	sessions, containers, entities, err := convert(snap, opts.Strict, now(), newID, &res)
	if err != nil {
		return res, err
	}

	for _, e := range entities {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := repos.Entities.Save(e); err != nil {
			return res, fmt.Errorf("saving entity %s: %w", e.ID, err)
		}
		res.Entities++
	}
	for _, s := range sessions {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := repos.Sessions.Save(s); err != nil {
			return res, fmt.Errorf("saving session %s: %w", s.ID(), err)
		}
		res.Sessions++
	}
	for _, c := range containers {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := repos.Containers.Save(c); err != nil {
			return res, fmt.Errorf("saving container %s: %w", c.ContainerID, err)
		}
		res.Containers++
	}

	log.Info(log.CatImport, "Snapshot imported",
		"import_id", res.ImportID,
		"sessions", res.Sessions,
		"containers", res.Containers,
		"entities", res.Entities,
		"unknown_statuses", res.UnknownStatuses)
	return res, nil
}

func convert(snap *File, strict bool, now time.Time, newID func() string, res *Result) (
	[]*domain.Session, []domain.Container, []domain.EntityInfo, error,
) {
	var errs []error

	checkStatus := func(kind, id string, status domain.Status) {
		if status.IsKnown() {
			return
		}
		if err := domain.ValidateStatus(status, strict); err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", kind, id, err))
			return
		}
		res.UnknownStatuses++
		log.Warn(log.CatImport, "Importing unknown status verbatim", "kind", kind, "id", id, "status", status)
	}

	sessions := make([]*domain.Session, 0, len(snap.Sessions))
	for i, r := range snap.Sessions {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = newID()
			res.GeneratedIDs++
		}
		if strings.TrimSpace(r.EntityID) == "" {
			errs = append(errs, fmt.Errorf("session %d (%s): entity_id is required", i, id))
			continue
		}

		status := domain.ParseStatus(r.Status)
		checkStatus("session", id, status)

		mode := domain.Mode(cmp.Or(strings.TrimSpace(r.Mode), string(domain.ModeBuild)))
		if !mode.IsValid() {
			errs = append(errs, fmt.Errorf("session %s: invalid mode %q", id, r.Mode))
			continue
		}

		created, err := parseTime(r.CreatedAt, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("session %s: created_at: %w", id, err))
			continue
		}
		activity, err := parseTime(r.LastActivityAt, created)
		if err != nil {
			errs = append(errs, fmt.Errorf("session %s: last_activity_at: %w", id, err))
			continue
		}

		sessions = append(sessions, domain.ReconstituteSession(
			id, strings.TrimSpace(r.EntityID), strings.TrimSpace(r.ProjectID),
			status, strings.TrimSpace(r.Model), mode, created, activity,
		))
	}

	containers := make([]domain.Container, 0, len(snap.Containers))
	for _, r := range snap.Containers {
		id := strings.TrimSpace(r.ContainerID)
		if id == "" {
			id = newID()
			res.GeneratedIDs++
		}
		if (r.ProjectID == "") != (r.ProjectName == "") {
			errs = append(errs, fmt.Errorf("container %s: project_id and project_name must be set together", id))
			continue
		}

		status := domain.ParseStatus(r.Status)
		checkStatus("container", id, status)

		created, err := parseTime(r.CreatedAt, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("container %s: created_at: %w", id, err))
			continue
		}

		containers = append(containers, domain.Container{
			ContainerID:   id,
			ContainerName: r.ContainerName,
			WorkDir:       r.WorkDir,
			ProjectID:     r.ProjectID,
			ProjectName:   r.ProjectName,
			IssueID:       r.IssueID,
			IssueTitle:    r.IssueTitle,
			Status:        status,
			CreatedAt:     created,
		})
	}

	entities := make([]domain.EntityInfo, 0, len(snap.Entities))
	for i, r := range snap.Entities {
		if strings.TrimSpace(r.ID) == "" {
			errs = append(errs, fmt.Errorf("entity %d: id is required", i))
			continue
		}
		entities = append(entities, domain.EntityInfo{
			ID:          strings.TrimSpace(r.ID),
			Type:        domain.ParseEntityType(cmp.Or(r.Type, string(domain.EntityTypePR))),
			Title:       r.Title,
			Branch:      r.Branch,
			ProjectID:   r.ProjectID,
			ProjectName: r.ProjectName,
		})
	}

	if len(errs) > 0 {
		return nil, nil, nil, fmt.Errorf("invalid snapshot: %w", errors.Join(errs...))
	}
	return sessions, containers, entities, nil
}

// parseTime parses an RFC 3339 timestamp; empty input yields fallback.
func parseTime(raw string, fallback time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(time.RFC3339, raw)
}

package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/homespun/homespun/internal/infrastructure/sqlite"
	"github.com/homespun/homespun/internal/mocks"
	"github.com/homespun/homespun/internal/sessions/domain"
)

const yamlSnapshot = `
sessions:
  - id: s1
    entity_id: e1
    project_id: p1
    status: Running
    model: opus-4
    mode: Plan
    created_at: "2025-01-02T10:00:00Z"
    last_activity_at: "2025-01-02T11:30:00Z"
  - entity_id: e2
    status: Hibernating
containers:
  - container_id: abc123def4567890
    container_name: homespun-issue-1
    project_id: p1
    project_name: Alpha
    issue_title: Fix login
    status: WaitingForInput
  - container_name: orphan
    status: Error
entities:
  - id: e1
    type: Issue
    title: Fix login
    project_id: p1
    project_name: Alpha
  - id: e2
`

const jsonSnapshot = `{
  "sessions": [{"id": "s1", "entity_id": "e1", "status": "Stopped"}],
  "containers": [],
  "entities": [{"id": "e1", "type": "pr", "title": "Bump deps"}]
}`

func setupRepos(t *testing.T) Repositories {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return Repositories{
		Sessions:   db.SessionRepository(),
		Containers: db.ContainerRepository(),
		Entities:   db.EntityRepository(),
	}
}

func TestParse_YAML(t *testing.T) {
	snap, err := Parse([]byte(yamlSnapshot))
	require.NoError(t, err)
	require.Len(t, snap.Sessions, 2)
	require.Len(t, snap.Containers, 2)
	require.Len(t, snap.Entities, 2)
	require.Equal(t, "opus-4", snap.Sessions[0].Model)
	require.Equal(t, "Alpha", snap.Containers[0].ProjectName)
}

func TestParse_JSON(t *testing.T) {
	snap, err := Parse([]byte(jsonSnapshot))
	require.NoError(t, err)
	require.Len(t, snap.Sessions, 1)
	require.Equal(t, "Stopped", snap.Sessions[0].Status)
	require.Equal(t, "Bump deps", snap.Entities[0].Title)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("sessions: [unterminated"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonSnapshot), 0o600))

	snap, err := Load(path)
	require.NoError(t, err)
	require.Len(t, snap.Sessions, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "reading snapshot")
}

func TestImport_IntoStore(t *testing.T) {
	repos := setupRepos(t)
	snap, err := Parse([]byte(yamlSnapshot))
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	res, err := Import(context.Background(), snap, repos, Options{Now: func() time.Time { return now }})
	require.NoError(t, err)

	require.Equal(t, 2, res.Sessions)
	require.Equal(t, 2, res.Containers)
	require.Equal(t, 2, res.Entities)
	require.Equal(t, 1, res.UnknownStatuses)
	require.Equal(t, 2, res.GeneratedIDs, "one session and one container had no id")
	_, err = uuid.Parse(res.ImportID)
	require.NoError(t, err, "import ids are uuids")

	s1, err := repos.Sessions.FindByID("s1")
	require.NoError(t, err)
	require.Equal(t, domain.ModePlan, s1.Mode())
	require.True(t, time.Date(2025, 1, 2, 11, 30, 0, 0, time.UTC).Equal(s1.LastActivityAt()))

	all, err := repos.Sessions.List(domain.ListFilter{})
	require.NoError(t, err)
	var generated *domain.Session
	for _, s := range all {
		if s.ID() != "s1" {
			generated = s
		}
	}
	require.NotNil(t, generated)
	_, err = uuid.Parse(generated.ID())
	require.NoError(t, err, "missing session id should be a uuid")
	require.Equal(t, domain.Status("Hibernating"), generated.Status(), "unknown status kept verbatim")
	require.True(t, now.Equal(generated.CreatedAt()))
	require.Equal(t, domain.ModeBuild, generated.Mode())

	e1, err := repos.Entities.FindByID("e1")
	require.NoError(t, err)
	require.Equal(t, domain.EntityTypeIssue, e1.Type, "entity type is normalised")
	e2, err := repos.Entities.FindByID("e2")
	require.NoError(t, err)
	require.Equal(t, domain.EntityTypePR, e2.Type)
}

func TestImport_StrictRejectsUnknownStatus(t *testing.T) {
	repos := setupRepos(t)
	snap, err := Parse([]byte(yamlSnapshot))
	require.NoError(t, err)

	_, err = Import(context.Background(), snap, repos, Options{Strict: true})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	require.ErrorContains(t, err, "Hibernating")

	all, err := repos.Sessions.List(domain.ListFilter{})
	require.NoError(t, err)
	require.Empty(t, all, "nothing is written when validation fails")
}

func TestImport_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		snap    File
		wantErr string
	}{
		{
			name:    "session without entity",
			snap:    File{Sessions: []SessionRecord{{ID: "s1", Status: "Running"}}},
			wantErr: "entity_id is required",
		},
		{
			name:    "invalid mode",
			snap:    File{Sessions: []SessionRecord{{ID: "s1", EntityID: "e1", Status: "Running", Mode: "Turbo"}}},
			wantErr: `invalid mode "Turbo"`,
		},
		{
			name:    "bad timestamp",
			snap:    File{Sessions: []SessionRecord{{ID: "s1", EntityID: "e1", Status: "Running", CreatedAt: "yesterday"}}},
			wantErr: "created_at",
		},
		{
			name:    "half a project",
			snap:    File{Containers: []ContainerRecord{{ContainerID: "c1", ProjectID: "p1", Status: "Running"}}},
			wantErr: "must be set together",
		},
		{
			name:    "entity without id",
			snap:    File{Entities: []EntityRecord{{Title: "nameless"}}},
			wantErr: "id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := Repositories{
				Sessions:   mocks.NewMockSessionRepository(t),
				Containers: mocks.NewMockContainerRepository(t),
				Entities:   mocks.NewMockEntityRepository(t),
			}
			_, err := Import(context.Background(), &tt.snap, repos, Options{})
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestImport_SaveErrorStops(t *testing.T) {
	sessions := mocks.NewMockSessionRepository(t)
	entities := mocks.NewMockEntityRepository(t)
	entities.EXPECT().Save(mock.Anything).Return(nil)
	sessions.EXPECT().Save(mock.Anything).Return(errors.New("disk full"))

	snap, err := Parse([]byte(jsonSnapshot))
	require.NoError(t, err)

	res, err := Import(context.Background(), snap, Repositories{
		Sessions:   sessions,
		Containers: mocks.NewMockContainerRepository(t),
		Entities:   entities,
	}, Options{})
	require.ErrorContains(t, err, "saving session s1: disk full")
	require.Equal(t, 1, res.Entities)
	require.Zero(t, res.Sessions)
}

func TestImport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := Parse([]byte(jsonSnapshot))
	require.NoError(t, err)

	_, err = Import(ctx, snap, Repositories{
		Sessions:   mocks.NewMockSessionRepository(t),
		Containers: mocks.NewMockContainerRepository(t),
		Entities:   mocks.NewMockEntityRepository(t),
	}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestImport_DeterministicIDs(t *testing.T) {
	repos := setupRepos(t)
	n := 0
	newID := func() string {
		n++
		return "gen-" + string(rune('0'+n))
	}

	snap := &File{Sessions: []SessionRecord{{EntityID: "e1", Status: "Running"}}}
	res, err := Import(context.Background(), snap, repos, Options{NewID: newID})
	require.NoError(t, err)
	require.Equal(t, "gen-1", res.ImportID)

	_, err = repos.Sessions.FindByID("gen-2")
	require.NoError(t, err)
}

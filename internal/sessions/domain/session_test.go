package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	before := time.Now()
	session := NewSession("sess-1", "issue-42", "proj-a", StatusRunning)
	after := time.Now()

	require.Equal(t, "sess-1", session.ID())
	require.Equal(t, "issue-42", session.EntityID())
	require.Equal(t, "proj-a", session.ProjectID())
	require.Equal(t, StatusRunning, session.Status())
	require.Equal(t, ModeBuild, session.Mode())
	require.Empty(t, session.Model())

	require.False(t, session.CreatedAt().Before(before), "createdAt should be >= before")
	require.False(t, session.CreatedAt().After(after), "createdAt should be <= after")
	require.Equal(t, session.CreatedAt(), session.LastActivityAt())
}

func TestReconstituteSession(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	lastActivityAt := time.Date(2026, 3, 1, 11, 30, 0, 0, time.UTC)

	session := ReconstituteSession(
		"sess-2",
		"pr-7",
		"proj-b",
		Status("Hibernating"),
		"anthropic/sonnet",
		ModePlan,
		createdAt,
		lastActivityAt,
	)

	require.Equal(t, "sess-2", session.ID())
	require.Equal(t, "pr-7", session.EntityID())
	require.Equal(t, "proj-b", session.ProjectID())
	require.Equal(t, Status("Hibernating"), session.Status())
	require.Equal(t, "anthropic/sonnet", session.Model())
	require.Equal(t, ModePlan, session.Mode())
	require.Equal(t, createdAt, session.CreatedAt())
	require.Equal(t, lastActivityAt, session.LastActivityAt())
}

func TestContainer_HasProject(t *testing.T) {
	require.True(t, Container{ProjectID: "p1", ProjectName: "Known"}.HasProject())
	require.False(t, Container{}.HasProject())
}

func TestEntityLookup_Get(t *testing.T) {
	var nilLookup EntityLookup
	_, ok := nilLookup.Get("x")
	require.False(t, ok)

	lookup := EntityLookup{"issue-1": {ID: "issue-1", Title: "Fix login"}}
	info, ok := lookup.Get("issue-1")
	require.True(t, ok)
	require.Equal(t, "Fix login", info.Title)
}

func TestParseEntityType(t *testing.T) {
	require.Equal(t, EntityTypePR, ParseEntityType(" PR "))
	require.Equal(t, EntityTypeIssue, ParseEntityType("Issue"))
	require.Equal(t, EntityType("epic"), ParseEntityType("Epic"))
}

func TestIsNotFound(t *testing.T) {
	require.True(t, IsNotFound(&SessionNotFoundError{ID: "a"}))
	require.True(t, IsNotFound(&ContainerNotFoundError{ID: "b"}))
	require.True(t, IsNotFound(&EntityNotFoundError{ID: "c"}))
	require.False(t, IsNotFound(ErrInvalidStatus))
	require.False(t, IsNotFound(nil))

	require.Equal(t, "session not found: a", (&SessionNotFoundError{ID: "a"}).Error())
}

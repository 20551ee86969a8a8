package domain

import (
	"strings"
	"time"
)

// Container is an isolated execution environment hosting a session.
// Empty strings mean the optional field is absent. ProjectID and
// ProjectName are either both set or both empty.
type Container struct {
	ContainerID   string
	ContainerName string
	WorkDir       string
	ProjectID     string
	ProjectName   string
	IssueID       string
	IssueTitle    string
	Status        Status
	CreatedAt     time.Time
}

// HasProject returns true if the container is linked to a project.
func (c Container) HasProject() bool {
	return c.ProjectID != ""
}

// EntityType tags what kind of entity a session works against.
type EntityType string

const (
	EntityTypePR    EntityType = "pr"
	EntityTypeIssue EntityType = "issue"
	EntityTypeClone EntityType = "clone"
)

// ParseEntityType normalizes a raw entity type tag. Unrecognized values are
// lowercased and kept.
func ParseEntityType(raw string) EntityType {
	return EntityType(strings.ToLower(strings.TrimSpace(raw)))
}

// EntityInfo is display metadata for an entity, owned by another subsystem
// and read-only here.
type EntityInfo struct {
	ID          string
	Type        EntityType
	Title       string
	Branch      string
	ProjectID   string
	ProjectName string
}

// EntityLookup maps entity ids to their metadata.
type EntityLookup map[string]EntityInfo

// Get returns the entity info for id. A nil lookup behaves as empty.
func (l EntityLookup) Get(id string) (EntityInfo, bool) {
	if l == nil {
		return EntityInfo{}, false
	}
	info, ok := l[id]
	return info, ok
}

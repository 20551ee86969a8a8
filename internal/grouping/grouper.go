// Package grouping partitions sessions and containers into ordered display
// groups, either by project or by status.
//
// All functions are pure: inputs are never mutated and every call builds
// fresh groups. Ordering uses the shared status priority table from the
// domain package and ordinal string comparison.
package grouping

import (
	"cmp"
	"slices"

	"github.com/homespun/homespun/internal/sessions/domain"
)

const (
	// UnknownProjectName is the display name used when a project cannot be resolved.
	UnknownProjectName = "Unknown Project"

	// UnknownProjectKey groups containers that carry no project id.
	UnknownProjectKey = "unknown"
)

// ProjectGroup is a set of sessions sharing a resolved project name.
type ProjectGroup struct {
	Name     string
	Sessions []*domain.Session
}

// StatusGroup is a set of sessions sharing an exact status value.
type StatusGroup struct {
	Status   domain.Status
	Label    string
	Sessions []*domain.Session
}

// ContainerProjectGroup is a set of containers sharing a project id.
type ContainerProjectGroup struct {
	Key        string
	Name       string
	Containers []domain.Container
}

// ProjectName resolves the display project for a session. Sessions whose
// entity is missing from the lookup, or has no project name, fall under
// UnknownProjectName.
func ProjectName(s *domain.Session, lookup domain.EntityLookup) string {
	if info, ok := lookup.Get(s.EntityID()); ok && info.ProjectName != "" {
		return info.ProjectName
	}
	return UnknownProjectName
}

// SessionTitle resolves the display title for a session, falling back to
// the raw entity id.
func SessionTitle(s *domain.Session, lookup domain.EntityLookup) string {
	if info, ok := lookup.Get(s.EntityID()); ok && info.Title != "" {
		return info.Title
	}
	return s.EntityID()
}

// GroupByProject partitions sessions by resolved project name. Within a
// group sessions are ordered by status priority, then title. Groups are
// ordered by name.
func GroupByProject(sessions []*domain.Session, lookup domain.EntityLookup) []ProjectGroup {
	if len(sessions) == 0 {
		return []ProjectGroup{}
	}

	byName := make(map[string]*ProjectGroup)
	titles := make(map[*domain.Session]string, len(sessions))
	for _, s := range sessions {
		name := ProjectName(s, lookup)
		g, ok := byName[name]
		if !ok {
			g = &ProjectGroup{Name: name}
			byName[name] = g
		}
		g.Sessions = append(g.Sessions, s)
		titles[s] = SessionTitle(s, lookup)
	}

	groups := make([]ProjectGroup, 0, len(byName))
	for _, g := range byName {
		slices.SortStableFunc(g.Sessions, func(a, b *domain.Session) int {
			return cmp.Or(
				cmp.Compare(a.Status().Priority(), b.Status().Priority()),
				cmp.Compare(titles[a], titles[b]),
			)
		})
		groups = append(groups, *g)
	}
	slices.SortFunc(groups, func(a, b ProjectGroup) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return groups
}

// GroupByStatus partitions sessions by their exact status value; no
// buckets are collapsed. Within a group sessions are ordered by last
// activity, most recent first. Groups are ordered by status priority, with
// distinct unknown statuses ordered by their raw value.
func GroupByStatus(sessions []*domain.Session) []StatusGroup {
	if len(sessions) == 0 {
		return []StatusGroup{}
	}

	byStatus := make(map[domain.Status]*StatusGroup)
	for _, s := range sessions {
		g, ok := byStatus[s.Status()]
		if !ok {
			g = &StatusGroup{Status: s.Status(), Label: s.Status().Label()}
			byStatus[s.Status()] = g
		}
		g.Sessions = append(g.Sessions, s)
	}

	groups := make([]StatusGroup, 0, len(byStatus))
	for _, g := range byStatus {
		slices.SortStableFunc(g.Sessions, func(a, b *domain.Session) int {
			return b.LastActivityAt().Compare(a.LastActivityAt())
		})
		groups = append(groups, *g)
	}
	slices.SortFunc(groups, func(a, b StatusGroup) int {
		return cmp.Or(
			cmp.Compare(a.Status.Priority(), b.Status.Priority()),
			cmp.Compare(a.Status, b.Status),
		)
	})
	return groups
}

// containerSortKey is the first non-empty of issue title, issue id and container name.
func containerSortKey(c domain.Container) string {
	return cmp.Or(c.IssueTitle, c.IssueID, c.ContainerName)
}

// GroupContainersByProject partitions containers by project id, using
// UnknownProjectKey when absent. Unlike GroupByProject the key is the id,
// not the name. A group's display name is its first container's project
// name. Groups are ordered by display name, then key.
func GroupContainersByProject(containers []domain.Container) []ContainerProjectGroup {
	if len(containers) == 0 {
		return []ContainerProjectGroup{}
	}

	byKey := make(map[string]*ContainerProjectGroup)
	for _, c := range containers {
		key := UnknownProjectKey
		if c.HasProject() {
			key = c.ProjectID
		}
		g, ok := byKey[key]
		if !ok {
			g = &ContainerProjectGroup{
				Key:  key,
				Name: cmp.Or(c.ProjectName, UnknownProjectName),
			}
			byKey[key] = g
		}
		g.Containers = append(g.Containers, c)
	}

	groups := make([]ContainerProjectGroup, 0, len(byKey))
	for _, g := range byKey {
		slices.SortStableFunc(g.Containers, func(a, b domain.Container) int {
			return cmp.Compare(containerSortKey(a), containerSortKey(b))
		})
		groups = append(groups, *g)
	}
	slices.SortFunc(groups, func(a, b ContainerProjectGroup) int {
		return cmp.Or(
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.Key, b.Key),
		)
	})
	return groups
}

package domain

// ListFilter provides filtering options for listing sessions, containers and entities.
type ListFilter struct {
	// ProjectID restricts results to a single project.
	// If empty, all projects are included.
	ProjectID string

	// Statuses restricts results to the given statuses.
	// If empty, all statuses are included. Ignored for entities.
	Statuses []Status

	// Limit restricts the number of rows returned.
	// If 0, no limit is applied.
	Limit int
}

// SessionRepository defines the persistence interface for Session entities.
type SessionRepository interface {
	// Save inserts or replaces a session keyed by its id.
	Save(session *Session) error

	// FindByID returns SessionNotFoundError if no matching session exists.
	FindByID(id string) (*Session, error)

	// List returns sessions matching the filter ordered by last activity, newest first.
	List(filter ListFilter) ([]*Session, error)

	// Delete returns SessionNotFoundError if no matching session exists.
	Delete(id string) error
}

// ContainerRepository defines the persistence interface for containers.
type ContainerRepository interface {
	Save(container Container) error
	FindByID(id string) (Container, error)
	List(filter ListFilter) ([]Container, error)
	Delete(id string) error
}

// EntityRepository defines the persistence interface for entity metadata.
type EntityRepository interface {
	Save(info EntityInfo) error
	FindByID(id string) (EntityInfo, error)

	// List returns entities for the filter's project, or all when empty.
	List(filter ListFilter) ([]EntityInfo, error)
}

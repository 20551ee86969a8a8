package domain

import "time"

// Session is a tracked unit of in-progress agent work.
// All fields are unexported and there are no mutators: the dashboard only
// reads sessions, and a changed session is saved as a new value.
type Session struct {
	id        string
	entityID  string
	projectID string
	status    Status
	model     string
	mode      Mode

	createdAt      time.Time
	lastActivityAt time.Time
}

// NewSession creates a new Session for the given entity and project.
// Both timestamps are set to the current time and the mode defaults to Build.
func NewSession(id, entityID, projectID string, status Status) *Session {
	now := time.Now()
	return &Session{
		id:             id,
		entityID:       entityID,
		projectID:      projectID,
		status:         status,
		model:          "",
		mode:           ModeBuild,
		createdAt:      now,
		lastActivityAt: now,
	}
}

// ReconstituteSession creates a Session from existing data, typically when
// hydrating from storage or a snapshot file.
func ReconstituteSession(
	id, entityID, projectID string,
	status Status,
	model string,
	mode Mode,
	createdAt, lastActivityAt time.Time,
) *Session {
	return &Session{
		id:             id,
		entityID:       entityID,
		projectID:      projectID,
		status:         status,
		model:          model,
		mode:           mode,
		createdAt:      createdAt,
		lastActivityAt: lastActivityAt,
	}
}

// ID returns the unique identifier for this session.
func (s *Session) ID() string {
	return s.id
}

// EntityID returns the id of the issue, pull request or clone the session works on.
func (s *Session) EntityID() string {
	return s.entityID
}

// ProjectID returns the project reference of the session.
func (s *Session) ProjectID() string {
	return s.projectID
}

// Status returns the current lifecycle status.
func (s *Session) Status() Status {
	return s.status
}

// Model returns the model identifier, possibly in "provider/model" form.
func (s *Session) Model() string {
	return s.model
}

// Mode returns the interaction mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// LastActivityAt returns when the session last reported activity.
func (s *Session) LastActivityAt() time.Time {
	return s.lastActivityAt
}

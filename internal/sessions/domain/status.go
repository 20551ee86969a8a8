// Package domain provides the pure domain layer for dashboard sessions,
// worker containers and the entities they operate against.
//
// This package has no infrastructure dependencies:
//   - Defines the Status enumeration and its shared priority table
//   - Defines the Session entity with encapsulated state
//   - Defines the Container and EntityInfo value types
//   - Defines the repository interfaces used by the storage layer
//   - Provides domain-specific error types
package domain

import "strings"

// Status is the lifecycle status of a session as reported by the agent
// runtime. Values outside the known set are preserved verbatim and
// treated as unknown.
type Status string

const (
	StatusStarting                 Status = "Starting"
	StatusRunningHooks             Status = "RunningHooks"
	StatusRunning                  Status = "Running"
	StatusWaitingForInput          Status = "WaitingForInput"
	StatusWaitingForQuestionAnswer Status = "WaitingForQuestionAnswer"
	StatusWaitingForPlanExecution  Status = "WaitingForPlanExecution"
	StatusStopped                  Status = "Stopped"
	StatusError                    Status = "Error"
)

// UnknownPriority is the priority assigned to any status outside the known set.
const UnknownPriority = 8

// UnknownLabel is the group label for any status outside the known set.
const UnknownLabel = "Unknown"

type statusEntry struct {
	status Status
	label  string
}

// statusTable lists every known status in display priority order.
// The index of an entry is its priority; lower is shown first.
var statusTable = [...]statusEntry{
	{StatusWaitingForPlanExecution, "Plan Ready"},
	{StatusWaitingForQuestionAnswer, "Question"},
	{StatusWaitingForInput, "Waiting"},
	{StatusRunning, "Working"},
	{StatusStarting, "Starting"},
	{StatusRunningHooks, "Running Hooks"},
	{StatusStopped, "Stopped"},
	{StatusError, "Error"},
}

var statusIndex = func() map[Status]int {
	idx := make(map[Status]int, len(statusTable))
	for i, e := range statusTable {
		idx[e.status] = i
	}
	return idx
}()

// String returns the wire form of the status.
func (s Status) String() string {
	return string(s)
}

// IsKnown returns true if the status is one of the recognized lifecycle states.
// Comparison is case sensitive.
func (s Status) IsKnown() bool {
	_, ok := statusIndex[s]
	return ok
}

// Priority returns the display priority of the status. Lower values are
// shown first; unknown statuses sort last with UnknownPriority.
func (s Status) Priority() int {
	if i, ok := statusIndex[s]; ok {
		return i
	}
	return UnknownPriority
}

// Label returns the human-facing group label for the status.
func (s Status) Label() string {
	if i, ok := statusIndex[s]; ok {
		return statusTable[i].label
	}
	return UnknownLabel
}

// KnownStatuses returns every known status in priority order.
func KnownStatuses() []Status {
	out := make([]Status, len(statusTable))
	for i, e := range statusTable {
		out[i] = e.status
	}
	return out
}

// ParseStatus converts raw input into a Status. It never fails: surrounding
// whitespace is trimmed and unrecognized values are kept as-is.
func ParseStatus(raw string) Status {
	return Status(strings.TrimSpace(raw))
}

// ValidateStatus returns an error wrapping ErrInvalidStatus when strict is set and the status
// is not a known lifecycle state.
func ValidateStatus(s Status, strict bool) error {
	if strict && !s.IsKnown() {
		return &InvalidStatusError{Status: s}
	}
	return nil
}

// Mode is the agent interaction mode a session runs in.
type Mode string

const (
	ModeBuild Mode = "Build"
	ModePlan  Mode = "Plan"
)

// IsValid returns true if the mode is a recognized interaction mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeBuild, ModePlan:
		return true
	default:
		return false
	}
}

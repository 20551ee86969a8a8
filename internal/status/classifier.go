// Package status aggregates session lifecycle statuses into the counts and
// summary text shown by the dashboard status indicator.
package status

import (
	"fmt"
	"strings"

	"github.com/homespun/homespun/internal/sessions/domain"
)

// Counts holds per-category session counts.
type Counts struct {
	Working   int `json:"working" yaml:"working"`
	Question  int `json:"question" yaml:"question"`
	PlanReady int `json:"plan_ready" yaml:"plan_ready"`
	Waiting   int `json:"waiting" yaml:"waiting"`
	Error     int `json:"error" yaml:"error"`
	Unknown   int `json:"unknown" yaml:"unknown"`
}

// Total returns the number of sessions actively progressing or awaiting
// routine input. Error and Unknown are never part of the total; errored
// sessions are surfaced through their own affordance.
func (c Counts) Total() int {
	return c.Working + c.Question + c.PlanReady + c.Waiting
}

// NeedsAttention returns true if any session is waiting on the user.
func (c Counts) NeedsAttention() bool {
	return c.Question+c.PlanReady+c.Waiting > 0
}

// Tooltip returns the summary text for these counts.
func (c Counts) Tooltip() string {
	return TooltipText(c.Working, c.Question, c.PlanReady, c.Waiting, c.Error, c.Unknown)
}

// Indicator returns the single state the status indicator should display.
func (c Counts) Indicator() Indicator {
	switch {
	case c.Error > 0:
		return IndicatorError
	case c.NeedsAttention():
		return IndicatorAttention
	case c.Working > 0:
		return IndicatorWorking
	default:
		return IndicatorIdle
	}
}

// Indicator is the visual state of the dashboard status indicator.
type Indicator int

const (
	IndicatorIdle Indicator = iota
	IndicatorWorking
	IndicatorAttention
	IndicatorError
)

func (i Indicator) String() string {
	switch i {
	case IndicatorIdle:
		return "idle"
	case IndicatorWorking:
		return "working"
	case IndicatorAttention:
		return "attention"
	case IndicatorError:
		return "error"
	default:
		return "unknown"
	}
}

// Classify counts sessions by category. Starting, RunningHooks and Stopped
// sessions are not counted anywhere.
func Classify(sessions []*domain.Session) Counts {
	var c Counts
	for _, s := range sessions {
		c.add(s.Status())
	}
	return c
}

// ClassifyStatuses applies the same rule as Classify to bare statuses.
func ClassifyStatuses(statuses []domain.Status) Counts {
	var c Counts
	for _, s := range statuses {
		c.add(s)
	}
	return c
}

func (c *Counts) add(s domain.Status) {
	switch s {
	case domain.StatusRunning:
		c.Working++
	case domain.StatusWaitingForQuestionAnswer:
		c.Question++
	case domain.StatusWaitingForPlanExecution:
		c.PlanReady++
	case domain.StatusWaitingForInput:
		c.Waiting++
	case domain.StatusError:
		c.Error++
	case domain.StatusStarting, domain.StatusRunningHooks, domain.StatusStopped:
		// transitional or terminal, not counted
	default:
		c.Unknown++
	}
}

const clickToView = "Click to view"

// TooltipText builds the comma-joined summary in fixed priority order:
// working, question, plan ready, waiting, error, unknown. Zero counts are
// omitted; with nothing to report the text is just "Click to view".
func TooltipText(working, question, planReady, waiting, errored, unknown int) string {
	clauses := make([]string, 0, 6)
	appendClause := func(n int, what string) {
		if n > 0 {
			clauses = append(clauses, fmt.Sprintf("%d %s", n, what))
		}
	}
	appendClause(working, "working")
	appendClause(question, "awaiting response")
	appendClause(planReady, "plan ready")
	appendClause(waiting, "waiting for input")
	appendClause(errored, "in error")
	appendClause(unknown, "unknown status")

	if len(clauses) == 0 {
		return clickToView
	}
	return strings.Join(clauses, ", ") + " - " + clickToView
}

package format

import (
	"fmt"
	"time"

	"github.com/homespun/homespun/internal/sessions/domain"
)

// Clock provides the current time. Use RealClock for production and a
// FixedClock in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// FormatRelativeTime returns a relative timestamp using the provided clock.
func FormatRelativeTime(t time.Time, clock Clock) string {
	return FormatRelativeTimeFrom(t, clock.Now())
}

// FormatRelativeTimeFrom returns a human-friendly relative timestamp.
// Examples: "now", "5m ago", "3h ago", "2d ago", "1w ago", "3mo ago", "1y ago"
func FormatRelativeTimeFrom(t, now time.Time) string {
	d := now.Sub(t)

	// Future timestamps come from clock skew between agent hosts
	if d < 0 {
		return "now"
	}

	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 30*24*time.Hour:
		// weeks run until the first whole 30-day month
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/(24*365)))
	}
}

// ContainerUptime renders how long a container has been up.
func ContainerUptime(c domain.Container, clock Clock) string {
	return FormatUptime(clock.Now().Sub(c.CreatedAt))
}

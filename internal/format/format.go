// Package format provides the small display helpers used when rendering
// sessions and containers.
package format

import (
	"fmt"
	"strings"
	"time"
)

const shortIDLength = 12

// FormatUptime renders a duration in its two most significant units:
// "1d 5h", "2h 30m", "5m 30s" or "45s". Each unit is truncated, never
// rounded. Negative durations render as "0s".
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60

	switch {
	case days >= 1:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours >= 1:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes >= 1:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatContainerID shortens a container id to its first 12 characters.
func FormatContainerID(id string) string {
	runes := []rune(id)
	if len(runes) > shortIDLength {
		return string(runes[:shortIDLength])
	}
	return id
}

// ModelDisplayName strips the provider prefix from "provider/model" ids.
func ModelDisplayName(model string) string {
	if _, name, found := strings.Cut(model, "/"); found {
		return name
	}
	return model
}

// EntityTypeBadgeClass maps an entity type to its badge class, "pr" or "issue".
func EntityTypeBadgeClass(entityType string) string {
	if strings.EqualFold(entityType, "issue") {
		return "issue"
	}
	return "pr"
}

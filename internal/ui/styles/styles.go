// Package styles holds the Lip Gloss colours and styles shared by table
// output and the live view.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/homespun/homespun/internal/sessions/domain"
	"github.com/homespun/homespun/internal/status"
)

var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#CCCCCC"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#696969"}
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	HeaderColor        = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#89B4FA"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#FF8787"}
)

// Theme resolves colours for status labels. The zero value and a theme with
// colour disabled render plain text.
type Theme struct {
	colors map[string]lipgloss.Color
	color  bool
}

// NewTheme builds a theme from label → hex colour pairs, as configured under
// theme.colors.
func NewTheme(colors map[string]string, color bool) *Theme {
	t := &Theme{colors: make(map[string]lipgloss.Color, len(colors)), color: color}
	for label, hex := range colors {
		t.colors[label] = lipgloss.Color(hex)
	}
	return t
}

func (t *Theme) enabled() bool {
	return t != nil && t.color
}

// Status styles a status by its group label.
func (t *Theme) Status(s domain.Status) lipgloss.Style {
	style := lipgloss.NewStyle()
	if !t.enabled() {
		return style
	}
	if c, ok := t.colors[s.Label()]; ok {
		return style.Foreground(c)
	}
	return style.Foreground(TextMutedColor)
}

// Indicator styles the aggregate status indicator.
func (t *Theme) Indicator(ind status.Indicator) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	if !t.enabled() {
		return style
	}
	switch ind {
	case status.IndicatorError:
		return style.Foreground(StatusErrorColor)
	case status.IndicatorAttention:
		return style.Foreground(StatusWarningColor)
	case status.IndicatorWorking:
		return style.Foreground(StatusSuccessColor)
	default:
		return style.Foreground(TextMutedColor)
	}
}

func (t *Theme) Header() lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	if !t.enabled() {
		return style
	}
	return style.Foreground(HeaderColor)
}

func (t *Theme) Muted() lipgloss.Style {
	if !t.enabled() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(TextMutedColor)
}

func (t *Theme) Border() lipgloss.Style {
	if !t.enabled() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(BorderDefaultColor)
}

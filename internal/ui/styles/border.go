package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderPanel renders content inside a rounded border with the title set
// into the top edge: ╭─ Title ─────╮. Content lines wider than the panel
// are truncated with their styling intact.
func RenderPanel(content, title string, width int, border, titleStyle lipgloss.Style) string {
	inner := max(width-2, 1)

	var b strings.Builder
	b.WriteString(topBorder(title, inner, border, titleStyle))
	b.WriteByte('\n')

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		w := lipgloss.Width(line)
		if w > inner {
			line = ansi.Truncate(line, inner, "…")
			w = lipgloss.Width(line)
		}
		b.WriteString(border.Render(borderVertical))
		b.WriteString(line)
		b.WriteString(strings.Repeat(" ", inner-w))
		b.WriteString(border.Render(borderVertical))
		b.WriteByte('\n')
	}

	b.WriteString(border.Render(borderBottomLeft + strings.Repeat(borderHorizontal, inner) + borderBottomRight))
	return b.String()
}

func topBorder(title string, inner int, border, titleStyle lipgloss.Style) string {
	// "─ " + title + " " needs at least 4 columns
	if title == "" || inner < 4 {
		return border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight)
	}

	title = Truncate(title, inner-4)
	rest := max(inner-3-runewidth.StringWidth(title), 0)
	return border.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(title) +
		border.Render(" "+strings.Repeat(borderHorizontal, rest)+borderTopRight)
}

// Truncate shortens s to at most width terminal columns, ending in "…"
// when cut. Wide runes count as two columns.
func Truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

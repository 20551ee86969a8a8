package presentation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/wordwrap"

	"github.com/homespun/homespun/internal/sessions/domain"
	"github.com/homespun/homespun/internal/status"
	"github.com/homespun/homespun/internal/ui/styles"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 100

// minTitleWidth keeps titles readable on narrow terminals.
const minTitleWidth = 16

var indicatorGlyphs = map[status.Indicator]string{
	status.IndicatorIdle:      "○",
	status.IndicatorWorking:   "●",
	status.IndicatorAttention: "◆",
	status.IndicatorError:     "✖",
}

// RenderSummary renders the indicator line followed by the tooltip wrapped
// to width. The indicator is derived from the counts.
func RenderSummary(s SummaryDTO, theme *styles.Theme, width int) string {
	ind := s.Counts.Indicator()

	var b strings.Builder
	b.WriteString(theme.Indicator(ind).Render(indicatorGlyphs[ind] + " " + ind.String()))
	fmt.Fprintf(&b, "  %d active", s.Total)
	if s.Counts.Error > 0 {
		fmt.Fprintf(&b, ", %d in error", s.Counts.Error)
	}
	b.WriteByte('\n')
	b.WriteString(theme.Muted().Render(wordwrap.String(s.Tooltip, max(width, 20))))
	return b.String()
}

// titleWidth leaves room for the other session columns.
func titleWidth(width int) int {
	return max(width-60, minTitleWidth)
}

func newTable(theme *styles.Theme, headers ...string) *table.Table {
	header := theme.Header().Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.Border()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

func statusCell(theme *styles.Theme, raw, label string) string {
	return theme.Status(domain.Status(raw)).Render(label)
}

// RenderSessions renders sessions as a table.
func RenderSessions(sessions []SessionDTO, theme *styles.Theme, width int) string {
	tw := titleWidth(width)
	t := newTable(theme, "Status", "Title", "Type", "Model", "Mode", "Last active")
	for _, s := range sessions {
		t.Row(
			statusCell(theme, s.Status, s.StatusLabel),
			styles.Truncate(s.Title, tw),
			s.BadgeClass,
			s.ModelName,
			s.Mode,
			s.LastActive,
		)
	}
	return t.String()
}

func groupHeader(theme *styles.Theme, name string, n int, noun string) string {
	if n != 1 {
		noun += "s"
	}
	return theme.Header().Render(name) + theme.Muted().Render(fmt.Sprintf(" (%d %s)", n, noun))
}

// RenderProjectGroups renders one table per project.
func RenderProjectGroups(groups []ProjectGroupDTO, theme *styles.Theme, width int) string {
	if len(groups) == 0 {
		return theme.Muted().Render("No sessions")
	}
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, groupHeader(theme, g.Name, len(g.Sessions), "session")+"\n"+RenderSessions(g.Sessions, theme, width))
	}
	return strings.Join(parts, "\n\n")
}

// RenderStatusGroups renders one table per status, headed by its label.
func RenderStatusGroups(groups []StatusGroupDTO, theme *styles.Theme, width int) string {
	if len(groups) == 0 {
		return theme.Muted().Render("No sessions")
	}
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		label := g.Label
		if !domain.Status(g.Status).IsKnown() {
			label = fmt.Sprintf("%s: %s", g.Label, g.Status)
		}
		head := theme.Status(domain.Status(g.Status)).Bold(true).Render(label) +
			theme.Muted().Render(fmt.Sprintf(" (%d)", len(g.Sessions)))
		parts = append(parts, head+"\n"+RenderSessions(g.Sessions, theme, width))
	}
	return strings.Join(parts, "\n\n")
}

// RenderContainerGroups renders one table per project. The uptime column
// appears only when some container carries an uptime.
func RenderContainerGroups(groups []ContainerGroupDTO, theme *styles.Theme, width int) string {
	if len(groups) == 0 {
		return theme.Muted().Render("No containers")
	}

	withUptime := false
	for _, g := range groups {
		for _, c := range g.Containers {
			if c.Uptime != "" {
				withUptime = true
			}
		}
	}

	tw := titleWidth(width)
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		headers := []string{"ID", "Name", "Issue", "Status"}
		if withUptime {
			headers = append(headers, "Uptime")
		}
		t := newTable(theme, headers...)
		for _, c := range g.Containers {
			issue := c.IssueTitle
			if issue == "" {
				issue = c.IssueID
			}
			row := []string{
				c.ShortID,
				c.Name,
				styles.Truncate(issue, tw),
				statusCell(theme, c.Status, c.StatusLabel),
			}
			if withUptime {
				row = append(row, c.Uptime)
			}
			t.Row(row...)
		}
		head := groupHeader(theme, g.Name, len(g.Containers), "container")
		if g.Summary != "" {
			head += "\n" + theme.Muted().Render(g.Summary)
		}
		parts = append(parts, head+"\n"+t.String())
	}
	return strings.Join(parts, "\n\n")
}

// RenderImportResult renders an import summary as key/value lines.
func RenderImportResult(r ImportResultDTO, theme *styles.Theme) string {
	t := newTable(theme, "Import", r.ImportID)
	t.Row("Sessions", fmt.Sprint(r.Sessions))
	t.Row("Containers", fmt.Sprint(r.Containers))
	t.Row("Entities", fmt.Sprint(r.Entities))
	t.Row("Unknown statuses", fmt.Sprint(r.UnknownStatuses))
	t.Row("Generated ids", fmt.Sprint(r.GeneratedIDs))
	return t.String()
}

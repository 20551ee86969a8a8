package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"

	"github.com/homespun/homespun/internal/sessions/domain"
	"github.com/homespun/homespun/internal/status"
)

func TestTheme_PlainWhenDisabled(t *testing.T) {
	var nilTheme *Theme
	require.Equal(t, "Running", nilTheme.Status(domain.StatusRunning).Render("Running"))

	theme := NewTheme(map[string]string{"Working": "#00FF00"}, false)
	require.Equal(t, "Running", theme.Status(domain.StatusRunning).Render("Running"))
	require.Equal(t, "x", theme.Muted().Render("x"))
	require.Equal(t, "x", theme.Border().Render("x"))
}

func TestTheme_StatusColorByLabel(t *testing.T) {
	theme := NewTheme(map[string]string{"Working": "#00FF00"}, true)

	fg := theme.Status(domain.StatusRunning).GetForeground()
	require.Equal(t, lipgloss.Color("#00FF00"), fg)

	require.Equal(t, TextMutedColor, theme.Status(domain.Status("Hibernating")).GetForeground(),
		"labels without a configured colour fall back to muted")
}

func TestTheme_Indicator(t *testing.T) {
	theme := NewTheme(nil, true)
	require.Equal(t, StatusErrorColor, theme.Indicator(status.IndicatorError).GetForeground())
	require.Equal(t, StatusWarningColor, theme.Indicator(status.IndicatorAttention).GetForeground())
	require.Equal(t, StatusSuccessColor, theme.Indicator(status.IndicatorWorking).GetForeground())
	require.Equal(t, TextMutedColor, theme.Indicator(status.IndicatorIdle).GetForeground())
	require.True(t, theme.Indicator(status.IndicatorIdle).GetBold())
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "", Truncate("hello", 0))
	require.Equal(t, "hello", Truncate("hello", 5))
	require.Equal(t, "hel…", Truncate("hello", 4))

	wide := Truncate("日本語のタイトル", 7)
	require.LessOrEqual(t, runewidth.StringWidth(wide), 7)
	require.True(t, strings.HasSuffix(wide, "…"))
}

func TestRenderPanel(t *testing.T) {
	plain := lipgloss.NewStyle()
	out := RenderPanel("one\ntwo", "Sessions", 20, plain, plain)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 4)
	require.Equal(t, "╭─ Sessions ───────╮", lines[0])
	require.Equal(t, "│one               │", lines[1])
	require.Equal(t, "╰──────────────────╯", lines[3])
	for _, l := range lines {
		require.Equal(t, 20, lipgloss.Width(l))
	}
}

func TestRenderPanel_TruncatesLongLinesAndTitles(t *testing.T) {
	plain := lipgloss.NewStyle()
	out := RenderPanel(strings.Repeat("x", 50), "A very long panel title", 12, plain, plain)
	for _, l := range strings.Split(out, "\n") {
		require.Equal(t, 12, lipgloss.Width(l))
	}
	require.Contains(t, out, "…")
}

func TestRenderPanel_NoTitleWhenNarrow(t *testing.T) {
	plain := lipgloss.NewStyle()
	out := RenderPanel("", "Title", 5, plain, plain)
	require.True(t, strings.HasPrefix(out, "╭───╮"))
}

func TestRenderPanel_TruncatesStyledLines(t *testing.T) {
	plain := lipgloss.NewStyle()
	styled := "\x1b[31m" + strings.Repeat("y", 30) + "\x1b[0m"
	out := RenderPanel(styled, "", 10, plain, plain)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, 10, lipgloss.Width(lines[1]))
	require.Contains(t, lines[1], "\x1b[31m")
	require.Contains(t, lines[1], "…")
}

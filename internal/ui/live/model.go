// Package live implements the watch-mode dashboard: the status indicator,
// its tooltip and the grouped sessions or containers, refreshed whenever
// the store changes.
package live

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/homespun/homespun/internal/keys"
	"github.com/homespun/homespun/internal/log"
	"github.com/homespun/homespun/internal/presentation"
	"github.com/homespun/homespun/internal/pubsub"
	"github.com/homespun/homespun/internal/sessions/domain"
	"github.com/homespun/homespun/internal/ui/styles"
)

// Grouping selects how sessions are grouped.
type Grouping int

const (
	GroupByProject Grouping = iota
	GroupByStatus
)

func (g Grouping) String() string {
	if g == GroupByStatus {
		return "By status"
	}
	return "By project"
}

// SnapshotLoader builds the dashboard. *dashboard.Service satisfies it.
type SnapshotLoader interface {
	Snapshot(ctx context.Context, projectID string) (presentation.SnapshotDTO, error)
}

type snapshotLoadedMsg struct {
	snap presentation.SnapshotDTO
	err  error
}

// headerHeight covers the indicator line, the tooltip and a blank line.
const headerHeight = 3

// Model is the live dashboard.
type Model struct {
	ctx       context.Context
	loader    SnapshotLoader
	projectID string
	listener  *pubsub.ContinuousListener[presentation.SnapshotDTO]

	keys     keys.KeyMap
	help     help.Model
	viewport viewport.Model
	theme    *styles.Theme

	snap       presentation.SnapshotDTO
	loaded     bool
	err        error
	grouping   Grouping
	containers bool

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithBroker makes the model follow snapshots published on broker.
func WithBroker(broker *pubsub.Broker[presentation.SnapshotDTO]) Option {
	return func(m *Model) {
		m.listener = pubsub.NewContinuousListener(m.ctx, broker)
	}
}

func WithTheme(t *styles.Theme) Option {
	return func(m *Model) { m.theme = t }
}

func WithProject(projectID string) Option {
	return func(m *Model) { m.projectID = projectID }
}

// New creates a live dashboard that loads through loader.
func New(ctx context.Context, loader SnapshotLoader, opts ...Option) Model {
	m := Model{
		ctx:      ctx,
		loader:   loader,
		keys:     keys.DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(presentation.DefaultWidth, 20),
		width:    presentation.DefaultWidth,
		height:   20 + headerHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refreshContent()
	return m
}

// Init loads the first snapshot and starts listening for published ones.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.listen())
}

func (m Model) load() tea.Cmd {
	ctx, loader, projectID := m.ctx, m.loader, m.projectID
	return func() tea.Msg {
		snap, err := loader.Snapshot(ctx, projectID)
		return snapshotLoadedMsg{snap: snap, err: err}
	}
}

func (m Model) listen() tea.Cmd {
	if m.listener == nil {
		return nil
	}
	return m.listener.Listen()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case snapshotLoadedMsg:
		m.apply(msg.snap, msg.err)
		return m, nil

	case pubsub.Event[presentation.SnapshotDTO]:
		m.apply(msg.Payload, msg.Err)
		return m, m.listen()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleGrouping):
		if m.grouping == GroupByProject {
			m.grouping = GroupByStatus
		} else {
			m.grouping = GroupByProject
		}
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.ToggleContainers):
		m.containers = !m.containers
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.refreshContent()
	return m, nil
}

// apply keeps the last good snapshot on screen when a refresh fails.
func (m *Model) apply(snap presentation.SnapshotDTO, err error) {
	if err != nil {
		log.ErrorErr(log.CatUI, "Dashboard refresh failed", err)
		m.err = err
		return
	}
	m.snap, m.loaded, m.err = snap, true, nil
	m.refreshContent()
}

func (m *Model) resize() {
	panelChrome := 2
	helpHeight := lineCount(m.help.View(m.keys))
	m.viewport.Width = max(m.width-panelChrome, 1)
	m.viewport.Height = max(m.height-headerHeight-panelChrome-helpHeight, 1)
	m.refreshContent()
}

func (m *Model) refreshContent() {
	m.viewport.SetContent(m.body())
}

func (m Model) body() string {
	if !m.loaded {
		return m.theme.Muted().Render("Loading…")
	}
	w := m.viewport.Width
	switch {
	case m.containers:
		return presentation.RenderContainerGroups(m.snap.Containers, m.theme, w)
	case m.grouping == GroupByStatus:
		return presentation.RenderStatusGroups(m.snap.ByStatus, m.theme, w)
	default:
		return presentation.RenderProjectGroups(m.snap.ByProject, m.theme, w)
	}
}

func (m Model) title() string {
	if m.containers {
		return "Containers"
	}
	return "Sessions · " + m.grouping.String()
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder
	if m.loaded {
		b.WriteString(presentation.RenderSummary(m.snap.Summary, m.theme, m.width))
	} else {
		b.WriteString(m.theme.Muted().Render("Connecting to store…"))
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.theme.Status(domain.StatusError).Render("refresh failed: " + m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(styles.RenderPanel(m.viewport.View(), m.title(), m.width, m.theme.Border(), m.theme.Header()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Grouping reports the current session grouping.
func (m Model) Grouping() Grouping { return m.grouping }

// ShowingContainers reports whether the container view is active.
func (m Model) ShowingContainers() bool { return m.containers }

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwhitford/planline/internal/cli/formatter"
	"github.com/mwhitford/planline/internal/domain"
)

// zoomCycle is the order the interactive viewer steps through with the z key.
var zoomCycle = []domain.ZoomLevel{
	domain.ZoomWeek, domain.ZoomMonth, domain.ZoomQuarter, domain.ZoomYear,
}

type ganttLoadedMsg struct {
	data formatter.GanttData
	err  error
}

// timelineModel is the Bubbletea model for the interactive timeline viewer.
// The grid is rebuilt from scratch on every zoom change; geometry is never
// carried across zooms.
type timelineModel struct {
	app       *App
	projectID string
	zoom      domain.ZoomLevel
	anchor    string
	critical  bool

	viewport viewport.Model
	ready    bool
	loading  bool
	err      error
}

func newTimelineModel(app *App, projectID string, zoom domain.ZoomLevel, anchor string) timelineModel {
	if zoom == "" {
		zoom = domain.ZoomMonth
	}
	return timelineModel{
		app:       app,
		projectID: projectID,
		zoom:      zoom,
		anchor:    anchor,
		loading:   true,
	}
}

func (m timelineModel) Init() tea.Cmd {
	return m.load()
}

func (m timelineModel) load() tea.Cmd {
	app, projectID, zoom, anchor, critical := m.app, m.projectID, m.zoom, m.anchor, m.critical
	return func() tea.Msg {
		data, err := buildGanttData(context.Background(), app, projectID, zoom, anchor, critical)
		return ganttLoadedMsg{data: data, err: err}
	}
}

func (m timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "z":
			m.zoom = nextZoom(m.zoom)
			m.loading = true
			return m, m.load()
		case "c":
			m.critical = !m.critical
			m.loading = true
			return m, m.load()
		}

	case tea.WindowSizeMsg:
		headerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}

	case ganttLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.viewport.SetContent(formatter.RenderGantt(msg.data))
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m timelineModel) View() string {
	status := fmt.Sprintf("zoom: %s", m.zoom)
	if m.critical {
		status += "  critical: on"
	}
	if m.loading {
		status += "  loading…"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		formatter.StyleHeader.Render("planline timeline"),
		formatter.Dim("  "+status),
		formatter.Dim("   z zoom · c critical · ↑/↓ scroll · q quit"),
	)

	if m.err != nil {
		return header + "\n\n" + formatter.StyleRed.Render("Error: "+m.err.Error())
	}
	if !m.ready {
		return header + "\n\n" + formatter.Dim("loading…")
	}
	return header + "\n\n" + m.viewport.View()
}

func nextZoom(z domain.ZoomLevel) domain.ZoomLevel {
	for i, zl := range zoomCycle {
		if zl == z {
			return zoomCycle[(i+1)%len(zoomCycle)]
		}
	}
	return domain.ZoomMonth
}

// Package tui renders the stored asteroid catalogue as an interactive table.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"asteroid-tracker/internal/domain"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	browseLimit = 500
	loadTimeout = 10 * time.Second
	chromeLines = 6
	detailLines = 9
)

type AsteroidLister interface {
	ListAsteroids(ctx context.Context, filter domain.ListFilter) ([]*domain.Asteroid, error)
}

type filterMode int

const (
	filterAll filterMode = iota
	filterHazardous
	filterNotHazardous
)

func (f filterMode) next() filterMode {
	return (f + 1) % 3
}

func (f filterMode) String() string {
	switch f {
	case filterHazardous:
		return "hazardous"
	case filterNotHazardous:
		return "not hazardous"
	default:
		return "all"
	}
}

func (f filterMode) listFilter() domain.ListFilter {
	filter := domain.ListFilter{Limit: browseLimit}
	switch f {
	case filterHazardous:
		v := true
		filter.Hazardous = &v
	case filterNotHazardous:
		v := false
		filter.Hazardous = &v
	}
	return filter
}

type asteroidsLoadedMsg struct {
	filter    filterMode
	asteroids []*domain.Asteroid
	err       error
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hazardStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	detailStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	tableBorders = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

// Model browses stored asteroids. Keys: f cycles the hazard filter, r
// reloads, enter toggles the detail pane, q quits.
type Model struct {
	svc        AsteroidLister
	username   string
	table      table.Model
	asteroids  []*domain.Asteroid
	filter     filterMode
	showDetail bool
	loading    bool
	err        error
	width      int
	height     int
}

func NewModel(svc AsteroidLister, username string) *Model {
	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	return &Model{svc: svc, username: username, table: t, loading: true}
}

func columns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 24},
		{Title: "Approach", Width: 10},
		{Title: "Hazard", Width: 6},
		{Title: "Diam km", Width: 8},
		{Title: "km/s", Width: 7},
		{Title: "Miss km", Width: 12},
	}
}

// SetSize fits the table to the terminal.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	rows := height - chromeLines
	if m.showDetail {
		rows -= detailLines
	}
	if rows < 3 {
		rows = 3
	}
	m.table.SetHeight(rows)
}

func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	svc, filter := m.svc, m.filter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		asteroids, err := svc.ListAsteroids(ctx, filter.listFilter())
		return asteroidsLoadedMsg{filter: filter, asteroids: asteroids, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case asteroidsLoadedMsg:
		if msg.filter != m.filter {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.asteroids = msg.asteroids
			m.table.SetRows(toRows(msg.asteroids))
			m.table.SetCursor(0)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "f":
			m.filter = m.filter.next()
			m.loading = true
			return m, m.load()
		case "r":
			m.loading = true
			return m, m.load()
		case "enter":
			m.showDetail = !m.showDetail
			m.SetSize(m.width, m.height)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Asteroid Tracker"))
	if m.username != "" {
		b.WriteString(statusStyle.Render("  " + m.username))
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("filter: %s  records: %d", m.filter, len(m.asteroids))))
	if m.loading {
		b.WriteString(statusStyle.Render("  loading..."))
	}
	b.WriteString("\n")

	b.WriteString(tableBorders.Render(m.table.View()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error (%s): %v", domain.Category(m.err), m.err)))
		b.WriteString("\n")
	}
	if m.showDetail {
		if a := m.selected(); a != nil {
			b.WriteString(detailStyle.Render(detail(a)))
			b.WriteString("\n")
		}
	}
	b.WriteString(statusStyle.Render("f filter • r reload • enter details • q quit"))
	return b.String()
}

func (m *Model) selected() *domain.Asteroid {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.asteroids) {
		return nil
	}
	return m.asteroids[i]
}

func toRows(asteroids []*domain.Asteroid) []table.Row {
	rows := make([]table.Row, 0, len(asteroids))
	for _, a := range asteroids {
		hazard := ""
		if a.IsPotentiallyHazardous {
			hazard = "yes"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", a.ID),
			a.Name,
			a.CloseApproachDate,
			hazard,
			fmt.Sprintf("%.3f", a.EstimatedDiameterMax),
			fmt.Sprintf("%.2f", a.RelativeVelocity),
			fmt.Sprintf("%.0f", a.MissDistance),
		})
	}
	return rows
}

func detail(a *domain.Asteroid) string {
	name := a.Name
	if a.IsPotentiallyHazardous {
		name += " " + hazardStyle.Render("POTENTIALLY HAZARDOUS")
	}
	lines := []string{
		name,
		fmt.Sprintf("JPL:          %s", a.NasaJPLURL),
		fmt.Sprintf("Magnitude H:  %.2f", a.AbsoluteMagnitude),
		fmt.Sprintf("Diameter:     %.3f - %.3f km", a.EstimatedDiameterMin, a.EstimatedDiameterMax),
		fmt.Sprintf("Approach:     %s (epoch %d)", a.CloseApproachDateFull, a.EpochDateCloseApproach),
		fmt.Sprintf("Velocity:     %.3f km/s, miss %.0f km, orbiting %s", a.RelativeVelocity, a.MissDistance, a.OrbitingBody),
	}
	return strings.Join(lines, "\n")
}

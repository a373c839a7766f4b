package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// Logbook layout constants
const (
	maxLandings = 100 // Max rounds to load per mode
)

// LogbookKeyMap defines the key bindings for the logbook.
type LogbookKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LogbookKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k LogbookKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultLogbookKeyMap returns default key bindings.
func DefaultLogbookKeyMap() LogbookKeyMap {
	return LogbookKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LogbookModel is the Bubble Tea model for the landing history screen.
type LogbookModel struct {
	modes     []registry.GameInfo
	cursor    int
	store     *storage.Store
	landings  []storage.Landing
	stats     *storage.LandingStats
	table     table.Model
	help      help.Model
	keys      LogbookKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewLogbookModel creates a new logbook model.
func NewLogbookModel(store *storage.Store, width, height int) LogbookModel {
	h := help.New()
	h.Width = width

	m := LogbookModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultLogbookKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	if len(m.modes) > 0 {
		m.load(m.modes[0].ID)
	}
	return m
}

// createTable creates a table sized for the current window.
func (m *LogbookModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 13},
		{Title: "Result", Width: 20},
		{Title: "Score", Width: 6},
		{Title: "Fuel", Width: 6},
		{Title: "Time", Width: 7},
		{Title: "Speed", Width: 6},
		{Title: "Angle", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Title, tabs, stats, help and borders
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the history of one mode.
func (m *LogbookModel) load(gameID string) {
	m.landings = nil
	m.stats = nil
	if m.store != nil {
		if landings, err := m.store.RecentLandings(gameID, maxLandings); err == nil {
			m.landings = landings
		}
		if stats, err := m.store.LandingStats(gameID); err == nil {
			m.stats = stats
		}
	}
	m.table.SetRows(landingRows(m.landings))
	m.table.GotoTop()
}

// landingRows formats landings for the table.
func landingRows(landings []storage.Landing) []table.Row {
	rows := make([]table.Row, len(landings))
	for i, l := range landings {
		result := l.Outcome
		if l.Reason != "" {
			result += " (" + strings.ReplaceAll(l.Reason, "_", " ") + ")"
		}
		date := "-"
		if !l.CreatedAt.IsZero() {
			date = l.CreatedAt.Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			date,
			result,
			fmt.Sprintf("%d", l.Score),
			fmt.Sprintf("%.1f", l.Fuel),
			fmt.Sprintf("%.1fs", l.Elapsed),
			fmt.Sprintf("%.2f", l.Speed),
			fmt.Sprintf("%+.0f°", l.Angle),
		}
	}
	return rows
}

// summary renders the aggregate line above the table.
func (m LogbookModel) summary() string {
	s := m.stats
	if s == nil || s.Attempts == 0 {
		return ""
	}

	line := fmt.Sprintf("%d flights  |  %d landed (%.0f%%)  |  best %d",
		s.Attempts, s.Landed, s.SuccessRate()*100, s.BestScore)
	if s.Landed > 0 {
		line += fmt.Sprintf("  |  avg touchdown %.2f", s.AvgSpeed)
	}

	reasons := make([]string, 0, len(s.CrashReasons))
	for r := range s.CrashReasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	parts := make([]string, 0, len(reasons))
	for _, r := range reasons {
		parts = append(parts, fmt.Sprintf("%s %d", strings.ReplaceAll(r, "_", " "), s.CrashReasons[r]))
	}
	if len(parts) > 0 {
		line += "\ncrashes: " + strings.Join(parts, ", ")
	}
	return line
}

// Init initializes the logbook model.
func (m LogbookModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the logbook.
func (m LogbookModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			if len(m.modes) > 0 {
				m.cursor = (m.cursor + 1) % len(m.modes)
				m.load(m.modes[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			if len(m.modes) > 0 {
				m.cursor = (m.cursor - 1 + len(m.modes)) % len(m.modes)
				m.load(m.modes[m.cursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(landingRows(m.landings))
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the logbook.
func (m LogbookModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("FLIGHT LOGBOOK"), m.width))
	b.WriteString("\n\n")

	// Mode tabs
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	if s := m.summary(); s != "" {
		for _, line := range strings.Split(s, "\n") {
			b.WriteString(centerText(menuStatsStyle.Render(line), m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent())))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m LogbookModel) renderTableContent() string {
	if len(m.landings) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No flights logged yet.\nLand one to start your logbook!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m LogbookModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LogbookModel) IsQuitting() bool {
	return m.quitting
}

// RunLogbook runs the logbook screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunLogbook(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewLogbookModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(LogbookModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/multiplayer"
	"github.com/vovakirdan/tui-collect/internal/storage"
)

// History layout constants
const (
	historyChrome = 9   // Rows used by title, stats, tabs, borders and help
	maxMatches    = 200 // Max matches to load
)

// HistorySource is the part of the store the history screen reads.
type HistorySource interface {
	RecentMatches(limit int) ([]storage.MatchRecord, error)
	Stats() (*storage.HistoryStats, error)
}

// historyFilters are the mode tabs, "" shows every match.
var historyFilters = []string{
	"",
	multiplayer.MatchModeLocal.String(),
	multiplayer.MatchModeVsCPU.String(),
	multiplayer.MatchModeCPUvsCPU.String(),
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.PrevTab, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the match history screen.
type HistoryModel struct {
	matches []storage.MatchRecord // Everything loaded, newest first
	stats   *storage.HistoryStats
	err     error
	tab     int
	names   [core.PlayerCount]string
	table   table.Model
	help    help.Model
	keys    HistoryKeyMap
	width   int
	height  int
}

// NewHistoryModel loads the history from src.
func NewHistoryModel(src HistorySource, names [core.PlayerCount]string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		names:  names,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	m.matches, m.err = src.RecentMatches(maxMatches)
	if m.err == nil {
		m.stats, m.err = src.Stats()
	}

	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a table sized to the terminal.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Mode", Width: 10},
		{Title: "Result", Width: 16},
		{Title: "Score", Width: 7},
		{Title: "Board", Width: 7},
		{Title: "Time", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-historyChrome, 3)),
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

// Visible returns the matches shown under the current tab.
func (m HistoryModel) Visible() []storage.MatchRecord {
	filter := historyFilters[m.tab]
	if filter == "" {
		return m.matches
	}
	var out []storage.MatchRecord
	for _, rec := range m.matches {
		if rec.Mode == filter {
			out = append(out, rec)
		}
	}
	return out
}

func (m *HistoryModel) updateTableRows() {
	visible := m.Visible()
	rows := make([]table.Row, len(visible))
	for i, rec := range visible {
		rows[i] = table.Row{
			rec.CreatedAt.Local().Format("Jan 02 15:04"),
			rec.Mode,
			m.resultText(rec),
			fmt.Sprintf("%d-%d", rec.Score1, rec.Score2),
			fmt.Sprintf("%dx%d", rec.BoardSize, rec.BoardSize),
			fmt.Sprintf("%.0fs", rec.Duration.Seconds()),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m HistoryModel) resultText(rec storage.MatchRecord) string {
	if !rec.Completed() || rec.Winner < 0 || rec.Winner >= core.PlayerCount {
		return rec.EndReason
	}
	return m.names[rec.Winner] + " won"
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(historyFilters)
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + len(historyFilters) - 1) % len(historyFilters)
			m.updateTableRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("MATCH HISTORY", m.width)))
	b.WriteString("\n\n")

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) statsLine() string {
	if m.stats == nil || m.stats.Matches == 0 {
		return "No matches yet"
	}
	return fmt.Sprintf("%d matches, %d finished | %s %d wins | %s %d wins | best %d",
		m.stats.Matches, m.stats.Completed,
		m.names[core.Player1], m.stats.Wins[core.Player1],
		m.names[core.Player2], m.stats.Wins[core.Player2],
		m.stats.BestScore,
	)
}

func (m HistoryModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(historyFilters))
	for i, f := range historyFilters {
		name := f
		if name == "" {
			name = "All"
		}
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}
	return strings.Join(tabs, " ")
}

func (m HistoryModel) renderTableContent() string {
	if len(m.Visible()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No matches recorded yet.\nRun collect play to start one!")
	}
	return m.table.View()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunHistory runs the match history screen.
func RunHistory(src HistorySource, names [core.PlayerCount]string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(src, names, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

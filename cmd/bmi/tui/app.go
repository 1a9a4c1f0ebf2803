// Package tui is the interactive tabbed interface of the bmi CLI.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bmi-tracker/internal/domain"
	"bmi-tracker/internal/view"
)

// Tab is one page of the interface.
type Tab int

const (
	TabHome Tab = iota
	TabHistory
	TabGraph
)

var tabNames = []string{"Home", "History", "Graph"}

const requestTimeout = 10 * time.Second

// Model is the Bubbletea model. Commands mutate the shared view.Model off the
// Update goroutine and report back with messages; view.Model locks itself.
type Model struct {
	data *view.Model

	tab     Tab
	inputs  []textinput.Model
	focus   int
	cursor  int
	records []domain.Record

	// confirmID is the record awaiting y/n; zero when no prompt is shown.
	confirmID int64
	// alert blocks all input until dismissed.
	alert  string
	status string
	busy   bool

	width int
}

// Messages
type refreshedMsg struct{ err error }

type savedMsg struct {
	rec domain.Record
	err error
}

type deletedMsg struct {
	id      int64
	changes int64
	err     error
}

// New builds the TUI over data.
func New(data *view.Model) Model {
	weight := textinput.New()
	weight.Placeholder = "0"
	weight.CharLimit = 8
	weight.Width = 10
	weight.Focus()

	height := textinput.New()
	height.Placeholder = "0"
	height.CharLimit = 8
	height.Width = 10

	return Model{
		data:   data,
		inputs: []textinput.Model{weight, height},
	}
}

// Run starts the program in the alternate screen and blocks until it exits.
func Run(data *view.Model) error {
	_, err := tea.NewProgram(New(data), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refresh())
}

// Commands
func (m Model) refresh() tea.Cmd {
	data := m.data
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return refreshedMsg{err: data.Refresh(ctx)}
	}
}

func (m Model) save(weight, height string) tea.Cmd {
	data := m.data
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		rec, err := data.Save(ctx, weight, height)
		return savedMsg{rec: rec, err: err}
	}
}

func (m Model) remove(id int64) tea.Cmd {
	data := m.data
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		n, err := data.Delete(ctx, id)
		return deletedMsg{id: id, changes: n, err: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case refreshedMsg:
		// Fetch failures are logged by the view model; the last good list stays.
		m.syncRecords()
		return m, nil

	case savedMsg:
		m.busy = false
		if msg.err != nil {
			m.alert = msg.err.Error()
			return m, nil
		}
		m.inputs[0].SetValue("")
		m.status = fmt.Sprintf("Saved: BMI %s", msg.rec.BMI)
		m.syncRecords()
		return m, nil

	case deletedMsg:
		m.busy = false
		if msg.err != nil {
			m.alert = msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted record %d", msg.id)
		m.syncRecords()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m *Model) syncRecords() {
	m.records = m.data.Records()
	if m.cursor >= len(m.records) {
		m.cursor = max(len(m.records)-1, 0)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc", " ":
			m.alert = ""
		}
		return m, nil
	}

	if m.confirmID != 0 {
		id := m.confirmID
		m.confirmID = 0
		switch msg.String() {
		case "y", "Y":
			m.busy = true
			return m, m.remove(id)
		}
		m.status = "Delete cancelled"
		return m, nil
	}

	switch msg.String() {
	case "tab":
		m.switchTab((m.tab + 1) % Tab(len(tabNames)))
		return m, nil
	case "shift+tab":
		m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
		return m, nil
	}

	switch m.tab {
	case TabHome:
		return m.handleHomeKey(msg)
	case TabHistory:
		return m.handleHistoryKey(msg)
	default:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *Model) switchTab(t Tab) {
	m.tab = t
	m.status = ""
	if t == TabHome {
		m.inputs[m.focus].Focus()
	} else {
		m.inputs[m.focus].Blur()
	}
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "up", "down":
		m.inputs[m.focus].Blur()
		m.focus = 1 - m.focus
		m.inputs[m.focus].Focus()
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = ""
		return m, m.save(m.inputs[0].Value(), m.inputs[1].Value())
	}
	return m.updateInputs(msg)
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case "d", "x", "delete":
		if len(m.records) > 0 && !m.busy {
			m.confirmID = m.records[m.cursor].RecordID
		}
	case "r":
		return m, m.refresh()
	}
	return m, nil
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.tab != TabHome {
		return m, nil
	}
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("BMI Tracker"))
	b.WriteString("\n")

	var body string
	switch m.tab {
	case TabHome:
		body = m.homeView()
	case TabHistory:
		body = m.historyView()
	case TabGraph:
		body = view.RenderChart(m.data.Series(), 10)
	}
	b.WriteString(contentStyle.Render(body))
	b.WriteString("\n")

	switch {
	case m.alert != "":
		b.WriteString(view.AlertStyle.Render(m.alert + "\n\n" + formatKey("enter", "dismiss")))
		b.WriteString("\n")
	case m.confirmID != 0:
		b.WriteString(promptStyle.Render(fmt.Sprintf("Delete record %d? (y/n)", m.confirmID)))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.tabBar())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))

	return b.String()
}

func (m Model) homeView() string {
	form := lipgloss.JoinVertical(lipgloss.Left,
		view.TitleStyle.Render("Record new data"),
		labelStyle.Render("Weight (kg)")+m.inputs[0].View(),
		labelStyle.Render("Height (cm)")+m.inputs[1].View(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		view.RenderHome(m.data.LatestBMI()),
		"   ",
		form,
	)
}

func (m Model) historyView() string {
	return view.TitleStyle.Render("History") + "\n" + view.RenderTable(m.records, m.cursor)
}

func (m Model) tabBar() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) help() string {
	keys := []string{formatKey("tab", "switch page")}
	switch m.tab {
	case TabHome:
		keys = append(keys, formatKey("↑/↓", "field"), formatKey("enter", "save"), formatKey("esc", "quit"))
	case TabHistory:
		keys = append(keys, formatKey("↑/↓", "select"), formatKey("d", "delete"), formatKey("r", "reload"), formatKey("q", "quit"))
	default:
		keys = append(keys, formatKey("r", "reload"), formatKey("q", "quit"))
	}
	return strings.Join(keys, "  ")
}

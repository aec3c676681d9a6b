package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/layoutview/render"
	"github.com/wippyai/layoutview/snapshot"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// listHeight is the number of symbol rows shown above the value pane.
const listHeight = 8

type browserModel struct {
	snap     *snapshot.Snapshot
	r        *render.Renderer
	filename string
	visible  []int // indexes into snap.Symbols matching the filter
	filter   textinput.Model
	view     viewport.Model
	selected int
	offset   int
	ready    bool
}

func newBrowserModel(filename string, snap *snapshot.Snapshot, r *render.Renderer) *browserModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter symbols"
	ti.Width = 40

	m := &browserModel{
		snap:     snap,
		r:        r,
		filename: filename,
		filter:   ti,
	}
	m.applyFilter()
	return m
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

func (m *browserModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, s := range m.snap.Symbols {
		if q == "" || strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Type.Name), q) {
			m.visible = append(m.visible, i)
		}
	}
	m.selected = 0
	m.offset = 0
	m.refresh()
}

// refresh re-renders the selected symbol into the value pane.
func (m *browserModel) refresh() {
	if !m.ready {
		return
	}
	if len(m.visible) == 0 {
		m.view.SetContent(helpStyle.Render("no matching symbols"))
		return
	}
	sym := m.snap.Symbols[m.visible[m.selected]]
	m.view.SetContent(m.r.Text(sym.Name, m.snap.Value(sym)))
	m.view.GotoTop()
}

func (m *browserModel) move(delta int) {
	next := m.selected + delta
	if next < 0 || next >= len(m.visible) {
		return
	}
	m.selected = next
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+listHeight {
		m.offset = m.selected - listHeight + 1
	}
	m.refresh()
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title, list, filter, help and the pane border
		height := msg.Height - listHeight - 7
		if height < 3 {
			height = 3
		}
		if !m.ready {
			m.view = viewport.New(msg.Width-2, height)
			m.ready = true
			m.refresh()
		} else {
			m.view.Width = msg.Width - 2
			m.view.Height = height
		}
		return m, nil

	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.filter.Blur()
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "/":
			return m, m.filter.Focus()
		case "up", "k":
			m.move(-1)
			return m, nil
		case "down", "j":
			m.move(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *browserModel) View() string {
	if !m.ready {
		return "Loading snapshot..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Inspect"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	end := min(m.offset+listHeight, len(m.visible))
	for row := m.offset; row < end; row++ {
		sym := m.snap.Symbols[m.visible[row]]
		line := fmt.Sprintf("%s %s", sym.Name, typeStyle.Render(sym.Type.Name))
		if row == m.selected {
			b.WriteString(selectedStyle.Render("> " + sym.Name))
			b.WriteString(" " + typeStyle.Render(sym.Type.Name))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	for row := end - m.offset; row < listHeight; row++ {
		b.WriteString("\n")
	}

	b.WriteString(m.filter.View())
	b.WriteString("\n")
	b.WriteString(paneStyle.Render(m.view.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • / filter • pgup/pgdn scroll • q quit"))

	return b.String()
}

func runInteractive(filename string, snap *snapshot.Snapshot, r *render.Renderer) error {
	p := tea.NewProgram(newBrowserModel(filename, snap, r), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

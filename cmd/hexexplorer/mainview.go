package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MainViewModel wraps the main UI for use as overlay background
type MainViewModel struct {
	model *Model
}

func NewMainViewModel(m *Model) *MainViewModel {
	return &MainViewModel{model: m}
}

func (m *MainViewModel) Init() tea.Cmd {
	return nil
}

// Updates are handled by the parent Model.
func (m *MainViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m *MainViewModel) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.model.renderHeader(),
		m.model.renderContent(),
		m.model.renderInspector(),
		m.model.renderStatus(),
	)
}

// helpModel is the foreground of the help overlay. A positive height
// clips the box so the title stays on screen.
type helpModel struct {
	keys   KeyMap
	height int
}

func newHelpModel(k KeyMap, height int) *helpModel {
	return &helpModel{keys: k, height: height}
}

func (h *helpModel) Init() tea.Cmd { return nil }

func (h *helpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return h, nil }

func (h *helpModel) View() string {
	secs := h.keys.helpSections()
	var left, right []helpSection
	for i, sec := range secs {
		// Navigation and Editing on the left, the rest on the right.
		if i%2 == 0 {
			left = append(left, sec)
		} else {
			right = append(right, sec)
		}
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		renderHelpColumn(left), "    ", renderHelpColumn(right))

	title := helpTitleStyle.Render("Keyboard Shortcuts")
	hint := helpDescStyle.Render("Press Esc, ?, or q to close this help")

	if h.height > 0 {
		// title, its margin, the blank line and the hint
		fixed := helpBoxStyle.GetVerticalFrameSize() + 4
		rows := strings.Split(body, "\n")
		if avail := max(h.height-fixed, 0); avail < len(rows) {
			body = strings.Join(rows[:avail], "\n")
		}
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	if body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hint)
	return helpBoxStyle.Render(b.String())
}

func renderHelpColumn(secs []helpSection) string {
	const keyWidth = 10

	var b strings.Builder
	for i, sec := range secs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(helpSectionStyle.Render(sec.title))
		for _, kb := range sec.bindings {
			hk := kb.Help()
			b.WriteString("\n")
			b.WriteString(helpKeyStyle.Width(keyWidth).Render(hk.Key))
			b.WriteString(" ")
			b.WriteString(helpDescStyle.Render(hk.Desc))
		}
	}
	return b.String()
}

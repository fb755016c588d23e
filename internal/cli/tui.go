package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grahalabs/jataka/pkg/dasha"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DashaBrowserModel - Interactive dasha tree navigation
// =============================================================================

// dashaLevel is one level of the browsing stack.
type dashaLevel struct {
	periods []dasha.Period
	cursor  int
}

// DashaBrowserModel is the bubbletea model for browsing the vimsottari
// tree. Enter descends into sub-periods, esc climbs back up.
type DashaBrowserModel struct {
	stack  []dashaLevel
	nowJD  float64
	height int
}

// NewDashaBrowserModel creates a browser rooted at the tree's major
// periods. nowJD marks the currently running chain.
func NewDashaBrowserModel(t dasha.Tree, nowJD float64) DashaBrowserModel {
	return DashaBrowserModel{
		stack:  []dashaLevel{{periods: t.Periods}},
		nowJD:  nowJD,
		height: 15,
	}
}

func (m DashaBrowserModel) Init() tea.Cmd {
	return nil
}

func (m DashaBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	top := &m.stack[len(m.stack)-1]

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if top.cursor > 0 {
				top.cursor--
			}
		case "down", "j":
			if top.cursor < len(top.periods)-1 {
				top.cursor++
			}
		case "enter", "right", "l":
			if children := top.periods[top.cursor].Children; len(children) > 0 {
				m.stack = append(m.stack, dashaLevel{periods: children})
			}
		case "esc", "left", "h":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
			} else {
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m DashaBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Vimsottari Dasha"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ descend  esc up  q quit"))
	b.WriteString("\n")
	if path := m.path(); path != "" {
		b.WriteString(listDimStyle.Render("in " + path))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	top := m.stack[len(m.stack)-1]
	for i, p := range top.periods {
		line := fmt.Sprintf("%-10s %s – %s", p.Lord, fmtJD(p.Start), fmtJD(p.End))
		if p.Contains(m.nowJD) {
			line += "  ●"
		}
		if len(p.Children) > 0 {
			line += "  ▸"
		}

		if i == top.cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// path renders the lord chain of the levels above the current one.
func (m DashaBrowserModel) path() string {
	if len(m.stack) < 2 {
		return ""
	}
	parts := make([]string, 0, len(m.stack)-1)
	for i := 0; i < len(m.stack)-1; i++ {
		lvl := m.stack[i]
		parts = append(parts, string(lvl.periods[lvl.cursor].Lord))
	}
	return strings.Join(parts, " / ")
}

// browseDasha runs the interactive tree browser.
func browseDasha(t dasha.Tree, nowJD float64) error {
	_, err := tea.NewProgram(NewDashaBrowserModel(t, nowJD)).Run()
	return err
}

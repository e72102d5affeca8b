package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type completeModel struct {
	state  *wizardState
	cursor int // 0=Run Again, 1=Exit
}

func newCompleteModel(state *wizardState) *completeModel {
	return &completeModel{state: state}
}

func (m *completeModel) Init() tea.Cmd {
	m.cursor = 1 // Default to Exit
	return nil
}

func (m *completeModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isLeft(msg) && m.cursor > 0 {
			m.cursor--
		}
		if isRight(msg) && m.cursor < 1 {
			m.cursor++
		}
		if isEnter(msg) {
			if m.cursor == 0 {
				return m, func() tea.Msg { return resetMsg{} }
			}
			return m, tea.Quit
		}
		if msg.String() == "q" || isEsc(msg) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *completeModel) View() string {
	var b strings.Builder

	if m.state.renderOnly {
		b.WriteString(successStyle.Render("  Render Complete!"))
	} else {
		b.WriteString(successStyle.Render("  Deploy Complete!"))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Project:  %s\n", selectedStyle.Render(m.state.cfg.Project)))
	b.WriteString(fmt.Sprintf("  Domain:   %s\n", normalStyle.Render(m.state.domain)))
	b.WriteString(fmt.Sprintf("  Staging:  %s\n", normalStyle.Render(m.state.cfg.StagingDir())))

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("  Next Steps"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  $ crmdeploy status                 # check services and proxy"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  $ crmdeploy doctor                 # verify host"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  $ %s/bin/python manage.py createsuperuser", m.state.cfg.VenvDir)))
	b.WriteString("\n\n")

	buttons := []string{"Run Again", "Exit"}
	for i, btn := range buttons {
		if i == m.cursor {
			b.WriteString("  " + borderStyle.Render(selectedStyle.Render(btn)))
		} else {
			b.WriteString("  " + normalStyle.Render("["+btn+"]"))
		}
		b.WriteString("  ")
	}

	b.WriteString(helpStyle.Render("\n\n  left/right: navigate  enter: select  q: quit"))
	return b.String()
}

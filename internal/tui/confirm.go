package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KapsonLabs/crmdeploy/internal/crmdeploy"
)

type confirmModel struct {
	state  *wizardState
	cursor int
}

func newConfirmModel(state *wizardState) *confirmModel {
	return &confirmModel{state: state}
}

func (m *confirmModel) Init() tea.Cmd {
	m.cursor = 0
	return nil
}

func (m *confirmModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenOptions} }
		}
		if (isLeft(msg) || isUp(msg)) && m.cursor > 0 {
			m.cursor--
		}
		if (isRight(msg) || isDown(msg)) && m.cursor < 2 {
			m.cursor++
		}
		if isEnter(msg) {
			switch m.cursor {
			case 0: // Confirm
				return m, func() tea.Msg { return navigateMsg{to: screenPreflight} }
			case 1: // Back
				return m, func() tea.Msg { return navigateMsg{to: screenOptions} }
			case 2: // Cancel
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *confirmModel) View() string {
	var b strings.Builder

	mode := "full deploy"
	if m.state.renderOnly {
		mode = "render only"
	}

	b.WriteString(titleStyle.Render("Confirm"))
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("  Summary"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Project:  %s\n", selectedStyle.Render(m.state.cfg.Project)))
	b.WriteString(fmt.Sprintf("  Domain:   %s\n", selectedStyle.Render(m.state.domain)))
	if m.state.email != "" {
		b.WriteString(fmt.Sprintf("  Email:    %s\n", selectedStyle.Render(m.state.email)))
	}
	b.WriteString(fmt.Sprintf("  Mode:     %s\n", selectedStyle.Render(mode)))

	var opts []string
	for _, o := range []struct{ key, label string }{
		{crmdeploy.KeyDumpDB, "db dump"},
		{crmdeploy.KeyFixtures, "fixtures"},
		{crmdeploy.KeyRecreateVenv, "recreate venv"},
		{crmdeploy.KeyOverwrite, "overwrite files"},
	} {
		if m.state.answers[o.key] {
			opts = append(opts, o.label)
		}
	}
	if len(opts) > 0 {
		b.WriteString(fmt.Sprintf("  Options:  %s\n", normalStyle.Render(strings.Join(opts, ", "))))
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("  Equivalent CLI Command"))
	b.WriteString("\n")
	if m.state.renderOnly {
		b.WriteString(mutedStyle.Render("  $ crmdeploy render"))
	} else {
		b.WriteString(mutedStyle.Render("  $ crmdeploy deploy --yes"))
	}
	b.WriteString("\n\n")

	buttons := []string{"Confirm", "Back", "Cancel"}
	for i, btn := range buttons {
		if i == m.cursor {
			b.WriteString("  " + borderStyle.Render(selectedStyle.Render(btn)))
		} else {
			b.WriteString("  " + normalStyle.Render("["+btn+"]"))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("\n  left/right: navigate  enter: select  esc: back"))
	return b.String()
}

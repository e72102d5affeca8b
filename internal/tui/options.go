package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KapsonLabs/crmdeploy/internal/crmdeploy"
)

type optionRow struct {
	key   string
	label string
	desc  string
}

type optionsModel struct {
	state  *wizardState
	rows   []optionRow
	cursor int
}

func newOptionsModel(state *wizardState) *optionsModel {
	return &optionsModel{
		state: state,
		rows: []optionRow{
			{
				key:   crmdeploy.KeyDumpDB,
				label: "Dump database first",
				desc:  "pg_dump into the backup dir before migrations run",
			},
			{
				key:   crmdeploy.KeyFixtures,
				label: "Load fixtures",
				desc:  "Load the initial data sets listed in deploy.yml",
			},
			{
				key:   crmdeploy.KeyRecreateVenv,
				label: "Recreate virtualenv",
				desc:  "Delete and rebuild an existing virtualenv",
			},
			{
				key:   crmdeploy.KeyOverwrite,
				label: "Overwrite generated files",
				desc:  "Replace installed unit files and vhost when they differ",
			},
		},
	}
}

func (m *optionsModel) Init() tea.Cmd {
	return nil
}

func (m *optionsModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenEmailInput} }
		}
		if isUp(msg) && m.cursor > 0 {
			m.cursor--
		}
		if isDown(msg) && m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		if isSpace(msg) {
			key := m.rows[m.cursor].key
			m.state.answers[key] = !m.state.answers[key]
		}
		if isEnter(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenConfirm} }
		}
	}
	return m, nil
}

func (m *optionsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Options"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Optional steps for this run."))
	b.WriteString("\n\n")

	for i, row := range m.rows {
		check := checkOff
		if m.state.answers[row.key] {
			check = checkOn
		}

		prefix := "  "
		label := normalStyle.Render(row.label)
		if i == m.cursor {
			prefix = cursorChar
			label = selectedStyle.Render(row.label)
		}

		b.WriteString(fmt.Sprintf("  %s %s %s\n", prefix, check, label))
		b.WriteString(fmt.Sprintf("        %s\n", mutedStyle.Render(row.desc)))
	}

	b.WriteString(helpStyle.Render("\n  up/down: navigate  space: toggle  enter: confirm  esc: back"))
	return b.String()
}

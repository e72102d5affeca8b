// Package tui is the interactive deployment wizard: collect the domain,
// email, and optional-step answers, preflight the host, then run the deploy
// sequence with live progress.
package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/KapsonLabs/crmdeploy/internal/crmdeploy"
)

type screen int

const (
	screenWelcome screen = iota
	screenDomainInput
	screenEmailInput
	screenOptions
	screenConfirm
	screenPreflight
	screenProgress
	screenComplete
	screenHelp
)

type navigateMsg struct {
	to screen
}

type resetMsg struct{}

type wizardState struct {
	cfgPath    string
	cfg        crmdeploy.Config
	domain     string
	email      string
	renderOnly bool
	answers    map[string]bool
}

type screenModel interface {
	Init() tea.Cmd
	Update(tea.Msg) (screenModel, tea.Cmd)
	View() string
}

type rootModel struct {
	current  screen
	previous screen
	state    *wizardState
	screens  map[screen]screenModel
	width    int
	height   int
	quitting bool
}

// StartWizard loads the config once and runs the wizard program.
func StartWizard(cfgPath string) error {
	cfg, err := crmdeploy.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	state := &wizardState{
		cfgPath: cfgPath,
		cfg:     cfg,
		domain:  cfg.Domain,
		email:   cfg.AdminEmail,
		answers: defaultAnswers(),
	}
	screens := map[screen]screenModel{
		screenWelcome:     newWelcomeModel(state),
		screenDomainInput: newDomainInputModel(state),
		screenEmailInput:  newEmailInputModel(state),
		screenOptions:     newOptionsModel(state),
		screenConfirm:     newConfirmModel(state),
		screenPreflight:   newPreflightModel(state),
		screenProgress:    newProgressModel(state),
		screenComplete:    newCompleteModel(state),
		screenHelp:        newHelpModel(),
	}

	m := rootModel{
		current: screenWelcome,
		state:   state,
		screens: screens,
	}

	// The step runner logs to stderr; on the alternate screen those lines
	// would print over the UI, so they are muted while the program runs.
	restore := silenceLogs()
	defer restore()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func silenceLogs() (restore func()) {
	prev := log.Logger
	log.Logger = zerolog.New(io.Discard)
	return func() { log.Logger = prev }
}

func defaultAnswers() map[string]bool {
	return map[string]bool{
		crmdeploy.KeyDumpDB:       true,
		crmdeploy.KeyFixtures:     false,
		crmdeploy.KeyRecreateVenv: false,
		crmdeploy.KeyOverwrite:    true,
		// createsuperuser needs a terminal the wizard owns; the complete
		// screen points at the manual command instead.
		crmdeploy.KeySuperuser: false,
	}
}

func (m rootModel) Init() tea.Cmd {
	return m.screens[m.current].Init()
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			return m, tea.Quit
		}
		// Help overlay accessible via '?' except while steps are running
		if msg.String() == "?" && m.current != screenProgress && m.current != screenHelp {
			m.previous = m.current
			m.current = screenHelp
			return m, m.screens[m.current].Init()
		}

	case navigateMsg:
		m.current = msg.to
		s := m.screens[m.current]
		return m, s.Init()

	case resetMsg:
		m.state.renderOnly = false
		m.state.answers = defaultAnswers()
		m.screens[screenOptions] = newOptionsModel(m.state)
		m.current = screenDomainInput
		s := m.screens[m.current]
		return m, s.Init()

	case helpReturnMsg:
		m.current = m.previous
		return m, nil
	}

	s := m.screens[m.current]
	newScreen, cmd := s.Update(msg)
	m.screens[m.current] = newScreen
	return m, cmd
}

func (m rootModel) View() string {
	if m.quitting {
		return ""
	}

	s := m.screens[m.current]
	content := s.View()

	// Step indicator for the input screens only
	if m.current >= screenDomainInput && m.current <= screenConfirm {
		step := int(m.current)
		total := int(screenConfirm)
		content = content + "\n" + mutedStyle.Render(fmt.Sprintf("Step %d of %d", step, total))
	}

	return content
}

package tui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/KapsonLabs/crmdeploy/internal/crmdeploy"
)

type stepStatus int

const (
	stepPending stepStatus = iota
	stepRunning
	stepDone
	stepFailed
)

type progressStep struct {
	label  string
	status stepStatus
	err    error
}

type stepDoneMsg struct {
	index int
	err   error
}

type progressModel struct {
	state    *wizardState
	steps    []progressStep
	deploy   []crmdeploy.Step
	spinner  spinner.Model
	current  int
	done     bool
	errMsg   string
}

func newProgressModel(state *wizardState) *progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &progressModel{
		state:   state,
		spinner: sp,
	}
}

func (m *progressModel) deployer() *crmdeploy.Deployer {
	cfg := m.state.cfg
	cfg.Domain = m.state.domain
	if m.state.email != "" {
		cfg.AdminEmail = m.state.email
	}
	confirm := crmdeploy.StaticConfirmer{Answers: m.state.answers, Default: true}
	return crmdeploy.NewDeployer(cfg, crmdeploy.NewExecutor(), confirm)
}

func (m *progressModel) Init() tea.Cmd {
	d := m.deployer()
	if m.state.renderOnly {
		m.deploy = []crmdeploy.Step{
			{Name: "render files", Run: func(ctx context.Context) error { return d.Render(ctx) }},
		}
	} else {
		m.deploy = d.Steps()
	}

	m.steps = make([]progressStep, len(m.deploy))
	for i, s := range m.deploy {
		m.steps[i] = progressStep{label: s.Name}
	}

	m.current = 0
	m.done = false
	m.errMsg = ""
	m.steps[0].status = stepRunning

	return tea.Batch(m.spinner.Tick, m.runStep(0))
}

func (m *progressModel) runStep(index int) tea.Cmd {
	return func() tea.Msg {
		step := m.deploy[index]
		_, err := captureOutput(func() error {
			return step.Run(context.Background())
		})
		if err != nil && step.Tolerated {
			// Same contract as the CLI path: tolerated steps never stop the run.
			err = nil
		}
		return stepDoneMsg{index: index, err: err}
	}
}

// captureOutput keeps subprocess output away from the alternate screen. The
// pipe is drained concurrently: a step like pip install writes far more than
// the pipe buffer holds, and a full pipe would block the step forever.
func captureOutput(fn func() error) (string, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return "", fn()
	}
	oldOut, oldErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = w, w

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		io.Copy(&buf, r)
		close(done)
	}()

	runErr := fn()
	w.Close()
	<-done
	r.Close()
	os.Stdout, os.Stderr = oldOut, oldErr
	return buf.String(), runErr
}

func (m *progressModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stepDoneMsg:
		m.steps[msg.index].status = stepDone
		if msg.err != nil {
			m.steps[msg.index].status = stepFailed
			m.steps[msg.index].err = msg.err
			m.errMsg = msg.err.Error()
			m.done = true
			return m, nil
		}

		next := msg.index + 1
		if next >= len(m.steps) {
			m.done = true
			return m, func() tea.Msg { return navigateMsg{to: screenComplete} }
		}
		m.current = next
		m.steps[next].status = stepRunning
		return m, m.runStep(next)

	case tea.KeyMsg:
		if m.done && m.errMsg != "" {
			if isEnter(msg) || isEsc(msg) {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *progressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Deploying"))
	b.WriteString("\n\n")

	for _, step := range m.steps {
		switch step.status {
		case stepRunning:
			b.WriteString(fmt.Sprintf("  %s %s\n", m.spinner.View(), selectedStyle.Render(step.label)))
		case stepDone:
			b.WriteString(fmt.Sprintf("  %s %s\n", successStyle.Render("✓"), normalStyle.Render(step.label)))
		case stepFailed:
			b.WriteString(fmt.Sprintf("  %s %s\n", errorStyle.Render("✗"), normalStyle.Render(step.label)))
		default:
			b.WriteString(fmt.Sprintf("    %s\n", mutedStyle.Render(step.label)))
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n  " + errorStyle.Render("Failed: "+m.errMsg))
		b.WriteString(helpStyle.Render("\n\n  enter/esc: quit"))
	}

	return b.String()
}

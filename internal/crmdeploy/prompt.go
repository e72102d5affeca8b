package crmdeploy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompt keys let non-interactive callers (wizard, tests, --yes) answer
// specific gates without string-matching prompt text.
const (
	KeyDeploy       = "deploy"
	KeyRecreateVenv = "venv.recreate"
	KeyOverwrite    = "files.overwrite"
	KeyDumpDB       = "db.dump"
	KeySuperuser    = "superuser"
	KeyFixtures     = "fixtures"
)

// Confirmer answers yes/no gates. def is returned on an empty answer.
type Confirmer interface {
	Confirm(key, prompt string, def bool) (bool, error)
}

type terminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalConfirmer prompts on the given streams; pass nil for defaults
// (stdin/stderr).
func NewTerminalConfirmer(in io.Reader, out io.Writer) Confirmer {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	return &terminalConfirmer{in: bufio.NewReader(in), out: out}
}

func (t *terminalConfirmer) Confirm(_, prompt string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(t.out, "%s %s ", prompt, hint)

	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	case "":
		return def, nil
	default:
		return false, nil
	}
}

// StaticConfirmer answers from a fixed table, falling back to Default. Used
// by the wizard (answers collected up front) and by --yes.
type StaticConfirmer struct {
	Answers map[string]bool
	Default bool
}

func (s StaticConfirmer) Confirm(key, _ string, _ bool) (bool, error) {
	if v, ok := s.Answers[key]; ok {
		return v, nil
	}
	return s.Default, nil
}

// AssumeYesConfirmer is what --yes uses: everything approved except gates
// that are destructive or need a terminal.
func AssumeYesConfirmer() Confirmer {
	return StaticConfirmer{
		Default: true,
		Answers: map[string]bool{
			KeyRecreateVenv: false,
			KeySuperuser:    false,
		},
	}
}

package crmdeploy

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Executor runs external commands. dir is the working directory; empty means
// inherit. Deploy logic never shells out directly so tests can substitute a
// fake.
type Executor interface {
	Stream(ctx context.Context, dir, name string, args ...string) error
	Capture(ctx context.Context, dir, name string, args ...string) (string, error)
	LookPath(name string) (string, error)
}

type systemExecutor struct{}

// NewExecutor returns the real command runner.
func NewExecutor() Executor {
	return systemExecutor{}
}

func (systemExecutor) Stream(ctx context.Context, dir, name string, args ...string) error {
	log.Debug().Str("cmd", name+" "+strings.Join(args, " ")).Str("dir", dir).Msg("exec")
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (systemExecutor) Capture(ctx context.Context, dir, name string, args ...string) (string, error) {
	log.Debug().Str("cmd", name+" "+strings.Join(args, " ")).Str("dir", dir).Msg("exec capture")
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func (systemExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

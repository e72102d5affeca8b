package crmdeploy

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeExec records every command line and fails when a configured substring
// matches. LookPath always succeeds unless the name appears in missing.
type fakeExec struct {
	calls   []string
	failOn  map[string]error
	outputs map[string]string
	missing map[string]bool
}

func newFakeExec() *fakeExec {
	return &fakeExec{
		failOn:  map[string]error{},
		outputs: map[string]string{},
		missing: map[string]bool{},
	}
}

func (f *fakeExec) record(name string, args []string) string {
	line := name
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	f.calls = append(f.calls, line)
	return line
}

func (f *fakeExec) matchErr(line string) error {
	for sub, err := range f.failOn {
		if strings.Contains(line, sub) {
			return err
		}
	}
	return nil
}

func (f *fakeExec) Stream(_ context.Context, _ string, name string, args ...string) error {
	return f.matchErr(f.record(name, args))
}

func (f *fakeExec) Capture(_ context.Context, _ string, name string, args ...string) (string, error) {
	line := f.record(name, args)
	out := ""
	for sub, text := range f.outputs {
		if strings.Contains(line, sub) {
			out = text
		}
	}
	return out, f.matchErr(line)
}

func (f *fakeExec) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", os.ErrNotExist
	}
	return "/usr/bin/" + name, nil
}

func (f *fakeExec) called(sub string) bool {
	for _, line := range f.calls {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

// fatalConfirmer fails the test if any gate is asked; used to assert that
// unchanged files do not prompt.
type fatalConfirmer struct {
	t *testing.T
}

func (f fatalConfirmer) Confirm(key, prompt string, _ bool) (bool, error) {
	f.t.Fatalf("unexpected prompt %q: %s", key, prompt)
	return false, nil
}

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.ProjectDir = dir
	cfg.Domain = "crm.example.com"
	cfg.DatabaseURL = "postgres://crm@localhost/crm"
	cfg.Fixtures = []string{"roles.json", "info.json"}
	cfg.applyDerived()

	for name, env := range map[string]string{
		"etc-systemd":     "CRMDEPLOY_SYSTEMD_DIR",
		"sites-available": "CRMDEPLOY_NGINX_AVAILABLE",
		"sites-enabled":   "CRMDEPLOY_NGINX_ENABLED",
	} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(path, 0o755); err != nil {
			t.Fatal(err)
		}
		t.Setenv(env, path)
	}
	// Make sure no real template tree leaks into the test.
	t.Setenv("CRMDEPLOY_TEMPLATES", filepath.Join(dir, "no-templates"))
	return cfg
}

func testDeployer(t *testing.T, exec Executor, confirm Confirmer) *Deployer {
	t.Helper()
	d := NewDeployer(testConfig(t), exec, confirm)
	d.Out = &bytes.Buffer{}
	return d
}

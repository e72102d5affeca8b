package crmdeploy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderData() RenderData {
	cfg := DefaultConfig()
	cfg.ProjectDir = "/srv/crm"
	cfg.Domain = "crm.example.com"
	cfg.applyDerived()
	return cfg.RenderData()
}

func TestRenderStringMissingKeyErrors(t *testing.T) {
	_, err := renderString("hello {{.NoSuchField}}", testRenderData())
	require.Error(t, err)
}

func TestRenderTemplateBuiltinFallback(t *testing.T) {
	t.Setenv("CRMDEPLOY_TEMPLATES", filepath.Join(t.TempDir(), "missing"))

	out, err := renderTemplate("systemd/gunicorn.service", testRenderData())
	require.NoError(t, err)
	assert.Contains(t, out, "Description=crm gunicorn daemon")
	assert.Contains(t, out, "--bind unix:/run/crm/gunicorn.sock")
	assert.Contains(t, out, "crm.wsgi:application")
}

func TestRenderTemplateUnknownName(t *testing.T) {
	t.Setenv("CRMDEPLOY_TEMPLATES", filepath.Join(t.TempDir(), "missing"))

	_, err := renderTemplate("systemd/nope.service", testRenderData())
	require.Error(t, err)
}

func TestRenderTemplateDirOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "systemd"), 0o755))
	custom := "[Service]\nExecStart={{.VenvDir}}/bin/gunicorn {{.WSGIModule}}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "systemd", "gunicorn.service"), []byte(custom), 0o644))
	t.Setenv("CRMDEPLOY_TEMPLATES", dir)

	out, err := renderTemplate("systemd/gunicorn.service", testRenderData())
	require.NoError(t, err)
	assert.Equal(t, "[Service]\nExecStart=/srv/crm/venv/bin/gunicorn crm.wsgi:application\n", out)
}

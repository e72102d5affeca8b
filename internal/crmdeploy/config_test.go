package crmdeploy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deploy.yml")
	require.NoError(t, os.WriteFile(path, []byte("domain: crm.example.com\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "crm", cfg.Project)
	assert.Equal(t, dir, cfg.ProjectDir)
	assert.Equal(t, "python3", cfg.Python)
	assert.Equal(t, filepath.Join(dir, "venv"), cfg.VenvDir)
	assert.Equal(t, "/run/crm/gunicorn.sock", cfg.SocketPath)
	assert.Equal(t, filepath.Join(dir, "staticfiles"), cfg.StaticRoot)
	assert.Equal(t, "crm.wsgi:application", cfg.WSGIModule)
	assert.Equal(t, "crm.asgi:application", cfg.ASGIModule)
	assert.True(t, cfg.ASGI)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deploy.yml")
	yml := `
project: sales
domain: sales.example.com
workers: 5
asgi: false
socket_path: /run/sales/web.sock
fixtures:
  - roles.json
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sales", cfg.Project)
	assert.Equal(t, 5, cfg.Workers)
	assert.False(t, cfg.ASGI)
	assert.Equal(t, "/run/sales/web.sock", cfg.SocketPath)
	assert.Equal(t, []string{"roles.json"}, cfg.Fixtures)
	assert.Equal(t, "sales.wsgi:application", cfg.WSGIModule)
}

func TestLoadConfigHydratesFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deploy.yml")
	require.NoError(t, os.WriteFile(path, []byte("project: crm\n"), 0o644))

	env := "DOMAIN=env.example.com\nADMIN_EMAIL=ops@example.com\nDATABASE_URL=postgres://u@h/db\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o640))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env.example.com", cfg.Domain)
	assert.Equal(t, "ops@example.com", cfg.AdminEmail)
	assert.Equal(t, "postgres://u@h/db", cfg.DatabaseURL)
}

func TestLoadConfigYamlWinsOverDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deploy.yml")
	require.NoError(t, os.WriteFile(path, []byte("domain: yaml.example.com\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOMAIN=env.example.com\n"), 0o640))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml.example.com", cfg.Domain)
}

func TestLoadConfigExplicitMissingFileErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestUnitFiles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.applyDerived()

	units := cfg.UnitFiles()
	require.Len(t, units, 3)
	assert.Equal(t, "crm-gunicorn.socket", units[0].Name)
	assert.Equal(t, "crm-gunicorn.service", units[1].Name)
	assert.Equal(t, "crm-daphne.service", units[2].Name)

	cfg.ASGI = false
	assert.Len(t, cfg.UnitFiles(), 2)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Domain = "crm.example.com"
	cfg.applyDerived()
	require.NoError(t, cfg.Validate())

	missing := cfg
	missing.Domain = ""
	assert.Error(t, missing.Validate())

	noWorkers := cfg
	noWorkers.Workers = 0
	assert.Error(t, noWorkers.Validate())

	noProject := cfg
	noProject.Project = " "
	assert.Error(t, noProject.Validate())
}

func TestDirOverrides(t *testing.T) {
	t.Setenv("CRMDEPLOY_SYSTEMD_DIR", "/tmp/sd")
	t.Setenv("CRMDEPLOY_NGINX_AVAILABLE", "/tmp/na")
	t.Setenv("CRMDEPLOY_NGINX_ENABLED", "/tmp/ne")

	assert.Equal(t, "/tmp/sd", SystemdDir())
	assert.Equal(t, "/tmp/na", NginxAvailableDir())
	assert.Equal(t, "/tmp/ne", NginxEnabledDir())
}

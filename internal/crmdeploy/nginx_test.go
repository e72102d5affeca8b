package crmdeploy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stagedVhost(t *testing.T, d *Deployer) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(d.Config.NginxStagingDir(), d.Config.VhostName()))
	require.NoError(t, err)
	return string(b)
}

func TestWriteVhost(t *testing.T) {
	d := testDeployer(t, newFakeExec(), fatalConfirmer{t})

	require.NoError(t, d.writeVhost(context.Background()))

	conf := stagedVhost(t, d)
	assert.Contains(t, conf, "server_name crm.example.com;")
	assert.Contains(t, conf, "proxy_pass http://unix:/run/crm/gunicorn.sock;")
	assert.Contains(t, conf, "alias "+d.Config.StaticRoot+"/;")
	assert.Contains(t, conf, "location /ws/")
	assert.Contains(t, conf, "proxy_pass http://127.0.0.1:8001;")
}

func TestWriteVhostWithoutASGIOmitsWebsocketBlock(t *testing.T) {
	d := testDeployer(t, newFakeExec(), fatalConfirmer{t})
	d.Config.ASGI = false

	require.NoError(t, d.writeVhost(context.Background()))
	assert.NotContains(t, stagedVhost(t, d), "location /ws/")
}

func TestInstallVhostEnablesSite(t *testing.T) {
	ctx := context.Background()
	d := testDeployer(t, newFakeExec(), StaticConfirmer{Default: true})
	require.NoError(t, d.writeVhost(ctx))
	require.NoError(t, d.installVhost(ctx))

	available := filepath.Join(NginxAvailableDir(), d.Config.VhostName())
	assert.FileExists(t, available)

	link := filepath.Join(NginxEnabledDir(), d.Config.VhostName())
	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, available, target)

	// Re-running with a correct link in place is a no-op.
	d.Confirm = fatalConfirmer{t}
	require.NoError(t, d.installVhost(ctx))
}

func TestEnableSiteRefusesRegularFile(t *testing.T) {
	ctx := context.Background()
	d := testDeployer(t, newFakeExec(), StaticConfirmer{Default: true})
	require.NoError(t, d.writeVhost(ctx))

	link := filepath.Join(NginxEnabledDir(), d.Config.VhostName())
	require.NoError(t, os.WriteFile(link, []byte("manual config\n"), 0o644))

	err := d.installVhost(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a symlink")
}

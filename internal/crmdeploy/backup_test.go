package crmdeploy

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupInvokesPgDump(t *testing.T) {
	exec := newFakeExec()
	d := testDeployer(t, exec, fatalConfirmer{t})

	require.NoError(t, d.Backup(context.Background()))

	require.Len(t, exec.calls, 1)
	assert.Contains(t, exec.calls[0], "pg_dump --no-owner --dbname postgres://crm@localhost/crm -f")
	assert.Contains(t, exec.calls[0], d.Config.BackupDir)
	assert.Contains(t, exec.calls[0], ".sql")
}

func TestBackupWithoutDatabaseURLErrors(t *testing.T) {
	exec := newFakeExec()
	d := testDeployer(t, exec, fatalConfirmer{t})
	d.Config.DatabaseURL = ""

	require.Error(t, d.Backup(context.Background()))
	assert.Empty(t, exec.calls)
}

func TestDumpDatabaseSkipsWhenUnconfigured(t *testing.T) {
	exec := newFakeExec()
	d := testDeployer(t, exec, fatalConfirmer{t})
	d.Config.DatabaseURL = ""
	d.Out = &bytes.Buffer{}

	require.NoError(t, d.dumpDatabase(context.Background()))
	assert.Empty(t, exec.calls)
}

func TestDumpDatabaseDeclined(t *testing.T) {
	exec := newFakeExec()
	d := testDeployer(t, exec, StaticConfirmer{Answers: map[string]bool{KeyDumpDB: false}})

	require.NoError(t, d.dumpDatabase(context.Background()))
	assert.Empty(t, exec.calls)
}

package cli

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidedeck/internal/config"
)

func TestBackupsRestoreUndoesReset(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			isolate(t)
			_, _, err := run(t, "", "--backend", backend, "edit", "1", "title", "Judul Lain")
			require.NoError(t, err)
			_, _, err = run(t, "", "--backend", backend, "reset", "--yes")
			require.NoError(t, err)

			out, _, err := run(t, "", "--backend", backend, "--format", "json", "backups", "list")
			require.NoError(t, err)
			var entries []BackupEntry
			decode(t, out, &entries)
			require.NotEmpty(t, entries)
			assert.Equal(t, "Judul Lain", entries[0].Title)
			assert.Equal(t, 7, entries[0].Slides)

			out, _, err = run(t, "", "--backend", backend, "backups", "restore")
			require.NoError(t, err)
			assert.Equal(t, "Restored backup 1 (7 slides).\n", out)

			out, _, err = run(t, "", "--backend", backend, "show", "1")
			require.NoError(t, err)
			assert.Contains(t, out, "Judul Lain")
		})
	}
}

func TestBackupsListText(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "", "backups", "list")
	require.NoError(t, err)
	assert.Equal(t, "No backups.\n", out)

	_, _, err = run(t, "", "edit", "2", "content", "satu")
	require.NoError(t, err)
	_, _, err = run(t, "", "edit", "2", "content", "dua")
	require.NoError(t, err)
	out, _, err = run(t, "", "backups", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "FIRST TITLE")
	assert.Contains(t, out, "SOPAN & ETIKA")
}

func TestBackupsRejectsBadRequests(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "", "--backend", "memory", "backups", "list")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = run(t, "", "backups", "restore")
	assert.Equal(t, ExitFailure, GetExitCode(err), "nothing to restore yet")

	_, _, err = run(t, "", "edit", "1", "title", "x")
	require.NoError(t, err)
	_, _, err = run(t, "", "edit", "1", "title", "y")
	require.NoError(t, err)
	_, _, err = run(t, "", "backups", "restore", "9")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSchemaIsJSON(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "", "schema")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
	assert.Contains(t, out, "accentColor")
}

func TestConfigInit(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "", "--slot", "talk_v2", "config", "init")
	require.NoError(t, err)
	p, err := config.ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+p+"\n", out)
	_, err = os.Stat(p)
	require.NoError(t, err)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "talk_v2", cfg.Storage.Slot)

	_, _, err = run(t, "", "config", "init")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	_, _, err = run(t, "", "config", "init", "--force")
	assert.NoError(t, err)
}

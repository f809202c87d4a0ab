// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/config"
	"github.com/jeranaias/bingogen/internal/history"
	"github.com/jeranaias/bingogen/internal/util"
)

// isolate points every config and history path at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BINGOGEN_HOME", filepath.Join(home, ".bingogen"))
	for _, env := range []string{"BINGOGEN_EXPORT_DIR", "BINGOGEN_BOARD_SIZE", "BINGOGEN_GOALS",
		"BINGOGEN_HISTORY", "BINGOGEN_HISTORY_DB", "BINGOGEN_LOG_LEVEL", "BINGOGEN_THEME"} {
		t.Setenv(env, "")
	}
	config.ResetGlobalForTesting()
	t.Cleanup(config.ResetGlobalForTesting)
	return home
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// =============================================================================
// ROOT
// =============================================================================

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bingogen "+Version)
}

func TestRootRejectsArguments(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "unexpected")
	assert.Error(t, err)
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	isolate(t)
	cfg, err := loadConfig(&globalOptions{exportDir: "/tmp/boards", size: 7, logLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/boards", cfg.Export.Dir)
	assert.Equal(t, 7, cfg.Board.DefaultSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Same(t, cfg, config.Global())
}

func TestLoadConfigRejectsBadFlags(t *testing.T) {
	isolate(t)
	_, err := loadConfig(&globalOptions{size: 12})
	assert.Error(t, err)
	_, err = loadConfig(&globalOptions{logLevel: "loud"})
	assert.Error(t, err)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := loadConfig(&globalOptions{configPath: filepath.Join(t.TempDir(), "nope.toml")})
	assert.Error(t, err)
}

func TestStartRuntimeExportDir(t *testing.T) {
	isolate(t)
	tests := []struct {
		name          string
		createOnStart bool
		wantDir       bool
		wantLog       string
	}{
		{"created on start", true, true, ""},
		{"missing is reported", false, false, "export directory missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Export.Dir = filepath.Join(t.TempDir(), "boards")
			cfg.Export.CreateOnStart = tt.createOnStart
			cfg.History.Enabled = false

			var logs bytes.Buffer
			rt := startRuntime(context.Background(), cfg, slog.New(slog.NewTextHandler(&logs, nil)))
			rt.Close()

			assert.Equal(t, tt.wantDir, util.DirExists(cfg.Export.Dir))
			if tt.wantLog != "" {
				assert.Contains(t, logs.String(), tt.wantLog)
			} else {
				assert.NotContains(t, logs.String(), "export directory")
			}
		})
	}
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfigInitSetGet(t *testing.T) {
	home := isolate(t)

	out, err := execute(t, "", "config", "init")
	require.NoError(t, err)
	path := filepath.Join(home, ".bingogen", "config.toml")
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = execute(t, "", "config", "init")
	assert.Error(t, err, "init does not overwrite")
	_, err = execute(t, "", "config", "init", "--force")
	assert.NoError(t, err)

	_, err = execute(t, "", "config", "set", "board.default_size", "7")
	require.NoError(t, err)

	config.ResetGlobalForTesting()
	out, err = execute(t, "", "config", "get", "board.default_size")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestConfigSetRejectsInvalidValue(t *testing.T) {
	home := isolate(t)
	_, err := execute(t, "", "config", "set", "board.default_size", "12")
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(home, ".bingogen", "config.toml"))

	_, err = execute(t, "", "config", "set", "no.such.key", "1")
	assert.Error(t, err)
}

func TestConfigSetDoesNotSaveFlagOverrides(t *testing.T) {
	home := isolate(t)
	_, err := execute(t, "", "--size", "9", "config", "set", "ui.theme", "dark")
	require.NoError(t, err)

	cfg, err := config.LoadFromPath(filepath.Join(home, ".bingogen", "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, 5, cfg.Board.DefaultSize)
}

func TestConfigShowListsKeys(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "config", "show")
	require.NoError(t, err)
	for _, key := range []string{"export.dir", "bridge.on_overflow", "board.default_size", "ui.exports_per_second"} {
		assert.Contains(t, out, key)
	}

	out, err = execute(t, "", "config", "show", "--toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[bridge]")
}

func TestConfigPath(t *testing.T) {
	home := isolate(t)
	out, err := execute(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".bingogen", "config.toml")+"\n", out)

	out, err = execute(t, "", "--config", "/etc/bingogen.toml", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, "/etc/bingogen.toml\n", out)
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistoryEmpty(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No exports recorded yet.")
}

func TestHistoryListsAndPrunes(t *testing.T) {
	home := isolate(t)
	ledger, err := history.Open(filepath.Join(home, ".bingogen", "history.db"))
	require.NoError(t, err)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"old_bingo_sync.json", "new_lockout_live.json"} {
		_, err := ledger.Record(context.Background(), bridge.ExportRecord{
			Format:    bridge.FormatBingoSync,
			Filename:  name,
			Path:      "/exports/" + name,
			Cells:     25,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	require.NoError(t, ledger.Close())

	out, err := execute(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "new_lockout_live.json")
	assert.Contains(t, out, "old_bingo_sync.json")
	assert.Contains(t, out, "Showing 2 of 2 exports")
	assert.Less(t, strings.Index(out, "new_lockout_live"), strings.Index(out, "old_bingo_sync"))

	out, err = execute(t, "", "history", "--prune", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 records")
	assert.NotContains(t, out, "old_bingo_sync.json")
}

// =============================================================================
// SHELL
// =============================================================================

func TestShellScriptExports(t *testing.T) {
	home := isolate(t)
	exportDir := filepath.Join(home, "boards")

	script := "size 3\nset 2 2 Beat the boss\nexport lockout\nquit\n"
	out, err := execute(t, script, "--export-dir", exportDir, "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] Created file '")

	entries, err := os.ReadDir(exportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_lockout_live.json"))

	// The worker recorded the export before the shell exited.
	out, err = execute(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, entries[0].Name())
}

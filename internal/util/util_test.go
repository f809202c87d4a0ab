// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	data := []byte(`[{"name":"a"}]`)

	require.NoError(t, AtomicWriteFile(path, data, 0644))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, content)
}

func TestAtomicWriteFile_RequiresParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "board.json")

	err := AtomicWriteFile(path, []byte("x"), 0644)
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(statErr))
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")

	require.NoError(t, AtomicWriteFile(path, []byte("initial"), 0644))
	require.NoError(t, AtomicWriteFile(path, []byte("updated"), 0644))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "updated", string(content))
}

func TestAtomicWriteFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, AtomicWriteFile(filepath.Join(dir, "a.json"), []byte("{}"), 0644))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.json", entries[0].Name())
}

func TestAtomicWriteFile_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "private.json")
	require.NoError(t, AtomicWriteFile(path, []byte("{}"), 0600))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestAtomicWriteFileMkdir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config.toml")

	require.NoError(t, AtomicWriteFileMkdir(path, []byte("x = 1"), 0600, 0700))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1", string(content))
	assert.True(t, DirExists(filepath.Dir(path)))
}

// =============================================================================
// PATH TESTS
// =============================================================================

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".bingogen"), ExpandHome("~/.bingogen"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/tmp/x", ExpandHome("/tmp/x"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestExecutableDir(t *testing.T) {
	assert.True(t, DirExists(ExecutableDir()))
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	assert.True(t, DirExists(dir))
	assert.False(t, DirExists(file))
	assert.False(t, DirExists(filepath.Join(dir, "nope")))
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 5, StringWidth("hello"))
	assert.Equal(t, 6, StringWidth("日本語"))
	assert.Equal(t, 0, StringWidth(""))
}

func TestTruncateWidth(t *testing.T) {
	assert.Equal(t, "hello", TruncateWidth("hello", 10))
	assert.Equal(t, "hell…", TruncateWidth("hello world", 5))
	assert.Equal(t, "日本…", TruncateWidth("日本語テキスト", 5))
	assert.LessOrEqual(t, StringWidth(TruncateWidth("日本語テキスト", 4)), 4)
	assert.Equal(t, "", TruncateWidth("x", 0))
}

func TestFitWidth(t *testing.T) {
	assert.Equal(t, "ab  ", FitWidth("ab", 4))
	assert.Equal(t, "abc…", FitWidth("abcdefgh", 4))
	assert.Equal(t, 6, StringWidth(FitWidth("日本", 6)))
	assert.Equal(t, "", FitWidth("ab", 0))
}

func TestWrapWidth(t *testing.T) {
	assert.Equal(t, []string{"abc", "def", "gh"}, WrapWidth("abcdefgh", 3, 3))
	assert.Equal(t, []string{"abc", "de…"}, WrapWidth("abcdefgh", 3, 2))
	assert.Equal(t, []string{"ab"}, WrapWidth("  ab  ", 5, 2))
	assert.Nil(t, WrapWidth("", 5, 2))
	assert.Nil(t, WrapWidth("abc", 0, 2))

	for _, line := range WrapWidth(strings.Repeat("goal ", 20), 10, 3) {
		assert.LessOrEqual(t, StringWidth(line), 10)
	}
}

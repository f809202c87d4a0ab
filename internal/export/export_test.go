// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/grid"
)

var fixedTime = time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)

func newTestEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	dir := t.TempDir()
	return NewEngine(&Options{OutputDir: dir, Now: func() time.Time { return fixedTime }}, nil), dir
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "2025-03-14_09-26-53_bingo_sync.json", Filename(fixedTime, bridge.FormatBingoSync, ".json"))
	assert.Equal(t, "2025-03-14_09-26-53_lockout_live.json", Filename(fixedTime, bridge.FormatLockoutLive, ".json"))
}

func TestBingoSyncEndToEndSizeFive(t *testing.T) {
	engine, dir := newTestEngine(t)

	var b grid.Board
	goals := make([]string, 25)
	for i := range goals {
		goals[i] = string(rune('A' + i))
	}
	b.Fill(5, goals)

	res, err := engine.BingoSync(grid.BingoSyncCards(&b, 5))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14_09-26-53_bingo_sync.json", res.Filename)
	assert.Equal(t, []string{res.Filename}, listFiles(t, dir))

	data, err := os.ReadFile(filepath.Join(dir, res.Filename))
	require.NoError(t, err)
	assert.Equal(t, res.Document, data)

	var cards []bridge.BingoSyncCard
	require.NoError(t, json.Unmarshal(data, &cards))
	require.Len(t, cards, 25)
	for i, c := range cards {
		assert.Equal(t, goals[i], c.Name)
	}
}

func TestBingoSyncSizeThreeWritesPaddedBoard(t *testing.T) {
	engine, dir := newTestEngine(t)

	var b grid.Board
	b.Fill(3, strings.Split("A B C D E F G H I", " "))

	res, err := engine.BingoSync(grid.BingoSyncCards(&b, 3))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, res.Filename))
	require.NoError(t, err)
	var cards []bridge.BingoSyncCard
	require.NoError(t, json.Unmarshal(data, &cards))
	// 25, not 23: the last row is padded too so the board stays centered.
	require.Len(t, cards, 25)
	assert.Equal(t, "A", cards[6].Name)
	assert.Equal(t, "I", cards[18].Name)
	assert.Equal(t, " ", cards[24].Name)
}

func TestBingoSyncJSONIsPrettyPrinted(t *testing.T) {
	engine, _ := newTestEngine(t)

	res, err := engine.BingoSync([]bridge.BingoSyncCard{{Name: "a"}})
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"name\": \"a\"\n  }\n]", string(res.Document))
}

func TestJSONKeepsMarkupCharacters(t *testing.T) {
	data, err := NewBingoSyncExporter().Export([]bridge.BingoSyncCard{{Name: "Beat <Boss> & win"}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Beat <Boss> & win"`)
	assert.NotContains(t, string(data), `\u003c`)
	assert.False(t, strings.HasSuffix(string(data), "\n"))

	board := grid.LockoutLiveBoard(&grid.Board{}, 3)
	board.Objectives[0].Goal = "A&B"
	data, err = NewLockoutLiveExporter().Export(board)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"goal": "A&B"`)
}

func TestLockoutLiveWritesNumberedObjectives(t *testing.T) {
	engine, dir := newTestEngine(t)

	var b grid.Board
	goals := make([]string, 49)
	for i := range goals {
		goals[i] = strings.Repeat("g", 60)
	}
	b.Fill(7, goals)

	res, err := engine.LockoutLive(grid.LockoutLiveBoard(&b, 7))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-14_09-26-53_lockout_live.json"}, listFiles(t, dir))

	var doc bridge.LockoutLiveBoard
	require.NoError(t, json.Unmarshal(res.Document, &doc))
	assert.Equal(t, "0.0.0", doc.Version)
	assert.Equal(t, "None", doc.Game)
	require.Len(t, doc.Objectives, 49)
	for i, o := range doc.Objectives {
		assert.Equal(t, i+1, o.PreferredGridPosition)
	}
	assert.Contains(t, doc.Limits, "board")
	assert.Contains(t, doc.Limits, "line")
}

func TestLockoutLiveRejectsLongGoal(t *testing.T) {
	engine, dir := newTestEngine(t)

	var b grid.Board
	goals := make([]string, 25)
	for i := range goals {
		goals[i] = "ok"
	}
	goals[7] = strings.Repeat("x", 61)
	b.Fill(5, goals)

	res, err := engine.LockoutLive(grid.LockoutLiveBoard(&b, 5))
	assert.Nil(t, res)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 8, verr.Position)
	assert.Equal(t, 61, verr.Length)
	assert.Contains(t, err.Error(), "longer than 60 characters")
	assert.Empty(t, listFiles(t, dir), "no partial board is written")
}

func TestGoalLengthCountsCharacters(t *testing.T) {
	assert.Equal(t, 60, GoalLength(strings.Repeat("é", 60)))
	assert.Equal(t, 1, GoalLength("e\u0301"), "decomposed form is normalized")
	assert.False(t, GoalTooLong(strings.Repeat("ß", 60)))
	assert.True(t, GoalTooLong(strings.Repeat("ß", 61)))
}

func TestMissingExportDirIsAnError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	engine := NewEngine(&Options{OutputDir: dir}, nil)

	res, err := engine.BingoSync([]bridge.BingoSyncCard{{Name: "a"}})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrExportDirMissing)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "engine must not create the directory")
}

func TestWriteFailureIsReported(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	engine := NewEngine(&Options{OutputDir: dir}, nil)
	res, err := engine.BingoSync([]bridge.BingoSyncCard{{Name: "a"}})
	assert.Nil(t, res, "no filename is reported for a failed write")
	assert.ErrorContains(t, err, "write file")
}

func TestExportPathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	engine := NewEngine(&Options{OutputDir: file}, nil)
	_, err := engine.LockoutLive(bridge.NewLockoutLiveBoard(nil))
	assert.ErrorContains(t, err, "not a directory")
}

func TestExporterRejectsWrongDocument(t *testing.T) {
	_, err := NewBingoSyncExporter().Export("nope")
	assert.Error(t, err)
	_, err = NewLockoutLiveExporter().Export([]bridge.BingoSyncCard{})
	assert.Error(t, err)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/config"
	"github.com/jeranaias/bingogen/internal/grid"
	"github.com/jeranaias/bingogen/internal/ui/components"
	"github.com/jeranaias/bingogen/internal/ui/styles"
)

// =============================================================================
// TEST HARNESS
// =============================================================================

type harness struct {
	m        *Model
	worker   *bridge.BackendReceiver
	toUI     *bridge.FrontendHandle
	copied   []string
	copyErr  error
	fixedNow time.Time
}

func newHarness(t *testing.T, tweak func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Export.Dir = t.TempDir()
	cfg.UI.ExportsPerSecond = 0
	if tweak != nil {
		tweak(cfg)
	}

	worker, toWorker, fromWorker, toUI := bridge.CreatePair(bridge.Options{})
	h := &harness{
		worker:   worker,
		toUI:     toUI,
		fixedNow: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	h.m = New(Deps{
		Config:    cfg,
		Theme:     styles.NewTheme("dark"),
		Backend:   toWorker,
		Frontend:  fromWorker,
		PoolCount: -1,
		Clipboard: func(s string) error {
			if h.copyErr != nil {
				return h.copyErr
			}
			h.copied = append(h.copied, s)
			return nil
		},
		Now: func() time.Time { return h.fixedNow },
	})
	t.Cleanup(h.m.Shutdown)
	h.m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		h.m.Update(keyMsg(k))
	}
}

func (h *harness) deliver(msg bridge.MessageToFrontend) tea.Cmd {
	_, cmd := h.m.Update(FrontendMsg{Msg: msg})
	return cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func goals(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("goal %d", i+1)
	}
	return out
}

// =============================================================================
// REQUESTS
// =============================================================================

func TestExportBingoSyncSendsActiveCells(t *testing.T) {
	h := newHarness(t, nil)
	h.m.board.Set(2, 2, "first")

	h.press("B")

	msg, ok := h.worker.TryRecv()
	require.True(t, ok, "request should reach the worker")
	req, ok := msg.(bridge.CreateBingoSyncFile)
	require.True(t, ok, "got %T", msg)
	assert.NotEmpty(t, req.RequestID)
	require.Len(t, req.Cards, 25)
	assert.Equal(t, "first", req.Cards[0].Name)
	assert.Equal(t, 1, h.m.Pending())
}

func TestExportLockoutLiveSendsObjectives(t *testing.T) {
	h := newHarness(t, nil)
	h.press("3")
	h.m.board.Set(3, 3, "center-ish")

	h.press("L")

	msg, ok := h.worker.TryRecv()
	require.True(t, ok)
	req, ok := msg.(bridge.CreateLockoutLiveFile)
	require.True(t, ok, "got %T", msg)
	require.Len(t, req.Board.Objectives, 9)
	assert.Equal(t, "center-ish", req.Board.Objectives[0].Goal)
}

func TestRandomizeRequestsBoardCount(t *testing.T) {
	h := newHarness(t, nil)
	h.press("7", "r")

	msg, ok := h.worker.TryRecv()
	require.True(t, ok)
	req, ok := msg.(bridge.RandomizeBoard)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, 7, req.Size)
	assert.Equal(t, 49, req.Count)
}

func TestRateLimiterThrottlesRequests(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.UI.ExportsPerSecond = 1 })

	h.press("B", "B")

	assert.Equal(t, 1, h.worker.Len(), "second request should be throttled")
	assert.Equal(t, 1, h.m.Pending())
	toasts := h.m.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, bridge.NotificationWarning, toasts[0].Kind)
}

func TestNewLimiterDisabled(t *testing.T) {
	l := newLimiter(0)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow())
	}
}

// =============================================================================
// WORKER REPLIES
// =============================================================================

func TestNotificationResolvesPending(t *testing.T) {
	h := newHarness(t, nil)
	h.press("B", "L")
	require.Equal(t, 2, h.m.Pending())

	cmd := h.deliver(bridge.AddNotification{Type: bridge.NotificationSuccess, Message: "Created file 'a.json'"})

	assert.NotNil(t, cmd, "receive must be re-armed")
	assert.Equal(t, 1, h.m.Pending())
	toasts := h.m.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Created file 'a.json'", toasts[0].Message)
	assert.Equal(t, components.StatusWaiting, h.m.statusBar.Status)

	h.deliver(bridge.AddNotification{Type: bridge.NotificationSuccess, Message: "Created file 'b.json'"})
	assert.Equal(t, 0, h.m.Pending())
	assert.Equal(t, components.StatusReady, h.m.statusBar.Status)
}

func TestStickyErrorSetsErrorStatus(t *testing.T) {
	h := newHarness(t, nil)
	h.deliver(bridge.AddNotification{Type: bridge.NotificationError, Message: "Error: 'disk full'", Sticky: true})
	assert.Equal(t, components.StatusError, h.m.statusBar.Status)

	h.press("esc")
	assert.Empty(t, h.m.Toasts())
	assert.Equal(t, components.StatusReady, h.m.statusBar.Status)
}

func TestExportFinishedIsRecorded(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.History.Limit = 2 })

	for i := 1; i <= 3; i++ {
		h.deliver(bridge.ExportFinished{Record: bridge.ExportRecord{
			ID:       fmt.Sprintf("rec-%d", i),
			Format:   bridge.FormatBingoSync,
			Filename: fmt.Sprintf("board_%d.json", i),
			Path:     fmt.Sprintf("/tmp/board_%d.json", i),
			Document: []byte(`[{"name": "a"}]`),
		}})
	}

	exports := h.m.Exports()
	require.Len(t, exports, 2, "list is trimmed to the history limit")
	assert.Equal(t, "rec-3", exports[0].ID)
	assert.Equal(t, "rec-2", exports[1].ID)
	assert.Equal(t, 0, h.m.Pending(), "ExportFinished does not resolve a request")
}

func TestFillBoardMatchingSize(t *testing.T) {
	h := newHarness(t, nil)
	require.Equal(t, grid.Size(5), h.m.Size())

	h.deliver(bridge.FillBoard{RequestID: "r1", Size: 5, Goals: goals(25)})

	b := h.m.Board()
	assert.Equal(t, "goal 1", b.Get(2, 2))
	assert.Equal(t, "goal 25", b.Get(6, 6))
	assert.Equal(t, "", b.Get(1, 1))
}

func TestFillBoardForOldSizeIsIgnored(t *testing.T) {
	h := newHarness(t, nil)
	h.deliver(bridge.FillBoard{RequestID: "r1", Size: 7, Goals: goals(49)})

	b := h.m.Board()
	assert.Equal(t, grid.Board{}, b)
}

func TestInitDrainsQueuedMessages(t *testing.T) {
	h := newHarness(t, nil)
	h.toUI.Send(bridge.FillBoard{RequestID: "r1", Size: 5, Goals: goals(25)})
	h.toUI.SendInfo("Randomized 5x5 board")

	cmd := h.m.Init()

	assert.NotNil(t, cmd)
	b := h.m.Board()
	assert.Equal(t, "goal 1", b.Get(2, 2))
	require.Len(t, h.m.Toasts(), 1)
	assert.Equal(t, "Randomized 5x5 board", h.m.Toasts()[0].Message)
}

func TestWaitForFrontendReportsClose(t *testing.T) {
	_, toWorker, fromWorker, toUI := bridge.CreatePair(bridge.Options{})
	defer toWorker.Close()
	toUI.Close()

	msg := waitForFrontend(context.Background(), fromWorker)()
	_, ok := msg.(BridgeClosedMsg)
	assert.True(t, ok, "got %T", msg)
}

// =============================================================================
// LOCAL MESSAGES
// =============================================================================

func TestPoolReloadDoesNotResolvePending(t *testing.T) {
	h := newHarness(t, nil)
	h.press("r")

	h.m.Update(PoolReloadedMsg{Count: 120})

	assert.Equal(t, 1, h.m.Pending())
	assert.Equal(t, 120, h.m.header.PoolCount)
	require.Len(t, h.m.Toasts(), 1)
	assert.Equal(t, bridge.NotificationInfo, h.m.Toasts()[0].Kind)
}

func TestPoolReloadFailureWarns(t *testing.T) {
	h := newHarness(t, nil)
	h.m.Update(PoolReloadedMsg{Err: errors.New("bad yaml")})

	assert.Equal(t, -1, h.m.header.PoolCount)
	require.Len(t, h.m.Toasts(), 1)
	assert.Equal(t, bridge.NotificationWarning, h.m.Toasts()[0].Kind)
}

func TestHistoryLoadedMergesWithSessionExports(t *testing.T) {
	h := newHarness(t, nil)
	h.deliver(bridge.ExportFinished{Record: bridge.ExportRecord{ID: "new"}})

	h.m.Update(HistoryLoadedMsg{Records: []bridge.ExportRecord{{ID: "new"}, {ID: "old"}}})

	exports := h.m.Exports()
	require.Len(t, exports, 2)
	assert.Equal(t, "new", exports[0].ID)
	assert.Equal(t, "old", exports[1].ID)
}

type fakeHistory struct {
	recs  []bridge.ExportRecord
	limit int
}

func (f *fakeHistory) List(_ context.Context, limit int) ([]bridge.ExportRecord, error) {
	f.limit = limit
	return f.recs, nil
}

func TestLoadHistoryPassesLimit(t *testing.T) {
	f := &fakeHistory{recs: []bridge.ExportRecord{{ID: "a"}}}
	msg := loadHistory(context.Background(), f, 7)()

	loaded, ok := msg.(HistoryLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, 7, f.limit)
	assert.Len(t, loaded.Records, 1)
}

// =============================================================================
// BOARD EDITING
// =============================================================================

func TestEditCommitWritesTrimmedText(t *testing.T) {
	h := newHarness(t, nil)
	h.press("right", "enter")
	require.True(t, h.m.Editing())
	assert.Equal(t, components.StatusEditing, h.m.statusBar.Status)

	h.press("  Kill a boss  ", "enter")

	assert.False(t, h.m.Editing())
	b := h.m.Board()
	assert.Equal(t, "Kill a boss", b.Get(2, 3))
}

func TestEditCancelKeepsText(t *testing.T) {
	h := newHarness(t, nil)
	h.m.board.Set(2, 2, "keep")

	h.press("i", "xyz", "esc")

	assert.False(t, h.m.Editing())
	b := h.m.Board()
	assert.Equal(t, "keep", b.Get(2, 2))
}

func TestEraseClearsCursorCell(t *testing.T) {
	h := newHarness(t, nil)
	h.m.board.Set(2, 2, "gone")
	h.press("d")
	b := h.m.Board()
	assert.Equal(t, "", b.Get(2, 2))
}

func TestSizeChangeClearsBoard(t *testing.T) {
	h := newHarness(t, nil)
	h.deliver(bridge.FillBoard{Size: 5, Goals: goals(25)})

	h.press("+")

	assert.Equal(t, grid.Size(6), h.m.Size())
	assert.Equal(t, grid.Board{}, h.m.Board())
	assert.Equal(t, grid.Size(6), h.m.header.Size)
}

func TestSizeStaysInRange(t *testing.T) {
	h := newHarness(t, nil)
	h.press("9", "+")
	assert.Equal(t, grid.Size(9), h.m.Size())
	h.press("3", "-")
	assert.Equal(t, grid.Size(3), h.m.Size())
}

func TestClearBoard(t *testing.T) {
	h := newHarness(t, nil)
	h.deliver(bridge.FillBoard{Size: 5, Goals: goals(25)})
	h.press("X")
	assert.Equal(t, grid.Board{}, h.m.Board())
}

// =============================================================================
// LOCAL ACTIONS
// =============================================================================

func TestCopyPathUsesNewestExport(t *testing.T) {
	h := newHarness(t, nil)
	h.deliver(bridge.ExportFinished{Record: bridge.ExportRecord{ID: "a", Path: "/tmp/a.json"}})
	h.deliver(bridge.ExportFinished{Record: bridge.ExportRecord{ID: "b", Path: "/tmp/b.json"}})

	h.press("y")

	assert.Equal(t, []string{"/tmp/b.json"}, h.copied)
	require.NotEmpty(t, h.m.Toasts())
	assert.Equal(t, bridge.NotificationSuccess, h.m.Toasts()[0].Kind)
}

func TestCopyPathClipboardFailure(t *testing.T) {
	h := newHarness(t, nil)
	h.copyErr = errors.New("no display")
	h.deliver(bridge.ExportFinished{Record: bridge.ExportRecord{ID: "a", Path: "/tmp/a.json"}})

	h.press("y")

	require.NotEmpty(t, h.m.Toasts())
	assert.Equal(t, bridge.NotificationWarning, h.m.Toasts()[0].Kind)
}

func TestCopyPathWithoutExports(t *testing.T) {
	h := newHarness(t, nil)
	h.press("y")
	assert.Empty(t, h.copied)
	require.Len(t, h.m.Toasts(), 1)
	assert.Equal(t, bridge.NotificationInfo, h.m.Toasts()[0].Kind)
}

func TestToastsExpireOnTick(t *testing.T) {
	h := newHarness(t, nil)
	h.deliver(bridge.AddNotification{Type: bridge.NotificationInfo, Message: "hello"})
	require.True(t, h.m.ticking)

	h.fixedNow = h.fixedNow.Add(10 * time.Second)
	_, cmd := h.m.Update(components.ToastTickMsg{})

	assert.Nil(t, cmd)
	assert.False(t, h.m.ticking)
	assert.Empty(t, h.m.Toasts())
}

// =============================================================================
// VIEW
// =============================================================================

func TestViewShowsBoardAndChrome(t *testing.T) {
	h := newHarness(t, nil)
	h.m.board.Set(2, 2, "visible goal")

	view := h.m.View()

	assert.Contains(t, view, "bingogen")
	assert.Contains(t, view, "visible goal")
	assert.Contains(t, view, "5x5")
}

func TestPageSwitchShowsExports(t *testing.T) {
	h := newHarness(t, nil)
	h.deliver(bridge.ExportFinished{Record: bridge.ExportRecord{
		ID:       "a",
		Format:   bridge.FormatLockoutLive,
		Filename: "lockout.json",
		Cells:    25,
		Document: []byte("{\n  \"objectives\": []\n}"),
	}})

	h.press("tab")

	assert.Equal(t, components.PageExports, h.m.Page())
	view := h.m.View()
	assert.Contains(t, view, "Recent exports")
	assert.Contains(t, view, "lockout.json")
	assert.Contains(t, view, "objectives")
}

func TestHelpToggle(t *testing.T) {
	h := newHarness(t, nil)
	h.press("?")
	require.True(t, h.m.ShowingHelp())
	assert.Contains(t, h.m.View(), "Navigation")

	h.press("B")
	assert.Equal(t, 0, h.worker.Len(), "keys are ignored while help is open")

	h.press("?")
	assert.False(t, h.m.ShowingHelp())
}

func TestHelpMarkdownListsEveryGroup(t *testing.T) {
	md := helpMarkdown(DefaultKeyMap())
	for _, title := range helpGroupTitles {
		assert.Contains(t, md, "## "+title)
	}
	assert.True(t, strings.Contains(md, "`B`"))
}

func TestQuit(t *testing.T) {
	h := newHarness(t, nil)
	_, cmd := h.m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, "", h.m.View())
}

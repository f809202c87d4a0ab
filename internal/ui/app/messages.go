// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/bingogen/internal/bridge"
)

// =============================================================================
// BRIDGE MESSAGES
// =============================================================================

// FrontendMsg wraps a message the worker sent to the UI.
type FrontendMsg struct {
	Msg bridge.MessageToFrontend
}

// BridgeClosedMsg reports that the frontend receiver stopped: every worker
// handle is gone or the program is shutting down.
type BridgeClosedMsg struct {
	Err error
}

// waitForFrontend blocks on the frontend receiver for one message. The
// model re-arms it after every FrontendMsg.
func waitForFrontend(ctx context.Context, recv *bridge.FrontendReceiver) tea.Cmd {
	return func() tea.Msg {
		msg, err := recv.Recv(ctx)
		if err != nil {
			return BridgeClosedMsg{Err: err}
		}
		return FrontendMsg{Msg: msg}
	}
}

// =============================================================================
// GOAL POOL MESSAGES
// =============================================================================

// PoolReloadedMsg is sent by the pool watcher after the goal file changed.
type PoolReloadedMsg struct {
	Count int
	Err   error
}

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// HistoryLoadedMsg carries ledger rows read at startup.
type HistoryLoadedMsg struct {
	Records []bridge.ExportRecord
	Err     error
}

// HistoryLister reads recent exports, newest first.
type HistoryLister interface {
	List(ctx context.Context, limit int) ([]bridge.ExportRecord, error)
}

func loadHistory(ctx context.Context, h HistoryLister, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		recs, err := h.List(ctx, limit)
		return HistoryLoadedMsg{Records: recs, Err: err}
	}
}

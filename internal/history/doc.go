// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history keeps a SQLite ledger of written exports.
//
// The worker appends a row after every successful export; the TUI exports
// page and the "history" command read it back. Board contents are not
// stored, only where each file went.
//
// # Usage
//
//	ledger, err := history.Open(cfg.HistoryPath())
//	if err != nil {
//	    return err
//	}
//	defer ledger.Close()
//	recent, err := ledger.List(ctx, 20)
package history

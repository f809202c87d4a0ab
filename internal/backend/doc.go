// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend runs the worker actor that services UI requests.
//
// The worker owns the export engine, the goal pool and the history ledger.
// It receives requests from a bridge.BackendReceiver and answers through a
// bridge.FrontendHandle; every request ends with exactly one AddNotification.
// The loop exits when the last BackendHandle is closed.
//
// # Usage
//
//	backRx, backTx, frontRx, frontTx := bridge.CreatePair(opts)
//	w := backend.Start(ctx, backend.Deps{Engine: engine, Frontend: frontTx}, backRx)
//	defer func() { backTx.Close(); <-w.Done() }()
package backend

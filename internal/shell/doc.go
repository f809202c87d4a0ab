// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell is the line-oriented front end of bingogen. A Session keeps
// its own board, sends the same bridge requests as the TUI and blocks until
// the notification that ends each one.
//
//	bingogen> size 3
//	bingogen> set 2 2 Defeat the final boss
//	bingogen> export lockout
//	[OK] Created file '2025-03-01_12-00-00_lockout_live.json'
package shell

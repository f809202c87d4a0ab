// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual building blocks of the bingogen TUI.

Components are plain structs rendered with Lip Gloss. The few that animate
(Spinner, PendingIndicator) follow the Bubble Tea Update/View shape.

# Board

BoardView (board.go) draws the active sub-grid of a grid.Board, tracks the
cursor relative to that sub-grid and marks goals over the Lockout-Live
length limit.

# Chrome

Header (header.go) - brand, page tabs, board size and goal pool size.
StatusBar (statusbar.go) - fill counters, pending requests, export directory.

# Feedback

ToastManager (toast.go) - notifications from the worker; errors are sticky.
ErrorPatternMatcher (error_patterns.go) - hints for known failure messages.
PendingIndicator (spinner.go) - requests awaiting their notification.

# Exports

CodeBlock (codeblock.go) - numbered, Chroma-highlighted JSON for the
exports page.

All themed components accept a *styles.Theme:

	theme := styles.NewTheme("auto")
	board := components.NewBoardView(theme)
	board.SetSize(grid.Size(7))
	view := board.Render(&b)
*/
package components

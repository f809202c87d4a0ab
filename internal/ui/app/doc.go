// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package app is the Bubble Tea front end of bingogen.

The Model owns the 9x9 board and the selected size. It talks to the worker
only through the bridge: requests go out on a bridge.BackendHandle and every
reply arrives on a bridge.FrontendReceiver, read one message at a time by a
command that is re-armed after each delivery.

The worker ends every request with exactly one AddNotification, in request
order. The model relies on that to resolve its pending indicator, so
messages that do not answer a request (goal pool reloads, history rows)
reach the model as plain tea.Msg values instead of going through the
bridge.

Pages:

  - Generator: the board, cursor navigation and cell editing.
  - Exports: recent export records and the last written document.

Usage:

	m := app.New(app.Deps{
		Config:   cfg,
		Backend:  toWorker,
		Frontend: fromWorker,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.Shutdown()
*/
package app

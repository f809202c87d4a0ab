// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines every binding of the TUI. Each binding carries its help
// text so the footer and the help overlay stay in sync with the handlers.
type KeyMap struct {
	// Board navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Home  key.Binding

	// Cell editing
	Edit   key.Binding
	Commit key.Binding
	Cancel key.Binding
	Erase  key.Binding

	// Board actions
	SizeUp     key.Binding
	SizeDown   key.Binding
	Randomize  key.Binding
	ClearBoard key.Binding

	// Exports
	ExportBingoSync   key.Binding
	ExportLockoutLive key.Binding
	CopyPath          key.Binding

	// Application
	NextPage key.Binding
	Dismiss  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings. Arrow keys and vim-style
// hjkl both move the cursor.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "move right"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "first cell"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("Enter/i", "edit cell"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "save cell"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "discard edit"),
		),
		Erase: key.NewBinding(
			key.WithKeys("delete", "backspace", "d"),
			key.WithHelp("Del/d", "clear cell"),
		),
		SizeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "bigger board"),
		),
		SizeDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "smaller board"),
		),
		Randomize: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "randomize"),
		),
		ClearBoard: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear board"),
		),
		ExportBingoSync: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "export BingoSync"),
		),
		ExportLockoutLive: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "export Lockout Live"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy last path"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch page"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "dismiss toast"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/C-c", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the footer on the generator page.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.ExportBingoSync, k.ExportLockoutLive, k.Randomize, k.Help, k.Quit}
}

// FullHelp returns every binding in display groups.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Home},
		{k.Edit, k.Commit, k.Cancel, k.Erase},
		{k.SizeUp, k.SizeDown, k.Randomize, k.ClearBoard},
		{k.ExportBingoSync, k.ExportLockoutLive, k.CopyPath},
		{k.NextPage, k.Dismiss, k.Help, k.Quit},
	}
}

// editingHelp is the footer while a cell is being edited.
type editingHelp struct{ k KeyMap }

func (e editingHelp) ShortHelp() []key.Binding {
	return []key.Binding{e.k.Commit, e.k.Cancel}
}

func (e editingHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{e.ShortHelp()}
}

// exportsHelp is the footer on the exports page.
type exportsHelp struct{ k KeyMap }

func (e exportsHelp) ShortHelp() []key.Binding {
	return []key.Binding{e.k.Up, e.k.Down, e.k.CopyPath, e.k.NextPage, e.k.Help, e.k.Quit}
}

func (e exportsHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{e.ShortHelp()}
}

// helpGroupTitles names the FullHelp groups in the help overlay.
var helpGroupTitles = []string{"Navigation", "Editing", "Board", "Export", "Application"}

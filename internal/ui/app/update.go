// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/grid"
	"github.com/jeranaias/bingogen/internal/ui/components"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case FrontendMsg:
		cmd := m.applyFrontend(msg.Msg)
		return m, tea.Batch(cmd, waitForFrontend(m.ctx, m.frontend))

	case BridgeClosedMsg:
		m.bridgeClosed = true
		m.log.Info("frontend receiver closed", "reason", msg.Err)
		return m, nil

	case PoolReloadedMsg:
		return m, m.handlePoolReloaded(msg)

	case HistoryLoadedMsg:
		m.handleHistoryLoaded(msg)
		return m, nil

	case components.ToastTickMsg:
		if len(m.toasts.Tick()) == 0 {
			m.ticking = false
			return m, nil
		}
		return m, components.ToastTickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.pending, cmd = m.pending.Update(msg)
		return m, cmd
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.help.Width = width
	m.editor.Width = m.theme.CellWidth(int(m.size)) - 1

	m.exportsView.Width = width
	m.exportsView.Height = max(height-exportsChrome-m.exportListHeight(), 3)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.editing {
		return m.handleEditingKey(msg)
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Dismiss) {
			m.showHelp = false
		} else if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		m.page = m.page.Next()
		m.header.Page = m.page
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.DismissNewest()
		m.refreshStatus()
		return m, nil
	case key.Matches(msg, m.keys.CopyPath):
		return m, m.copyLastPath()
	case key.Matches(msg, m.keys.ExportBingoSync):
		return m, m.exportBingoSync()
	case key.Matches(msg, m.keys.ExportLockoutLive):
		return m, m.exportLockoutLive()
	}

	if m.page == components.PageExports {
		var cmd tea.Cmd
		m.exportsView, cmd = m.exportsView.Update(msg)
		return m, cmd
	}
	return m.handleGeneratorKey(msg)
}

func (m *Model) handleGeneratorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.boardView.Move(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.boardView.Move(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.boardView.Move(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.boardView.Move(0, 1)
	case key.Matches(msg, m.keys.Home):
		m.boardView.Home()
	case key.Matches(msg, m.keys.Edit):
		return m, m.startEditing()
	case key.Matches(msg, m.keys.Erase):
		row, col := m.boardView.CursorCell()
		m.board.Set(row, col, "")
		m.refreshStatus()
	case key.Matches(msg, m.keys.SizeUp):
		m.SetSize(m.size + 1)
	case key.Matches(msg, m.keys.SizeDown):
		m.SetSize(m.size - 1)
	case key.Matches(msg, m.keys.ClearBoard):
		m.board.Clear()
		m.refreshStatus()
	case key.Matches(msg, m.keys.Randomize):
		return m, m.randomize()
	default:
		// Digits pick a size directly.
		if s := msg.String(); len(s) == 1 && s[0] >= '3' && s[0] <= '9' {
			m.SetSize(grid.Size(s[0] - '0'))
		}
	}
	return m, nil
}

func (m *Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Commit):
		row, col := m.boardView.CursorCell()
		m.board.Set(row, col, strings.TrimSpace(m.editor.Value()))
		m.stopEditing()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.boardView.EditView = m.editor.View()
	return m, cmd
}

func (m *Model) startEditing() tea.Cmd {
	row, col := m.boardView.CursorCell()
	m.editor.SetValue(m.board.Get(row, col))
	m.editor.CursorEnd()
	m.editor.Width = m.theme.CellWidth(int(m.size)) - 1
	m.editing = true
	m.boardView.Editing = true
	m.boardView.EditView = m.editor.View()
	m.refreshStatus()
	return m.editor.Focus()
}

func (m *Model) stopEditing() {
	m.editor.Blur()
	m.editor.Reset()
	m.editing = false
	m.boardView.Editing = false
	m.boardView.EditView = ""
	m.refreshStatus()
}

// SetSize switches the board size. Any size change clears the board.
// Sizes outside 3..9 are ignored.
func (m *Model) SetSize(size grid.Size) {
	if !size.Valid() || size == m.size {
		return
	}
	m.board.Clear()
	m.size = size
	m.boardView.SetSize(size)
	m.header.Size = size
	m.editor.Width = m.theme.CellWidth(int(size)) - 1
	m.refreshStatus()
}

// =============================================================================
// REQUESTS TO THE WORKER
// =============================================================================

// send forwards msg to the worker unless the rate limiter refuses it.
func (m *Model) send(msg bridge.MessageToBackend, label string) tea.Cmd {
	if m.bridgeClosed {
		return m.localToast(bridge.NotificationError, "Worker is not running")
	}
	if !m.limiter.Allow() {
		return m.localToast(bridge.NotificationWarning, "Too many requests, slow down")
	}
	m.log.Debug("sending request", "request_id", msg.ID(), "type", fmt.Sprintf("%T", msg))
	m.backend.Send(msg)
	cmd := m.pending.Add(label)
	m.refreshStatus()
	return cmd
}

func (m *Model) exportBingoSync() tea.Cmd {
	return m.send(bridge.CreateBingoSyncFile{
		RequestID: bridge.NewRequestID(),
		Cards:     grid.BingoSyncCards(&m.board, m.size),
	}, "Exporting BingoSync")
}

func (m *Model) exportLockoutLive() tea.Cmd {
	return m.send(bridge.CreateLockoutLiveFile{
		RequestID: bridge.NewRequestID(),
		Board:     grid.LockoutLiveBoard(&m.board, m.size),
	}, "Exporting Lockout Live")
}

func (m *Model) randomize() tea.Cmd {
	return m.send(bridge.RandomizeBoard{
		RequestID: bridge.NewRequestID(),
		Size:      int(m.size),
		Count:     m.size.Count(),
	}, "Randomizing")
}

// =============================================================================
// MESSAGES FROM THE WORKER
// =============================================================================

func (m *Model) applyFrontend(msg bridge.MessageToFrontend) tea.Cmd {
	switch msg := msg.(type) {
	case bridge.AddNotification:
		m.pending.Resolve()
		return m.showToast(msg)

	case bridge.ExportFinished:
		m.addExport(msg.Record)

	case bridge.FillBoard:
		size := grid.Size(msg.Size)
		if size != m.size {
			m.log.Debug("dropping fill for old size", "request_id", msg.RequestID, "size", msg.Size)
			return nil
		}
		if m.editing {
			m.stopEditing()
		}
		m.board.Fill(size, msg.Goals)
		m.refreshStatus()

	default:
		m.log.Warn("unknown frontend message", "type", fmt.Sprintf("%T", msg))
	}
	return nil
}

func (m *Model) addExport(rec bridge.ExportRecord) {
	m.exports = append([]bridge.ExportRecord{rec}, m.exports...)
	if limit := m.cfg.History.Limit; limit > 0 && len(m.exports) > limit {
		m.exports = m.exports[:limit]
	}
	if len(rec.Document) > 0 {
		m.lastDoc = rec.Document
	}
	m.refreshExports()
}

func (m *Model) handleHistoryLoaded(msg HistoryLoadedMsg) {
	if msg.Err != nil {
		m.log.Warn("history load failed", "error", msg.Err)
		return
	}
	// Exports finished before the load completed are newer than any row.
	seen := make(map[string]bool, len(m.exports))
	for _, r := range m.exports {
		seen[r.ID] = true
	}
	for _, r := range msg.Records {
		if !seen[r.ID] {
			m.exports = append(m.exports, r)
		}
	}
	m.refreshExports()
}

func (m *Model) handlePoolReloaded(msg PoolReloadedMsg) tea.Cmd {
	if msg.Err != nil {
		return m.localToast(bridge.NotificationWarning, fmt.Sprintf("Goal pool reload failed: %v", msg.Err))
	}
	m.header.PoolCount = msg.Count
	return m.localToast(bridge.NotificationInfo, fmt.Sprintf("Goal pool reloaded (%d goals)", msg.Count))
}

// =============================================================================
// LOCAL ACTIONS
// =============================================================================

func (m *Model) copyLastPath() tea.Cmd {
	if len(m.exports) == 0 {
		return m.localToast(bridge.NotificationInfo, "Nothing exported yet")
	}
	path := m.exports[0].Path
	if err := m.copy(path); err != nil {
		m.log.Warn("clipboard write failed", "error", err)
		return m.localToast(bridge.NotificationWarning, fmt.Sprintf("Clipboard unavailable: %v", err))
	}
	return m.localToast(bridge.NotificationSuccess, fmt.Sprintf("Copied '%s'", path))
}

// localToast shows a notification that did not come from the worker. It
// does not resolve a pending request.
func (m *Model) localToast(kind bridge.NotificationType, message string) tea.Cmd {
	return m.showToast(bridge.AddNotification{
		Type:    kind,
		Message: message,
		Sticky:  kind == bridge.NotificationError,
	})
}

func (m *Model) showToast(n bridge.AddNotification) tea.Cmd {
	m.toasts.Add(n)
	m.refreshStatus()
	if m.ticking {
		return nil
	}
	m.ticking = true
	return components.ToastTickCmd()
}

func (m *Model) refreshStatus() {
	m.statusBar.SetBoard(&m.board, m.size)
	m.statusBar.Pending = m.pending.View()

	switch {
	case m.editing:
		m.statusBar.Status = components.StatusEditing
	case m.pending.Len() > 0:
		m.statusBar.Status = components.StatusWaiting
	case m.hasStickyError():
		m.statusBar.Status = components.StatusError
	default:
		m.statusBar.Status = components.StatusReady
	}
}

func (m *Model) hasStickyError() bool {
	for _, t := range m.toasts.Toasts() {
		if t.Sticky && t.Kind == bridge.NotificationError {
			return true
		}
	}
	return false
}

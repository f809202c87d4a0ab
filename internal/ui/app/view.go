// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bingogen/internal/ui/components"
)

const (
	// exportsChrome is the header, status bar, footer and section titles
	// around the exports page.
	exportsChrome = 7

	// maxExportRows is the number of ledger rows listed above the document.
	maxExportRows = 8
)

// View renders the UI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}

	m.statusBar.Pending = m.pending.View()

	var body string
	switch {
	case m.showHelp:
		body = m.helpView()
	case m.page == components.PageExports:
		body = m.exportsPageView()
	default:
		body = m.generatorView()
	}

	sections := []string{m.header.View(), body}
	if stack := components.RenderToastStack(m.toasts.Toasts(), m.width, m.toasts.Now()); stack != "" {
		sections = append(sections, stack)
	}
	sections = append(sections, m.statusBar.View(), m.footerView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) generatorView() string {
	board := m.boardView.Render(&m.board)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, board)
}

func (m *Model) footerView() string {
	var keys help.KeyMap = m.keys
	switch {
	case m.editing:
		keys = editingHelp{m.keys}
	case m.page == components.PageExports:
		keys = exportsHelp{m.keys}
	}
	footer := m.help.ShortHelpView(keys.ShortHelp())
	if m.bridgeClosed {
		footer = m.theme.Muted.Render("worker stopped") + "  " + footer
	}
	return m.theme.Footer.Render(footer)
}

// =============================================================================
// EXPORTS PAGE
// =============================================================================

func (m *Model) exportsPageView() string {
	var b strings.Builder
	b.WriteString(m.theme.Label.Render("Recent exports"))
	b.WriteByte('\n')

	if len(m.exports) == 0 {
		b.WriteString(m.theme.Muted.Render("  No exports yet. Press B or L on the board page."))
		b.WriteByte('\n')
	} else {
		now := m.toasts.Now()
		for i, rec := range m.exports {
			if i == maxExportRows {
				b.WriteString(m.theme.Muted.Render(fmt.Sprintf("  ... %d more", len(m.exports)-maxExportRows)))
				b.WriteByte('\n')
				break
			}
			b.WriteString(components.RenderExportRow(rec, m.width, now))
			b.WriteByte('\n')
		}
	}

	b.WriteByte('\n')
	b.WriteString(m.theme.Label.Render("Last document"))
	b.WriteByte('\n')
	b.WriteString(m.exportsView.View())
	return b.String()
}

func (m *Model) exportListHeight() int {
	n := len(m.exports)
	if n == 0 {
		return 1
	}
	if n > maxExportRows {
		return maxExportRows + 1
	}
	return n
}

// refreshExports re-renders the last document into the viewport.
func (m *Model) refreshExports() {
	if m.height > 0 {
		m.exportsView.Height = max(m.height-exportsChrome-m.exportListHeight(), 3)
	}
	if len(m.lastDoc) == 0 {
		m.exportsView.SetContent(m.theme.Muted.Render("Nothing exported in this session."))
		return
	}
	m.exportsView.SetContent(components.NewJSONBlock(m.lastDoc).Render())
	m.exportsView.GotoTop()
}

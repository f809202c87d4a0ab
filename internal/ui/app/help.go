// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bingogen/internal/grid"
)

// helpMarkdown builds the help overlay text from the key map, so the overlay
// always lists the bindings the handlers check.
func helpMarkdown(k KeyMap) string {
	var b strings.Builder
	b.WriteString("# bingogen\n\n")
	b.WriteString("Fill the board, then export it for BingoSync or Lockout Live. ")
	b.WriteString("Digits 3-9 pick a board size directly.\n\n")

	for i, group := range k.FullHelp() {
		title := "Keys"
		if i < len(helpGroupTitles) {
			title = helpGroupTitles[i]
		}
		b.WriteString("## " + title + "\n\n")
		b.WriteString("| Key | Action |\n|-----|--------|\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("| `" + h.Key + "` | " + h.Desc + " |\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Limits\n\n")
	b.WriteString("- Lockout Live goals longer than 60 characters are rejected.\n")
	b.WriteString("- BingoSync boards smaller than 5x5 are padded with blank cards to 25.\n")
	b.WriteString("- Changing the board size clears every cell.\n")
	b.WriteString("- A " + grid.DefaultSize.String() + " board is used when the config names none.\n")
	return b.String()
}

// renderHelp renders the help markdown for width columns. On any renderer
// failure the raw markdown is returned.
func renderHelp(markdown string, width int, dark bool) string {
	style := "light"
	if dark {
		style = "dark"
	}
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n")
}

// helpView returns the cached overlay, re-rendering when the width changed.
func (m *Model) helpView() string {
	if m.helpCache == "" || m.helpWidth != m.width {
		m.helpCache = renderHelp(helpMarkdown(m.keys), m.width, m.theme.IsDark)
		m.helpWidth = m.width
	}

	// Keep the status bar and footer on screen.
	limit := m.height - 6
	lines := strings.Split(m.helpCache, "\n")
	if limit > 0 && len(lines) > limit {
		lines = append(lines[:limit-1], m.theme.Muted.Render("  ... resize for more"))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(lines, "\n"))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/ui/styles"
	"github.com/jeranaias/bingogen/internal/util"
)

// RenderExportRow renders one line of the exports list:
//
//	BingoSync      board_3f2a.json                 25 cells   1.2 KB   2m 10s ago
//
// The file name is fitted to whatever width remains.
func RenderExportRow(rec bridge.ExportRecord, width int, now time.Time) string {
	format := lipgloss.NewStyle().Foreground(styles.Purple).Bold(true).Width(14).
		Render(rec.Format.Label())

	details := strconv.Itoa(rec.Cells) + " cells  " + fmtBytes(rec.Bytes) + "  " +
		formatAge(rec.CreatedAt, now)
	details = lipgloss.NewStyle().Foreground(styles.TextMuted).Render(details)

	name := rec.Filename
	if name == "" {
		name = filepath.Base(rec.Path)
	}
	nameWidth := width - 2 - 14 - lipgloss.Width(details) - 2
	if nameWidth < 8 {
		nameWidth = 8
	}
	name = lipgloss.NewStyle().Foreground(styles.TextPrimary).
		Render(util.FitWidth(name, nameWidth))

	return "  " + format + name + "  " + details
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components of the board editor.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// FRAME
	// ==========================================================================

	Header    lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Footer    lipgloss.Style
	Panel     lipgloss.Style

	// ==========================================================================
	// GRID CELLS
	// ==========================================================================

	Cell         lipgloss.Style
	CellCursor   lipgloss.Style
	CellInactive lipgloss.Style
	CellEmpty    lipgloss.Style
	CellTooLong  lipgloss.Style
	CellEditing  lipgloss.Style

	// ==========================================================================
	// TEXT
	// ==========================================================================

	Muted     lipgloss.Style
	Label     lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
	LinkStyle lipgloss.Style
}

// NewTheme creates a theme. mode is "dark", "light" or "auto" (detect from
// the terminal background).
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Tab = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 1)

	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	// Cells share one border so widths line up.
	cell := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Foreground(TextPrimary)

	t.Cell = cell
	t.CellCursor = cell.
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(Cyan).
		Background(SurfaceBright)
	t.CellInactive = cell.
		Foreground(Overlay)
	t.CellEmpty = cell.
		Foreground(TextMuted).
		Italic(true)
	t.CellTooLong = cell.
		BorderForeground(Rose).
		Foreground(Rose).
		Background(RoseDeep)
	t.CellEditing = cell.
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Emerald)

	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
	t.Label = lipgloss.NewStyle().Foreground(TextSecondary).Bold(true)
	t.HelpKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.HelpDesc = lipgloss.NewStyle().Foreground(TextSecondary)
	t.LinkStyle = lipgloss.NewStyle().Foreground(Cyan).Underline(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)

// CellWidth returns the inner text width of one grid cell for a board of
// size cells per side, leaving room for borders.
func (t *Theme) CellWidth(size int) int {
	if size <= 0 {
		return 0
	}
	width := t.Width
	if width <= 0 {
		width = 80
	}
	w := width/size - 2
	switch t.GetLayoutMode() {
	case LayoutWide:
		if w > 20 {
			w = 20
		}
	default:
		if w > 14 {
			w = 14
		}
	}
	if w < 3 {
		w = 3
	}
	return w
}

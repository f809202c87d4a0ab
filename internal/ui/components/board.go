// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bingogen/internal/export"
	"github.com/jeranaias/bingogen/internal/grid"
	"github.com/jeranaias/bingogen/internal/ui/styles"
	"github.com/jeranaias/bingogen/internal/util"
)

// EmptyCellText is shown in cells without a goal.
const EmptyCellText = "-"

// =============================================================================
// BOARD VIEW
// =============================================================================

// BoardView renders the active sub-grid of a board and tracks the cursor.
// Row and column are relative to the sub-grid, so (0, 0) is always the
// top-left active cell whatever the size.
type BoardView struct {
	size grid.Size
	row  int
	col  int

	// Editing marks the cursor cell as being edited; EditView replaces its
	// text while set.
	Editing  bool
	EditView string

	// MarkLong highlights goals over the Lockout-Live length limit.
	MarkLong bool

	theme *styles.Theme
}

// NewBoardView creates a view for the default size with the cursor at the
// top-left cell.
func NewBoardView(theme *styles.Theme) *BoardView {
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	return &BoardView{
		size:     grid.DefaultSize,
		MarkLong: true,
		theme:    theme,
	}
}

// Size returns the current board size.
func (v *BoardView) Size() grid.Size {
	return v.size
}

// SetSize changes the rendered size and clamps the cursor into it.
// Invalid sizes are ignored.
func (v *BoardView) SetSize(size grid.Size) {
	if !size.Valid() {
		return
	}
	v.size = size
	v.row = clamp(v.row, 0, int(size)-1)
	v.col = clamp(v.col, 0, int(size)-1)
}

// Move shifts the cursor, stopping at the sub-grid edges.
func (v *BoardView) Move(dRow, dCol int) {
	n := int(v.size) - 1
	v.row = clamp(v.row+dRow, 0, n)
	v.col = clamp(v.col+dCol, 0, n)
}

// Home puts the cursor on the top-left cell.
func (v *BoardView) Home() {
	v.row, v.col = 0, 0
}

// Cursor returns the cursor position relative to the sub-grid.
func (v *BoardView) Cursor() (row, col int) {
	return v.row, v.col
}

// CursorCell returns the cursor position in 9x9 board coordinates.
func (v *BoardView) CursorCell() (row, col int) {
	o := v.size.Origin()
	return o + v.row, o + v.col
}

// CursorIndex returns the linear board index under the cursor.
func (v *BoardView) CursorIndex() int {
	return grid.Index(v.CursorCell())
}

// cellLines is the number of text lines per cell for the layout.
func (v *BoardView) cellLines() int {
	switch {
	case v.theme.GetLayoutMode() == styles.LayoutNarrow:
		return 1
	case v.size >= 8:
		return 2
	default:
		return 3
	}
}

// Render draws the active sub-grid of b.
func (v *BoardView) Render(b *grid.Board) string {
	n := int(v.size)
	width := v.theme.CellWidth(n)
	lines := v.cellLines()
	o := v.size.Origin()

	rows := make([]string, 0, n)
	for r := 0; r < n; r++ {
		cells := make([]string, 0, n)
		for c := 0; c < n; c++ {
			cursor := r == v.row && c == v.col
			cells = append(cells, v.renderCell(b.Get(o+r, o+c), cursor, width, lines))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *BoardView) renderCell(text string, cursor bool, width, lines int) string {
	style := v.theme.Cell
	body := text
	switch {
	case cursor && v.Editing:
		style = v.theme.CellEditing
		body = v.EditView
	case strings.TrimSpace(text) == "":
		style = v.theme.CellEmpty
		body = EmptyCellText
	case v.MarkLong && export.GoalTooLong(text):
		style = v.theme.CellTooLong
	}
	if cursor && !v.Editing {
		style = style.Inherit(v.theme.CellCursor).
			BorderStyle(v.theme.CellCursor.GetBorderStyle()).
			BorderForeground(v.theme.CellCursor.GetBorderTopForeground())
	}

	// The edit view carries its own cursor escapes; lipgloss measures it.
	if cursor && v.Editing {
		pad := strings.Repeat("\n", lines-1)
		return style.Width(width).Render(body + pad)
	}

	wrapped := util.WrapWidth(body, width, lines)
	for len(wrapped) < lines {
		wrapped = append(wrapped, "")
	}
	for i := range wrapped {
		wrapped[i] = util.FitWidth(wrapped[i], width)
	}
	return style.Width(width).Render(strings.Join(wrapped, "\n"))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CountCells returns how many active cells of b hold text and how many of
// those exceed the Lockout-Live length limit.
func CountCells(b *grid.Board, size grid.Size) (filled, long int) {
	for _, text := range grid.ActiveCells(b, size) {
		if strings.TrimSpace(text) == "" {
			continue
		}
		filled++
		if export.GoalTooLong(text) {
			long++
		}
	}
	return filled, long
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package grid maps a variable-size goal board onto the fixed 9x9 input
// matrix and shapes it for the export formats.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/bingogen/internal/bridge"
)

// Side is the side length of the backing matrix.
const Side = 9

// Cells is the number of cells in the backing matrix.
const Cells = Side * Side

// ErrInvalidSize is returned for grid sizes outside 3..9.
var ErrInvalidSize = errors.New("grid size must be between 3 and 9")

// =============================================================================
// GRID SIZE
// =============================================================================

// Size is the side length of the active sub-grid.
type Size int

const (
	MinSize     Size = 3
	MaxSize     Size = 9
	DefaultSize Size = 5
)

// Sizes lists every valid size in ascending order.
var Sizes = []Size{3, 4, 5, 6, 7, 8, 9}

// ParseSize validates n as a grid size.
func ParseSize(n int) (Size, error) {
	s := Size(n)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	return s, nil
}

// Valid reports whether s is in 3..9.
func (s Size) Valid() bool {
	return s >= MinSize && s <= MaxSize
}

// String returns the "NxN" label.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", int(s), int(s))
}

// Border is the number of inactive rows (and columns) on the trailing side.
func (s Size) Border() int {
	return (Side - int(s)) / 2
}

// Parity is 1 for even sizes, which lose one extra leading row and column.
func (s Size) Parity() int {
	return (int(s) + 1) % 2
}

// Origin is the first active row (and column).
func (s Size) Origin() int {
	return s.Border() + s.Parity()
}

// Active reports whether the cell at column x, row y belongs to the
// sub-grid.
func (s Size) Active(x, y int) bool {
	lo := s.Origin()
	hi := Side - s.Border()
	return x >= lo && x < hi && y >= lo && y < hi
}

// ActiveIndex reports whether the linear index idx is active.
func (s Size) ActiveIndex(idx int) bool {
	if idx < 0 || idx >= Cells {
		return false
	}
	return s.Active(idx%Side, idx/Side)
}

// Count is the number of active cells.
func (s Size) Count() int {
	return int(s) * int(s)
}

// =============================================================================
// BOARD
// =============================================================================

// Board is the 9x9 backing store of cell text, indexed row*9+col. Cells
// outside the active sub-grid keep their text but are never exported.
type Board [Cells]string

// Index returns the linear index of (row, col).
func Index(row, col int) int {
	return row*Side + col
}

// Get returns the text at (row, col).
func (b *Board) Get(row, col int) string {
	return b[Index(row, col)]
}

// Set stores text at (row, col).
func (b *Board) Set(row, col int, text string) {
	b[Index(row, col)] = text
}

// Clear empties every cell.
func (b *Board) Clear() {
	*b = Board{}
}

// Fill writes goals into the active cells of size in row-major order.
// Extra goals are ignored; missing goals leave cells empty.
func (b *Board) Fill(size Size, goals []string) {
	n := 0
	for idx := 0; idx < Cells; idx++ {
		if !size.ActiveIndex(idx) {
			continue
		}
		if n < len(goals) {
			b[idx] = goals[n]
		} else {
			b[idx] = ""
		}
		n++
	}
}

// ActiveIndices returns the linear indices of the active cells, row-major.
func ActiveIndices(size Size) []int {
	out := make([]int, 0, size.Count())
	for idx := 0; idx < Cells; idx++ {
		if size.ActiveIndex(idx) {
			out = append(out, idx)
		}
	}
	return out
}

// ActiveCells returns the text of the active cells in row-major order.
// The result always has size*size entries.
func ActiveCells(b *Board, size Size) []string {
	out := make([]string, 0, size.Count())
	for _, idx := range ActiveIndices(size) {
		out = append(out, b[idx])
	}
	return out
}

// =============================================================================
// BINGOSYNC
// =============================================================================

// Blank is the placeholder name used to pad small BingoSync boards.
const Blank = " "

// padding is the BingoSync layout for boards smaller than 5x5: lead blanks
// before the first row, fill blanks after every row and trail blanks at
// the end. The values are format conventions, not derived from Border.
type padding struct {
	lead, fill, trail int
}

var bingoSyncPadding = map[Size]padding{
	3: {lead: 6, fill: 2, trail: 4},
	4: {lead: 0, fill: 1, trail: 5},
}

// BingoSyncNames returns the card names for a BingoSync board, including
// the blank padding used for 3x3 and 4x4 boards.
func BingoSyncNames(b *Board, size Size) []string {
	cells := ActiveCells(b, size)
	pad, ok := bingoSyncPadding[size]
	if !ok {
		return cells
	}

	n := int(size)
	out := make([]string, 0, pad.lead+len(cells)+pad.fill*n+pad.trail)
	out = appendBlanks(out, pad.lead)
	for row := 0; row+n <= len(cells); row += n {
		out = append(out, cells[row:row+n]...)
		out = appendBlanks(out, pad.fill)
	}
	return appendBlanks(out, pad.trail)
}

// BingoSyncCards wraps BingoSyncNames in cards.
func BingoSyncCards(b *Board, size Size) []bridge.BingoSyncCard {
	names := BingoSyncNames(b, size)
	cards := make([]bridge.BingoSyncCard, len(names))
	for i, name := range names {
		cards[i] = bridge.BingoSyncCard{Name: name}
	}
	return cards
}

func appendBlanks(dst []string, n int) []string {
	for i := 0; i < n; i++ {
		dst = append(dst, Blank)
	}
	return dst
}

// =============================================================================
// LOCKOUT LIVE
// =============================================================================

// LockoutLiveBoard turns the active cells into objectives numbered from 1 in
// row-major order. Goal length is checked by the export engine.
func LockoutLiveBoard(b *Board, size Size) bridge.LockoutLiveBoard {
	cells := ActiveCells(b, size)
	objectives := make([]bridge.LockoutLiveCard, len(cells))
	for i, text := range cells {
		objectives[i] = bridge.NewLockoutLiveCard(text, i+1)
	}
	return bridge.NewLockoutLiveBoard(objectives)
}

// =============================================================================
// RENDERING HELPERS
// =============================================================================

// Describe returns a compact multi-line dump of the active sub-grid for
// debug logs.
func Describe(b *Board, size Size) string {
	var sb strings.Builder
	cells := ActiveCells(b, size)
	n := int(size)
	for row := 0; row < n; row++ {
		sb.WriteString(strings.Join(cells[row*n:(row+1)*n], " | "))
		if row < n-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/bingogen/internal/grid"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
		icon   string
	}{
		{StatusReady, "Ready", "[OK]"},
		{StatusEditing, "Editing", "[e]"},
		{StatusWaiting, "Waiting", "[~]"},
		{StatusError, "Error", "[X]"},
		{Status(42), "Unknown", "?"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.status.String())
		assert.Equal(t, tc.icon, tc.status.Icon())
	}
}

func TestCountCells(t *testing.T) {
	var b grid.Board
	b.Set(0, 0, "outside the 5x5")
	b.Fill(5, []string{"a", "  ", strings.Repeat("x", 61), "b"})

	filled, long := CountCells(&b, 5)
	assert.Equal(t, 3, filled)
	assert.Equal(t, 1, long)
}

func TestStatusBarLayouts(t *testing.T) {
	var b grid.Board
	b.Fill(5, []string{"a", "b", strings.Repeat("x", 61)})

	s := NewStatusBar()
	s.SetBoard(&b, 5)
	s.ExportDir = "/tmp/export"

	for _, width := range []int{40, 80, 140} {
		s.SetWidth(width)
		view := s.View()
		assert.Contains(t, view, "3/25", "width %d", width)
		assert.Equal(t, width, lipgloss.Width(view), "width %d", width)
	}

	s.SetWidth(80)
	assert.Contains(t, s.View(), "1 goal too long")
	assert.NotContains(t, s.View(), "/tmp/export")

	s.SetWidth(140)
	assert.Contains(t, s.View(), "12%")
	assert.Contains(t, s.View(), "/tmp/export")
}

func TestStatusBarShowsPending(t *testing.T) {
	s := NewStatusBar()
	s.SetWidth(80)
	s.Status = StatusWaiting
	s.Pending = "Exporting BingoSync"

	view := s.View()
	assert.Contains(t, view, "Waiting")
	assert.Contains(t, view, "Exporting BingoSync")
}

func TestRenderFillBar(t *testing.T) {
	s := NewStatusBar()
	s.Size = 3
	s.Filled = 9
	assert.Equal(t, strings.Repeat("#", 9), s.renderFillBar(9))

	s.Filled = 0
	assert.Equal(t, strings.Repeat(".", 9), s.renderFillBar(9))
}

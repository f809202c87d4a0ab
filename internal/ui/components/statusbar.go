// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bingogen/internal/grid"
	"github.com/jeranaias/bingogen/internal/ui/styles"
	"github.com/jeranaias/bingogen/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT - bottom line with board state
// =============================================================================

// Status is the interaction state shown in the status bar.
type Status int

const (
	StatusReady Status = iota
	StatusEditing
	StatusWaiting
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusEditing:
		return "Editing"
	case StatusWaiting:
		return "Waiting"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape for the status so it reads without color.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusEditing:
		return "[e]"
	case StatusWaiting:
		return "[~]"
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar summarises the board and the worker state.
type StatusBar struct {
	Status    Status
	Size      grid.Size
	Filled    int    // non-empty active cells
	LongGoals int    // active goals over the Lockout-Live limit
	ExportDir string // where files are written
	Pending   string // rendered pending-request indicator, may be empty
	Width     int
}

// NewStatusBar creates a status bar for an empty default-size board.
func NewStatusBar() *StatusBar {
	return &StatusBar{
		Status: StatusReady,
		Size:   grid.DefaultSize,
		Width:  80,
	}
}

// SetWidth updates the available width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetBoard recomputes the fill counters from b.
func (s *StatusBar) SetBoard(b *grid.Board, size grid.Size) {
	s.Size = size
	s.Filled, s.LongGoals = CountCells(b, size)
}

// View renders the status bar for the current width.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow: [OK] 12/25 ###.....
func (s *StatusBar) viewNarrow() string {
	parts := []string{
		s.getStatusStyle().Render(s.Status.Icon()),
		s.renderFillCount(),
		s.renderFillBar(8),
	}
	return s.frame(strings.Join(parts, " "), 0)
}

// viewMedium: Ready | 5x5 | 12/25 #####..... | 1 goal too long | pending
func (s *StatusBar) viewMedium() string {
	return s.frame(s.content(s.Status.String(), s.renderFillBar(10)), 1)
}

// viewWide adds the fill percentage and the export directory on the right.
func (s *StatusBar) viewWide() string {
	left := s.content(s.Status.Icon()+" "+s.Status.String(),
		s.renderFillBar(16)+" "+fmtPercent(s.Filled, s.Size.Count()))

	dir := ""
	if s.ExportDir != "" {
		label := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("export: ")
		room := s.Width - 4 - lipgloss.Width(left) - lipgloss.Width(label)
		if room > 10 {
			dir = label + lipgloss.NewStyle().Foreground(styles.TextSecondary).
				Render(util.TruncateWidth(s.ExportDir, room))
		}
	}

	gap := s.Width - 2 - lipgloss.Width(left) - lipgloss.Width(dir)
	return s.frame(left+strings.Repeat(" ", max(gap, 1))+dir, 1)
}

func (s *StatusBar) content(status, bar string) string {
	parts := []string{
		s.getStatusStyle().Render(status),
		s.Size.String(),
		s.renderFillCount() + " " + bar,
	}
	if s.LongGoals > 0 {
		parts = append(parts, s.renderLongGoals())
	}
	if s.Pending != "" {
		parts = append(parts, s.Pending)
	}
	return strings.Join(parts, s.separator())
}

func (s *StatusBar) frame(content string, pad int) string {
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, pad).
		Width(s.Width).
		Render(content)
}

func (s *StatusBar) separator() string {
	return lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
}

func (s *StatusBar) renderFillCount() string {
	return fmtNumber(s.Filled) + "/" + fmtNumber(s.Size.Count())
}

// renderFillBar draws a width-cell bar of the filled fraction.
func (s *StatusBar) renderFillBar(width int) string {
	total := s.Size.Count()
	filled := 0
	if total > 0 {
		filled = s.Filled * width / total
	}
	filled = clamp(filled, 0, width)

	barColor := styles.Amber
	if s.Filled >= total {
		barColor = styles.Emerald
	}
	return lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("#", filled)) +
		lipgloss.NewStyle().Foreground(styles.Overlay).Render(strings.Repeat(".", width-filled))
}

func (s *StatusBar) renderLongGoals() string {
	label := " goals too long"
	if s.LongGoals == 1 {
		label = " goal too long"
	}
	return lipgloss.NewStyle().Foreground(styles.Rose).Render(fmtNumber(s.LongGoals) + label)
}

func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	case StatusEditing:
		return lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	case StatusWaiting:
		return lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}

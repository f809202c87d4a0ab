// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinnerStartStop(t *testing.T) {
	s := NewSpinner()
	assert.False(t, s.IsActive())
	assert.Empty(t, s.View())
	assert.Zero(t, s.Elapsed())

	cmd := s.Start()
	require.NotNil(t, cmd)
	assert.True(t, s.IsActive())
	assert.Contains(t, s.View(), "Working")

	s.Stop()
	assert.False(t, s.IsActive())
	assert.Empty(t, s.View())
}

func TestSpinnerStyles(t *testing.T) {
	s := NewSpinner()
	for _, style := range []SpinnerStyle{SpinnerLine, SpinnerDots, SpinnerBlock} {
		s.SetStyle(style)
		assert.NotEmpty(t, s.spinner.Spinner.Frames)
		for _, f := range s.spinner.Spinner.Frames {
			for _, r := range f {
				assert.Less(t, r, rune(128), "frames are ASCII")
			}
		}
	}
}

func TestSpinnerTimer(t *testing.T) {
	s := NewSpinner()
	s.SetMessage("Exporting")
	s.Start()
	assert.Contains(t, s.View(), "(0s)")

	s.SetShowTimer(false)
	assert.NotContains(t, s.View(), "(0s)")
}

func TestSpinnerUpdateIgnoredWhenStopped(t *testing.T) {
	s := NewSpinner()
	_, cmd := s.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)
}

func TestPendingIndicatorResolvesInOrder(t *testing.T) {
	p := NewPendingIndicator()
	assert.Empty(t, p.View())

	require.NotNil(t, p.Add("Exporting BingoSync"), "first request starts the spinner")
	assert.Nil(t, p.Add("Exporting Lockout Live"), "spinner already running")
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, "Exporting BingoSync", p.Oldest())
	assert.Contains(t, p.View(), "(+1 queued)")

	p.Resolve()
	assert.Equal(t, "Exporting Lockout Live", p.Oldest())
	assert.False(t, strings.Contains(p.View(), "queued"))

	p.Resolve()
	assert.Zero(t, p.Len())
	assert.Empty(t, p.View())

	p.Resolve()
	assert.Zero(t, p.Len(), "extra notifications are ignored")
}

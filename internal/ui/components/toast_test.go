// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/bingogen/internal/bridge"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager() (*ToastManager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewToastManager(3 * time.Second)
	m.SetClock(clock.now)
	return m, clock
}

func TestToastExpiry(t *testing.T) {
	m, clock := newTestManager()

	m.Add(bridge.AddNotification{Type: bridge.NotificationSuccess, Message: "Created file 'a.json'"})
	m.Add(bridge.AddNotification{Type: bridge.NotificationWarning, Message: "too long"})
	require.Equal(t, 2, m.Len())

	clock.advance(3 * time.Second)
	toasts := m.Tick()
	require.Len(t, toasts, 1, "success expired, warning lasts twice as long")
	assert.Equal(t, bridge.NotificationWarning, toasts[0].Kind)

	clock.advance(3 * time.Second)
	assert.Empty(t, m.Tick())
}

func TestErrorToastsAreSticky(t *testing.T) {
	m, clock := newTestManager()

	id := m.Add(bridge.AddNotification{Type: bridge.NotificationError, Message: "Error: 'disk full'", Sticky: true})

	clock.advance(time.Hour)
	toasts := m.Tick()
	require.Len(t, toasts, 1)
	assert.True(t, toasts[0].Sticky)
	assert.Zero(t, toasts[0].TimeRemaining(clock.now()))

	m.Dismiss(id)
	assert.Zero(t, m.Len())
}

func TestToastsNewestFirstAndCapped(t *testing.T) {
	m, _ := newTestManager()

	for i := 0; i < MaxToasts+2; i++ {
		m.Add(bridge.AddNotification{Type: bridge.NotificationInfo, Message: string(rune('a' + i))})
	}
	toasts := m.Toasts()
	require.Len(t, toasts, MaxToasts)
	assert.Equal(t, "g", toasts[0].Message)
	assert.Equal(t, "c", toasts[MaxToasts-1].Message)
}

func TestDismissNewest(t *testing.T) {
	m, _ := newTestManager()
	assert.False(t, m.DismissNewest())

	m.Add(bridge.AddNotification{Message: "old"})
	m.Add(bridge.AddNotification{Message: "new"})
	assert.True(t, m.DismissNewest())
	assert.Equal(t, "old", m.Toasts()[0].Message)

	m.Clear()
	assert.Zero(t, m.Len())
}

func TestRenderToast(t *testing.T) {
	now := time.Now()
	toast := Toast{
		Message:   "Created file '2025-01-01_12-00-00_bingo_sync.json'",
		Kind:      bridge.NotificationSuccess,
		CreatedAt: now,
		Duration:  3 * time.Second,
	}
	out := RenderToast(toast, 100, now)
	assert.Contains(t, out, "[OK]")
	assert.Contains(t, out, "[x] Dismiss")
	assert.Contains(t, out, "3s")

	sticky := Toast{Message: "Error: 'boom'", Kind: bridge.NotificationError, Sticky: true}
	out = RenderToast(sticky, 100, now)
	assert.Contains(t, out, "[X]")
	assert.Contains(t, out, "stays until dismissed")
}

func TestRenderToastStack(t *testing.T) {
	assert.Empty(t, RenderToastStack(nil, 80, time.Now()))

	toasts := []Toast{
		{Message: "one", Kind: bridge.NotificationInfo, Sticky: true},
		{Message: "two", Kind: bridge.NotificationWarning, Sticky: true},
	}
	out := RenderToastStack(toasts, 80, time.Now())
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")
}

func TestRenderToastAddsHintForKnownErrors(t *testing.T) {
	now := time.Now()
	missing := Toast{
		Message: "Error: 'export directory does not exist: /x'",
		Kind:    bridge.NotificationError,
		Sticky:  true,
	}
	assert.Contains(t, RenderToast(missing, 100, now), "Hint: Create the directory")

	success := Toast{Message: "export directory does not exist", Kind: bridge.NotificationSuccess}
	assert.NotContains(t, RenderToast(success, 100, now), "Hint:")
}

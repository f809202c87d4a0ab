// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/ui/styles"
	"github.com/jeranaias/bingogen/internal/util"
)

// DefaultToastDuration is how long success and info toasts stay up.
const DefaultToastDuration = 3 * time.Second

// MaxToasts is the number of toasts kept at once; older ones are dropped.
const MaxToasts = 5

// =============================================================================
// TOAST
// =============================================================================

// Toast is an on-screen notification from the worker. Sticky toasts stay
// until dismissed; the rest expire after Duration.
type Toast struct {
	ID        int
	Message   string
	Kind      bridge.NotificationType
	CreatedAt time.Time
	Duration  time.Duration
	Sticky    bool
}

// IsExpired reports whether the toast should be removed at now.
func (t Toast) IsExpired(now time.Time) bool {
	if t.Sticky {
		return false
	}
	return now.Sub(t.CreatedAt) >= t.Duration
}

// TimeRemaining returns how long until auto-dismiss; zero for sticky toasts.
func (t Toast) TimeRemaining(now time.Time) time.Duration {
	if t.Sticky {
		return 0
	}
	remaining := t.Duration - now.Sub(t.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager keeps the visible toasts, newest first.
type ToastManager struct {
	mu        sync.Mutex
	toasts    []Toast
	nextID    int
	maxToasts int
	duration  time.Duration
	now       func() time.Time
}

// NewToastManager creates a manager whose non-sticky toasts last duration.
// Warnings last twice as long. A zero duration uses DefaultToastDuration.
func NewToastManager(duration time.Duration) *ToastManager {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &ToastManager{
		nextID:    1,
		maxToasts: MaxToasts,
		duration:  duration,
		now:       time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (m *ToastManager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Add shows a notification and returns the toast ID.
func (m *ToastManager) Add(n bridge.AddNotification) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	duration := m.duration
	if n.Type == bridge.NotificationWarning {
		duration *= 2
	}
	toast := Toast{
		ID:        m.nextID,
		Message:   n.Message,
		Kind:      n.Type,
		CreatedAt: m.now(),
		Duration:  duration,
		Sticky:    n.Sticky,
	}
	m.nextID++

	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > m.maxToasts {
		m.toasts = m.toasts[:m.maxToasts]
	}
	return toast.ID
}

// Dismiss removes a toast by ID.
func (m *ToastManager) Dismiss(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// DismissNewest removes the most recent toast. It reports whether one was
// removed.
func (m *ToastManager) DismissNewest() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.toasts) == 0 {
		return false
	}
	m.toasts = m.toasts[1:]
	return true
}

// Tick drops expired toasts and returns the remaining ones.
func (m *ToastManager) Tick() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.IsExpired(now) {
			active = append(active, t)
		}
	}
	m.toasts = active
	return append([]Toast(nil), m.toasts...)
}

// Toasts returns a copy of the current toasts, newest first.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Toast(nil), m.toasts...)
}

// Len returns the number of toasts.
func (m *ToastManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts)
}

// Now returns the manager's current time.
func (m *ToastManager) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now()
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg is sent periodically to expire toasts.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd returns a command that ticks toasts every 100ms.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

func toastLook(kind bridge.NotificationType) (lipgloss.AdaptiveColor, string) {
	switch kind {
	case bridge.NotificationError:
		return styles.Rose, styles.StatusIndicators.Error
	case bridge.NotificationWarning:
		return styles.Amber, styles.StatusIndicators.Warning
	case bridge.NotificationSuccess:
		return styles.Emerald, styles.StatusIndicators.Success
	default:
		return styles.Cyan, styles.StatusIndicators.Info
	}
}

// RenderToast renders a single toast no wider than width.
func RenderToast(toast Toast, width int, now time.Time) string {
	maxWidth := 60
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	color, icon := toastLook(toast.Kind)
	iconStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	messageStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)

	textWidth := maxWidth - 6 - util.StringWidth(icon)
	lines := util.WrapWidth(toast.Message, textWidth, 4)
	content := iconStyle.Render(icon+" ") + messageStyle.Render(strings.Join(lines, "\n"))

	if toast.Kind == bridge.NotificationError || toast.Kind == bridge.NotificationWarning {
		if hint := DefaultMatcher().Hint(toast.Message); hint != "" {
			hintLines := util.WrapWidth("Hint: "+hint, textWidth, 2)
			content += "\n" + lipgloss.NewStyle().Foreground(styles.TextSecondary).
				Render(strings.Join(hintLines, "\n"))
		}
	}

	hints := []string{"[x] Dismiss"}
	if toast.Sticky {
		hints = append(hints, "stays until dismissed")
	} else if secs := int(toast.TimeRemaining(now).Seconds()); secs > 0 {
		hints = append(hints, strconv.Itoa(secs)+"s")
	}
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
	content += "\n" + hintStyle.Render(strings.Join(hints, "  "))

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2).
		MaxWidth(maxWidth).
		Render(content)
}

// RenderToastStack renders toasts stacked vertically, newest at the top,
// right-aligned.
func RenderToastStack(toasts []Toast, width int, now time.Time) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, RenderToast(t, width, now))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
	}
	return stack
}

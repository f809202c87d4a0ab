// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bingogen/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is an ASCII loading spinner with an optional elapsed timer.
type Spinner struct {
	spinner spinner.Model

	style     SpinnerStyle
	message   string
	startTime time.Time

	isActive  bool
	showTimer bool
}

// SpinnerStyle selects the animation frames.
type SpinnerStyle int

const (
	SpinnerLine  SpinnerStyle = iota // | / - \
	SpinnerDots                      // growing dots
	SpinnerBlock                     // bouncing bar
)

// NewSpinner creates a line spinner with the timer enabled.
func NewSpinner() Spinner {
	s := Spinner{
		spinner:   spinner.New(),
		message:   "Working",
		showTimer: true,
	}
	s.SetStyle(SpinnerLine)
	return s
}

// SetStyle changes the animation frames.
func (s *Spinner) SetStyle(style SpinnerStyle) {
	s.style = style

	switch style {
	case SpinnerDots:
		s.spinner.Spinner = spinner.Spinner{
			Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
			FPS:    time.Second / 6,
		}
	case SpinnerBlock:
		s.spinner.Spinner = spinner.Spinner{
			Frames: []string{"[    ]", "[=   ]", "[==  ]", "[=== ]", "[====]", "[ ===]", "[  ==]", "[   =]"},
			FPS:    time.Second / 15,
		}
	default:
		s.spinner.Spinner = spinner.Spinner{
			Frames: []string{"|", "/", "-", "\\"},
			FPS:    time.Second / 10,
		}
	}
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// SetShowTimer enables or disables the elapsed time display.
func (s *Spinner) SetShowTimer(show bool) {
	s.showTimer = show
}

// Start activates the spinner and returns its first tick.
func (s *Spinner) Start() tea.Cmd {
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// Elapsed returns the time since Start.
func (s *Spinner) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// Update advances the animation while active.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner, or nothing when stopped.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}

	result := lipgloss.NewStyle().Foreground(styles.Purple).Render(s.spinner.View()) +
		" " + lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(s.message)

	if s.showTimer && !s.startTime.IsZero() {
		result += lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(" (" + formatElapsed(time.Since(s.startTime)) + ")")
	}
	return result
}

// =============================================================================
// PENDING REQUESTS
// =============================================================================

// PendingIndicator tracks requests sent to the worker that have not been
// answered yet. The worker handles requests in order and ends each with
// exactly one notification, so every notification resolves the oldest
// pending request.
type PendingIndicator struct {
	spinner Spinner
	labels  []string
}

// NewPendingIndicator creates an idle indicator.
func NewPendingIndicator() PendingIndicator {
	return PendingIndicator{spinner: NewSpinner()}
}

// Add records a new outstanding request described by label.
func (p *PendingIndicator) Add(label string) tea.Cmd {
	p.labels = append(p.labels, label)
	p.spinner.SetMessage(p.message())
	if p.spinner.IsActive() {
		return nil
	}
	return p.spinner.Start()
}

// Resolve drops the oldest outstanding request.
func (p *PendingIndicator) Resolve() {
	if len(p.labels) == 0 {
		return
	}
	p.labels = p.labels[1:]
	if len(p.labels) == 0 {
		p.spinner.Stop()
		return
	}
	p.spinner.SetMessage(p.message())
}

// Len returns the number of outstanding requests.
func (p *PendingIndicator) Len() int {
	return len(p.labels)
}

// Oldest returns the label of the oldest outstanding request.
func (p *PendingIndicator) Oldest() string {
	if len(p.labels) == 0 {
		return ""
	}
	return p.labels[0]
}

func (p *PendingIndicator) message() string {
	msg := p.labels[0]
	if n := len(p.labels); n > 1 {
		msg += " (+" + strconv.Itoa(n-1) + " queued)"
	}
	return msg
}

// Update forwards spinner ticks.
func (p PendingIndicator) Update(msg tea.Msg) (PendingIndicator, tea.Cmd) {
	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(msg)
	return p, cmd
}

// View renders the spinner line, or nothing when idle.
func (p PendingIndicator) View() string {
	return p.spinner.View()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bingogen/internal/grid"
	"github.com/jeranaias/bingogen/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - title bar with page tabs
// =============================================================================

// Page identifies a top-level screen.
type Page int

const (
	PageGenerator Page = iota
	PageExports
)

// Pages lists the pages in tab order.
var Pages = []Page{PageGenerator, PageExports}

// String returns the tab label for the page.
func (p Page) String() string {
	switch p {
	case PageGenerator:
		return "Generator"
	case PageExports:
		return "Exports"
	default:
		return "Unknown"
	}
}

// Next returns the page after p, wrapping around.
func (p Page) Next() Page {
	return Pages[(int(p)+1)%len(Pages)]
}

// Header is the title bar: brand, page tabs and a board summary.
type Header struct {
	Title     string
	Page      Page
	Size      grid.Size
	PoolCount int // -1 when no goal pool is configured
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a header with default values.
func NewHeader(theme *styles.Theme) *Header {
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	return &Header{
		Title:     "bingogen",
		Page:      PageGenerator,
		Size:      grid.DefaultSize,
		PoolCount: -1,
		Width:     80,
		theme:     theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header, falling back to ViewCompact on narrow terminals.
func (h *Header) View() string {
	if h.Width < 60 {
		return h.ViewCompact()
	}

	brand := lipgloss.NewStyle().Foreground(styles.Purple).Render("< ") +
		GradientTitle(h.Title, styles.Purple, styles.Cyan) +
		lipgloss.NewStyle().Foreground(styles.Purple).Render(" >")

	left := brand + "  " + h.renderTabs()
	summary := h.renderSummary()

	// Header style pads one column on each side.
	gap := h.Width - 2 - lipgloss.Width(left) - lipgloss.Width(summary)
	line := left + strings.Repeat(" ", max(gap, 1)) + summary

	return h.theme.Header.Width(h.Width).Render(line)
}

// ViewCompact renders a single plain line: <bingogen> | Page | 5x5.
func (h *Header) ViewCompact() string {
	brand := lipgloss.NewStyle().Bold(true).Foreground(styles.Cyan).Render("<" + h.Title + ">")
	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	parts := []string{
		brand,
		h.theme.TabActive.UnsetPadding().Render(h.Page.String()),
		h.getSizeStyle().Render(h.Size.String()),
	}
	return strings.Join(parts, sep)
}

func (h *Header) renderTabs() string {
	tabs := make([]string, 0, len(Pages))
	for _, p := range Pages {
		if p == h.Page {
			tabs = append(tabs, h.theme.TabActive.Render(p.String()))
		} else {
			tabs = append(tabs, h.theme.Tab.Render(p.String()))
		}
	}
	return strings.Join(tabs, " ")
}

func (h *Header) renderSummary() string {
	parts := []string{h.getSizeStyle().Render("[" + h.Size.String() + "]")}
	muted := lipgloss.NewStyle().Foreground(styles.TextMuted)
	switch {
	case h.PoolCount < 0:
		parts = append(parts, muted.Render("no pool"))
	case h.PoolCount == 1:
		parts = append(parts, muted.Render("1 goal"))
	default:
		parts = append(parts, muted.Render(fmtNumber(h.PoolCount)+" goals"))
	}
	return strings.Join(parts, " ")
}

// getSizeStyle colors small, default and large boards differently.
func (h *Header) getSizeStyle() lipgloss.Style {
	switch {
	case h.Size < grid.DefaultSize:
		return lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	case h.Size == grid.DefaultSize:
		return lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)
	}
}

// =============================================================================
// GRADIENT TITLE (for terminals with true color support)
// =============================================================================

// GradientTitle renders text with a per-character color ramp between the
// variants of start and end that match the terminal background.
func GradientTitle(text string, start, end lipgloss.AdaptiveColor) string {
	if len(text) == 0 {
		return ""
	}
	startColor, endColor := lipgloss.Color(start.Light), lipgloss.Color(end.Light)
	if lipgloss.HasDarkBackground() {
		startColor, endColor = lipgloss.Color(start.Dark), lipgloss.Color(end.Dark)
	}

	chars := []rune(text)
	if len(chars) < 3 {
		return lipgloss.NewStyle().Foreground(startColor).Render(text)
	}

	var result strings.Builder
	n := len(chars)
	for i, char := range chars {
		t := float64(i) / float64(n-1)
		color := interpolateColor(startColor, endColor, t)
		result.WriteString(lipgloss.NewStyle().Bold(true).Foreground(color).Render(string(char)))
	}
	return result.String()
}

// interpolateColor mixes two hex colors; t=0 gives start, t=1 gives end.
func interpolateColor(start, end lipgloss.Color, t float64) lipgloss.Color {
	sr, sg, sb := parseHexColor(strings.TrimPrefix(string(start), "#"))
	er, eg, eb := parseHexColor(strings.TrimPrefix(string(end), "#"))

	r := uint8(float64(sr) + t*(float64(er)-float64(sr)))
	g := uint8(float64(sg) + t*(float64(eg)-float64(sg)))
	b := uint8(float64(sb) + t*(float64(eb)-float64(sb)))

	return lipgloss.Color(formatHexColor(r, g, b))
}

// parseHexColor parses "RRGGBB"; anything shorter is white.
func parseHexColor(hex string) (r, g, b uint8) {
	if len(hex) < 6 {
		return 255, 255, 255
	}
	return parseHexByte(hex[0:2]), parseHexByte(hex[2:4]), parseHexByte(hex[4:6])
}

func parseHexByte(s string) uint8 {
	if len(s) != 2 {
		return 255
	}
	var result uint8
	for _, c := range s {
		result *= 16
		switch {
		case c >= '0' && c <= '9':
			result += uint8(c - '0')
		case c >= 'a' && c <= 'f':
			result += uint8(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			result += uint8(c - 'A' + 10)
		default:
			return 255
		}
	}
	return result
}

func formatHexColor(r, g, b uint8) string {
	const hexChars = "0123456789ABCDEF"
	return "#" +
		string(hexChars[r>>4]) + string(hexChars[r&0xF]) +
		string(hexChars[g>>4]) + string(hexChars[g&0xF]) +
		string(hexChars[b>>4]) + string(hexChars[b&0xF])
}

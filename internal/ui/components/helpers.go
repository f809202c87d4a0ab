// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"time"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// fmtNumber formats a number with thousand separators.
func fmtNumber(n int) string {
	if n < 0 {
		// MinInt64 has no positive counterpart; strconv handles it.
		s := strconv.Itoa(n)
		return "-" + groupDigits(s[1:])
	}
	return groupDigits(strconv.Itoa(n))
}

func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	out = append(out, s[:lead]...)
	for i := lead; i < len(s); i += 3 {
		out = append(out, ',')
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}

// fmtPercent formats a ratio in 0..1 as a whole percentage.
func fmtPercent(part, whole int) string {
	if whole <= 0 {
		return "0%"
	}
	return strconv.Itoa((part*100+whole/2)/whole) + "%"
}

// fmtBytes formats a byte count as B, KB or MB.
func fmtBytes(n int) string {
	switch {
	case n < 1024:
		return strconv.Itoa(n) + " B"
	case n < 1024*1024:
		return strconv.FormatFloat(float64(n)/1024, 'f', 1, 64) + " KB"
	default:
		return strconv.FormatFloat(float64(n)/(1024*1024), 'f', 1, 64) + " MB"
	}
}

// formatElapsed formats a duration as "42s" or "3m 05s".
func formatElapsed(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 60 {
		return strconv.Itoa(seconds) + "s"
	}
	secs := seconds % 60
	pad := ""
	if secs < 10 {
		pad = "0"
	}
	return strconv.Itoa(seconds/60) + "m " + pad + strconv.Itoa(secs) + "s"
}

// formatAge describes how long ago t was relative to now.
func formatAge(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Hour:
		return formatElapsed(d) + " ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d.Hours())) + "h ago"
	default:
		return t.Format("2006-01-02 15:04")
	}
}

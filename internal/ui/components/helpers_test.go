// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"
)

// =============================================================================
// HELPER FUNCTION TESTS
// =============================================================================

func TestFmtNumber(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0"},
		{1, "1"},
		{999, "999"},
		{1000, "1,000"},
		{1234, "1,234"},
		{12345, "12,345"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
		{-1, "-1"},
		{-1000, "-1,000"},
		{-123456, "-123,456"},
		{-9223372036854775808, "-9,223,372,036,854,775,808"},
	}

	for _, tc := range tests {
		got := fmtNumber(tc.input)
		if got != tc.want {
			t.Errorf("fmtNumber(%d) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFmtPercent(t *testing.T) {
	tests := []struct {
		part, whole int
		want        string
	}{
		{0, 25, "0%"},
		{25, 25, "100%"},
		{12, 25, "48%"},
		{1, 9, "11%"},
		{2, 3, "67%"},
		{5, 0, "0%"},
	}

	for _, tc := range tests {
		got := fmtPercent(tc.part, tc.whole)
		if got != tc.want {
			t.Errorf("fmtPercent(%d, %d) = %q, want %q", tc.part, tc.whole, got, tc.want)
		}
	}
}

func TestFmtBytes(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}

	for _, tc := range tests {
		if got := fmtBytes(tc.input); got != tc.want {
			t.Errorf("fmtBytes(%d) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "0s"},
		{42 * time.Second, "42s"},
		{65 * time.Second, "1m 05s"},
		{10*time.Minute + 30*time.Second, "10m 30s"},
	}

	for _, tc := range tests {
		if got := formatElapsed(tc.input); got != tc.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		then time.Time
		want string
	}{
		{now.Add(-2 * time.Second), "just now"},
		{now.Add(-90 * time.Second), "1m 30s ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-48 * time.Hour), "2025-03-12 12:00"},
	}

	for _, tc := range tests {
		if got := formatAge(tc.then, now); got != tc.want {
			t.Errorf("formatAge(%v) = %q, want %q", tc.then, got, tc.want)
		}
	}
}

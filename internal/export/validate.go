// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/bingogen/internal/bridge"
)

// MaxLockoutLiveGoalLength is the longest goal Lockout-Live accepts, in
// characters.
const MaxLockoutLiveGoalLength = 60

// ValidationError rejects a whole export before anything is written.
type ValidationError struct {
	Format   bridge.ExportFormat
	Position int // 1-based grid position of the offending goal
	Length   int
	Max      int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s can't have a task text longer than %d characters (position %d has %d)",
		e.Format.Label(), e.Max, e.Position, e.Length)
}

// GoalLength counts the characters of goal after NFC normalization, so a
// precomposed and a decomposed "é" count the same.
func GoalLength(goal string) int {
	return utf8.RuneCountInString(norm.NFC.String(goal))
}

// GoalTooLong reports whether goal exceeds the Lockout-Live limit.
func GoalTooLong(goal string) bool {
	return GoalLength(goal) > MaxLockoutLiveGoalLength
}

// ValidateLockoutLive returns a *ValidationError for the first objective
// whose goal is longer than MaxLockoutLiveGoalLength.
func ValidateLockoutLive(board bridge.LockoutLiveBoard) error {
	for i, o := range board.Objectives {
		if n := GoalLength(o.Goal); n > MaxLockoutLiveGoalLength {
			pos := o.PreferredGridPosition
			if pos == 0 {
				pos = i + 1
			}
			return &ValidationError{
				Format:   bridge.FormatLockoutLive,
				Position: pos,
				Length:   n,
				Max:      MaxLockoutLiveGoalLength,
			}
		}
	}
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"runtime"
	"strings"
	"sync"
)

// =============================================================================
// ERROR CATEGORIES
// =============================================================================

// ErrorCategory groups worker errors for display.
type ErrorCategory string

const (
	CategoryFilesystem ErrorCategory = "Filesystem"
	CategoryPermission ErrorCategory = "Permission"
	CategoryValidation ErrorCategory = "Validation"
	CategoryPool       ErrorCategory = "Goal pool"
	CategoryUnknown    ErrorCategory = "Error"
)

// =============================================================================
// ERROR PATTERN MATCHER
// =============================================================================

// ErrorPattern maps keywords in a notification message to suggestions.
type ErrorPattern struct {
	// Keywords to match, case-insensitive; any match triggers.
	Keywords    []string
	Category    ErrorCategory
	Title       string
	Suggestions []string
}

// ErrorPatternMatcher finds suggestions for notification messages. The first
// matching pattern wins, so specific patterns are registered first.
type ErrorPatternMatcher struct {
	mu       sync.RWMutex
	patterns []ErrorPattern
}

var (
	defaultMatcher     *ErrorPatternMatcher
	defaultMatcherOnce sync.Once
)

// DefaultMatcher returns the shared matcher with the built-in patterns.
func DefaultMatcher() *ErrorPatternMatcher {
	defaultMatcherOnce.Do(func() {
		defaultMatcher = NewErrorPatternMatcher()
	})
	return defaultMatcher
}

// NewErrorPatternMatcher creates a matcher with the built-in patterns.
func NewErrorPatternMatcher() *ErrorPatternMatcher {
	m := &ErrorPatternMatcher{}
	m.registerDefaultPatterns()
	return m
}

func (m *ErrorPatternMatcher) registerDefaultPatterns() {
	m.AddPattern(ErrorPattern{
		Keywords: []string{"export directory does not exist"},
		Category: CategoryFilesystem,
		Title:    "Export Directory Missing",
		Suggestions: []string{
			"Create the directory shown in the status bar",
			"Or point export.dir at an existing directory: bingogen config set export.dir <path>",
		},
	})

	m.AddPattern(ErrorPattern{
		Keywords: []string{"not a directory"},
		Category: CategoryFilesystem,
		Title:    "Export Path Is A File",
		Suggestions: []string{
			"Set export.dir to a directory, not a file",
		},
	})

	m.AddPattern(ErrorPattern{
		Keywords:    []string{"permission denied", "access is denied", "operation not permitted"},
		Category:    CategoryPermission,
		Title:       "Permission Denied",
		Suggestions: permissionSuggestions(),
	})

	m.AddPattern(ErrorPattern{
		Keywords: []string{"no space left", "disk full", "quota exceeded"},
		Category: CategoryFilesystem,
		Title:    "Disk Full",
		Suggestions: []string{
			"Free some disk space and export again",
		},
	})

	m.AddPattern(ErrorPattern{
		Keywords: []string{"read-only file system"},
		Category: CategoryFilesystem,
		Title:    "Read-Only Filesystem",
		Suggestions: []string{
			"Choose a writable export.dir",
		},
	})

	m.AddPattern(ErrorPattern{
		Keywords: []string{"longer than 60 characters"},
		Category: CategoryValidation,
		Title:    "Goal Too Long",
		Suggestions: []string{
			"Shorten the highlighted cells to 60 characters or fewer",
			"BingoSync export has no length limit",
		},
	})

	m.AddPattern(ErrorPattern{
		Keywords: []string{"no goal pool configured", "goal pool is empty", "goal pool has only"},
		Category: CategoryPool,
		Title:    "Goal Pool",
		Suggestions: []string{
			"Set goals.pool_path to a YAML list or a file with one goal per line",
		},
	})
}

// AddPattern appends a pattern. Thread-safe.
func (m *ErrorPatternMatcher) AddPattern(pattern ErrorPattern) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, pattern)
}

// Match returns the first pattern matching msg, or nil.
func (m *ErrorPatternMatcher) Match(msg string) *ErrorPattern {
	if msg == "" {
		return nil
	}
	lower := strings.ToLower(msg)

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.patterns {
		for _, kw := range p.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				found := p
				return &found
			}
		}
	}
	return nil
}

// Hint returns the first suggestion for msg, or "".
func (m *ErrorPatternMatcher) Hint(msg string) string {
	p := m.Match(msg)
	if p == nil || len(p.Suggestions) == 0 {
		return ""
	}
	return p.Suggestions[0]
}

func permissionSuggestions() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			"Check the folder is not read-only in its Properties",
			"Choose an export.dir inside your user profile",
		}
	default:
		return []string{
			"Check directory permissions: ls -ld <export dir>",
			"Choose an export.dir you own",
		}
	}
}

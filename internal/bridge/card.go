// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge

// BingoSyncCard is one square of a BingoSync board.
type BingoSyncCard struct {
	Name string `json:"name"`
}

// LockoutLiveCard is one objective of a Lockout-Live board.
// Field order matches the format's reference files.
type LockoutLiveCard struct {
	Goal                  string   `json:"goal"`
	IndividualLimit       int      `json:"individual_limit"`
	PreferredGridPosition int      `json:"preferred_grid_position"`
	Range                 []string `json:"range"`
	BoardCategories       []string `json:"board_categories"`
	LineCategories        []string `json:"line_categories"`
	Icons                 []string `json:"icons"`
}

// NewLockoutLiveCard returns an objective with the format defaults:
// individual limit 1 and empty (not null) auxiliary lists.
func NewLockoutLiveCard(goal string, position int) LockoutLiveCard {
	return LockoutLiveCard{
		Goal:                  goal,
		IndividualLimit:       1,
		PreferredGridPosition: position,
		Range:                 []string{},
		BoardCategories:       []string{},
		LineCategories:        []string{},
		Icons:                 []string{},
	}
}

// LockoutLiveBoard is the top-level Lockout-Live document.
type LockoutLiveBoard struct {
	Version    string                    `json:"version"`
	Game       string                    `json:"game"`
	Objectives []LockoutLiveCard         `json:"objectives"`
	Limits     map[string]map[string]int `json:"limits"`
}

// Lockout-Live document defaults.
const (
	LockoutLiveVersion = "0.0.0"
	LockoutLiveGame    = "None"
)

// NewLockoutLiveBoard wraps objectives in a document with empty board and
// line limits.
func NewLockoutLiveBoard(objectives []LockoutLiveCard) LockoutLiveBoard {
	if objectives == nil {
		objectives = []LockoutLiveCard{}
	}
	return LockoutLiveBoard{
		Version:    LockoutLiveVersion,
		Game:       LockoutLiveGame,
		Objectives: objectives,
		Limits: map[string]map[string]int{
			"board": {},
			"line":  {},
		},
	}
}

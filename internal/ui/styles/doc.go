// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the bingogen TUI.
//
// All colors use Lip Gloss AdaptiveColor so they follow the terminal's
// light or dark background. Theme groups the styles for the board grid,
// the frame and help text; notifications pair each color with an ASCII
// indicator so they read without color.
package styles

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across bingogen.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth, FitWidth, WrapWidth: terminal-column aware layout
//     used to draw goal text inside grid cells
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - AtomicWriteFileMkdir: same, creating parent directories
//   - ExpandHome, ExecutableDir, DirExists: path helpers
//
// # Usage
//
//	cell := util.FitWidth(goal, 12)
//	err := util.AtomicWriteFile(path, data, 0644)
package util

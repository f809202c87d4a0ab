// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package goals loads the goal pool that boards are randomized from.
//
// A pool file is either YAML:
//
//	- Collect 5 stars
//	- Beat the first boss
//
// (or a mapping with a "goals" key holding that list), or plain text with
// one goal per line. Blank lines and lines starting with "#" are skipped and
// duplicates are dropped.
//
// Watcher reloads the pool when the file changes on disk.
package goals

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders bingo boards into third-party JSON formats and
// writes them to timestamped files.
//
// # Key Types
//
//   - Engine: validates, renders and writes exports
//   - Exporter: per-format renderer interface
//   - Options: output directory, file mode and clock
//   - ValidationError: an export rejected before writing
//
// # Supported Formats
//
//   - BingoSync: JSON array of {"name": ...} cards
//   - Lockout Live: board document with numbered objectives; goals are
//     limited to 60 characters
//
// Files are named "2006-01-02_15-04-05_<format>.json" in local time and are
// written atomically. The output directory must already exist.
//
// # Usage
//
//	engine := export.NewEngine(&export.Options{OutputDir: dir}, logger)
//	res, err := engine.BingoSync(cards)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Filename)
package export

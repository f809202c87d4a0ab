// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for bingogen.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - ExportConfig: export directory
//   - BridgeConfig: mailbox capacity and overflow policy
//   - GoalsConfig, HistoryConfig: goal pool and export ledger
//   - UIConfig, LogConfig: presentation and logging
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (BINGOGEN_*)
//   - ~/.bingogen/config.toml
//   - ~/.bingogen/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    slog.Warn("using defaults", "error", err)
//	}
//	pair := bridge.CreatePair(cfg.BridgeOptions())
package config

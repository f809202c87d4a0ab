// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// Schema creates the export ledger.
const Schema = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS exports (
    id TEXT PRIMARY KEY,
    request_id TEXT NOT NULL,
    format TEXT NOT NULL,       -- bingo_sync, lockout_live
    filename TEXT NOT NULL,
    path TEXT NOT NULL,
    bytes INTEGER NOT NULL,
    cells INTEGER NOT NULL,     -- active cells on the board
    created_at INTEGER NOT NULL -- Unix microseconds
);

CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at);
CREATE INDEX IF NOT EXISTS idx_exports_format ON exports(format);
`

// InitMetadata seeds the metadata table.
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
`

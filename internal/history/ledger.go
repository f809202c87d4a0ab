// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/bingogen/internal/bridge"
)

// ErrClosed is returned by operations on a closed ledger.
var ErrClosed = errors.New("history ledger is closed")

// Ledger records every export the worker writes.
type Ledger struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the ledger database at path.
func Open(path string) (*Ledger, error) {
	if path == "" {
		return nil, errors.New("history: empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	return &Ledger{db: db, path: path}, nil
}

// Path returns the database file.
func (l *Ledger) Path() string {
	return l.path
}

// Close closes the database. Calling it twice is a no-op. It must not race
// with other calls.
func (l *Ledger) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// Record appends rec, assigning an ID when it has none. The stored record
// (with its ID) is returned.
func (l *Ledger) Record(ctx context.Context, rec bridge.ExportRecord) (bridge.ExportRecord, error) {
	if l.db == nil {
		return rec, ErrClosed
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO exports (id, request_id, format, filename, path, bytes, cells, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.RequestID, string(rec.Format), rec.Filename, rec.Path,
		rec.Bytes, rec.Cells, rec.CreatedAt.UnixMicro())
	if err != nil {
		return rec, fmt.Errorf("insert export: %w", err)
	}
	return rec, nil
}

// List returns up to limit records, newest first. Documents are not stored
// and come back nil.
func (l *Ledger) List(ctx context.Context, limit int) ([]bridge.ExportRecord, error) {
	if l.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, request_id, format, filename, path, bytes, cells, created_at
		FROM exports
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	defer rows.Close()

	var out []bridge.ExportRecord
	for rows.Next() {
		var (
			rec     bridge.ExportRecord
			format  string
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.RequestID, &format, &rec.Filename, &rec.Path,
			&rec.Bytes, &rec.Cells, &created); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		rec.Format = bridge.ExportFormat(format)
		rec.CreatedAt = time.UnixMicro(created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count returns the number of recorded exports.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	if l.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM exports").Scan(&n); err != nil {
		return 0, fmt.Errorf("count exports: %w", err)
	}
	return n, nil
}

// Prune deletes all but the newest keep records and returns how many were
// removed.
func (l *Ledger) Prune(ctx context.Context, keep int) (int64, error) {
	if l.db == nil {
		return 0, ErrClosed
	}
	res, err := l.db.ExecContext(ctx, `
		DELETE FROM exports WHERE id NOT IN (
			SELECT id FROM exports ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune exports: %w", err)
	}
	return res.RowsAffected()
}

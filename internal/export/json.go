// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jeranaias/bingogen/internal/bridge"
)

// =============================================================================
// JSON EXPORTERS
// =============================================================================

// BingoSyncExporter writes a BingoSync card list: a JSON array of
// {"name": ...} objects.
type BingoSyncExporter struct{}

// NewBingoSyncExporter creates a BingoSync exporter.
func NewBingoSyncExporter() *BingoSyncExporter {
	return &BingoSyncExporter{}
}

// Export converts a []bridge.BingoSyncCard to indented JSON.
func (e *BingoSyncExporter) Export(doc any) ([]byte, error) {
	cards, ok := doc.([]bridge.BingoSyncCard)
	if !ok {
		return nil, fmt.Errorf("bingosync: unexpected document type %T", doc)
	}
	if cards == nil {
		cards = []bridge.BingoSyncCard{}
	}
	return marshalDocument(cards)
}

// Format returns FormatBingoSync.
func (e *BingoSyncExporter) Format() bridge.ExportFormat {
	return bridge.FormatBingoSync
}

// FileExtension returns ".json".
func (e *BingoSyncExporter) FileExtension() string {
	return ".json"
}

// LockoutLiveExporter writes a Lockout-Live board document.
type LockoutLiveExporter struct{}

// NewLockoutLiveExporter creates a Lockout-Live exporter.
func NewLockoutLiveExporter() *LockoutLiveExporter {
	return &LockoutLiveExporter{}
}

// Export converts a bridge.LockoutLiveBoard to indented JSON.
func (e *LockoutLiveExporter) Export(doc any) ([]byte, error) {
	board, ok := doc.(bridge.LockoutLiveBoard)
	if !ok {
		return nil, fmt.Errorf("lockout live: unexpected document type %T", doc)
	}
	return marshalDocument(board)
}

// Format returns FormatLockoutLive.
func (e *LockoutLiveExporter) Format() bridge.ExportFormat {
	return bridge.FormatLockoutLive
}

// FileExtension returns ".json".
func (e *LockoutLiveExporter) FileExtension() string {
	return ".json"
}

// marshalDocument indents with two spaces and leaves <, > and & unescaped.
// No trailing newline is written.
func marshalDocument(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// EXPORT FORMATS
// =============================================================================

// ExportFormat names a target JSON schema. The value doubles as the
// filename suffix.
type ExportFormat string

const (
	FormatBingoSync   ExportFormat = "bingo_sync"
	FormatLockoutLive ExportFormat = "lockout_live"
)

// Label returns the human-facing name of the format.
func (f ExportFormat) Label() string {
	switch f {
	case FormatBingoSync:
		return "BingoSync"
	case FormatLockoutLive:
		return "Lockout Live"
	default:
		return string(f)
	}
}

// NewRequestID returns a fresh correlation ID for a backend request.
func NewRequestID() string {
	return uuid.New().String()
}

// =============================================================================
// FRONTEND -> BACKEND
// =============================================================================

// MessageToBackend is a request handled by the worker actor.
type MessageToBackend interface {
	isMessageToBackend()
	// ID returns the request's correlation ID.
	ID() string
}

// CreateBingoSyncFile asks the worker to write a BingoSync board.
type CreateBingoSyncFile struct {
	RequestID string
	Cards     []BingoSyncCard
}

// CreateLockoutLiveFile asks the worker to write a Lockout-Live board.
type CreateLockoutLiveFile struct {
	RequestID string
	Board     LockoutLiveBoard
}

// RandomizeBoard asks the worker for Count goals drawn from the goal pool.
type RandomizeBoard struct {
	RequestID string
	Size      int
	Count     int
}

func (CreateBingoSyncFile) isMessageToBackend()   {}
func (CreateLockoutLiveFile) isMessageToBackend() {}
func (RandomizeBoard) isMessageToBackend()        {}

func (m CreateBingoSyncFile) ID() string   { return m.RequestID }
func (m CreateLockoutLiveFile) ID() string { return m.RequestID }
func (m RandomizeBoard) ID() string        { return m.RequestID }

// =============================================================================
// BACKEND -> FRONTEND
// =============================================================================

// NotificationType classifies a notification for display.
type NotificationType int

const (
	NotificationSuccess NotificationType = iota
	NotificationInfo
	NotificationWarning
	NotificationError
)

// String returns a lower-case name of the type.
func (t NotificationType) String() string {
	switch t {
	case NotificationSuccess:
		return "success"
	case NotificationInfo:
		return "info"
	case NotificationWarning:
		return "warning"
	case NotificationError:
		return "error"
	default:
		return "unknown"
	}
}

// MessageToFrontend is an event delivered to the presentation layer.
type MessageToFrontend interface {
	isMessageToFrontend()
}

// AddNotification asks the presentation layer to show a message.
// Sticky notifications stay until the user dismisses them.
type AddNotification struct {
	Type    NotificationType
	Message string
	Sticky  bool
}

// ExportRecord describes a file the worker created.
type ExportRecord struct {
	ID        string
	RequestID string
	Format    ExportFormat
	Filename  string
	Path      string
	Bytes     int
	Cells     int
	CreatedAt time.Time
	// Document is the written JSON. Not persisted in the ledger.
	Document []byte
}

// ExportFinished reports a successful export.
type ExportFinished struct {
	Record ExportRecord
}

// FillBoard carries goals for the active cells of a board of Size, in
// row-major order.
type FillBoard struct {
	RequestID string
	Size      int
	Goals     []string
}

func (AddNotification) isMessageToFrontend() {}
func (ExportFinished) isMessageToFrontend()  {}
func (FillBoard) isMessageToFrontend()       {}

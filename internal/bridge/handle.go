// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge

import "context"

// DefaultCapacity is the queue depth of each direction under OverflowAbort.
const DefaultCapacity = 64

// Options configures a bridge pair. The zero value is a 64-deep pair that
// panics on overflow.
type Options struct {
	Capacity   int
	OnOverflow OverflowPolicy
}

// CreatePair builds the two directions of the bridge and returns their four
// endpoints: the worker's receiver, the handle used to reach the worker, the
// UI's receiver and the handle used to reach the UI.
func CreatePair(opts Options) (*BackendReceiver, *BackendHandle, *FrontendReceiver, *FrontendHandle) {
	toBackend := newMailbox[MessageToBackend](opts.Capacity, opts.OnOverflow)
	toFrontend := newMailbox[MessageToFrontend](opts.Capacity, opts.OnOverflow)

	return &BackendReceiver{box: toBackend},
		&BackendHandle{s: newSender(toBackend)},
		&FrontendReceiver{box: toFrontend},
		&FrontendHandle{s: newSender(toFrontend)}
}

// =============================================================================
// RECEIVERS
// =============================================================================

// BackendReceiver is the worker's end of the UI->worker direction.
// It must be used by a single goroutine.
type BackendReceiver struct {
	box *mailbox[MessageToBackend]
}

// Recv blocks until a request is queued, every BackendHandle is closed
// (ErrClosed) or ctx is done.
func (r *BackendReceiver) Recv(ctx context.Context) (MessageToBackend, error) {
	return r.box.recv(ctx)
}

// TryRecv returns a queued request without waiting.
func (r *BackendReceiver) TryRecv() (MessageToBackend, bool) {
	return r.box.tryRecv()
}

// Len reports the number of queued requests.
func (r *BackendReceiver) Len() int {
	return r.box.len()
}

// FrontendReceiver is the UI's end of the worker->UI direction.
// It must be used by a single goroutine.
type FrontendReceiver struct {
	box *mailbox[MessageToFrontend]
}

// Recv blocks until an event is queued, every FrontendHandle is closed
// (ErrClosed) or ctx is done.
func (r *FrontendReceiver) Recv(ctx context.Context) (MessageToFrontend, error) {
	return r.box.recv(ctx)
}

// TryRecv returns a queued event without waiting. The UI uses it to flush
// events that arrived before its event loop started.
func (r *FrontendReceiver) TryRecv() (MessageToFrontend, bool) {
	return r.box.tryRecv()
}

// Len reports the number of queued events.
func (r *FrontendReceiver) Len() int {
	return r.box.len()
}

// =============================================================================
// HANDLES
// =============================================================================

// BackendHandle sends requests to the worker. Handles are reference
// counted: Clone adds a reference and Close drops it. The direction closes
// when the last reference is dropped.
type BackendHandle struct {
	s *sender[MessageToBackend]
}

// Send enqueues msg without blocking. Under OverflowAbort a full queue
// panics.
func (h *BackendHandle) Send(msg MessageToBackend) {
	h.s.send(msg)
}

// Clone returns a new reference to the same direction.
func (h *BackendHandle) Clone() *BackendHandle {
	return &BackendHandle{s: h.s.clone()}
}

// Close drops this reference. Calling it twice is a no-op.
func (h *BackendHandle) Close() {
	h.s.close()
}

// FrontendHandle sends events to the UI. Same reference semantics as
// BackendHandle.
type FrontendHandle struct {
	s *sender[MessageToFrontend]
}

// Send enqueues msg without blocking. Under OverflowAbort a full queue
// panics.
func (h *FrontendHandle) Send(msg MessageToFrontend) {
	h.s.send(msg)
}

// Clone returns a new reference to the same direction.
func (h *FrontendHandle) Clone() *FrontendHandle {
	return &FrontendHandle{s: h.s.clone()}
}

// Close drops this reference. Calling it twice is a no-op.
func (h *FrontendHandle) Close() {
	h.s.close()
}

// SendInfo queues an informational notification.
func (h *FrontendHandle) SendInfo(message string) {
	h.notify(NotificationInfo, message)
}

// SendSuccess queues a success notification.
func (h *FrontendHandle) SendSuccess(message string) {
	h.notify(NotificationSuccess, message)
}

// SendWarning queues a warning notification.
func (h *FrontendHandle) SendWarning(message string) {
	h.notify(NotificationWarning, message)
}

// SendError queues an error notification. Errors do not auto-dismiss.
func (h *FrontendHandle) SendError(message string) {
	h.notify(NotificationError, message)
}

func (h *FrontendHandle) notify(kind NotificationType, message string) {
	h.Send(AddNotification{
		Type:    kind,
		Message: message,
		Sticky:  kind == NotificationError,
	})
}

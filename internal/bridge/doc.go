// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bridge connects the presentation layer and the export worker.
//
// A bridge is a pair of one-directional mailboxes. Each direction has one
// receiver, owned by a single goroutine, and any number of sender handles.
// Handles are reference counted; the direction closes when the last handle
// is closed, and the receiver then reports ErrClosed.
//
// # Overflow
//
// Sends never block. What happens when a queue is full is chosen once, at
// construction:
//
//   - OverflowAbort (default): the send panics. The UI drains its queue
//     continuously, so a full queue means a stuck consumer.
//   - OverflowGrow: the queue is unbounded and never rejects a message.
//
// # Usage
//
//	backendRecv, backendHandle, frontendRecv, frontendHandle :=
//	    bridge.CreatePair(bridge.Options{Capacity: 64})
//
//	backendHandle.Send(bridge.CreateBingoSyncFile{Cards: cards})
//
//	for {
//	    msg, err := backendRecv.Recv(ctx)
//	    if errors.Is(err, bridge.ErrClosed) {
//	        return
//	    }
//	    ...
//	}
package bridge

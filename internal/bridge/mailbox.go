// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// =============================================================================
// OVERFLOW POLICY
// =============================================================================

// OverflowPolicy decides what a send does when a mailbox is at capacity.
type OverflowPolicy int

const (
	// OverflowAbort panics when the queue is full. A full queue means the
	// consumer is stuck, which is a bug worth crashing on.
	OverflowAbort OverflowPolicy = iota
	// OverflowGrow never rejects a message; the queue grows without bound.
	OverflowGrow
)

// String returns the config spelling of the policy.
func (p OverflowPolicy) String() string {
	switch p {
	case OverflowAbort:
		return "abort"
	case OverflowGrow:
		return "grow"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

// ParseOverflowPolicy parses "abort" or "grow" (case-insensitive).
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "abort", "":
		return OverflowAbort, nil
	case "grow":
		return OverflowGrow, nil
	default:
		return OverflowAbort, fmt.Errorf("unknown overflow policy %q (want abort or grow)", s)
	}
}

// ErrClosed is returned by Recv once every sender of a direction has been
// closed and the queue is drained. Like io.EOF it marks orderly shutdown.
var ErrClosed = errors.New("bridge: channel closed")

// =============================================================================
// MAILBOX
// =============================================================================

// mailbox is a single-consumer FIFO queue shared by any number of senders.
type mailbox[T any] struct {
	mu       sync.Mutex
	queue    []T
	capacity int
	policy   OverflowPolicy
	senders  int
	closed   bool

	// ready holds at most one wake-up token for the consumer.
	ready chan struct{}
}

func newMailbox[T any](capacity int, policy OverflowPolicy) *mailbox[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	initial := capacity
	if policy == OverflowGrow {
		initial = 0
	}
	return &mailbox[T]{
		queue:    make([]T, 0, initial),
		capacity: capacity,
		policy:   policy,
		senders:  1,
		ready:    make(chan struct{}, 1),
	}
}

func (m *mailbox[T]) push(msg T) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		panic(fmt.Sprintf("bridge: send on closed channel: %+v", msg))
	}
	if m.policy == OverflowAbort && len(m.queue) >= m.capacity {
		m.mu.Unlock()
		panic(fmt.Sprintf("bridge: sender is full (capacity %d), unable to send message: %+v", m.capacity, msg))
	}
	m.queue = append(m.queue, msg)
	m.mu.Unlock()
	m.wake()
}

func (m *mailbox[T]) wake() {
	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// pop removes the head of the queue. closed is true only when the queue is
// empty and no senders remain.
func (m *mailbox[T]) pop() (msg T, ok bool, closed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) > 0 {
		msg = m.queue[0]
		var zero T
		m.queue[0] = zero
		m.queue = m.queue[1:]
		return msg, true, false
	}
	return msg, false, m.closed
}

func (m *mailbox[T]) recv(ctx context.Context) (T, error) {
	for {
		msg, ok, closed := m.pop()
		if ok {
			return msg, nil
		}
		if closed {
			var zero T
			return zero, ErrClosed
		}
		select {
		case <-m.ready:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

func (m *mailbox[T]) tryRecv() (T, bool) {
	msg, ok, _ := m.pop()
	return msg, ok
}

func (m *mailbox[T]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

func (m *mailbox[T]) retain() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		panic("bridge: clone of a handle whose channel is closed")
	}
	m.senders++
}

func (m *mailbox[T]) release() {
	m.mu.Lock()
	m.senders--
	last := m.senders == 0
	if last {
		m.closed = true
	}
	m.mu.Unlock()
	if last {
		m.wake()
	}
}

// =============================================================================
// SENDER REFERENCE
// =============================================================================

// sender is one reference to a mailbox. Close releases it exactly once.
type sender[T any] struct {
	box  *mailbox[T]
	once sync.Once
	done bool
	mu   sync.Mutex
}

func newSender[T any](box *mailbox[T]) *sender[T] {
	return &sender[T]{box: box}
}

func (s *sender[T]) send(msg T) {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done {
		panic(fmt.Sprintf("bridge: send on released handle: %+v", msg))
	}
	s.box.push(msg)
}

func (s *sender[T]) clone() *sender[T] {
	s.box.retain()
	return newSender(s.box)
}

func (s *sender[T]) close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.done = true
		s.mu.Unlock()
		s.box.release()
	})
}

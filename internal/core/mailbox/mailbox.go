// Package mailbox provides a single-slot channel that keeps only the most
// recent value. Writers never block; a slow reader sees the latest value and
// never an older one after it.
package mailbox

import "sync"

// Mailbox holds at most one undelivered value.
type Mailbox[T any] struct {
	mu     sync.Mutex
	ch     chan T
	closed bool
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{ch: make(chan T, 1)}
}

// C returns the receive side. It is closed by Close.
func (m *Mailbox[T]) C() <-chan T {
	return m.ch
}

// Put replaces any undelivered value with v. It reports false if the mailbox
// is closed.
func (m *Mailbox[T]) Put(v T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false
	}

	// Drop the stale value, if any, so the slot is free for v.
	select {
	case <-m.ch:
	default:
	}
	m.ch <- v
	return true
}

// Close closes the channel. Pending values can still be received.
// Calling Close more than once is a no-op.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	close(m.ch)
}

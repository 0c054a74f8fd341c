// Package identity is the boundary to the identity provider: the thing that
// owns sessions. The application reads the current session once and then
// follows the provider's change stream.
package identity

import (
	"context"
	"sync"

	"github.com/neilberkman/farmedge/internal/core/mailbox"
	"github.com/neilberkman/farmedge/internal/core/models"
)

// EventKind describes a session transition.
type EventKind string

const (
	InitialSession EventKind = "INITIAL_SESSION"
	SignedIn       EventKind = "SIGNED_IN"
	SignedOut      EventKind = "SIGNED_OUT"
	TokenRefreshed EventKind = "TOKEN_REFRESHED"
	UserUpdated    EventKind = "USER_UPDATED"
)

// Known reports whether k is one of the defined kinds.
func (k EventKind) Known() bool {
	switch k {
	case InitialSession, SignedIn, SignedOut, TokenRefreshed, UserUpdated:
		return true
	}
	return false
}

// Event is a session change. Session is nil when there is no session.
type Event struct {
	Kind    EventKind
	Session *models.Session
}

// Provider exposes the current session and a stream of session changes.
type Provider interface {
	// CurrentSession returns the current session, or nil if nobody is signed in.
	// No session is not an error.
	CurrentSession(ctx context.Context) (*models.Session, error)

	// Subscribe registers for session changes. The caller must Unsubscribe.
	Subscribe() (*Subscription, error)
}

// Subscription is a live link to a provider's change stream. Only the most
// recent undelivered event is kept, so a slow reader skips intermediate
// states but always converges on the latest one.
type Subscription struct {
	box     *mailbox.Mailbox[Event]
	once    sync.Once
	release func()
}

// C returns the event channel. It is closed after Unsubscribe or when the
// provider shuts down.
func (s *Subscription) C() <-chan Event {
	return s.box.C()
}

// Unsubscribe detaches from the provider. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		if s.release != nil {
			s.release()
		}
		s.box.Close()
	})
}

// hub fans events out to subscriptions.
type hub struct {
	mu     sync.Mutex
	subs   map[uint64]*Subscription
	next   uint64
	closed bool
}

func (h *hub) subscribe() (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrProviderClosed
	}
	if h.subs == nil {
		h.subs = make(map[uint64]*Subscription)
	}

	id := h.next
	h.next++

	sub := &Subscription{box: mailbox.New[Event]()}
	sub.release = func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
	h.subs[id] = sub
	return sub, nil
}

func (h *hub) publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		sub.box.Put(ev)
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// close ends every subscription's stream.
func (h *hub) close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := h.subs
	h.subs = nil
	h.mu.Unlock()

	for _, sub := range subs {
		sub.box.Close()
	}
}

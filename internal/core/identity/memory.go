package identity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neilberkman/farmedge/internal/core/models"
)

// MemoryProvider is an in-process provider. Nothing survives the process,
// so the TUI in memory mode always starts signed out.
type MemoryProvider struct {
	hub hub

	mu       sync.Mutex
	session  *models.Session
	fetchErr error
	gate     chan struct{}
}

// NewMemoryProvider creates a provider with no session.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{}
}

// CurrentSession returns the in-memory session or the configured fetch error.
func (p *MemoryProvider) CurrentSession(ctx context.Context) (*models.Session, error) {
	p.mu.Lock()
	gate := p.gate
	p.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	return p.session, nil
}

// Subscribe registers for session changes.
func (p *MemoryProvider) Subscribe() (*Subscription, error) {
	return p.hub.subscribe()
}

// Subscribers returns the number of live subscriptions.
func (p *MemoryProvider) Subscribers() int {
	return p.hub.count()
}

// SignIn replaces the session with a new one for user.
func (p *MemoryProvider) SignIn(user models.User) *models.Session {
	now := time.Now()
	sess := &models.Session{
		ID:       uuid.NewString(),
		User:     &models.User{ID: user.ID, Email: user.Email},
		IssuedAt: now,
	}
	p.set(SignedIn, sess)
	return sess
}

// Refresh rotates the current session's id, as a token refresh would.
func (p *MemoryProvider) Refresh() {
	p.mu.Lock()
	if p.session == nil {
		p.mu.Unlock()
		return
	}
	next := *p.session
	next.ID = uuid.NewString()
	next.IssuedAt = time.Now()
	p.mu.Unlock()

	p.set(TokenRefreshed, &next)
}

// SignOut clears the session.
func (p *MemoryProvider) SignOut() {
	p.set(SignedOut, nil)
}

// Emit publishes ev as-is without touching the stored session.
func (p *MemoryProvider) Emit(ev Event) {
	p.hub.publish(ev)
}

// SetFetchError makes CurrentSession fail with err until cleared with nil.
func (p *MemoryProvider) SetFetchError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetchErr = err
}

// HoldFetch blocks CurrentSession until the returned release is called.
func (p *MemoryProvider) HoldFetch() (release func()) {
	gate := make(chan struct{})
	p.mu.Lock()
	p.gate = gate
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			if p.gate == gate {
				p.gate = nil
			}
			p.mu.Unlock()
			close(gate)
		})
	}
}

// Close ends every subscription.
func (p *MemoryProvider) Close() {
	p.hub.close()
}

func (p *MemoryProvider) set(kind EventKind, sess *models.Session) {
	p.mu.Lock()
	p.session = sess
	p.mu.Unlock()
	p.hub.publish(Event{Kind: kind, Session: sess})
}

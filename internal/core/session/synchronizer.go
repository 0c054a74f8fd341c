// Package session mirrors the identity provider's session into a local
// "current user" value for the view.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/neilberkman/farmedge/internal/core/identity"
	"github.com/neilberkman/farmedge/internal/core/mailbox"
	"github.com/neilberkman/farmedge/internal/core/models"
)

// DefaultFetchTimeout bounds the initial session fetch.
const DefaultFetchTimeout = 10 * time.Second

var (
	// ErrStopped is returned by Start after Stop.
	ErrStopped = errors.New("session synchronizer stopped")

	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("session synchronizer already started")
)

// Change is delivered to the view whenever the local user is replaced.
type Change struct {
	Kind identity.EventKind
	User *models.User // nil when signed out
}

// Synchronizer keeps a cached copy of the provider's current user.
//
// The initial fetch and the change stream are applied by a single goroutine
// in arrival order; each event replaces the user outright. A change event
// carries newer information than a fetch that was issued before it, so an
// initial result that arrives after a change has been applied is dropped.
type Synchronizer struct {
	provider     identity.Provider
	logger       *zap.Logger
	fetchTimeout time.Duration

	changes *mailbox.Mailbox[Change]

	mu      sync.Mutex
	user    *models.User
	started bool
	stopped bool
	sub     *identity.Subscription
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	stopOnce sync.Once
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithFetchTimeout overrides DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// New creates a synchronizer for provider. Nothing happens until Start.
func New(provider identity.Provider, logger *zap.Logger, opts ...Option) *Synchronizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Synchronizer{
		provider:     provider,
		logger:       logger,
		fetchTimeout: DefaultFetchTimeout,
		changes:      mailbox.New[Change](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start subscribes to the provider and issues the one-time session fetch.
// It returns once the subscription is held; results arrive on Changes.
func (s *Synchronizer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}
	if s.started {
		return ErrAlreadyStarted
	}

	// Subscribe before fetching so no change between the two is missed.
	sub, err := s.provider.Subscribe()
	if err != nil {
		return fmt.Errorf("subscribe to session changes: %w", err)
	}
	s.logger.Debug("subscribed to session changes")

	ctx, cancel := context.WithCancel(ctx)
	s.sub = sub
	s.cancel = cancel
	s.started = true

	initial := make(chan identity.Event, 1)
	s.wg.Add(2)
	go s.fetch(ctx, initial)
	go s.pump(ctx, sub, initial)

	return nil
}

// Stop releases the subscription and waits for in-flight work to finish.
// Safe to call more than once and before Start.
func (s *Synchronizer) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		started := s.started
		if s.cancel != nil {
			s.cancel()
		}
		if s.sub != nil {
			s.sub.Unsubscribe()
		}
		s.mu.Unlock()

		if started {
			s.wg.Wait()
			s.logger.Debug("unsubscribed from session changes")
		} else {
			s.changes.Close()
		}
	})
}

// User returns the cached user, nil when signed out.
func (s *Synchronizer) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Changes delivers the latest change. Intermediate changes may be skipped
// when the reader is slow. The channel is closed after Stop.
func (s *Synchronizer) Changes() <-chan Change {
	return s.changes.C()
}

func (s *Synchronizer) fetch(ctx context.Context, out chan<- identity.Event) {
	defer s.wg.Done()

	fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	sess, err := s.provider.CurrentSession(fctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		// Fail open: show the signed-out view rather than block.
		s.logger.Warn("initial session fetch failed, treating as signed out", zap.Error(err))
		sess = nil
	}

	out <- identity.Event{Kind: identity.InitialSession, Session: sess}
}

func (s *Synchronizer) pump(ctx context.Context, sub *identity.Subscription, initial <-chan identity.Event) {
	defer s.wg.Done()
	defer s.changes.Close()

	events := sub.C()
	changed := false

	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-initial:
			initial = nil
			if changed {
				s.logger.Debug("dropping initial session superseded by a change event")
				continue
			}
			s.apply(ev)

		case ev, ok := <-events:
			if !ok {
				// Provider ended the stream. Keep the last known user.
				events = nil
				if initial == nil {
					return
				}
				continue
			}
			if s.apply(ev) {
				changed = true
			}
		}
	}
}

// apply replaces the cached user with the one carried by ev. Events that do
// not have the expected shape are ignored.
func (s *Synchronizer) apply(ev identity.Event) bool {
	if !ev.Kind.Known() {
		s.logger.Debug("ignoring unknown session event", zap.String("event", string(ev.Kind)))
		return false
	}
	if ev.Session != nil {
		if err := ev.Session.Validate(); err != nil {
			s.logger.Debug("ignoring malformed session event", zap.String("event", string(ev.Kind)), zap.Error(err))
			return false
		}
	}

	user := models.UserOf(ev.Session)

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	s.user = user
	s.mu.Unlock()

	s.logger.Debug("session applied", zap.String("event", string(ev.Kind)), zap.Bool("signed_in", user != nil))
	s.changes.Put(Change{Kind: ev.Kind, User: user})
	return true
}

package identity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/neilberkman/farmedge/internal/core/models"
)

// FileProvider keeps the session as a signed token in a file. Writing the
// file signs in, removing it signs out. Run watches the file and turns those
// changes into events; expiry is signaled by a timer.
type FileProvider struct {
	path   string
	secret []byte
	logger *zap.Logger
	now    func() time.Time

	hub hub

	mu      sync.Mutex
	current *models.Session
	expiry  *time.Timer
	running bool
	ready   chan struct{}
}

// NewFileProvider creates a provider for the token file at path.
func NewFileProvider(path string, secret []byte, logger *zap.Logger) *FileProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileProvider{
		path:   filepath.Clean(path),
		secret: secret,
		logger: logger,
		now:    time.Now,
		ready:  make(chan struct{}),
	}
}

// Ready is closed once Run is watching the token file.
func (p *FileProvider) Ready() <-chan struct{} {
	return p.ready
}

// Path returns the token file location.
func (p *FileProvider) Path() string {
	return p.path
}

// CurrentSession reads the token file. A missing or expired token is no
// session; an unreadable or forged one is an error.
func (p *FileProvider) CurrentSession(ctx context.Context) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.load()
}

// Subscribe registers for session changes. Events only flow while Run is
// active.
func (p *FileProvider) Subscribe() (*Subscription, error) {
	return p.hub.subscribe()
}

// Run watches the token file until ctx is done, then closes every
// subscription.
func (p *FileProvider) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return errors.New("file provider already running")
	}
	p.running = true
	p.mu.Unlock()

	defer p.shutdown()

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory rather than the file: the file may not exist yet
	// and signin replaces it by rename.
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	p.logger.Debug("watching session token", zap.String("path", p.path))

	// Seed without publishing so the first real change is classified
	// against what is already on disk.
	seed, err := p.load()
	if err != nil {
		p.logger.Warn("ignoring unreadable session token", zap.Error(err))
		seed = nil
	}
	p.mu.Lock()
	p.current = seed
	p.armExpiryLocked(seed)
	p.mu.Unlock()
	close(p.ready)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != p.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			p.logger.Debug("token file event", zap.String("op", event.Op.String()))
			p.refresh()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.logger.Warn("token watcher error", zap.Error(err))
		}
	}
}

func (p *FileProvider) shutdown() {
	p.mu.Lock()
	if p.expiry != nil {
		p.expiry.Stop()
		p.expiry = nil
	}
	p.mu.Unlock()
	p.hub.close()
}

func (p *FileProvider) load() (*models.Session, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read token: %w", err)
	}

	sess, err := ParseToken(p.secret, data, p.now())
	if errors.Is(err, ErrTokenExpired) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// refresh re-reads the file and publishes the transition, if any. A token
// that cannot be read counts as signed out.
func (p *FileProvider) refresh() {
	sess, err := p.load()
	if err != nil {
		p.logger.Warn("session token rejected", zap.Error(err))
		sess = nil
	}
	p.publish(sess)
}

func (p *FileProvider) publish(sess *models.Session) {
	p.mu.Lock()
	kind, changed := transition(p.current, sess)
	if !changed {
		p.mu.Unlock()
		return
	}
	p.current = sess
	p.armExpiryLocked(sess)
	p.mu.Unlock()

	p.logger.Info("session changed", zap.String("event", string(kind)))
	p.hub.publish(Event{Kind: kind, Session: sess})
}

// armExpiryLocked schedules a sign-out at the session's expiry.
func (p *FileProvider) armExpiryLocked(sess *models.Session) {
	if p.expiry != nil {
		p.expiry.Stop()
		p.expiry = nil
	}
	if sess == nil || sess.ExpiresAt.IsZero() {
		return
	}

	id := sess.ID
	p.expiry = time.AfterFunc(sess.ExpiresAt.Sub(p.now()), func() {
		p.mu.Lock()
		stale := p.current == nil || p.current.ID != id
		p.mu.Unlock()
		if stale {
			return
		}
		p.publish(nil)
	})
}

// transition classifies a change from prev to next. Unchanged states are
// not published.
func transition(prev, next *models.Session) (EventKind, bool) {
	switch {
	case prev == nil && next == nil:
		return "", false
	case next == nil:
		return SignedOut, true
	case prev == nil || prev.User == nil || prev.User.ID != next.User.ID:
		return SignedIn, true
	case prev.ID != next.ID:
		return TokenRefreshed, true
	case prev.User.Email != next.User.Email:
		return UserUpdated, true
	}
	return "", false
}

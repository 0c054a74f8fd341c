package identity

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neilberkman/farmedge/internal/core/models"
)

func issue(t *testing.T, userID string, ttl time.Duration) string {
	t.Helper()
	raw, _, err := IssueToken(testSecret, models.User{ID: userID, Email: userID + "@example.com"}, ttl, time.Now())
	require.NoError(t, err)
	return raw
}

func startProvider(t *testing.T, p *FileProvider) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	select {
	case <-p.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("provider never became ready")
	}
}

func TestFileProvider_CurrentSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jwt")
	p := NewFileProvider(path, testSecret, nil)

	sess, err := p.CurrentSession(context.Background())
	require.NoError(t, err, "missing token is not an error")
	assert.Nil(t, sess)

	require.NoError(t, WriteTokenFile(path, issue(t, "farmer-1", time.Hour)))
	sess, err = p.CurrentSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "farmer-1", sess.User.ID)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
	_, err = p.CurrentSession(context.Background())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFileProvider_ExpiredTokenIsNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jwt")
	raw, _, err := IssueToken(testSecret, models.User{ID: "farmer-1"}, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, WriteTokenFile(path, raw))

	p := NewFileProvider(path, testSecret, nil)
	sess, err := p.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestFileProvider_WatchSignInOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jwt")
	p := NewFileProvider(path, testSecret, nil)

	sub, err := p.Subscribe()
	require.NoError(t, err)
	defer sub.Unsubscribe()

	startProvider(t, p)

	require.NoError(t, WriteTokenFile(path, issue(t, "farmer-1", time.Hour)))
	ev := recv(t, sub)
	assert.Equal(t, SignedIn, ev.Kind)
	assert.Equal(t, "farmer-1", ev.Session.User.ID)

	require.NoError(t, WriteTokenFile(path, issue(t, "farmer-1", time.Hour)))
	ev = recv(t, sub)
	assert.Equal(t, TokenRefreshed, ev.Kind)

	removed, err := RemoveTokenFile(path)
	require.NoError(t, err)
	assert.True(t, removed)
	ev = recv(t, sub)
	assert.Equal(t, SignedOut, ev.Kind)
	assert.Nil(t, ev.Session)
}

func TestFileProvider_ExpiryEmitsSignedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jwt")
	// jwt timestamps have second precision, so keep the ttl above one second.
	require.NoError(t, WriteTokenFile(path, issue(t, "farmer-1", 1500*time.Millisecond)))

	p := NewFileProvider(path, testSecret, nil)
	sub, err := p.Subscribe()
	require.NoError(t, err)
	defer sub.Unsubscribe()

	startProvider(t, p)

	select {
	case ev := <-sub.C():
		assert.Equal(t, SignedOut, ev.Kind)
	case <-time.After(5 * time.Second):
		t.Fatal("expiry never signaled")
	}
}

func TestFileProvider_RunClosesSubscriptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jwt")
	p := NewFileProvider(path, testSecret, nil)
	sub, err := p.Subscribe()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	<-p.Ready()
	cancel()
	require.NoError(t, <-done)

	_, ok := <-sub.C()
	assert.False(t, ok)
	sub.Unsubscribe()
}

func TestTransition(t *testing.T) {
	a := &models.Session{ID: "1", User: &models.User{ID: "farmer-1", Email: "a@example.com"}}
	aRefreshed := &models.Session{ID: "2", User: &models.User{ID: "farmer-1", Email: "a@example.com"}}
	aRenamed := &models.Session{ID: "1", User: &models.User{ID: "farmer-1", Email: "b@example.com"}}
	b := &models.Session{ID: "3", User: &models.User{ID: "farmer-2"}}

	tests := []struct {
		name        string
		prev, next  *models.Session
		wantKind    EventKind
		wantChanged bool
	}{
		{"nothing to nothing", nil, nil, "", false},
		{"sign in", nil, a, SignedIn, true},
		{"sign out", a, nil, SignedOut, true},
		{"refresh", a, aRefreshed, TokenRefreshed, true},
		{"switch user", a, b, SignedIn, true},
		{"email change", a, aRenamed, UserUpdated, true},
		{"same token", a, a, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, changed := transition(tt.prev, tt.next)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neilberkman/farmedge/internal/core/models"
)

func recv(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev, ok := <-sub.C():
		require.True(t, ok, "subscription closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestMemoryProvider_NoSession(t *testing.T) {
	p := NewMemoryProvider()
	sess, err := p.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestMemoryProvider_Events(t *testing.T) {
	p := NewMemoryProvider()
	sub, err := p.Subscribe()
	require.NoError(t, err)
	defer sub.Unsubscribe()

	p.SignIn(models.User{ID: "farmer-1"})
	ev := recv(t, sub)
	assert.Equal(t, SignedIn, ev.Kind)
	assert.Equal(t, "farmer-1", ev.Session.User.ID)

	p.Refresh()
	ev = recv(t, sub)
	assert.Equal(t, TokenRefreshed, ev.Kind)

	p.SignOut()
	ev = recv(t, sub)
	assert.Equal(t, SignedOut, ev.Kind)
	assert.Nil(t, ev.Session)

	sess, err := p.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestMemoryProvider_SlowSubscriberSeesLatest(t *testing.T) {
	p := NewMemoryProvider()
	sub, err := p.Subscribe()
	require.NoError(t, err)
	defer sub.Unsubscribe()

	p.SignIn(models.User{ID: "farmer-1"})
	p.SignOut()
	p.SignIn(models.User{ID: "farmer-2"})

	ev := recv(t, sub)
	assert.Equal(t, SignedIn, ev.Kind)
	assert.Equal(t, "farmer-2", ev.Session.User.ID)
}

func TestMemoryProvider_FetchError(t *testing.T) {
	p := NewMemoryProvider()
	boom := errors.New("network down")
	p.SetFetchError(boom)

	_, err := p.CurrentSession(context.Background())
	assert.ErrorIs(t, err, boom)

	p.SetFetchError(nil)
	_, err = p.CurrentSession(context.Background())
	assert.NoError(t, err)
}

func TestMemoryProvider_HoldFetch(t *testing.T) {
	p := NewMemoryProvider()
	release := p.HoldFetch()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.CurrentSession(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release()
	_, err = p.CurrentSession(context.Background())
	assert.NoError(t, err)
}

func TestSubscription_UnsubscribeIdempotent(t *testing.T) {
	p := NewMemoryProvider()
	sub, err := p.Subscribe()
	require.NoError(t, err)
	assert.Equal(t, 1, p.Subscribers())

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 0, p.Subscribers())

	_, ok := <-sub.C()
	assert.False(t, ok)

	// Publishing after unsubscribe reaches nobody and must not panic.
	p.SignIn(models.User{ID: "farmer-1"})
}

func TestProviderClose(t *testing.T) {
	p := NewMemoryProvider()
	sub, err := p.Subscribe()
	require.NoError(t, err)

	p.Close()
	_, ok := <-sub.C()
	assert.False(t, ok)
	sub.Unsubscribe()

	_, err = p.Subscribe()
	assert.ErrorIs(t, err, ErrProviderClosed)
}

func TestEventKindKnown(t *testing.T) {
	assert.True(t, SignedIn.Known())
	assert.True(t, InitialSession.Known())
	assert.False(t, EventKind("PASSWORD_RECOVERY").Known())
}

package mailbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutKeepsLatest(t *testing.T) {
	m := New[int]()

	for i := 1; i <= 5; i++ {
		require.True(t, m.Put(i))
	}

	assert.Equal(t, 5, <-m.C())

	select {
	case v := <-m.C():
		t.Fatalf("unexpected extra value %d", v)
	default:
	}
}

func TestPutAfterReceive(t *testing.T) {
	m := New[string]()

	m.Put("signed-in")
	assert.Equal(t, "signed-in", <-m.C())

	m.Put("signed-out")
	assert.Equal(t, "signed-out", <-m.C())
}

func TestClose(t *testing.T) {
	m := New[int]()
	m.Put(7)
	m.Close()
	m.Close() // idempotent

	assert.False(t, m.Put(8), "Put after Close should be rejected")

	v, ok := <-m.C()
	assert.True(t, ok)
	assert.Equal(t, 7, v, "pending value survives Close")

	_, ok = <-m.C()
	assert.False(t, ok, "channel should be closed once drained")
}

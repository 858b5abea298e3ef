// internal/session/manager_test.go
package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()

	_, ok := m.Get("user-1")
	assert.False(t, ok)

	m.Put("user-1", New(ActionAdd))
	sess, ok := m.Get("user-1")
	require.True(t, ok)
	assert.Equal(t, ActionAdd, sess.Action)
	assert.Equal(t, 1, sess.Step)
	assert.Empty(t, sess.Data)

	m.Clear("user-1")
	_, ok = m.Get("user-1")
	assert.False(t, ok)

	// Clearing again is a no-op.
	m.Clear("user-1")
}

func TestManagerOneSessionPerUser(t *testing.T) {
	m := NewManager()
	m.Put("user-1", New(ActionAdd))
	m.Put("user-1", New(ActionDelete))

	sess, ok := m.Get("user-1")
	require.True(t, ok)
	assert.Equal(t, ActionDelete, sess.Action, "a new trigger replaces the active session")
}

func TestManagerSessionsAreIndependent(t *testing.T) {
	m := NewManager()
	m.Put("user-1", New(ActionAdd))
	m.Put("user-2", New(ActionSell))

	m.Clear("user-1")
	_, ok := m.Get("user-2")
	assert.True(t, ok)
}

func TestDoSerializesPerUser(t *testing.T) {
	m := NewManager()

	const workers = 8
	const iterations = 250
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				m.Do("user-1", func() {
					counter++ // unsynchronized on purpose; Do is the lock
				})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*iterations, counter)
}

package editor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(ManagerConfig{
		TTL:           ttl,
		SweepInterval: 5 * time.Millisecond,
		Session:       SessionOptions{Render: fakeRender},
	})
}

func TestManager_CreateGetDelete(t *testing.T) {
	m := newTestManager(time.Hour)
	defer m.Close()

	s := m.Create()
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, m.Delete(s.ID()))
	assert.Zero(t, m.Len())

	_, err = m.Get(s.ID())
	var notFound *SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, s.ID(), notFound.ID)

	assert.ErrorAs(t, m.Delete(s.ID()), &notFound)
}

func TestManager_SweepExpiresIdleSessions(t *testing.T) {
	m := newTestManager(time.Minute)
	defer m.Close()

	stale := m.Create()
	fresh := m.Create()
	busy := m.Create()
	require.NoError(t, busy.Begin(Importing()))

	now := time.Now()
	m.now = func() time.Time { return now.Add(2 * time.Minute) }
	fresh.lastSeen.Store(now.Add(90 * time.Second).UnixNano())

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 2, m.Len())

	_, err := m.Get(stale.ID())
	assert.Error(t, err)
	assert.ErrorIs(t, stale.Begin(Idle()), ErrSessionClosed)

	_, err = m.Get(fresh.ID())
	assert.NoError(t, err)
	_, err = m.Get(busy.ID())
	assert.NoError(t, err)
}

func TestManager_RunSweepsUntilCancelled(t *testing.T) {
	m := newTestManager(time.Millisecond)
	s := m.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, s.Begin(Importing()), ErrSessionClosed)

	m.Create()
	cancel()
	require.NoError(t, <-done)
	assert.Zero(t, m.Len())
}

func TestManager_Defaults(t *testing.T) {
	m := NewManager(ManagerConfig{})
	assert.Equal(t, DefaultSessionTTL, m.cfg.TTL)
	assert.Equal(t, DefaultSessionTTL/4, m.cfg.SweepInterval)
}

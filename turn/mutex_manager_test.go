package turn

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMutexManager_SingleHolder(t *testing.T) {
	req := require.New(t)
	m := NewMutexManager()

	req.False(m.Held())
	req.NoError(m.Acquire(context.Background()))
	req.True(m.Held())
	req.ErrorIs(m.TryAcquire(), ErrBusy)

	m.Release()
	req.False(m.Held())
	req.NoError(m.TryAcquire())
	m.Release()
}

func TestMutexManager_AcquireHonoursContext(t *testing.T) {
	req := require.New(t)
	m := NewMutexManager()
	req.NoError(m.Acquire(context.Background()))
	defer m.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := m.Acquire(ctx)
	req.ErrorIs(err, context.DeadlineExceeded)
}

func TestMutexManager_AcquireWaitsForRelease(t *testing.T) {
	req := require.New(t)
	m := NewMutexManager()
	req.NoError(m.Acquire(context.Background()))

	acquired := make(chan struct{})
	go func() {
		_ = m.Acquire(context.Background())
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second Acquire must wait")
	case <-time.After(20 * time.Millisecond):
	}

	m.Release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second Acquire did not get the turn")
	}
	req.True(m.Held())
}

func TestMutexManager_ReleaseWithoutAcquire(t *testing.T) {
	m := NewMutexManager()
	m.Release()
	require.False(t, m.Held())
}

func TestState_String(t *testing.T) {
	require.Equal(t, "awaiting-completion", AwaitingCompletion.String())
	require.Equal(t, "unknown", State(42).String())
}

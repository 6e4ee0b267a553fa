package turn

import (
	"context"
	"fmt"
)

// MutexManager is a Manager built on a channel with a buffer of one: a
// successful send takes the turn, a receive gives it back.
type MutexManager struct {
	turnCh chan struct{}
}

func NewMutexManager() *MutexManager {
	return &MutexManager{
		turnCh: make(chan struct{}, 1),
	}
}

func (m *MutexManager) Acquire(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("failed to acquire turn: %w", ctx.Err())
	case m.turnCh <- struct{}{}:
		return nil
	}
}

func (m *MutexManager) TryAcquire() error {
	select {
	case m.turnCh <- struct{}{}:
		return nil
	default:
		return ErrBusy
	}
}

// Release is a no-op when the turn is not held.
func (m *MutexManager) Release() {
	select {
	case <-m.turnCh:
	default:
	}
}

func (m *MutexManager) Held() bool {
	return len(m.turnCh) == 1
}

var _ Manager = (*MutexManager)(nil)

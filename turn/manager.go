// Package turn keeps a conversation to one turn at a time.
package turn

import (
	"context"
	"errors"
)

// ErrBusy is returned by TryAcquire while another turn is in flight.
var ErrBusy = errors.New("a turn is already in progress")

// Manager hands out the right to run a turn.
type Manager interface {
	// Acquire blocks until the turn is free or ctx is done.
	Acquire(ctx context.Context) error
	// TryAcquire takes the turn only if it is free right now.
	TryAcquire() error
	Release()
	// Held reports whether a turn is in flight.
	Held() bool
}

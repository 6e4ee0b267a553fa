package bus

import (
	"errors"
	"sync"
)

var ErrClosed = errors.New("bus is closed")

const subscriberBuffer = 64

// MemoryBus delivers every broadcast event to all subscribers. Delivery
// never blocks: a subscriber whose buffer is full misses the event.
type MemoryBus struct {
	mu          sync.RWMutex
	subscribers []chan *Event
	isClosed    bool
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{}
}

func (b *MemoryBus) Broadcast(e *Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.isClosed {
		return ErrClosed
	}
	for _, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel that is closed when the bus closes. Subscribing
// to a closed bus yields an already closed channel.
func (b *MemoryBus) Subscribe() <-chan *Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan *Event, subscriberBuffer)
	if b.isClosed {
		close(ch)
		return ch
	}
	b.subscribers = append(b.subscribers, ch)
	return ch
}

func (b *MemoryBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed {
		return
	}
	b.isClosed = true
	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil
}

var _ Bus = (*MemoryBus)(nil)

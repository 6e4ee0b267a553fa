// Package supervisor watches the event stream of a session, keeps its
// counters and stops it once the host turn limit is reached.
package supervisor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sat8bit/roundtable/bus"
	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/turn"
)

// Stats is a snapshot of what the supervisor has seen so far.
type Stats struct {
	// HostTurns counts host messages. System messages are counted apart and
	// never bring the session closer to its limit.
	HostTurns int
	System    int
	Replies   int
	Unparsed  int
	Failures  int
}

type Supervisor struct {
	maxTurns   int
	bus        bus.Bus
	cancelFunc context.CancelFunc
	log        *slog.Logger

	mu    sync.Mutex
	stats Stats
	done  chan struct{}
}

// NewSupervisor creates a Supervisor. maxTurns of 0 never cancels.
func NewSupervisor(maxTurns int, b bus.Bus, cancelFunc context.CancelFunc, log *slog.Logger) *Supervisor {
	if log == nil {
		log = slog.Default()
	}
	return &Supervisor{
		maxTurns:   maxTurns,
		bus:        b,
		cancelFunc: cancelFunc,
		log:        log,
		done:       make(chan struct{}),
	}
}

// Start subscribes to the bus and returns at once. The returned channel is
// closed when the bus closes.
func (s *Supervisor) Start() <-chan struct{} {
	ch := s.bus.Subscribe()

	go func() {
		defer close(s.done)
		for e := range ch {
			s.observe(e)
		}
	}()
	return s.done
}

func (s *Supervisor) observe(e *bus.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.Kind {
	case bus.KindFailed:
		s.stats.Failures++
		return
	case bus.KindAppended:
	default:
		return
	}

	if !e.Message.IsHostOriginated() {
		s.stats.Replies++
		if e.Message.Unparsed {
			s.stats.Unparsed++
		}
		return
	}

	if e.Message.Role == message.RoleSystem {
		s.stats.System++
		return
	}

	s.stats.HostTurns++
	if s.maxTurns > 0 && s.stats.HostTurns == s.maxTurns {
		s.log.Info("turn limit reached", "turns", s.stats.HostTurns)
		if s.cancelFunc != nil {
			s.cancelFunc()
		}
	}
}

func (s *Supervisor) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// GetCurrentTurn returns the number of host (non-system) messages seen.
func (s *Supervisor) GetCurrentTurn() int {
	return s.Stats().HostTurns
}

func (s *Supervisor) GetMaxTurns() int {
	return s.maxTurns
}

var _ turn.TurnProvider = (*Supervisor)(nil)

// Package conversation drives a session: it records host messages, decides
// who has to reply, runs the reply cycles one after the other and appends
// their results to the shared history.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/sat8bit/roundtable/bus"
	"github.com/sat8bit/roundtable/cha"
	"github.com/sat8bit/roundtable/history"
	"github.com/sat8bit/roundtable/llm"
	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/persona"
	"github.com/sat8bit/roundtable/reply"
	"github.com/sat8bit/roundtable/turn"
)

// ErrInvalidRole is returned when a host message is neither system nor user.
var ErrInvalidRole = errors.New("host messages use the system or user role")

// Turn is what one orchestrator call produced.
type Turn struct {
	// Host is the host message recorded for the turn, nil for enrollments and nudges.
	Host    *message.Message
	Replies []message.Message
	// Err joins the errors of every aborted reply cycle.
	Err error
}

// job is one pending reply cycle.
type job struct {
	speaker   *persona.Persona
	addressed *message.Message
}

// Orchestrator owns the registry and the history of one session. Every
// mutation goes through it and happens while it holds the turn guard, so
// turns never interleave.
type Orchestrator struct {
	log      *slog.Logger
	registry *persona.Registry
	history  *history.Store
	sender   cha.Sender
	guard    turn.Manager
	bus      bus.Bus

	maxTokens atomic.Int64
	state     atomic.Int32
}

// NewOrchestrator wires a session. b may be nil when nobody listens.
func NewOrchestrator(log *slog.Logger, sender cha.Sender, guard turn.Manager, b bus.Bus) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	o := &Orchestrator{
		log:      log,
		registry: persona.NewRegistry(),
		history:  history.NewStore(),
		sender:   sender,
		guard:    guard,
		bus:      b,
	}
	o.maxTokens.Store(llm.DefaultMaxTokens)
	return o
}

// SubmitHostMessage records text as a host (RoleUser) or system (RoleSystem)
// message, then runs one reply cycle per addressed participant. The message
// is in the history before any reply is computed and stays there whatever
// happens next. Naming an unknown participant returns a registry error and
// runs no cycle.
func (o *Orchestrator) SubmitHostMessage(ctx context.Context, text string, role message.Role, to Addressee) (*Turn, error) {
	speaker, err := hostSpeaker(role)
	if err != nil {
		return nil, err
	}

	if err := o.guard.Acquire(ctx); err != nil {
		return nil, err
	}
	defer o.guard.Release()

	host := o.history.Add(role, speaker, text)
	o.publish(&bus.Event{Kind: bus.KindAppended, Message: host, Speaker: speaker})
	o.log.DebugContext(ctx, "host message recorded", "seq", host.Seq, "role", role, "to", to.String())

	t := &Turn{Host: &host}
	targets, err := o.resolve(to)
	if err != nil {
		return t, fmt.Errorf("conversation.SubmitHostMessage: %w", err)
	}

	queue := make([]job, 0, len(targets))
	for _, p := range targets {
		queue = append(queue, job{speaker: p, addressed: &host})
	}
	t.Replies, t.Err = o.drain(ctx, queue)
	return t, t.Err
}

// EnrollParticipant registers p. Its temperature is clamped to the service
// range first. With replyImmediately and a non-empty intro prompt, the intro
// is handed to p as an addressed message that is not recorded, and p replies
// once.
func (o *Orchestrator) EnrollParticipant(ctx context.Context, p *persona.Persona, replyImmediately, introIsSystemRole bool) (*Turn, error) {
	if err := o.guard.Acquire(ctx); err != nil {
		return nil, err
	}
	defer o.guard.Release()

	if p != nil {
		p.Temperature = llm.ClampTemperature(p.Temperature)
	}
	if err := o.registry.Register(p); err != nil {
		return nil, fmt.Errorf("conversation.EnrollParticipant: %w", err)
	}
	o.log.InfoContext(ctx, "participant enrolled", "name", p.Name, "model", p.Model)

	t := &Turn{}
	if !replyImmediately || p.IntroPrompt == "" {
		return t, nil
	}

	role, speaker := message.RoleUser, persona.Host
	if introIsSystemRole {
		role, speaker = message.RoleSystem, persona.System
	}
	intro := message.New(role, speaker, p.IntroPrompt)

	t.Replies, t.Err = o.drain(ctx, []job{{speaker: p, addressed: &intro}})
	return t, t.Err
}

// Nudge asks the named participant to speak without a new host message.
func (o *Orchestrator) Nudge(ctx context.Context, name string) (*Turn, error) {
	if err := o.guard.Acquire(ctx); err != nil {
		return nil, err
	}
	defer o.guard.Release()

	p, err := o.registry.Find(name)
	if err != nil {
		return nil, fmt.Errorf("conversation.Nudge: %w", err)
	}

	t := &Turn{}
	t.Replies, t.Err = o.drain(ctx, []job{{speaker: p}})
	return t, t.Err
}

func (o *Orchestrator) resolve(to Addressee) ([]*persona.Persona, error) {
	switch {
	case to.IsAudience():
		return nil, nil
	case to.IsAll():
		return o.registry.All(), nil
	}
	p, err := o.registry.Find(to.Name())
	if err != nil {
		return nil, err
	}
	return []*persona.Persona{p}, nil
}

// drain runs the queued reply cycles in order. Each cycle reads the history
// as left by the one before it. A failed cycle does not stop the others.
func (o *Orchestrator) drain(ctx context.Context, queue []job) ([]message.Message, error) {
	var (
		replies []message.Message
		errs    []error
	)
	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]

		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("reply from %s skipped: %w", j.speaker.Name, err))
			continue
		}

		m, err := o.runCycle(ctx, j)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		replies = append(replies, m)
	}
	return replies, errors.Join(errs...)
}

func (o *Orchestrator) runCycle(ctx context.Context, j job) (message.Message, error) {
	defer o.setState(turn.Idle)

	c := cha.NewCha(j.speaker, o.sender, o.log)
	res, err := c.Reply(ctx, o.history.Messages(), j.addressed, o.MaxTokens(), o.setState)
	if err != nil {
		o.log.ErrorContext(ctx, "reply cycle aborted", "participant", j.speaker.Name, "error", err)
		o.publish(&bus.Event{Kind: bus.KindFailed, Speaker: j.speaker, Err: err})
		return message.Message{}, err
	}

	m := o.history.Append(message.Message{
		Role:     message.RoleAssistant,
		Speaker:  j.speaker,
		Content:  res.Content,
		Unparsed: res.Status == reply.Unparsed,
	})
	o.setState(turn.Appended)
	o.publish(&bus.Event{Kind: bus.KindAppended, Message: m, Speaker: j.speaker})
	return m, nil
}

func (o *Orchestrator) publish(e *bus.Event) {
	if o.bus == nil {
		return
	}
	e.At = time.Now()
	if err := o.bus.Broadcast(e); err != nil {
		o.log.Debug("event not published", "kind", e.Kind, "error", err)
	}
}

func (o *Orchestrator) setState(s turn.State) {
	o.state.Store(int32(s))
}

// State is the phase of the reply cycle in flight, Idle between cycles.
func (o *Orchestrator) State() turn.State {
	return turn.State(o.state.Load())
}

// Busy reports whether a turn is in flight.
func (o *Orchestrator) Busy() bool {
	return o.guard.Held()
}

// SetMaxTokens sets the session token limit and returns the clamped value.
func (o *Orchestrator) SetMaxTokens(n int) int {
	n = llm.ClampMaxTokens(n)
	o.maxTokens.Store(int64(n))
	return n
}

// SetMaxTokensInput is SetMaxTokens for raw user input.
func (o *Orchestrator) SetMaxTokensInput(s string) int {
	return o.SetMaxTokens(llm.ParseMaxTokens(s))
}

func (o *Orchestrator) MaxTokens() int {
	return int(o.maxTokens.Load())
}

// Messages returns the history in append order.
func (o *Orchestrator) Messages() []message.Message {
	return o.history.Messages()
}

// Last returns the most recent history entry.
func (o *Orchestrator) Last() (message.Message, bool) {
	return o.history.Last()
}

// Participants returns the registered participants in registration order.
func (o *Orchestrator) Participants() []*persona.Persona {
	return o.registry.All()
}

func (o *Orchestrator) Find(name string) (*persona.Persona, error) {
	return o.registry.Find(name)
}

func hostSpeaker(role message.Role) (*persona.Persona, error) {
	switch role {
	case message.RoleUser:
		return persona.Host, nil
	case message.RoleSystem:
		return persona.System, nil
	}
	return nil, fmt.Errorf("%w: got %q", ErrInvalidRole, role)
}

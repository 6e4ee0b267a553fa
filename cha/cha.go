// Package cha runs the compose, send and parse steps of one participant's
// reply. Appending the result is left to the caller that owns the history.
package cha

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sat8bit/roundtable/llm"
	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/persona"
	"github.com/sat8bit/roundtable/prompt"
	"github.com/sat8bit/roundtable/reply"
	"github.com/sat8bit/roundtable/turn"
)

// Sender is the part of llm.Gateway a Cha needs.
type Sender interface {
	Send(ctx context.Context, messages []llm.Message, model string, temperature float64, maxTokens int) (string, error)
}

type Cha struct {
	Persona *persona.Persona
	sender  Sender
	log     *slog.Logger
}

func NewCha(p *persona.Persona, sender Sender, log *slog.Logger) *Cha {
	if log == nil {
		log = slog.Default()
	}
	return &Cha{
		Persona: p,
		sender:  sender,
		log:     log.With("participant", p.Name),
	}
}

// Reply composes the participant's context from history and addressed,
// sends it and parses the answer. onPhase, when set, is told about each step.
// A send failure is returned as is and nothing else happens.
func (c *Cha) Reply(
	ctx context.Context,
	history []message.Message,
	addressed *message.Message,
	maxTokens int,
	onPhase func(turn.State),
) (reply.Result, error) {
	phase := func(s turn.State) {
		if onPhase != nil {
			onPhase(s)
		}
	}

	phase(turn.Composing)
	msgs := prompt.Compose(c.Persona, history, addressed)

	phase(turn.AwaitingCompletion)
	raw, err := c.sender.Send(ctx, msgs, c.Persona.Model, c.Persona.Temperature, maxTokens)
	if err != nil {
		return reply.Result{}, fmt.Errorf("cha %s: %w", c.Persona.Name, err)
	}

	phase(turn.Parsing)
	res := reply.Parse(raw)
	switch {
	case res.Status == reply.Unparsed:
		c.log.WarnContext(ctx, "reply missing name delimiter, keeping raw text", "raw_len", len(raw))
	case !res.SpokeAs(c.Persona.Name):
		c.log.WarnContext(ctx, "reply written as another speaker", "claimed", res.Speaker)
	}
	return res, nil
}

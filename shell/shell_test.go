package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sat8bit/roundtable/conversation"
	"github.com/sat8bit/roundtable/llm"
	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/mocks"
	"github.com/sat8bit/roundtable/persona"
	"github.com/sat8bit/roundtable/turn"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newOrchestrator(t *testing.T) (*conversation.Orchestrator, *mocks.MockClient) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	gateway := llm.NewGateway(client, "test-model", 0, nil)
	return conversation.NewOrchestrator(nil, gateway, turn.NewMutexManager(), nil), client
}

func roster(profiles ...*persona.Persona) func(string) ([]*persona.Persona, error) {
	return func(path string) ([]*persona.Persona, error) {
		if path != "crew.yaml" {
			return nil, errors.New("no such roster")
		}
		return profiles, nil
	}
}

func TestShell_Run(t *testing.T) {
	req := require.New(t)
	orch, client := newOrchestrator(t)

	client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("ALICE>>Aye.", nil)
	client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("BOB>>Aye aye.", nil)
	client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("BOB>>Only me.", nil)

	input := strings.Join([]string{
		"/add crew.yaml",
		"Ready?",
		"/to Bob",
		"And you?",
		"/system on",
		"/to audience",
		"The sea is calm.",
		"/quit",
		"never read",
	}, "\n")
	var out bytes.Buffer
	sh := New(orch, strings.NewReader(input), &out, Options{
		LoadRoster: roster(&persona.Persona{Name: "Alice"}, &persona.Persona{Name: "Bob"}),
	})

	req.NoError(sh.Run(context.Background()))

	msgs := orch.Messages()
	req.Len(msgs, 6)
	req.Equal("Ready?", msgs[0].Content)
	req.Same(persona.Host, msgs[0].Speaker)
	req.Equal("Aye.", msgs[1].Content)
	req.Equal("Aye aye.", msgs[2].Content)
	req.Equal("And you?", msgs[3].Content)
	req.Equal("Only me.", msgs[4].Content)
	req.Equal(message.RoleSystem, msgs[5].Role)
	req.Equal("The sea is calm.", msgs[5].Content)

	req.Contains(out.String(), "now talking to Bob")
	req.Contains(out.String(), "now talking to audience")
	req.Contains(out.String(), "system role on")
}

func TestShell_Execute_ReportsErrors(t *testing.T) {
	req := require.New(t)
	orch, client := newOrchestrator(t)
	client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("rate limited"))

	var out bytes.Buffer
	sh := New(orch, strings.NewReader(""), &out, Options{LoadRoster: roster(&persona.Persona{Name: "Alice"})})
	ctx := context.Background()

	req.False(sh.Execute(ctx, Parse("/add crew.yaml")))
	req.False(sh.Execute(ctx, Parse("/add missing.yaml")))
	req.False(sh.Execute(ctx, Parse("/to Nobody")))
	req.False(sh.Execute(ctx, Parse("/talk Alice")))
	req.False(sh.Execute(ctx, Parse("/system maybe")))
	req.False(sh.Execute(ctx, Parse("/dance")))
	req.True(sh.Execute(ctx, Parse("/quit")))

	text := out.String()
	req.Contains(text, "error: no such roster")
	req.Contains(text, "Nobody")
	req.Contains(text, "rate limited")
	req.Contains(text, "usage: /system on|off")
	req.Contains(text, "unknown command /dance")
	req.Empty(orch.Messages())
}

func TestShell_Execute_TokensWhoState(t *testing.T) {
	req := require.New(t)
	orch, _ := newOrchestrator(t)
	var out bytes.Buffer
	sh := New(orch, strings.NewReader(""), &out, Options{DefaultModel: "test-model"})
	ctx := context.Background()

	sh.Execute(ctx, Parse("/who"))
	req.Contains(out.String(), "no participants")

	_, err := orch.EnrollParticipant(ctx, &persona.Persona{Name: "Alice", Model: "m1", Temperature: 0.5, Color: "#123456"}, false, false)
	req.NoError(err)

	sh.Execute(ctx, Parse("/tokens 99999"))
	req.Contains(out.String(), "max tokens set to 4096")
	req.Equal(4096, orch.MaxTokens())

	out.Reset()
	sh.Execute(ctx, Parse("/who"))
	req.Contains(out.String(), "Alice")
	req.Contains(out.String(), "m1")
	req.Contains(out.String(), "#123456")

	_, err = orch.EnrollParticipant(ctx, &persona.Persona{Name: "Bob"}, false, false)
	req.NoError(err)
	out.Reset()
	sh.Execute(ctx, Parse("/who"))
	req.Contains(out.String(), "test-model")

	out.Reset()
	sh.Execute(ctx, Parse("/state"))
	req.Contains(out.String(), "phase=idle busy=false to=all role=host max_tokens=4096 messages=0")
	req.Contains(out.String(), "default model test-model")
	req.NotContains(out.String(), "last speaker")

	sh.Execute(ctx, Parse("/to audience"))
	sh.Execute(ctx, Parse("Quiet on deck."))
	out.Reset()
	sh.Execute(ctx, Parse("/state"))
	req.Contains(out.String(), "last speaker Host")
}

func TestShell_Run_StopsWithContext(t *testing.T) {
	req := require.New(t)
	orch, _ := newOrchestrator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in, w := io.Pipe()
	defer w.Close()

	err := New(orch, in, &bytes.Buffer{}, Options{}).Run(ctx)
	req.ErrorIs(err, context.Canceled)
}

func TestShell_Run_StopsWhenAsked(t *testing.T) {
	req := require.New(t)
	orch, _ := newOrchestrator(t)
	stop := make(chan struct{})
	close(stop)

	err := New(orch, strings.NewReader("hello\n"), &bytes.Buffer{}, Options{Stop: stop}).Run(context.Background())

	req.NoError(err)
	req.Empty(orch.Messages())
}

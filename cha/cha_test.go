package cha

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/sat8bit/roundtable/llm"
	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/mocks"
	"github.com/sat8bit/roundtable/persona"
	"github.com/sat8bit/roundtable/prompt"
	"github.com/sat8bit/roundtable/reply"
	"github.com/sat8bit/roundtable/turn"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCha_Reply(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	gateway := llm.NewGateway(client, "default-model", 0, log)

	alice := &persona.Persona{Name: "Alice", Model: "m1", Temperature: 0.9, SetupPrompt: "curious"}
	history := []message.Message{message.New(message.RoleUser, persona.Host, "hello")}
	addressed := history[0]

	client.EXPECT().
		Complete(gomock.Any(), llm.Request{
			Messages:    prompt.Compose(alice, history, &addressed),
			Model:       "m1",
			Temperature: 0.9,
			MaxTokens:   256,
		}).
		Return("ALICE>>hi host", nil)

	var phases []turn.State
	res, err := NewCha(alice, gateway, log).Reply(ctx, history, &addressed, 256, func(s turn.State) {
		phases = append(phases, s)
	})

	req.NoError(err)
	req.Equal(reply.Result{Speaker: "ALICE", Content: "hi host", Status: reply.Parsed}, res)
	req.Equal([]turn.State{turn.Composing, turn.AwaitingCompletion, turn.Parsing}, phases)
}

func TestCha_Reply_KeepsUnparsedText(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	gateway := llm.NewGateway(client, "m", 0, nil)

	client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("just words", nil)

	res, err := NewCha(&persona.Persona{Name: "Bob"}, gateway, nil).Reply(context.Background(), nil, nil, 10, nil)

	req.NoError(err)
	req.Equal(reply.Unparsed, res.Status)
	req.Equal("just words", res.Content)
}

func TestCha_Reply_StopsOnServiceError(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	gateway := llm.NewGateway(client, "m", 0, nil)

	client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("rate limited"))

	var phases []turn.State
	_, err := NewCha(&persona.Persona{Name: "Bob"}, gateway, nil).Reply(context.Background(), nil, nil, 10, func(s turn.State) {
		phases = append(phases, s)
	})

	var serviceErr *llm.ServiceError
	req.ErrorAs(err, &serviceErr)
	req.Equal([]turn.State{turn.Composing, turn.AwaitingCompletion}, phases)
}

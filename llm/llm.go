//go:generate go run go.uber.org/mock/mockgen -source=llm.go -destination=../mocks/mock_llm.go -package=mocks
package llm

import (
	"context"

	"github.com/sat8bit/roundtable/message"
)

// Client is a completion service backend.
type Client interface {
	// Complete sends the ordered context and returns the generated text.
	Complete(ctx context.Context, req Request) (string, error)
}

// Message is one entry of the context sent to the completion service.
type Message struct {
	Role    message.Role
	Content string
}

type Request struct {
	Messages    []Message
	Model       string
	Temperature float64
	MaxTokens   int
}

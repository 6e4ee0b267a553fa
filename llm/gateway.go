package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ServiceError is returned by the Gateway whenever the completion service
// call fails, including when the call times out.
type ServiceError struct {
	Model string
	Err   error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("completion service (model %s): %v", e.Model, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Gateway is the boundary to the completion service. It clamps the
// generation settings before every call and bounds each call by timeout.
// It never retries.
type Gateway struct {
	client       Client
	defaultModel string
	timeout      time.Duration
	log          *slog.Logger
}

// NewGateway creates a Gateway. A zero timeout leaves calls unbounded.
func NewGateway(client Client, defaultModel string, timeout time.Duration, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{
		client:       client,
		defaultModel: defaultModel,
		timeout:      timeout,
		log:          log,
	}
}

func (g *Gateway) DefaultModel() string {
	return g.defaultModel
}

// Send asks the completion service to continue messages.
func (g *Gateway) Send(ctx context.Context, messages []Message, model string, temperature float64, maxTokens int) (string, error) {
	if model == "" {
		model = g.defaultModel
	}
	req := Request{
		Messages:    messages,
		Model:       model,
		Temperature: ClampTemperature(temperature),
		MaxTokens:   ClampMaxTokens(maxTokens),
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.client.Complete(ctx, req)
	if err != nil {
		g.log.WarnContext(ctx, "completion failed",
			"model", model,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
		return "", &ServiceError{Model: model, Err: err}
	}

	g.log.DebugContext(ctx, "completion done",
		"model", model,
		"temperature", req.Temperature,
		"max_tokens", req.MaxTokens,
		"messages", len(messages),
		"duration_ms", time.Since(start).Milliseconds())
	return text, nil
}

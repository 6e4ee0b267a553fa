package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/sat8bit/roundtable/message"
)

type GeminiConfig struct {
	// APIKey selects the Gemini API backend. Without it the client goes
	// through Vertex AI with ProjectID and Location.
	APIKey    string
	ProjectID string
	Location  string
}

// Gemini is a Client backed by google.golang.org/genai.
type Gemini struct {
	client *genai.Client
}

func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	cc := &genai.ClientConfig{
		Project:  cfg.ProjectID,
		Location: cfg.Location,
		Backend:  genai.BackendVertexAI,
	}
	if cfg.APIKey != "" {
		cc = &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("llm.NewGemini: %w", err)
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) Complete(ctx context.Context, req Request) (string, error) {
	system, contents := toGeminiContents(req.Messages)

	temp := float32(req.Temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: system}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("llm.Gemini.Complete: %w", err)
	}
	return extractText(resp), nil
}

// toGeminiContents moves the leading system entries into the system
// instruction. genai has no system role inside contents, so later system
// entries travel as user content and keep their position.
func toGeminiContents(msgs []Message) (string, []*genai.Content) {
	var system []string
	i := 0
	for ; i < len(msgs) && msgs[i].Role == message.RoleSystem; i++ {
		system = append(system, msgs[i].Content)
	}
	// contents must not be empty
	if i == len(msgs) && i > 0 {
		i--
		system = system[:i]
	}

	contents := make([]*genai.Content, 0, len(msgs)-i)
	for _, m := range msgs[i:] {
		role := genai.RoleUser
		if m.Role == message.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return strings.Join(system, "\n\n"), contents
}

// extractText joins the text parts of the first candidate that has any.
func extractText(res *genai.GenerateContentResponse) string {
	if res == nil {
		return ""
	}
	for _, c := range res.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, p := range c.Content.Parts {
			if p != nil {
				sb.WriteString(p.Text)
			}
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}
	return ""
}

var _ Client = &Gemini{}

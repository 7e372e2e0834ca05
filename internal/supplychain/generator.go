package supplychain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/wonny/folio/pkg/config"
	"github.com/wonny/folio/pkg/logger"
)

// TextGenerator is the boundary toward the generative text service. The
// rest of the package treats it as an opaque prompt-in, text-out call.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator implements TextGenerator on the Gemini API.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *logger.Logger
}

// NewGeminiGenerator creates a Gemini-backed text generator.
func NewGeminiGenerator(ctx context.Context, cfg *config.Config, log *logger.Logger) (*GeminiGenerator, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required for the text generation service")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	return &GeminiGenerator{
		client:  client,
		model:   cfg.Gemini.Model,
		timeout: cfg.Gemini.Timeout,
		logger:  log,
	}, nil
}

// DisabledGenerator is used when no API key is configured. Every call
// fails with a clear error instead of a nil dereference.
type DisabledGenerator struct{}

// GenerateText always fails.
func (DisabledGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "", fmt.Errorf("text generation is not configured, set GOOGLE_API_KEY")
}

// GenerateText sends one prompt and returns the concatenated text parts of
// the first candidate.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{genai.NewPartFromText(prompt)},
		},
	}
	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.3)),
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(timeoutCtx, g.model, contents, genConfig)
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
		break // first candidate only
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("text generation returned no content")
	}

	g.logger.WithFields(map[string]interface{}{
		"model":    g.model,
		"duration": time.Since(start),
		"chars":    len(text),
	}).Debug("Generated text")

	return text, nil
}

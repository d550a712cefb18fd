package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/hirosato/smartrt/internal/domain/draft"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-3-flash-preview"

// ErrMissingAPIKey is returned by the generator built without credentials
var ErrMissingAPIKey = errors.New("gemini API key is not configured")

// Client generates text with the Gemini API
type Client struct {
	models *genai.Models
	model  string
}

// NewGenerator returns a Gemini backed generator.
// Without an API key every call fails, so callers fall back to their default text.
func NewGenerator(ctx context.Context, apiKey, model string) (draft.Generator, error) {
	if apiKey == "" {
		return unavailable{}, nil
	}
	if model == "" {
		model = DefaultModel
	}

	return newClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model)
}

func newClient(ctx context.Context, cfg *genai.ClientConfig, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{models: client.Models, model: model}, nil
}

// Generate sends prompt to the configured model and returns the response text
func (c *Client) Generate(ctx context.Context, prompt draft.Prompt) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: prompt.Temperature,
	}
	if prompt.System != "" {
		config.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt.Contents), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return resp.Text(), nil
}

type unavailable struct{}

func (unavailable) Generate(context.Context, draft.Prompt) (string, error) {
	return "", ErrMissingAPIKey
}

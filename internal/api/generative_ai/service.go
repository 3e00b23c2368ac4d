package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

var ErrMissingAPIKey = errors.New("GOOGLE_GEMINI_API_KEY environment variable is not set")

type AIClient struct {
	client *genai.Client
	model  string
}

// NewAIClient builds a Gemini API client. An empty model selects DefaultModel.
func NewAIClient(ctx context.Context, model string) (*AIClient, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &AIClient{
		client: client,
		model:  model,
	}, nil
}

func (ai *AIClient) Model() string {
	return ai.model
}

// GenerateContent sends a single-turn prompt and returns the concatenated text of the first candidate.
func (ai *AIClient) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return result.Text(), nil
}

// UnavailableClient stands in for AIClient when it cannot be built. Every
// call returns the setup error.
type UnavailableClient struct {
	model string
	err   error
}

func NewUnavailableClient(model string, err error) *UnavailableClient {
	if model == "" {
		model = DefaultModel
	}
	return &UnavailableClient{model: model, err: err}
}

func (u *UnavailableClient) Model() string {
	return u.model
}

func (u *UnavailableClient) GenerateContent(context.Context, string, *genai.GenerateContentConfig) (string, error) {
	return "", u.err
}

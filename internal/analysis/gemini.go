package analysis

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generator produces raw model text for a prompt. The Gemini-backed
// implementation satisfies it in production; tests substitute a stub.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateWithFile(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
}

// GeminiClient calls the Gemini API. No retries: a failed call resolves to the
// error fallback, so retrying would only delay the response.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient builds a client for the named model.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{client: client, model: client.GenerativeModel(model)}, nil
}

// Close releases the underlying connection.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return collapse(resp), nil
}

func (g *GeminiClient) GenerateWithFile(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt), genai.Blob{MIMEType: mimeType, Data: data})
	if err != nil {
		return "", err
	}
	return collapse(resp), nil
}

func collapse(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}

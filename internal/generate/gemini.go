package generate

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// emptyResultText is returned when the model produces no usable text.
const emptyResultText = "생성된 내용이 없습니다."

// GeminiGenerator drafts contracts through the Gemini API. The client is
// created per request so a key added to the environment after startup is
// picked up without a restart.
type GeminiGenerator struct {
	apiKey string
	model  string
}

var _ Generator = (*GeminiGenerator)(nil)

func NewGeminiGenerator(apiKey, model string) *GeminiGenerator {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiGenerator{apiKey: apiKey, model: model}
}

func (g *GeminiGenerator) Generate(ctx context.Context, contractType, info string) (string, error) {
	prompt, err := BuildPrompt(contractType, info)
	if err != nil {
		return "", err
	}
	if g.apiKey == "" {
		return "", ErrAPIKeyMissing
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		slog.WarnContext(ctx, "Model returned no text", "model", g.model, "type", contractType)
		return emptyResultText, nil
	}

	slog.InfoContext(ctx, "Generated contract draft",
		"model", g.model, "type", contractType, "chars", len(text))
	return text, nil
}

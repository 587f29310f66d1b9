package intent

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClassifier classifies intent via the Anthropic messages API.
type AnthropicClassifier struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicClassifier creates a new Anthropic-backed classifier.
func NewAnthropicClassifier(apiKey string) (*AnthropicClassifier, error) {
	if apiKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClassifier{
		client: client,
		model:  "claude-3-5-haiku-20241022",
	}, nil
}

// Name returns the provider name.
func (c *AnthropicClassifier) Name() string {
	return "anthropic"
}

// Classify labels the given customer messages.
func (c *AnthropicClassifier) Classify(ctx context.Context, text string) (*Result, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.F(c.model),
		MaxTokens: anthropic.F(int64(64)),
		System: anthropic.F([]anthropic.TextBlockParam{
			{
				Type: anthropic.F(anthropic.TextBlockParamTypeText),
				Text: anthropic.F(systemPrompt),
			},
		}),
		Messages: anthropic.F([]anthropic.MessageParam{
			{
				Role: anthropic.F(anthropic.MessageParamRoleUser),
				Content: anthropic.F([]anthropic.ContentBlockParamUnion{
					anthropic.TextBlockParam{
						Type: anthropic.F(anthropic.TextBlockParamTypeText),
						Text: anthropic.F(text),
					},
				}),
			},
		}),
	})
	if err != nil {
		return nil, err
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			content += block.Text
		}
	}
	return parseResult(content)
}

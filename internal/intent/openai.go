package intent

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClassifier classifies intent via the OpenAI chat API.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
}

// NewOpenAIClassifier creates a new OpenAI-backed classifier.
func NewOpenAIClassifier(apiKey string) (*OpenAIClassifier, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	return &OpenAIClassifier{
		client: openai.NewClient(apiKey),
		model:  "gpt-4o-mini",
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClassifier) Name() string {
	return "openai"
}

// Classify labels the given customer messages.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (*Result, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   64,
		Temperature: 0,
	})
	if err != nil {
		return nil, err
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	return parseResult(content)
}

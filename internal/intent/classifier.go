// Package intent provides AI intent classification for conversations.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chatcart/crm-platform/internal/model"
)

// Result is one classification: a label plus the model's confidence in it.
type Result struct {
	Label      model.IntentLabel `json:"label"`
	Confidence float64           `json:"confidence"`
}

// Classifier assigns an intent label to conversation text.
type Classifier interface {
	// Classify labels the given customer messages.
	Classify(ctx context.Context, text string) (*Result, error)

	// Name returns the provider name.
	Name() string
}

// Provider is the type of classification provider.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// NewClassifier creates a classifier for the given provider.
func NewClassifier(provider Provider, apiKey string) (Classifier, error) {
	switch provider {
	case ProviderAnthropic:
		return NewAnthropicClassifier(apiKey)
	case ProviderOpenAI:
		return NewOpenAIClassifier(apiKey)
	default:
		return NewOpenAIClassifier(apiKey)
	}
}

// Select picks a classifier from the configured provider and keys. With no
// usable key it returns nil, nil: classification is an optional feature and
// a missing key is not an error.
func Select(provider Provider, anthropicKey, openaiKey string) (Classifier, error) {
	switch {
	case provider == ProviderAnthropic && anthropicKey != "":
		return NewClassifier(ProviderAnthropic, anthropicKey)
	case openaiKey != "":
		return NewClassifier(ProviderOpenAI, openaiKey)
	default:
		return nil, nil
	}
}

const systemPrompt = `You classify customer messages from a social-commerce inbox.
Respond with JSON only: {"label": "<LABEL>", "confidence": <0..1>}
where <LABEL> is one of BUYING, SUPPORT, BROWSING, SPAM, OTHER.`

var validLabels = map[model.IntentLabel]bool{
	model.IntentBuying:   true,
	model.IntentSupport:  true,
	model.IntentBrowsing: true,
	model.IntentSpam:     true,
	model.IntentOther:    true,
}

// parseResult decodes the model's JSON reply, tolerating code fences.
func parseResult(content string) (*Result, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var res Result
	if err := json.Unmarshal([]byte(content), &res); err != nil {
		return nil, fmt.Errorf("parse classification: %w", err)
	}

	res.Label = model.IntentLabel(strings.ToUpper(string(res.Label)))
	if !validLabels[res.Label] {
		res.Label = model.IntentOther
	}
	if res.Confidence < 0 {
		res.Confidence = 0
	}
	if res.Confidence > 1 {
		res.Confidence = 1
	}
	return &res, nil
}

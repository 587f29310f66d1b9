package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatcart/crm-platform/internal/model"
)

func TestParseResult(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		label      model.IntentLabel
		confidence float64
		wantErr    bool
	}{
		{
			name:       "plain json",
			content:    `{"label":"BUYING","confidence":0.92}`,
			label:      model.IntentBuying,
			confidence: 0.92,
		},
		{
			name:       "code fenced",
			content:    "```json\n{\"label\":\"SUPPORT\",\"confidence\":0.7}\n```",
			label:      model.IntentSupport,
			confidence: 0.7,
		},
		{
			name:       "lowercase label normalized",
			content:    `{"label":"browsing","confidence":0.5}`,
			label:      model.IntentBrowsing,
			confidence: 0.5,
		},
		{
			name:       "unknown label falls back to OTHER",
			content:    `{"label":"GIBBERISH","confidence":0.9}`,
			label:      model.IntentOther,
			confidence: 0.9,
		},
		{
			name:       "confidence clamped high",
			content:    `{"label":"SPAM","confidence":3.5}`,
			label:      model.IntentSpam,
			confidence: 1,
		},
		{
			name:       "confidence clamped low",
			content:    `{"label":"SPAM","confidence":-1}`,
			label:      model.IntentSpam,
			confidence: 0,
		},
		{
			name:    "not json",
			content: "I think this customer wants to buy",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := parseResult(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.label, res.Label)
			assert.Equal(t, tt.confidence, res.Confidence)
		})
	}
}

func TestNewClassifierRequiresKey(t *testing.T) {
	_, err := NewClassifier(ProviderOpenAI, "")
	assert.Error(t, err)

	_, err = NewClassifier(ProviderAnthropic, "")
	assert.Error(t, err)

	c, err := NewClassifier(ProviderAnthropic, "key")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", c.Name())

	c, err = NewClassifier("unknown", "key")
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Name())
}

func TestSelect(t *testing.T) {
	// no keys configured: classification is off, not broken
	c, err := Select(ProviderOpenAI, "", "")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = Select(ProviderAnthropic, "", "")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = Select(ProviderAnthropic, "anthropic-key", "")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "anthropic", c.Name())

	// the anthropic provider without its key falls through to openai
	c, err = Select(ProviderAnthropic, "", "openai-key")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "openai", c.Name())

	c, err = Select(ProviderOpenAI, "unused", "openai-key")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "openai", c.Name())
}

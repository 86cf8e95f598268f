package categorizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"fjacquet/bill-csv/internal/config"
	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"
	"fjacquet/bill-csv/internal/parsererror"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	responses []string
	err       error
	prompts   []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	for _, p := range parts {
		if text, ok := p.(genai.Text); ok {
			f.prompts = append(f.prompts, string(text))
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return &genai.GenerateContentResponse{}, nil
	}
	text := f.responses[0]
	f.responses = f.responses[1:]
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(text)}}},
		},
	}, nil
}

func TestGeminiClassifier_Classify(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"```json\n{\"category_id\":3,\"reason\":\"房租\"}\n```"}}
	c := newGeminiClassifier(gen, 0, time.Second, &logging.MockLogger{})

	result, err := c.Classify(context.Background(), sampleTransaction())

	require.NoError(t, err)
	assert.Equal(t, models.CategoryHousing, result.CategoryID)
	assert.Equal(t, "居住", result.CategoryName)
	assert.Equal(t, "房租", result.Reason)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "星巴克")
}

func TestGeminiClassifier_Errors(t *testing.T) {
	tests := []struct {
		name     string
		gen      *fakeGenerator
		contains string
	}{
		{"API error", &fakeGenerator{err: errors.New("quota exceeded")}, "quota exceeded"},
		{"Empty response", &fakeGenerator{}, "no response from Gemini API"},
		{"Invalid id", &fakeGenerator{responses: []string{`{"category_id":42}`}}, "invalid category_id"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newGeminiClassifier(tc.gen, 0, 0, nil).Classify(context.Background(), sampleTransaction())
			require.Error(t, err)
			var classErr *parsererror.ClassificationError
			require.True(t, errors.As(err, &classErr))
			assert.Equal(t, config.ProviderGemini, classErr.Provider)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestGeminiClassifier_RateLimiterHonoursContext(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"category_id":1}`, `{"category_id":1}`}}
	c := newGeminiClassifier(gen, 1, 0, nil)

	_, err := c.Classify(context.Background(), sampleTransaction())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Classify(ctx, sampleTransaction())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
	assert.Len(t, gen.prompts, 1)
}

func TestNewGeminiClassifier_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClassifier(context.Background(), GeminiOptions{Model: "gemini-1.5-flash"}, nil)

	var cfgErr *parsererror.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "classifier.api_key", cfgErr.Key)
}

func TestGeminiClassifier_CloseWithoutClient(t *testing.T) {
	assert.NoError(t, newGeminiClassifier(&fakeGenerator{}, 0, 0, nil).Close())
}

package categorizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/bill-csv/internal/config"
	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"
	"fjacquet/bill-csv/internal/parsererror"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// contentGenerator is the part of *genai.GenerativeModel the classifier uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClassifier classifies transactions through the Google Gemini API.
type GeminiClassifier struct {
	client  *genai.Client
	model   contentGenerator
	limiter *rate.Limiter
	timeout time.Duration
	logger  logging.Logger
}

// GeminiOptions configures NewGeminiClassifier.
type GeminiOptions struct {
	APIKey            string
	Model             string
	RequestsPerMinute int
	Timeout           time.Duration
}

// NewGeminiClassifier creates a Gemini-backed classifier.
func NewGeminiClassifier(ctx context.Context, opts GeminiOptions, logger logging.Logger) (*GeminiClassifier, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, &parsererror.ConfigError{Key: "classifier.api_key", Reason: "GEMINI_API_KEY is not set"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := newGeminiClassifier(client.GenerativeModel(opts.Model), opts.RequestsPerMinute, opts.Timeout, logger)
	c.client = client
	return c, nil
}

func newGeminiClassifier(model contentGenerator, requestsPerMinute int, timeout time.Duration, logger logging.Logger) *GeminiClassifier {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	}
	return &GeminiClassifier{
		model:   model,
		limiter: limiter,
		timeout: timeout,
		logger:  logging.OrDefault(logger),
	}
}

// Classify sends one prompt for tx, waiting for the rate limiter first.
func (c *GeminiClassifier) Classify(ctx context.Context, tx models.Transaction) (models.Classification, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.Classification{}, c.fail(tx, fmt.Errorf("rate limiter: %w", err))
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.Debug("Calling Gemini API",
		logging.F(logging.FieldProvider, config.ProviderGemini),
		logging.F(logging.FieldCounterparty, tx.Counterparty))

	resp, err := c.model.GenerateContent(ctx, genai.Text(BuildPrompt(tx)))
	if err != nil {
		return models.Classification{}, c.fail(tx, fmt.Errorf("gemini API error: %w", err))
	}

	text := responseText(resp)
	if text == "" {
		return models.Classification{}, c.fail(tx, fmt.Errorf("no response from Gemini API"))
	}

	result, err := ParseResponse(text)
	if err != nil {
		return models.Classification{}, c.fail(tx, err)
	}
	return result, nil
}

// Close releases the underlying API client.
func (c *GeminiClassifier) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *GeminiClassifier) fail(tx models.Transaction, err error) error {
	return &parsererror.ClassificationError{
		Transaction: Describe(tx),
		Provider:    config.ProviderGemini,
		Err:         err,
	}
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}

package categorizer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"fjacquet/bill-csv/internal/config"
	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"
	"fjacquet/bill-csv/internal/parsererror"
)

// OllamaClassifier classifies transactions with a local model by running
// "<executable> run <model>" and writing the prompt to its stdin.
type OllamaClassifier struct {
	executable string
	model      string
	timeout    time.Duration
	logger     logging.Logger
}

// NewOllamaClassifier creates an OllamaClassifier. A zero timeout disables the
// per-call deadline.
func NewOllamaClassifier(executable, model string, timeout time.Duration, logger logging.Logger) *OllamaClassifier {
	return &OllamaClassifier{
		executable: executable,
		model:      model,
		timeout:    timeout,
		logger:     logging.OrDefault(logger),
	}
}

// Classify runs the model once for tx.
func (c *OllamaClassifier) Classify(ctx context.Context, tx models.Transaction) (models.Classification, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.Debug("Running Ollama classification",
		logging.F(logging.FieldProvider, config.ProviderOllama),
		logging.F(logging.FieldModel, c.model),
		logging.F(logging.FieldCounterparty, tx.Counterparty))

	var stdout, stderr bytes.Buffer
	// #nosec G204 -- executable and model come from the configuration file
	cmd := exec.CommandContext(ctx, c.executable, "run", c.model)
	cmd.Stdin = strings.NewReader(BuildPrompt(tx))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return models.Classification{}, c.fail(tx, fmt.Errorf("cannot start %s: %w", c.executable, err))
	}
	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return models.Classification{}, c.fail(tx, err)
	}

	result, err := ParseResponse(stdout.String())
	if err != nil {
		return models.Classification{}, c.fail(tx, err)
	}
	return result, nil
}

func (c *OllamaClassifier) fail(tx models.Transaction, err error) error {
	return &parsererror.ClassificationError{
		Transaction: Describe(tx),
		Provider:    config.ProviderOllama,
		Err:         err,
	}
}

// Package container provides dependency injection for the bill-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"fjacquet/bill-csv/internal/billparser"
	"fjacquet/bill-csv/internal/categorizer"
	"fjacquet/bill-csv/internal/config"
	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/normalizer"
	"fjacquet/bill-csv/internal/report"
	"fjacquet/bill-csv/internal/store"

	"github.com/google/uuid"
)

// Container holds all application dependencies and provides methods to access them.
//
// The classifier is built on first use so that commands which never classify
// do not need classifier credentials.
type Container struct {
	runID      string
	logger     logging.Logger
	config     *config.Config
	parser     *billparser.Parser
	normalizer *normalizer.RecordNormalizer
	aggregator *report.Aggregator
	generator  *report.Generator
	store      *store.ClassificationStore

	classifier categorizer.Classifier
	closers    []func() error
}

// Option customizes a Container.
type Option func(*Container)

// WithLogger replaces the logger built from the log section.
func WithLogger(logger logging.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// WithClassifier replaces the configured classifier provider.
func WithClassifier(classifier categorizer.Classifier) Option {
	return func(c *Container) {
		c.classifier = classifier
	}
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	c := &Container{
		runID:  uuid.NewString(),
		config: cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = config.ConfigureLogging(cfg)
	}
	c.logger = c.logger.WithField(logging.FieldRunID, c.runID)

	mapper := billparser.NewMapper(billparser.MapperConfig{
		ReportPeriod: cfg.Metadata.ReportPeriod,
		Tag:          cfg.Metadata.Tag,
	})
	c.parser = billparser.NewParser(billparser.NewDetector(nil), mapper, c.logger)
	c.normalizer = normalizer.NewRecordNormalizer(cfg, c.parser, c.logger)
	c.aggregator = report.NewAggregator(report.Options{
		DefaultCategory: cfg.Report.DefaultCategory,
		TopN:            cfg.Report.TopN,
	}, c.logger)
	c.generator = report.NewGenerator(cfg.Report.TopN, c.logger)
	c.store = store.NewClassificationStore(cfg.CachePath(), c.logger)

	c.logger.Debug("Container initialized",
		logging.F(logging.FieldPeriod, cfg.Metadata.ReportPeriod),
		logging.F(logging.FieldProvider, cfg.Classifier.Provider))
	return c, nil
}

// GetClassifier returns the configured classifier, creating it on first use.
// With classifier.cache_file set, answers are cached per counterparty.
func (c *Container) GetClassifier(ctx context.Context) (categorizer.Classifier, error) {
	if c.classifier != nil {
		return c.classifier, nil
	}

	cfg := c.config.Classifier
	var provider categorizer.Classifier
	switch cfg.Provider {
	case config.ProviderOllama:
		provider = categorizer.NewOllamaClassifier(cfg.Executable, cfg.Model, c.config.ClassifierTimeout(), c.logger)
	case config.ProviderGemini:
		gemini, err := categorizer.NewGeminiClassifier(ctx, categorizer.GeminiOptions{
			APIKey:            cfg.APIKey,
			Model:             cfg.Model,
			RequestsPerMinute: cfg.RequestsPerMinute,
			Timeout:           c.config.ClassifierTimeout(),
		}, c.logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, gemini.Close)
		provider = gemini
	default:
		return nil, fmt.Errorf("unknown classifier provider: %s", cfg.Provider)
	}

	if c.store.File != "" {
		cached, err := categorizer.NewCachingClassifier(provider, c.store, c.logger)
		if err != nil {
			return nil, err
		}
		provider = cached
	}

	c.logger.Info("Classifier ready",
		logging.F(logging.FieldProvider, cfg.Provider),
		logging.F(logging.FieldModel, cfg.Model))
	c.classifier = provider
	return provider, nil
}

// GetAnnotator returns an annotator over the configured classifier.
func (c *Container) GetAnnotator(ctx context.Context) (*categorizer.Annotator, error) {
	classifier, err := c.GetClassifier(ctx)
	if err != nil {
		return nil, err
	}
	return categorizer.NewAnnotator(classifier, c.config.Classifier.Provider, c.logger), nil
}

// GetRunID returns the identifier attached to every log entry of this run.
func (c *Container) GetRunID() string {
	return c.runID
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetParser returns the vendor export parser.
func (c *Container) GetParser() *billparser.Parser {
	return c.parser
}

// GetNormalizer returns the record normalizer.
func (c *Container) GetNormalizer() *normalizer.RecordNormalizer {
	return c.normalizer
}

// GetAggregator returns the report aggregator.
func (c *Container) GetAggregator() *report.Aggregator {
	return c.aggregator
}

// GetReportGenerator returns the report renderer.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.generator
}

// GetStore returns the classification cache store.
func (c *Container) GetStore() *store.ClassificationStore {
	return c.store
}

// Close releases clients opened by the container.
func (c *Container) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

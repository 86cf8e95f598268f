// Package config provides Viper-based configuration loading for the pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"fjacquet/bill-csv/internal/parsererror"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Source is one named data source and its export files, in processing order.
type Source struct {
	Name  string   `mapstructure:"name" yaml:"name"`
	Files []string `mapstructure:"files" yaml:"files"`
}

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Metadata struct {
		ReportPeriod string `mapstructure:"report_period" yaml:"report_period"`
		// ReportTime is the legacy name of ReportPeriod.
		ReportTime string `mapstructure:"report_time" yaml:"report_time"`
		Tag        string `mapstructure:"tag" yaml:"tag"`
	} `mapstructure:"metadata" yaml:"metadata"`

	Sources []Source `mapstructure:"sources" yaml:"sources"`

	Output struct {
		Transactions string `mapstructure:"transactions" yaml:"transactions"`
		Report       string `mapstructure:"report" yaml:"report"`
	} `mapstructure:"output" yaml:"output"`

	Classifier struct {
		Provider          string `mapstructure:"provider" yaml:"provider"`
		Model             string `mapstructure:"model" yaml:"model"`
		Executable        string `mapstructure:"executable" yaml:"executable"`
		RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		CacheFile         string `mapstructure:"cache_file" yaml:"cache_file"`
		APIKey            string `mapstructure:"api_key" yaml:"-"`
	} `mapstructure:"classifier" yaml:"classifier"`

	Report struct {
		DefaultCategory string `mapstructure:"default_category" yaml:"default_category"`
		TopN            int    `mapstructure:"top_n" yaml:"top_n"`
	} `mapstructure:"report" yaml:"report"`

	// BaseDir anchors relative paths; it is the directory of the config file.
	BaseDir string `mapstructure:"-" yaml:"-"`
}

// Classifier providers.
const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// legacyKeys maps keys of the older config layout onto their replacements.
// A legacy value only fills in when the replacement is not set.
var legacyKeys = map[string]string{
	"model.name":       "classifier.model",
	"model.executable": "classifier.executable",
}

// Load reads the config file at path (JSON or YAML by extension). With an
// empty path, config.{json,yaml} is searched in the working directory and
// $HOME/.bill-csv. Environment variables prefixed BILL_ override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.bill-csv")
	}

	v.SetEnvPrefix("BILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for legacy, key := range legacyKeys {
		if v.IsSet(legacy) {
			v.SetDefault(key, v.Get(legacy))
		}
	}

	if err := v.BindEnv("classifier.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.BaseDir = "."
	if used := v.ConfigFileUsed(); used != "" {
		cfg.BaseDir = filepath.Dir(used)
	}
	if len(cfg.Sources) == 0 && v.IsSet("data_sources") {
		sources, err := readDataSources(v.ConfigFileUsed())
		if err != nil {
			return nil, err
		}
		cfg.Sources = sources
	}
	if cfg.Metadata.ReportPeriod == "" {
		cfg.Metadata.ReportPeriod = cfg.Metadata.ReportTime
	}
	cfg.Metadata.ReportPeriod = strings.TrimSpace(cfg.Metadata.ReportPeriod)
	cfg.Metadata.Tag = strings.TrimSpace(cfg.Metadata.Tag)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readDataSources reads the legacy "data_sources" mapping (source name ->
// files) from path. The mapping is decoded as a YAML node so that sources keep
// their file order and the case of their names.
func readDataSources(path string) ([]Source, error) {
	if path == "" {
		return nil, &parsererror.ConfigError{Key: "data_sources", Reason: "only supported in a config file"}
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path is the config file viper just read
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var doc struct {
		DataSources yaml.Node `yaml:"data_sources"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse data_sources: %w", err)
	}

	node := doc.DataSources
	if node.Kind != yaml.MappingNode {
		return nil, &parsererror.ConfigError{Key: "data_sources", Reason: "must be a mapping of source name to files"}
	}
	sources := make([]Source, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var files []string
		if err := node.Content[i+1].Decode(&files); err != nil {
			return nil, &parsererror.ConfigError{Key: "data_sources." + name, Reason: "must be a list of files"}
		}
		sources = append(sources, Source{Name: name, Files: files})
	}
	return sources, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("metadata.report_period", "")
	v.SetDefault("metadata.tag", "")

	v.SetDefault("classifier.provider", ProviderOllama)
	v.SetDefault("classifier.model", "qwen-32b")
	v.SetDefault("classifier.executable", "ollama")
	v.SetDefault("classifier.requests_per_minute", 0)
	v.SetDefault("classifier.timeout_seconds", 120)
	v.SetDefault("classifier.cache_file", "")

	v.SetDefault("report.default_category", "其他")
	v.SetDefault("report.top_n", 10)
}

// Validate checks required values and ranges.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return &parsererror.ConfigError{Key: "log.level", Reason: fmt.Sprintf("unknown level %q", c.Log.Level)}
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return &parsererror.ConfigError{Key: "log.format", Reason: "must be 'text' or 'json'"}
	}
	if len([]rune(c.CSV.Delimiter)) != 1 {
		return &parsererror.ConfigError{Key: "csv.delimiter", Reason: "must be a single character"}
	}
	if c.Metadata.ReportPeriod == "" {
		return &parsererror.ConfigError{Key: "metadata.report_period", Reason: "must be configured"}
	}
	for i, s := range c.Sources {
		if strings.TrimSpace(s.Name) == "" {
			return &parsererror.ConfigError{Key: fmt.Sprintf("sources[%d].name", i), Reason: "must not be empty"}
		}
	}
	if strings.TrimSpace(c.Output.Transactions) == "" {
		return &parsererror.ConfigError{Key: "output.transactions", Reason: "must be configured"}
	}
	if _, err := c.Render("output.transactions", c.Output.Transactions); err != nil {
		return err
	}
	if _, err := c.Render("output.report", c.Output.Report); err != nil {
		return err
	}

	switch c.Classifier.Provider {
	case ProviderOllama:
		if strings.TrimSpace(c.Classifier.Executable) == "" {
			return &parsererror.ConfigError{Key: "classifier.executable", Reason: "must be configured"}
		}
	case ProviderGemini:
	default:
		return &parsererror.ConfigError{Key: "classifier.provider", Reason: fmt.Sprintf("unknown provider %q", c.Classifier.Provider)}
	}
	if strings.TrimSpace(c.Classifier.Model) == "" {
		return &parsererror.ConfigError{Key: "classifier.model", Reason: "must be configured"}
	}
	if c.Classifier.RequestsPerMinute < 0 || c.Classifier.RequestsPerMinute > 1000 {
		return &parsererror.ConfigError{Key: "classifier.requests_per_minute", Reason: "must be between 0 and 1000"}
	}
	if c.Classifier.TimeoutSeconds < 0 {
		return &parsererror.ConfigError{Key: "classifier.timeout_seconds", Reason: "must not be negative"}
	}
	if c.Report.TopN < 1 {
		return &parsererror.ConfigError{Key: "report.top_n", Reason: "must be at least 1"}
	}
	return nil
}

// Delimiter returns the configured CSV delimiter rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}

// ClassifierTimeout returns the per-call classifier timeout; zero means none.
func (c *Config) ClassifierTimeout() time.Duration {
	return time.Duration(c.Classifier.TimeoutSeconds) * time.Second
}

// ResolvePath anchors a relative path at BaseDir.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

var placeholderPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// Render substitutes {report_period}, {report_time} and {tag} in template.
// Any other placeholder is a configuration error.
func (c *Config) Render(key, template string) (string, error) {
	values := map[string]string{
		"report_period": c.Metadata.ReportPeriod,
		"report_time":   c.Metadata.ReportPeriod,
		"tag":           c.Metadata.Tag,
	}
	var unknown string
	rendered := placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		value, ok := values[name]
		if !ok && unknown == "" {
			unknown = name
		}
		return value
	})
	if unknown != "" {
		return "", &parsererror.ConfigError{Key: key, Reason: fmt.Sprintf("unknown placeholder '%s'", unknown)}
	}
	return rendered, nil
}

// TransactionsPath returns the rendered, resolved normalized CSV location.
func (c *Config) TransactionsPath() (string, error) {
	rendered, err := c.Render("output.transactions", c.Output.Transactions)
	if err != nil {
		return "", err
	}
	return c.ResolvePath(rendered), nil
}

// ReportPath returns the rendered report location. Without output.report the
// report goes next to the transactions CSV as "<period>月报<ext>".
func (c *Config) ReportPath(ext string) (string, error) {
	if c.Output.Report != "" {
		rendered, err := c.Render("output.report", c.Output.Report)
		if err != nil {
			return "", err
		}
		return c.ResolvePath(rendered), nil
	}
	csvPath, err := c.TransactionsPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(csvPath), c.Metadata.ReportPeriod+"月报"+ext), nil
}

// CachePath returns the resolved classification cache file, or "" when disabled.
func (c *Config) CachePath() string {
	if c.Classifier.CacheFile == "" {
		return ""
	}
	return c.ResolvePath(c.Classifier.CacheFile)
}

// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout is the default timeout for a single backend request.
	defaultRequestTimeout = 600 * time.Second
	// defaultBatchSize is the number of words sent per initial request.
	defaultBatchSize = 100
	// defaultRetryBatchSize is the number of words sent per retry request.
	defaultRetryBatchSize = 25
	// defaultRetryCount is the number of retry rounds per batch after the
	// initial attempt.
	defaultRetryCount = 2
	// DefaultModel is used when the config and flags omit a model name.
	DefaultModel = "qwen2.5:32b"
	// DefaultHostURL is the Ollama endpoint used when no host is configured.
	DefaultHostURL = "http://127.0.0.1:11434"
)

// Config represents the top-level application configuration. The batching
// knobs are pointers so an explicit zero (from a flag or the config file) is
// distinguishable from an omitted value: omitted means "use the default",
// explicit zero is either meaningful (retries) or rejected by Validate
// (batch sizes, concurrency).
type Config struct {
	HostURL        string   `json:"hostUrl,omitempty"`
	Model          string   `json:"model,omitempty"`
	SystemPrompt   string   `json:"systemPrompt,omitempty"`
	BatchSize      *int     `json:"batchSize,omitempty"`
	RetryBatchSize *int     `json:"retryBatchSize,omitempty"`
	RetryCount     *int     `json:"retries,omitempty"`
	Concurrency    *int     `json:"concurrency,omitempty"`
	TimeoutSeconds int      `json:"timeout,omitempty"`
	SleepSeconds   float64  `json:"sleep,omitempty"`
	NoClean        bool     `json:"noClean"`
	Streaming      bool     `json:"streaming"`
	Debug          bool     `json:"debug"`
	Progress       bool     `json:"progress"`
	LogFile        string   `json:"logFile,omitempty"`
	Sampling       Sampling `json:"sampling"`
	ConfigPath     string   `json:"-"`
}

// Sampling defines the model sampling parameters forwarded to the backend.
// Nil fields are omitted from the request so the backend defaults apply.
type Sampling struct {
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}

// RequestTimeout returns the timeout duration for backend requests, falling
// back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EffectiveBatchSize returns the configured batch size or the default.
func (c Config) EffectiveBatchSize() int {
	if c.BatchSize == nil || *c.BatchSize <= 0 {
		return defaultBatchSize
	}
	return *c.BatchSize
}

// EffectiveRetryBatchSize returns the batch size used for retry rounds. It
// never exceeds the initial batch size.
func (c Config) EffectiveRetryBatchSize() int {
	size := defaultRetryBatchSize
	if c.RetryBatchSize != nil && *c.RetryBatchSize > 0 {
		size = *c.RetryBatchSize
	}
	if b := c.EffectiveBatchSize(); size > b {
		return b
	}
	return size
}

// RetryAttempts returns the configured number of retry rounds per batch.
// An explicit zero disables retrying; only an omitted value falls back to
// the default.
func (c Config) RetryAttempts() int {
	if c.RetryCount == nil {
		return defaultRetryCount
	}
	if *c.RetryCount < 0 {
		return 0
	}
	return *c.RetryCount
}

// EffectiveConcurrency returns how many batches may be in flight at once.
func (c Config) EffectiveConcurrency() int {
	if c.Concurrency == nil || *c.Concurrency <= 1 {
		return 1
	}
	return *c.Concurrency
}

// SleepBetween returns the pause inserted before each retry request.
func (c Config) SleepBetween() time.Duration {
	if c.SleepSeconds <= 0 {
		return 0
	}
	return time.Duration(c.SleepSeconds * float64(time.Second))
}

// EffectiveHostURL returns the backend base URL, applying the default host.
func (c Config) EffectiveHostURL() string {
	if u := strings.TrimSpace(c.HostURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return DefaultHostURL
}

// EffectiveModel returns the model name, applying the default.
func (c Config) EffectiveModel() string {
	if m := strings.TrimSpace(c.Model); m != "" {
		return m
	}
	return DefaultModel
}

// LogFilePath returns the path to the application log file, applying a
// default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "cardsmith.log"
}

// Validate reports configuration values that cannot drive a run. Explicitly
// set values must be usable; omitted values fall back to defaults and pass.
func (c Config) Validate() error {
	if c.BatchSize != nil && *c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", *c.BatchSize)
	}
	if c.RetryBatchSize != nil && *c.RetryBatchSize <= 0 {
		return fmt.Errorf("retry batch size must be positive, got %d", *c.RetryBatchSize)
	}
	if c.Concurrency != nil && *c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", *c.Concurrency)
	}
	return nil
}

// Load reads the application configuration from the specified path. A missing
// file at the default path is not an error: flags and defaults drive the run.
func Load(path string) (Config, error) {
	usingDefault := path == ""
	if usingDefault {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if usingDefault {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a
// specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}

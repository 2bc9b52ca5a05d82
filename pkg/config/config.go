package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the tweet collection pipeline.
type Config struct {
	// Search API settings
	API APIConfig `yaml:"api" json:"api"`

	// Collection pipeline settings
	Collection CollectionConfig `yaml:"collection" json:"collection"`

	// Rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig holds search API credentials and transport settings.
type APIConfig struct {
	Token        string        `yaml:"token" json:"token"`
	BaseURL      string        `yaml:"base_url" json:"base_url"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	RetryAltAuth bool          `yaml:"retry_alt_auth" json:"retry_alt_auth"`
}

// CollectionConfig holds pipeline tuning knobs. Caps of 0 mean unbounded.
type CollectionConfig struct {
	BatchSize     int `yaml:"batch_size" json:"batch_size"`
	ProgressEvery int `yaml:"progress_every" json:"progress_every"`
	MaxLocations  int `yaml:"max_locations" json:"max_locations"`
	MaxKeywords   int `yaml:"max_keywords" json:"max_keywords"`
	MaxQueries    int `yaml:"max_queries" json:"max_queries"`
}

// RateLimitConfig selects the pacing strategy between requests. When
// SleepBetween is non-zero a fixed delay is applied after every query;
// otherwise RequestsPerMinute drives a token bucket.
type RateLimitConfig struct {
	SleepBetween      time.Duration `yaml:"sleep_between" json:"sleep_between"`
	RequestsPerMinute int           `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// OutputConfig holds output dataset configuration.
type OutputConfig struct {
	CSVPath   string `yaml:"csv_path" json:"csv_path"`
	ListsFile string `yaml:"lists_file" json:"lists_file"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "https://api.twitterapi.io/twitter/tweet/advanced_search",
			Timeout:      30 * time.Second,
			RetryAltAuth: true,
		},
		Collection: CollectionConfig{
			BatchSize:     200,
			ProgressEvery: 250,
		},
		RateLimit: RateLimitConfig{
			SleepBetween: 250 * time.Millisecond,
		},
		Output: OutputConfig{
			CSVPath: filepath.Join("data", "output", "tweets", "tweets_data.csv"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	if token := os.Getenv("TWEETGRID_API_TOKEN"); token != "" {
		c.API.Token = token
	}
	if baseURL := os.Getenv("TWEETGRID_API_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if timeout := os.Getenv("TWEETGRID_API_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			c.API.Timeout = d
		}
	}
	if batch := os.Getenv("TWEETGRID_BATCH_SIZE"); batch != "" {
		var val int
		fmt.Sscanf(batch, "%d", &val)
		if val > 0 {
			c.Collection.BatchSize = val
		}
	}
	if sleep := os.Getenv("TWEETGRID_SLEEP_BETWEEN"); sleep != "" {
		if d, err := time.ParseDuration(sleep); err == nil && d >= 0 {
			c.RateLimit.SleepBetween = d
		}
	}
	if csvPath := os.Getenv("TWEETGRID_OUTPUT_CSV"); csvPath != "" {
		c.Output.CSVPath = csvPath
	}
	if logLevel := os.Getenv("TWEETGRID_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations.
func (c *Config) findConfigFile() string {
	locations := []string{
		".tweetgrid.yaml",
		".tweetgrid.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "tweetgrid", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "tweetgrid", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".tweetgrid.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid. The API token is validated
// separately at startup because it may arrive from the credential stores.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("API base URL is required"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("API timeout must be positive"))
	}

	if c.Collection.BatchSize <= 0 {
		errs = append(errs, errors.New("batch size must be positive"))
	}
	if c.Collection.ProgressEvery < 0 {
		errs = append(errs, errors.New("progress interval cannot be negative"))
	}
	if c.Collection.MaxLocations < 0 || c.Collection.MaxKeywords < 0 || c.Collection.MaxQueries < 0 {
		errs = append(errs, errors.New("query caps cannot be negative"))
	}

	if c.RateLimit.SleepBetween < 0 {
		errs = append(errs, errors.New("sleep between requests cannot be negative"))
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("requests per minute cannot be negative"))
	}

	if c.Output.CSVPath == "" {
		errs = append(errs, errors.New("output CSV path is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if token, ok := flags["token"].(string); ok && token != "" {
		c.API.Token = token
	}
	if csvPath, ok := flags["output"].(string); ok && csvPath != "" {
		c.Output.CSVPath = csvPath
	}
	if listsFile, ok := flags["lists"].(string); ok && listsFile != "" {
		c.Output.ListsFile = listsFile
	}
	if batch, ok := flags["batch-size"].(int); ok && batch > 0 {
		c.Collection.BatchSize = batch
	}
	if sleep, ok := flags["sleep"].(time.Duration); ok && sleep >= 0 {
		c.RateLimit.SleepBetween = sleep
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok && timeout > 0 {
		c.API.Timeout = timeout
	}
	if maxLocations, ok := flags["max-locations"].(int); ok && maxLocations > 0 {
		c.Collection.MaxLocations = maxLocations
	}
	if maxKeywords, ok := flags["max-keywords"].(int); ok && maxKeywords > 0 {
		c.Collection.MaxKeywords = maxKeywords
	}
	if maxQueries, ok := flags["max-queries"].(int); ok && maxQueries > 0 {
		c.Collection.MaxQueries = maxQueries
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".tweetgrid.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

package paging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds simulator configuration
type Config struct {
	// Bounds
	MaxFrames     int `json:"max_frames"`     // Largest accepted frame count
	MaxReferences int `json:"max_references"` // Longest accepted reference string

	// Simulation
	DefaultPolicy string `json:"default_policy"` // Policy used when the input names none

	// Output
	TraceCompression string `json:"trace_compression"` // Archive compression (none, lz4, snappy)
	ResultCacheSize  int64  `json:"result_cache_size"` // Max cached sweep results (0 disables the cache)

	// Observability
	EnableMetrics bool   `json:"enable_metrics"` // Whether to collect run metrics
	LogLevel      string `json:"log_level"`      // Log level (debug, info, warn, error)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxFrames:        DefaultMaxFrames,
		MaxReferences:    DefaultMaxReferences,
		DefaultPolicy:    "FIFO",
		TraceCompression: "snappy",
		ResultCacheSize:  1024,
		EnableMetrics:    true,
		LogLevel:         "warn",
	}
}

// LoadConfigFromFile loads configuration from a JSON file
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigFromEnv loads configuration from environment variables
// Falls back to default values if environment variables are not set
func LoadConfigFromEnv() *Config {
	config := DefaultConfig()

	if val := os.Getenv("PAGESIM_MAX_FRAMES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxFrames = n
		}
	}

	if val := os.Getenv("PAGESIM_MAX_REFERENCES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxReferences = n
		}
	}

	if val := os.Getenv("PAGESIM_DEFAULT_POLICY"); val != "" {
		config.DefaultPolicy = val
	}

	if val := os.Getenv("PAGESIM_TRACE_COMPRESSION"); val != "" {
		config.TraceCompression = val
	}

	if val := os.Getenv("PAGESIM_RESULT_CACHE_SIZE"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.ResultCacheSize = n
		}
	}

	if val := os.Getenv("PAGESIM_ENABLE_METRICS"); val != "" {
		config.EnableMetrics = val == "true" || val == "1"
	}

	if val := os.Getenv("PAGESIM_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	return config
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.MaxFrames < 1 {
		return ErrInvalidConfig("Validate", "max frames must be greater than 0")
	}

	if c.MaxReferences < 1 {
		return ErrInvalidConfig("Validate", "max references must be greater than 0")
	}

	if _, err := ParsePolicyKind(c.DefaultPolicy); err != nil {
		return err
	}

	if _, err := ParseCompressionType(c.TraceCompression); err != nil {
		return err
	}

	if c.ResultCacheSize < 0 {
		return ErrInvalidConfig("Validate", "result cache size cannot be negative")
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// MaxTraceSize bounds the archived trace of any run these limits accept
func (c *Config) MaxTraceSize() int {
	return MaxTraceSize(c.MaxReferences, c.MaxFrames)
}

// ParseLogLevel maps a configured level name to a slog level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, ErrInvalidConfig("ParseLogLevel", "invalid log level: %s (must be debug, info, warn, or error)", level)
	}
}

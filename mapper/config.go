package mapper

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"struct-mapper/descriptor"
	"struct-mapper/diagnostic"
	"struct-mapper/options"
)

// Config is the YAML representation of mapper settings.
//
//	tag: map
//	cache: true
//	conversions: [default, text_number, duration]
//	log:
//	  level: info
//	  diagnostics: warn
type Config struct {
	Tag         string    `yaml:"tag"`
	Cache       *bool     `yaml:"cache,omitempty"`
	Conversions []string  `yaml:"conversions"`
	Log         LogConfig `yaml:"log"`
}

// LogConfig selects log levels for transfer summaries and field diagnostics.
type LogConfig struct {
	Level       string `yaml:"level"`
	Diagnostics string `yaml:"diagnostics"`
}

// LoadConfig loads and parses a YAML config file from the given path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses and validates YAML config data.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultConfig returns the settings New uses without options.
func DefaultConfig() *Config {
	var cfg Config
	applyDefaults(&cfg)

	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Tag == "" {
		cfg.Tag = descriptor.DefaultTagKey
	}

	if cfg.Cache == nil {
		enabled := true
		cfg.Cache = &enabled
	}

	if cfg.Conversions == nil {
		cfg.Conversions = []string{"default"}
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if cfg.Log.Diagnostics == "" {
		cfg.Log.Diagnostics = "warn"
	}
}

func (c *Config) validate() error {
	if _, err := options.ParseCategories(c.Conversions); err != nil {
		return fmt.Errorf("invalid conversions: %w", err)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	if _, err := zapcore.ParseLevel(c.Log.Diagnostics); err != nil {
		return fmt.Errorf("invalid diagnostics level: %w", err)
	}

	return nil
}

// WithConfig applies the tag, cache and conversion settings of cfg. Conversion
// names that do not parse leave the current setting in place; ParseConfig reports them.
func WithConfig(cfg *Config) Option {
	return func(s *settings) {
		if cfg == nil {
			return
		}

		if cfg.Tag != "" {
			s.tagKey = cfg.Tag
		}

		if cfg.Cache != nil {
			s.cache = *cfg.Cache
		}

		if cfg.Conversions != nil {
			if allowed, err := options.ParseCategories(cfg.Conversions); err == nil {
				s.conversions = allowed
			}
		}
	}
}

// NewFromConfig creates a mapper set up by cfg. It logs through logger and reports
// field diagnostics to a zap sink at the configured diagnostics level. A nil cfg
// selects DefaultConfig.
func NewFromConfig(cfg *Config, logger *zap.Logger, opts ...Option) *Mapper {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	sink := diagnostic.NewZapSink(logger).WithLevel(cfg.DiagnosticsLevel())

	return New(sink, append([]Option{WithConfig(cfg), WithLogger(logger)}, opts...)...)
}

// DiagnosticsLevel returns the level field diagnostics are logged at.
func (c *Config) DiagnosticsLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Log.Diagnostics)
	if err != nil {
		return zapcore.WarnLevel
	}

	return level
}

// BuildLogger creates a production zap logger at the configured level.
func (c *Config) BuildLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}

// Marshal serializes the config to YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Package config loads and validates runtime configuration from a YAML
// file and STOREMARK_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// ErrConfiguration marks fatal settings problems. Generation never starts
// when Load or Validate reports one.
var ErrConfiguration = errors.New("invalid configuration")

// Config is the full runtime configuration.
type Config struct {
	Shop       ShopConfig       `mapstructure:"shop" yaml:"shop"`
	AI         AIConfig         `mapstructure:"ai" yaml:"ai"`
	Generation GenerationConfig `mapstructure:"generation" yaml:"generation"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
}

// ShopConfig identifies the storefront to fetch.
type ShopConfig struct {
	Domain      string `mapstructure:"domain" yaml:"domain"`
	AccessToken string `mapstructure:"access_token" yaml:"access_token"`
	APIVersion  string `mapstructure:"api_version" yaml:"api_version"`
}

// AIConfig controls the enhancement provider.
type AIConfig struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	APIKey            string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL           string `mapstructure:"base_url" yaml:"base_url"`
	Model             string `mapstructure:"model" yaml:"model"`
	MaxRetries        int    `mapstructure:"max_retries" yaml:"max_retries"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

// GenerationConfig controls what a run produces.
type GenerationConfig struct {
	MaxProducts        int  `mapstructure:"max_products" yaml:"max_products"`
	IncludeCollections bool `mapstructure:"include_collections" yaml:"include_collections"`
	IncludeFAQ         bool `mapstructure:"include_faq" yaml:"include_faq"`
	IncludeReviews     bool `mapstructure:"include_reviews" yaml:"include_reviews"`
	PriceValidMonths   int  `mapstructure:"price_valid_months" yaml:"price_valid_months"`
}

// OutputConfig controls where and how output is written.
type OutputConfig struct {
	Path            string `mapstructure:"path" yaml:"path"`
	ValidateSchemas bool   `mapstructure:"validate_schemas" yaml:"validate_schemas"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Shop: ShopConfig{
			APIVersion: "2023-10",
		},
		AI: AIConfig{
			Enabled:           false,
			APIKey:            "${STOREMARK_AI_API_KEY}",
			Model:             "gpt-4o-mini",
			MaxRetries:        3,
			RequestsPerMinute: 60,
		},
		Generation: GenerationConfig{
			MaxProducts:        250,
			IncludeCollections: true,
			IncludeFAQ:         true,
			IncludeReviews:     false,
			PriceValidMonths:   6,
		},
		Output: OutputConfig{
			Path:            "schemas.json",
			ValidateSchemas: true,
		},
	}
}

// Load reads configuration from the given file (or the default search
// paths when empty) merged over defaults and environment variables.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Leaf-key defaults so partial config sections merge instead of
	// shadowing whole blocks.
	defaults := DefaultConfig()
	v.SetDefault("shop.api_version", defaults.Shop.APIVersion)
	v.SetDefault("ai.enabled", defaults.AI.Enabled)
	v.SetDefault("ai.api_key", defaults.AI.APIKey)
	v.SetDefault("ai.model", defaults.AI.Model)
	v.SetDefault("ai.max_retries", defaults.AI.MaxRetries)
	v.SetDefault("ai.requests_per_minute", defaults.AI.RequestsPerMinute)
	v.SetDefault("generation.max_products", defaults.Generation.MaxProducts)
	v.SetDefault("generation.include_collections", defaults.Generation.IncludeCollections)
	v.SetDefault("generation.include_faq", defaults.Generation.IncludeFAQ)
	v.SetDefault("generation.include_reviews", defaults.Generation.IncludeReviews)
	v.SetDefault("generation.price_valid_months", defaults.Generation.PriceValidMonths)
	v.SetDefault("output.path", defaults.Output.Path)
	v.SetDefault("output.validate_schemas", defaults.Output.ValidateSchemas)

	v.SetEnvPrefix("STOREMARK")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.storemark")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Shop.AccessToken = ResolveEnvVars(cfg.Shop.AccessToken)
	cfg.AI.APIKey = ResolveEnvVars(cfg.AI.APIKey)

	return &cfg, nil
}

// Validate checks settings required before a generation run can start.
func (c *Config) Validate() error {
	if c.Shop.Domain == "" {
		return fmt.Errorf("%w: shop.domain is required", ErrConfiguration)
	}
	if c.Shop.AccessToken == "" {
		return fmt.Errorf("%w: shop.access_token is required", ErrConfiguration)
	}
	if c.Shop.APIVersion == "" {
		return fmt.Errorf("%w: shop.api_version is required", ErrConfiguration)
	}
	if c.AI.Enabled && c.AI.APIKey == "" {
		return fmt.Errorf("%w: ai.api_key is required when ai.enabled is true", ErrConfiguration)
	}
	if c.Generation.MaxProducts < 0 {
		return fmt.Errorf("%w: generation.max_products must not be negative", ErrConfiguration)
	}
	if c.Generation.PriceValidMonths <= 0 {
		return fmt.Errorf("%w: generation.price_valid_months must be positive", ErrConfiguration)
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ResolveEnvVars expands ${ENV_VAR} references in a string. Unset
// variables expand to the empty string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	return envVarPattern.ReplaceAllStringFunc(value, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Storemark configuration
# Secrets use ${ENV_VAR} syntax to reference environment variables
# Set these in your shell: export STOREMARK_AI_API_KEY=xxx

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}

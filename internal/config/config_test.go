package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Shop.APIVersion != "2023-10" {
		t.Errorf("APIVersion = %q", cfg.Shop.APIVersion)
	}
	if cfg.AI.Enabled {
		t.Error("AI should be disabled by default")
	}
	if cfg.Generation.MaxProducts != 250 {
		t.Errorf("MaxProducts = %d", cfg.Generation.MaxProducts)
	}
	if cfg.Generation.PriceValidMonths != 6 {
		t.Errorf("PriceValidMonths = %d", cfg.Generation.PriceValidMonths)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `shop:
  domain: test-shop
  access_token: token-123
generation:
  max_products: 10
  include_faq: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Shop.Domain != "test-shop" {
		t.Errorf("Domain = %q", cfg.Shop.Domain)
	}
	if cfg.Generation.MaxProducts != 10 {
		t.Errorf("MaxProducts = %d", cfg.Generation.MaxProducts)
	}
	// Values not in the file keep their defaults.
	if cfg.Shop.APIVersion != "2023-10" {
		t.Errorf("APIVersion = %q", cfg.Shop.APIVersion)
	}
}

func TestLoadResolvesEnvVars(t *testing.T) {
	t.Setenv("TEST_SHOP_TOKEN", "secret-token")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `shop:
  domain: test-shop
  access_token: ${TEST_SHOP_TOKEN}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Shop.AccessToken != "secret-token" {
		t.Errorf("AccessToken = %q", cfg.Shop.AccessToken)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := DefaultConfig()
		cfg.Shop.Domain = "shop"
		cfg.Shop.AccessToken = "token"
		cfg.AI.APIKey = ""
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing domain", func(c *Config) { c.Shop.Domain = "" }, true},
		{"missing token", func(c *Config) { c.Shop.AccessToken = "" }, true},
		{"missing api version", func(c *Config) { c.Shop.APIVersion = "" }, true},
		{"ai enabled without key", func(c *Config) { c.AI.Enabled = true }, true},
		{"ai enabled with key", func(c *Config) { c.AI.Enabled = true; c.AI.APIKey = "k" }, false},
		{"negative max products", func(c *Config) { c.Generation.MaxProducts = -1 }, true},
		{"zero validity window", func(c *Config) { c.Generation.PriceValidMonths = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfiguration) {
				t.Errorf("error should wrap ErrConfiguration: %v", err)
			}
		})
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("CFG_TEST_VALUE", "resolved")

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"plain", "plain"},
		{"${CFG_TEST_VALUE}", "resolved"},
		{"prefix-${CFG_TEST_VALUE}-suffix", "prefix-resolved-suffix"},
		{"${CFG_TEST_UNSET}", ""},
	}

	for _, tt := range tests {
		if got := ResolveEnvVars(tt.input); got != tt.want {
			t.Errorf("ResolveEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Storemark configuration") {
		t.Error("header comment missing")
	}

	// The written file must load back cleanly.
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generation.MaxProducts != 250 {
		t.Errorf("MaxProducts = %d", cfg.Generation.MaxProducts)
	}
}

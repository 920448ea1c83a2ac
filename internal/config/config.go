package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/bookkeeper/internal/model"
)

// FileName is the default config file name.
const FileName = "bookkeeper.yaml"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config represents the top-level bookkeeper.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Book     BookConfig     `yaml:"book"`
	Closing  ClosingConfig  `yaml:"closing"`
}

// BusinessConfig identifies the company that owns the book.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// BookConfig selects where the book snapshot is stored.
type BookConfig struct {
	Backend string `yaml:"backend"` // "file" or "sqlite"
	Path    string `yaml:"path"`    // relative to the config file
}

// ClosingConfig controls the close-book procedure of new exercises.
type ClosingConfig struct {
	RetainedEarningsID   int    `yaml:"retained_earnings_id"`
	RetainedEarningsName string `yaml:"retained_earnings_name"`
	IncomeTaxPayableID   int    `yaml:"income_tax_payable_id"`
	IncomeTaxPayableName string `yaml:"income_tax_payable_name"`
	IncomeTaxRate        string `yaml:"income_tax_rate"` // decimal, e.g. "0.30"
}

// Load reads a bookkeeper.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new book.
func Default(businessName string) *Config {
	rules := model.DefaultClosingRules()
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Book: BookConfig{
			Backend: BackendFile,
			Path:    "book.yaml",
		},
		Closing: ClosingConfig{
			RetainedEarningsID:   rules.RetainedEarningsID,
			RetainedEarningsName: rules.RetainedEarningsName,
			IncomeTaxPayableID:   rules.IncomeTaxPayableID,
			IncomeTaxPayableName: rules.IncomeTaxPayableName,
			IncomeTaxRate:        rules.IncomeTaxRate.StringFixed(2),
		},
	}
}

// Validate checks the backend and the closing rules.
func (c *Config) Validate() error {
	if c.Business.Name == "" {
		return fmt.Errorf("business.name is required")
	}
	switch c.Book.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("book.backend %q must be %q or %q", c.Book.Backend, BackendFile, BackendSQLite)
	}
	if c.Book.Path == "" {
		return fmt.Errorf("book.path is required")
	}
	rules, err := c.ClosingRules()
	if err != nil {
		return err
	}
	if err := rules.Validate(); err != nil {
		return fmt.Errorf("closing: %w", err)
	}
	return nil
}

// ClosingRules converts the closing section into model rules.
func (c *Config) ClosingRules() (model.ClosingRules, error) {
	rate, err := decimal.NewFromString(c.Closing.IncomeTaxRate)
	if err != nil {
		return model.ClosingRules{}, fmt.Errorf("parsing closing.income_tax_rate %q: %w", c.Closing.IncomeTaxRate, err)
	}
	return model.ClosingRules{
		RetainedEarningsID:   c.Closing.RetainedEarningsID,
		RetainedEarningsName: c.Closing.RetainedEarningsName,
		IncomeTaxPayableID:   c.Closing.IncomeTaxPayableID,
		IncomeTaxPayableName: c.Closing.IncomeTaxPayableName,
		IncomeTaxRate:        rate,
	}, nil
}

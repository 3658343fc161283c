package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/bankist-dev/bankist/internal/calc"
	"github.com/bankist-dev/bankist/internal/ledger"
)

// FileName is the default config file name.
const FileName = "bankist.yaml"

// Environment variables that override the config file.
const (
	EnvLogLevel    = "BANKIST_LOG_LEVEL"
	EnvLogFormat   = "BANKIST_LOG_FORMAT"
	EnvCurrency    = "BANKIST_CURRENCY"
	EnvActivityLog = "BANKIST_ACTIVITY_LOG"
)

// Config represents the top-level bankist.yaml configuration.
type Config struct {
	Bank     BankConfig     `yaml:"bank"`
	Policy   PolicyConfig   `yaml:"policy"`
	Seed     SeedConfig     `yaml:"seed"`
	Log      LogConfig      `yaml:"log"`
	Activity ActivityConfig `yaml:"activity"`
}

// BankConfig controls presentation.
type BankConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// PolicyConfig holds the ledger rules. Values are decimals so that a ratio
// such as 0.1 reaches the ledger exactly; both quoted and plain YAML numbers
// are accepted.
type PolicyConfig struct {
	LoanRatio     decimal.Decimal `yaml:"loan_ratio"`
	InterestFloor decimal.Decimal `yaml:"interest_floor"`
}

// SeedConfig points at the accounts the store starts with.
type SeedConfig struct {
	AccountsFile string `yaml:"accounts_file,omitempty"` // empty = built-in demo accounts
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// ActivityConfig controls the activity CSV.
type ActivityConfig struct {
	Path string `yaml:"path,omitempty"` // empty = disabled
}

// Load reads a bankist.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads path if it exists and falls back to Default otherwise.
// Environment overrides are applied in both cases.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv loads an optional .env file from the working directory and copies
// BANKIST_* variables over cfg.
func ApplyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.Bank.Currency = v
	}
	if v := os.Getenv(EnvActivityLog); v != "" {
		cfg.Activity.Path = v
	}
	return nil
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

// Default returns a Config with the standard Bankist rules.
func Default() *Config {
	return &Config{
		Bank: BankConfig{
			Name:     "Bankist",
			Currency: "EUR",
		},
		Policy: PolicyConfig{
			LoanRatio:     ledger.DefaultLoanRatio,
			InterestFloor: calc.DefaultInterestFloor,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LedgerPolicy converts the policy section for the ledger.
func (c *Config) LedgerPolicy() ledger.Policy {
	return ledger.Policy{
		LoanRatio:     c.Policy.LoanRatio,
		InterestFloor: c.Policy.InterestFloor,
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/decemberbank/ledger/internal/ledger"
	"github.com/decemberbank/ledger/internal/model"
)

// Config represents the top-level bank.yaml configuration.
type Config struct {
	Bank     BankConfig    `yaml:"bank"`
	Defaults RatesConfig   `yaml:"defaults"`
	Accounts []AccountSpec `yaml:"accounts,omitempty"`
	Logging  LoggingConfig `yaml:"logging"`
}

// BankConfig identifies the bank shown to the user.
type BankConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"` // display suffix only, e.g. "kr"
}

// RatesConfig holds the rates used when an account spec leaves one out.
// All rates are fractions: 0.02 means 2%.
type RatesConfig struct {
	SavingsInterestRate  decimal.Decimal `yaml:"savings_interest_rate"`
	InvestmentReturnRate decimal.Decimal `yaml:"investment_return_rate"`
	StandardizedTaxRate  decimal.Decimal `yaml:"standardized_tax_rate"`
	BrokerageReturnRate  decimal.Decimal `yaml:"brokerage_return_rate"`
	CapitalGainsTaxRate  decimal.Decimal `yaml:"capital_gains_tax_rate"`
}

// AccountSpec describes an account opened at the start of every session.
type AccountSpec struct {
	Name           string           `yaml:"name"`
	Kind           string           `yaml:"kind"`
	InterestRate   *decimal.Decimal `yaml:"interest_rate,omitempty"`
	ReturnRate     *decimal.Decimal `yaml:"return_rate,omitempty"`
	TaxRate        *decimal.Decimal `yaml:"tax_rate,omitempty"` // standardized or capital gains, by kind
	OpeningDeposit decimal.Decimal  `yaml:"opening_deposit"`
}

// LoggingConfig controls the session logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load reads a bank.yaml file from disk and validates it.
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
		return nil, fmt.Errorf("validating config: %w", err)
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

// Default returns a Config with the demo accounts for a new bank.
func Default(bankName string) *Config {
	return &Config{
		Bank: BankConfig{
			Name:     bankName,
			Currency: "kr",
		},
		Defaults: DefaultRates(),
		Accounts: []AccountSpec{
			{Name: "Användarkonto", Kind: string(model.KindChecking), OpeningDeposit: decimal.NewFromInt(6000)},
			{Name: "Sparkonto", Kind: string(model.KindSavings), OpeningDeposit: decimal.NewFromInt(80000)},
			{Name: "Mina aktier", Kind: string(model.KindInvestmentSavings), OpeningDeposit: decimal.NewFromInt(130000)},
			{Name: "Nordea Stratega 50", Kind: string(model.KindBrokerage), OpeningDeposit: decimal.RequireFromString("40614.4")},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultRates returns the rates used by Default.
func DefaultRates() RatesConfig {
	return RatesConfig{
		SavingsInterestRate:  decimal.RequireFromString("0.02"),
		InvestmentReturnRate: decimal.RequireFromString("0.06"),
		StandardizedTaxRate:  decimal.RequireFromString("0.0125"),
		BrokerageReturnRate:  decimal.RequireFromString("0.05"),
		CapitalGainsTaxRate:  decimal.RequireFromString("0.3"),
	}
}

// Validate checks names, kinds, rates and opening deposits.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Bank.Name) == "" {
		errs = append(errs, errors.New("bank.name is required"))
	}

	rates := []struct {
		key  string
		rate decimal.Decimal
	}{
		{"savings_interest_rate", c.Defaults.SavingsInterestRate},
		{"investment_return_rate", c.Defaults.InvestmentReturnRate},
		{"standardized_tax_rate", c.Defaults.StandardizedTaxRate},
		{"brokerage_return_rate", c.Defaults.BrokerageReturnRate},
		{"capital_gains_tax_rate", c.Defaults.CapitalGainsTaxRate},
	}
	for _, r := range rates {
		if err := ledger.ValidateRate(r.rate); err != nil {
			errs = append(errs, fmt.Errorf("defaults.%s: %w", r.key, err))
		}
	}

	for i, spec := range c.Accounts {
		if err := spec.validate(); err != nil {
			errs = append(errs, fmt.Errorf("accounts[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (s AccountSpec) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("name is required")
	}
	if _, err := model.ParseAccountKind(s.Kind); err != nil {
		return err
	}
	for _, rate := range []*decimal.Decimal{s.InterestRate, s.ReturnRate, s.TaxRate} {
		if rate == nil {
			continue
		}
		if err := ledger.ValidateRate(*rate); err != nil {
			return err
		}
	}
	if s.OpeningDeposit.IsNegative() {
		return fmt.Errorf("opening_deposit must not be negative: %s", s.OpeningDeposit)
	}
	return nil
}

// Build creates the account described by s, filling missing rates from
// defaults. The account is empty; the opening deposit is not applied.
func (s AccountSpec) Build(defaults RatesConfig) (*model.Account, error) {
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("account %q: %w", s.Name, err)
	}
	kind, _ := model.ParseAccountKind(s.Kind)

	switch kind {
	case model.KindChecking:
		return model.NewChecking(s.Name), nil
	case model.KindSavings:
		return model.NewSavings(s.Name, orDefault(s.InterestRate, defaults.SavingsInterestRate)), nil
	case model.KindInvestmentSavings:
		return model.NewInvestmentSavings(s.Name,
			orDefault(s.ReturnRate, defaults.InvestmentReturnRate),
			orDefault(s.TaxRate, defaults.StandardizedTaxRate),
		), nil
	case model.KindBrokerage:
		return model.NewBrokerage(s.Name,
			orDefault(s.ReturnRate, defaults.BrokerageReturnRate),
			orDefault(s.TaxRate, defaults.CapitalGainsTaxRate),
		), nil
	default:
		return nil, fmt.Errorf("account %q: unsupported kind %q", s.Name, kind)
	}
}

func orDefault(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v == nil {
		return def
	}
	return *v
}

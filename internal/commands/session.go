package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decemberbank/ledger/internal/config"
	"github.com/decemberbank/ledger/internal/id"
	"github.com/decemberbank/ledger/internal/ledger"
	"github.com/decemberbank/ledger/internal/logging"
	"github.com/decemberbank/ledger/internal/model"
)

const (
	defaultConfigFile = "bank.yaml"
	defaultBankName   = "DecemberBanken"
)

// session is one CLI invocation's ledger, seeded from configuration.
// Nothing outlives the process.
type session struct {
	cfg    *config.Config
	ledger *ledger.Ledger
	logger *zap.Logger
}

// openSession loads the configuration, builds the logger and opens every
// configured account. Without an explicit --config a missing bank.yaml
// falls back to the demo configuration.
func openSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		cfg, err = config.Default(defaultBankName), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Logging.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger, err := logging.New(level, cfg.Logging.Development || opts.devLog)
	if err != nil {
		return nil, err
	}

	l, err := seedLedger(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, ledger: l, logger: logger}, nil
}

// seedLedger registers the configured accounts and funds them through
// Deposit. Opening deposits do not count toward an ISK's first-year net
// deposits.
func seedLedger(cfg *config.Config, logger *zap.Logger) (*ledger.Ledger, error) {
	l := ledger.New()
	for _, spec := range cfg.Accounts {
		acct, err := spec.Build(cfg.Defaults)
		if err != nil {
			return nil, fmt.Errorf("opening accounts: %w", err)
		}
		accountID := l.Register(acct)
		if spec.OpeningDeposit.IsPositive() {
			if err := l.Deposit(accountID, spec.OpeningDeposit); err != nil {
				return nil, fmt.Errorf("funding %q: %w", spec.Name, err)
			}
		}
		// Opening balances were held before the first simulated year.
		acct.ForgetNetDeposits()
		logger.Debug("account opened",
			zap.Int("account_id", accountID),
			zap.String("name", acct.Name),
			zap.String("kind", string(acct.Kind())),
			zap.String("balance", acct.Balance.StringFixed(2)))
	}
	logger.Info("ledger ready", zap.Int("accounts", l.Len()))
	return l, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// printOverview writes the account table and total assets.
func printOverview(w io.Writer, bankName, currency string, l *ledger.Ledger) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", bankName); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACCOUNT\tNAME\tKIND\tBALANCE\tDETAILS")
	for _, acct := range l.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t%s\n",
			id.FormatAccountNumber(acct.ID),
			acct.Name,
			acct.Kind().Label(),
			acct.Balance.StringFixed(2),
			currency,
			details(acct, currency),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nTotal assets %s %s\n", l.TotalBalance().StringFixed(2), currency)
	return err
}

func details(acct *model.Account, currency string) string {
	switch t := acct.Terms.(type) {
	case *model.CheckingTerms:
		return ""
	case *model.SavingsTerms:
		return fmt.Sprintf("interest %s", percent(t.InterestRate))
	case *model.InvestmentSavingsTerms:
		return fmt.Sprintf("return %s, standardized tax %s, net deposits %s %s",
			percent(t.ReturnRate), percent(t.StandardizedTaxRate),
			t.NetDeposits.StringFixed(2), currency)
	case *model.BrokerageTerms:
		return fmt.Sprintf("return %s, gains tax %s, unrealized gains %s %s",
			percent(t.ReturnRate), percent(t.CapitalGainsTaxRate),
			t.UnrealizedGains.StringFixed(2), currency)
	default:
		return ""
	}
}

var hundred = decimal.NewFromInt(100)

func percent(rate decimal.Decimal) string {
	return rate.Mul(hundred).String() + "%"
}

package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountKind classifies accounts by the interest and tax rules they follow.
type AccountKind string

const (
	KindChecking          AccountKind = "checking"
	KindSavings           AccountKind = "savings"
	KindInvestmentSavings AccountKind = "investment_savings"
	KindBrokerage         AccountKind = "brokerage"
)

// Kinds lists every account kind in display order.
var Kinds = []AccountKind{KindChecking, KindSavings, KindInvestmentSavings, KindBrokerage}

// Label returns the display name of the kind.
func (k AccountKind) Label() string {
	switch k {
	case KindChecking:
		return "Checking"
	case KindSavings:
		return "Savings"
	case KindInvestmentSavings:
		return "Investment savings"
	case KindBrokerage:
		return "Brokerage"
	default:
		return string(k)
	}
}

// ParseAccountKind resolves a kind name, case-insensitively.
func ParseAccountKind(s string) (AccountKind, error) {
	k := AccountKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown account kind %q", s)
}

// Terms holds the kind-specific state of an account. The set of
// implementations is closed: CheckingTerms, SavingsTerms,
// InvestmentSavingsTerms and BrokerageTerms.
type Terms interface {
	Kind() AccountKind
	terms()
}

// CheckingTerms carries no extra state.
type CheckingTerms struct{}

// SavingsTerms pays a fixed annual interest rate.
type SavingsTerms struct {
	InterestRate decimal.Decimal
}

// InvestmentSavingsTerms models a tax-advantaged wrapper taxed yearly at a
// standardized rate on an averaged capital base.
type InvestmentSavingsTerms struct {
	ReturnRate          decimal.Decimal
	StandardizedTaxRate decimal.Decimal
	OpeningBalance      decimal.Decimal // balance at start of the tax year
	NetDeposits         decimal.Decimal // deposits minus withdrawals this tax year, may be negative
}

// BrokerageTerms models a wrapper taxed on realized gains at withdrawal.
type BrokerageTerms struct {
	ReturnRate          decimal.Decimal
	CapitalGainsTaxRate decimal.Decimal
	UnrealizedGains     decimal.Decimal
}

func (*CheckingTerms) Kind() AccountKind          { return KindChecking }
func (*SavingsTerms) Kind() AccountKind           { return KindSavings }
func (*InvestmentSavingsTerms) Kind() AccountKind { return KindInvestmentSavings }
func (*BrokerageTerms) Kind() AccountKind         { return KindBrokerage }

func (*CheckingTerms) terms()          {}
func (*SavingsTerms) terms()           {}
func (*InvestmentSavingsTerms) terms() {}
func (*BrokerageTerms) terms()         {}

// Account is a single ledger account. ID is zero until the account is
// registered with a ledger.
type Account struct {
	ID      int
	Name    string
	Balance decimal.Decimal
	Terms   Terms
}

// Kind returns the account kind, derived from its terms.
func (a *Account) Kind() AccountKind {
	return a.Terms.Kind()
}

// NewChecking creates an empty checking account.
func NewChecking(name string) *Account {
	return &Account{Name: name, Terms: &CheckingTerms{}}
}

// NewSavings creates an empty savings account paying interestRate per year
// (0.02 for 2%).
func NewSavings(name string, interestRate decimal.Decimal) *Account {
	return &Account{Name: name, Terms: &SavingsTerms{InterestRate: interestRate}}
}

// NewInvestmentSavings creates an empty investment savings account.
func NewInvestmentSavings(name string, returnRate, standardizedTaxRate decimal.Decimal) *Account {
	return &Account{
		Name: name,
		Terms: &InvestmentSavingsTerms{
			ReturnRate:          returnRate,
			StandardizedTaxRate: standardizedTaxRate,
		},
	}
}

// NewBrokerage creates an empty brokerage account.
func NewBrokerage(name string, returnRate, capitalGainsTaxRate decimal.Decimal) *Account {
	return &Account{
		Name: name,
		Terms: &BrokerageTerms{
			ReturnRate:          returnRate,
			CapitalGainsTaxRate: capitalGainsTaxRate,
		},
	}
}

func unknownTerms(t Terms) string {
	return fmt.Sprintf("model: unknown account terms %T", t)
}

package model

import "github.com/shopspring/decimal"

var (
	one = decimal.NewFromInt(1)
	two = decimal.NewFromInt(2)
)

// Deposit adds amount to the balance. The amount is not validated here;
// callers reject negative input before calling.
func (a *Account) Deposit(amount decimal.Decimal) {
	switch t := a.Terms.(type) {
	case *CheckingTerms, *SavingsTerms, *BrokerageTerms:
	case *InvestmentSavingsTerms:
		t.NetDeposits = t.NetDeposits.Add(amount)
	default:
		panic(unknownTerms(t))
	}
	a.Balance = a.Balance.Add(amount)
}

// Withdraw removes amount from the account. It reports false, leaving the
// account untouched, when amount exceeds the balance.
//
// Brokerage withdrawals are additionally charged capital gains tax on the
// share of the withdrawal attributable to unrealized gains. Only amount is
// checked against the balance, so the tax can push the balance below zero.
func (a *Account) Withdraw(amount decimal.Decimal) bool {
	if amount.GreaterThan(a.Balance) {
		return false
	}

	switch t := a.Terms.(type) {
	case *CheckingTerms, *SavingsTerms:
		a.Balance = a.Balance.Sub(amount)
	case *InvestmentSavingsTerms:
		t.NetDeposits = t.NetDeposits.Sub(amount)
		a.Balance = a.Balance.Sub(amount)
	case *BrokerageTerms:
		gains, tax := t.realize(a.Balance, amount)
		a.Balance = a.Balance.Sub(amount.Add(tax))
		t.UnrealizedGains = t.UnrealizedGains.Sub(gains)
	default:
		panic(unknownTerms(t))
	}
	return true
}

// WithdrawalTax returns the tax a withdrawal of amount would be charged.
// It is zero for every kind except brokerage.
func (a *Account) WithdrawalTax(amount decimal.Decimal) decimal.Decimal {
	switch t := a.Terms.(type) {
	case *CheckingTerms, *SavingsTerms, *InvestmentSavingsTerms:
		return decimal.Zero
	case *BrokerageTerms:
		_, tax := t.realize(a.Balance, amount)
		return tax
	default:
		panic(unknownTerms(t))
	}
}

// ApplyYearlyUpdate advances the account by one year. Each call compounds.
func (a *Account) ApplyYearlyUpdate() {
	switch t := a.Terms.(type) {
	case *CheckingTerms:
	case *SavingsTerms:
		a.Balance = a.Balance.Mul(one.Add(t.InterestRate))
	case *InvestmentSavingsTerms:
		a.Balance = a.Balance.Mul(one.Add(t.ReturnRate))
		a.Balance = a.Balance.Sub(t.StandardizedTax(a.Balance))
		t.OpeningBalance = a.Balance
		t.NetDeposits = decimal.Zero
	case *BrokerageTerms:
		gains := a.Balance.Mul(t.ReturnRate)
		a.Balance = a.Balance.Add(gains)
		t.UnrealizedGains = t.UnrealizedGains.Add(gains)
	default:
		panic(unknownTerms(t))
	}
}

// ForgetNetDeposits treats the current balance as held since before the tax
// year: an ISK's net deposits are cleared and its opening balance is left
// as is. Other kinds are unchanged.
func (a *Account) ForgetNetDeposits() {
	switch t := a.Terms.(type) {
	case *CheckingTerms, *SavingsTerms, *BrokerageTerms:
	case *InvestmentSavingsTerms:
		t.NetDeposits = decimal.Zero
	default:
		panic(unknownTerms(t))
	}
}

// CapitalBase returns the average of the opening and closing balance plus
// this year's net deposits.
func (t *InvestmentSavingsTerms) CapitalBase(closing decimal.Decimal) decimal.Decimal {
	return t.OpeningBalance.Add(closing).Div(two).Add(t.NetDeposits)
}

// StandardizedTax returns the tax due for a year closing at closing.
func (t *InvestmentSavingsTerms) StandardizedTax(closing decimal.Decimal) decimal.Decimal {
	return t.CapitalBase(closing).Mul(t.StandardizedTaxRate)
}

// realize splits a withdrawal of amount from a balance into the gains it
// realizes and the tax due on them. A zero balance realizes nothing.
func (t *BrokerageTerms) realize(balance, amount decimal.Decimal) (gains, tax decimal.Decimal) {
	if balance.IsZero() {
		return decimal.Zero, decimal.Zero
	}
	ratio := t.UnrealizedGains.Div(balance)
	gains = amount.Mul(ratio)
	return gains, gains.Mul(t.CapitalGainsTaxRate)
}

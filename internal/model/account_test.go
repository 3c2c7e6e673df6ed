package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got.String())
}

func allKinds() []*Account {
	return []*Account{
		NewChecking("Checking"),
		NewSavings("Savings", d("0.02")),
		NewInvestmentSavings("ISK", d("0.06"), d("0.0125")),
		NewBrokerage("Stocks", d("0.05"), d("0.3")),
	}
}

func TestFactories(t *testing.T) {
	tests := []struct {
		acct *Account
		kind AccountKind
	}{
		{NewChecking("a"), KindChecking},
		{NewSavings("b", d("0.02")), KindSavings},
		{NewInvestmentSavings("c", d("0.06"), d("0.0125")), KindInvestmentSavings},
		{NewBrokerage("d", d("0.05"), d("0.3")), KindBrokerage},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.acct.Kind())
		assert.True(t, tt.acct.Balance.IsZero(), "%s should start empty", tt.kind)
		assert.Zero(t, tt.acct.ID)
	}

	isk := NewInvestmentSavings("c", d("0.06"), d("0.0125")).Terms.(*InvestmentSavingsTerms)
	assert.True(t, isk.OpeningBalance.IsZero())
	assert.True(t, isk.NetDeposits.IsZero())

	af := NewBrokerage("d", d("0.05"), d("0.3")).Terms.(*BrokerageTerms)
	assert.True(t, af.UnrealizedGains.IsZero())
}

func TestParseAccountKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseAccountKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.NotEmpty(t, k.Label())
	}

	got, err := ParseAccountKind(" Brokerage ")
	require.NoError(t, err)
	assert.Equal(t, KindBrokerage, got)

	_, err = ParseAccountKind("pension")
	assert.Error(t, err)
}

func TestDeposit(t *testing.T) {
	for _, acct := range allKinds() {
		acct.Deposit(d("250.50"))
		assert.True(t, d("250.50").Equal(acct.Balance), acct.Kind())
	}

	isk := NewInvestmentSavings("ISK", d("0.06"), d("0.0125"))
	isk.Deposit(d("100"))
	isk.Deposit(d("50"))
	assertAmount(t, "150", isk.Terms.(*InvestmentSavingsTerms).NetDeposits)
}

func TestWithdraw_InsufficientFundsLeavesAccountUnchanged(t *testing.T) {
	for _, acct := range allKinds() {
		acct.Deposit(d("100"))
		if b, ok := acct.Terms.(*BrokerageTerms); ok {
			b.UnrealizedGains = d("40")
		}
		before := *acct
		termsBefore := snapshotTerms(acct.Terms)

		assert.False(t, acct.Withdraw(d("100.01")), acct.Kind())
		assert.True(t, before.Balance.Equal(acct.Balance), acct.Kind())
		assert.Equal(t, termsBefore, snapshotTerms(acct.Terms), acct.Kind())
	}
}

func snapshotTerms(t Terms) string {
	switch v := t.(type) {
	case *CheckingTerms:
		return "checking"
	case *SavingsTerms:
		return v.InterestRate.String()
	case *InvestmentSavingsTerms:
		return v.OpeningBalance.String() + "/" + v.NetDeposits.String()
	case *BrokerageTerms:
		return v.UnrealizedGains.String()
	}
	return ""
}

func TestDepositThenWithdrawRestoresBalance(t *testing.T) {
	for _, acct := range allKinds()[:3] {
		acct.Deposit(d("1234.56"))
		start := acct.Balance

		acct.Deposit(d("99.99"))
		require.True(t, acct.Withdraw(d("99.99")))
		assert.True(t, start.Equal(acct.Balance), acct.Kind())
	}
}

func TestWithdraw_InvestmentSavingsTracksNetDeposits(t *testing.T) {
	acct := NewInvestmentSavings("ISK", d("0.06"), d("0.0125"))
	acct.Deposit(d("100"))
	require.False(t, acct.Withdraw(d("300")))
	require.True(t, acct.Withdraw(d("60")))

	assertAmount(t, "40", acct.Balance)
	assertAmount(t, "40", acct.Terms.(*InvestmentSavingsTerms).NetDeposits)

	acct.ApplyYearlyUpdate()
	require.True(t, acct.Withdraw(d("10")))
	assert.True(t, acct.Terms.(*InvestmentSavingsTerms).NetDeposits.IsNegative())
}

func TestWithdraw_BrokerageTaxesRealizedGains(t *testing.T) {
	acct := NewBrokerage("Stocks", d("0.05"), d("0.3"))
	acct.Deposit(d("10000"))
	terms := acct.Terms.(*BrokerageTerms)
	terms.UnrealizedGains = d("2000")

	assertAmount(t, "300", acct.WithdrawalTax(d("5000")))
	require.True(t, acct.Withdraw(d("5000")))

	assertAmount(t, "4700", acct.Balance)
	assertAmount(t, "1000", terms.UnrealizedGains)
}

func TestWithdraw_BrokerageTaxCanOverdraw(t *testing.T) {
	acct := NewBrokerage("Stocks", d("0.05"), d("0.3"))
	acct.Deposit(d("1000"))
	acct.Terms.(*BrokerageTerms).UnrealizedGains = d("1000")

	require.True(t, acct.Withdraw(d("1000")))
	assertAmount(t, "-300", acct.Balance)
	assert.True(t, acct.Terms.(*BrokerageTerms).UnrealizedGains.IsZero())
}

func TestWithdraw_BrokerageZeroBalance(t *testing.T) {
	acct := NewBrokerage("Stocks", d("0.05"), d("0.3"))

	assert.NotPanics(t, func() {
		assert.True(t, acct.Withdraw(decimal.Zero))
	})
	assert.True(t, acct.Balance.IsZero())
	assert.True(t, acct.WithdrawalTax(decimal.Zero).IsZero())
}

func TestWithdrawalTax_OtherKindsAreUntaxed(t *testing.T) {
	for _, acct := range allKinds()[:3] {
		acct.Deposit(d("500"))
		assert.True(t, acct.WithdrawalTax(d("500")).IsZero(), acct.Kind())
	}
}

func TestApplyYearlyUpdate(t *testing.T) {
	t.Run("checking", func(t *testing.T) {
		acct := NewChecking("Checking")
		acct.Deposit(d("6000"))
		acct.ApplyYearlyUpdate()
		assertAmount(t, "6000", acct.Balance)
	})

	t.Run("savings", func(t *testing.T) {
		acct := NewSavings("Savings", d("0.02"))
		acct.Deposit(d("1000"))
		acct.ApplyYearlyUpdate()
		assertAmount(t, "1020", acct.Balance)
		acct.ApplyYearlyUpdate()
		assertAmount(t, "1040.4", acct.Balance)
	})

	t.Run("investment savings", func(t *testing.T) {
		acct := NewInvestmentSavings("ISK", d("0.06"), d("0.0125"))
		acct.Deposit(d("100000"))
		terms := acct.Terms.(*InvestmentSavingsTerms)
		// Held since before the tax year, so nothing counts as a deposit.
		terms.NetDeposits = decimal.Zero

		assertAmount(t, "53000", terms.CapitalBase(d("106000")))
		acct.ApplyYearlyUpdate()

		assertAmount(t, "105337.5", acct.Balance)
		assertAmount(t, "105337.5", terms.OpeningBalance)
		assert.True(t, terms.NetDeposits.IsZero())
	})

	t.Run("investment savings with deposits", func(t *testing.T) {
		acct := NewInvestmentSavings("ISK", d("0.10"), d("0.01"))
		acct.Deposit(d("1000"))
		acct.ApplyYearlyUpdate()
		// base = (0 + 1100)/2 + 1000 = 1550, tax = 15.5
		assertAmount(t, "1084.5", acct.Balance)
	})

	t.Run("brokerage", func(t *testing.T) {
		acct := NewBrokerage("Stocks", d("0.05"), d("0.3"))
		acct.Deposit(d("10000"))
		acct.ApplyYearlyUpdate()
		assertAmount(t, "10500", acct.Balance)
		assertAmount(t, "500", acct.Terms.(*BrokerageTerms).UnrealizedGains)

		acct.ApplyYearlyUpdate()
		assertAmount(t, "11025", acct.Balance)
		assertAmount(t, "1025", acct.Terms.(*BrokerageTerms).UnrealizedGains)
	})
}

func TestForgetNetDeposits(t *testing.T) {
	isk := NewInvestmentSavings("Mina aktier", d("0.06"), d("0.0125"))
	isk.Deposit(d("130000"))
	isk.ForgetNetDeposits()

	terms := isk.Terms.(*InvestmentSavingsTerms)
	assert.True(t, terms.NetDeposits.IsZero())
	assert.True(t, terms.OpeningBalance.IsZero())
	assertAmount(t, "130000", isk.Balance)

	// base = (0 + 137800)/2 = 68900, tax = 861.25
	isk.ApplyYearlyUpdate()
	assertAmount(t, "136938.75", isk.Balance)

	for _, acct := range allKinds() {
		acct.Deposit(d("100"))
		acct.ForgetNetDeposits()
		assertAmount(t, "100", acct.Balance)
	}
}

type foreignTerms struct{ CheckingTerms }

func TestUnknownTermsPanics(t *testing.T) {
	acct := &Account{Name: "x", Terms: &foreignTerms{}}
	assert.Panics(t, func() { acct.Deposit(d("1")) })
	assert.Panics(t, func() { acct.ApplyYearlyUpdate() })
	assert.Panics(t, func() { acct.ForgetNetDeposits() })
}

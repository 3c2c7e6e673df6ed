package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decemberbank/ledger/internal/model"
)

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(d("0.01")))
	assert.ErrorIs(t, ValidateAmount(decimal.Zero), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(d("-5")), ErrInvalidAmount)
}

func TestValidateRate(t *testing.T) {
	assert.NoError(t, ValidateRate(decimal.Zero))
	assert.NoError(t, ValidateRate(d("0.3")))
	assert.ErrorIs(t, ValidateRate(d("-0.01")), ErrInvalidRate)
}

func TestLedgerDeposit(t *testing.T) {
	l := sampleLedger(t)

	require.NoError(t, l.Deposit(1, d("500")))
	checking, _ := l.Get(1)
	assertAmount(t, "6500", checking.Balance)

	assert.ErrorIs(t, l.Deposit(1, d("-1")), ErrInvalidAmount)
	assert.ErrorIs(t, l.Deposit(42, d("1")), ErrNotFound)
	assertAmount(t, "6500", checking.Balance)
}

func TestTransfer(t *testing.T) {
	l := sampleLedger(t)

	require.NoError(t, l.Transfer(1, 2, d("1000")))
	checking, _ := l.Get(1)
	savings, _ := l.Get(2)
	assertAmount(t, "5000", checking.Balance)
	assertAmount(t, "81000", savings.Balance)
}

func TestTransferErrors(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		amount   string
		want     error
	}{
		{"same account", 1, 1, "10", ErrSameAccount},
		{"zero amount", 1, 2, "0", ErrInvalidAmount},
		{"unknown source", 9, 2, "10", ErrNotFound},
		{"unknown destination", 1, 9, "10", ErrNotFound},
		{"insufficient funds", 1, 2, "6000.01", ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := sampleLedger(t)
			before := l.TotalBalance()

			err := l.Transfer(tt.from, tt.to, d(tt.amount))
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, before.Equal(l.TotalBalance()), "failed transfer must not move money")
		})
	}
}

func TestTellerErrorsNameTheAccount(t *testing.T) {
	l := sampleLedger(t)

	err := l.Transfer(2, 2, d("10"))
	require.ErrorIs(t, err, ErrSameAccount)
	assert.Contains(t, err.Error(), "account 2")

	_, err = l.Payout(1, d("10"))
	require.ErrorIs(t, err, ErrCheckingWithdrawal)
	assert.Contains(t, err.Error(), `"Checking"`)

	noChecking := New()
	savings := model.NewSavings("Buffer", d("0.02"))
	noChecking.Register(savings)
	savings.Deposit(d("100"))
	_, err = noChecking.Payout(savings.ID, d("10"))
	require.ErrorIs(t, err, ErrNoCheckingAccount)
	assert.Contains(t, err.Error(), `"Buffer"`)
}

func TestTransferFromBrokerageChargesSource(t *testing.T) {
	l := New()
	checking := model.NewChecking("Checking")
	stocks := model.NewBrokerage("Stocks", d("0.05"), d("0.3"))
	l.Register(checking)
	l.Register(stocks)
	stocks.Deposit(d("10000"))
	stocks.Terms.(*model.BrokerageTerms).UnrealizedGains = d("2000")

	require.NoError(t, l.Transfer(stocks.ID, checking.ID, d("5000")))
	assertAmount(t, "4700", stocks.Balance)
	assertAmount(t, "5000", checking.Balance)
}

func TestTransferAll(t *testing.T) {
	l := sampleLedger(t)
	require.NoError(t, l.TransferAll(2, 1))

	savings, _ := l.Get(2)
	checking, _ := l.Get(1)
	assert.True(t, savings.Balance.IsZero())
	assertAmount(t, "86000", checking.Balance)

	assert.ErrorIs(t, l.TransferAll(2, 1), ErrNothingToMove)
	assert.ErrorIs(t, l.TransferAll(7, 1), ErrNotFound)
}

func TestPayout(t *testing.T) {
	l := sampleLedger(t)

	credited, err := l.Payout(3, d("30000"))
	require.NoError(t, err)
	assert.Equal(t, 1, credited.ID)
	assertAmount(t, "36000", credited.Balance)

	isk, _ := l.Get(3)
	assertAmount(t, "100000", isk.Balance)
	assertAmount(t, "100000", isk.Terms.(*model.InvestmentSavingsTerms).NetDeposits)
}

func TestPayoutErrors(t *testing.T) {
	l := sampleLedger(t)

	_, err := l.Payout(1, d("10"))
	assert.ErrorIs(t, err, ErrCheckingWithdrawal)

	_, err = l.Payout(2, d("80000.01"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = l.Payout(2, d("0"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = l.Payout(5, d("1"))
	assert.ErrorIs(t, err, ErrNotFound)

	noChecking := New()
	savings := model.NewSavings("Savings", d("0.02"))
	noChecking.Register(savings)
	savings.Deposit(d("100"))
	_, err = noChecking.Payout(savings.ID, d("10"))
	assert.ErrorIs(t, err, ErrNoCheckingAccount)
	assertAmount(t, "100", savings.Balance)
}

func TestPayoutAll(t *testing.T) {
	l := sampleLedger(t)

	credited, err := l.PayoutAll(2)
	require.NoError(t, err)
	assertAmount(t, "86000", credited.Balance)

	_, err = l.PayoutAll(2)
	assert.ErrorIs(t, err, ErrNothingToMove)
}

func TestSimulate(t *testing.T) {
	l := sampleLedger(t)
	require.NoError(t, l.Simulate(2))

	savings, _ := l.Get(2)
	assertAmount(t, "83232", savings.Balance)

	assert.ErrorIs(t, l.Simulate(0), ErrInvalidYears)
	assert.ErrorIs(t, l.Simulate(-3), ErrInvalidYears)
	assertAmount(t, "83232", savings.Balance)
}

func TestClose(t *testing.T) {
	l := sampleLedger(t)

	assert.ErrorIs(t, l.Close(2), ErrNonZeroBalance)
	assert.True(t, l.Exists(2))

	require.NoError(t, l.TransferAll(2, 1))
	require.NoError(t, l.Close(2))
	assert.False(t, l.Exists(2))

	assert.ErrorIs(t, l.Close(2), ErrNotFound)
}

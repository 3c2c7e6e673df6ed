package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/decemberbank/ledger/internal/model"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidRate        = errors.New("rate must not be negative")
	ErrInvalidYears       = errors.New("years must be a positive integer")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrSameAccount        = errors.New("source and destination are the same account")
	ErrNonZeroBalance     = errors.New("account balance is not zero")
	ErrCheckingWithdrawal = errors.New("withdrawals from a checking account are not allowed, transfer instead")
	ErrNoCheckingAccount  = errors.New("no checking account to pay out to")
	ErrNothingToMove      = errors.New("nothing to move, balance is zero")
)

// ValidateAmount rejects zero and negative transaction amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	return nil
}

// ValidateRate rejects negative interest, return and tax rates.
func ValidateRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidRate, rate)
	}
	return nil
}

func (l *Ledger) mustGet(id int) (*model.Account, error) {
	acct, ok := l.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return acct, nil
}

// Deposit validates amount and deposits it into account id.
func (l *Ledger) Deposit(id int, amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	acct, err := l.mustGet(id)
	if err != nil {
		return err
	}
	acct.Deposit(amount)
	return nil
}

// Transfer moves amount from one account to another. The source pays any
// withdrawal tax on top of amount; the destination receives amount.
func (l *Ledger) Transfer(fromID, toID int, amount decimal.Decimal) error {
	if fromID == toID {
		return fmt.Errorf("transferring within account %d: %w", fromID, ErrSameAccount)
	}
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	from, err := l.mustGet(fromID)
	if err != nil {
		return err
	}
	to, err := l.mustGet(toID)
	if err != nil {
		return err
	}

	if !from.Withdraw(amount) {
		return fmt.Errorf("transferring %s from %q: %w", amount.StringFixed(2), from.Name, ErrInsufficientFunds)
	}
	to.Deposit(amount)
	return nil
}

// TransferAll moves the whole balance of fromID to toID.
func (l *Ledger) TransferAll(fromID, toID int) error {
	from, err := l.mustGet(fromID)
	if err != nil {
		return err
	}
	if !from.Balance.IsPositive() {
		return fmt.Errorf("transferring from %q: %w", from.Name, ErrNothingToMove)
	}
	return l.Transfer(fromID, toID, from.Balance)
}

// CheckingAccount returns the first registered checking account.
func (l *Ledger) CheckingAccount() (*model.Account, bool) {
	checking := l.ByKind(model.KindChecking)
	if len(checking) == 0 {
		return nil, false
	}
	return checking[0], true
}

// Payout withdraws amount from a non-checking account into the checking
// account. It returns the checking account credited.
func (l *Ledger) Payout(fromID int, amount decimal.Decimal) (*model.Account, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	from, err := l.mustGet(fromID)
	if err != nil {
		return nil, err
	}
	if from.Kind() == model.KindChecking {
		return nil, fmt.Errorf("withdrawing from %q: %w", from.Name, ErrCheckingWithdrawal)
	}
	checking, ok := l.CheckingAccount()
	if !ok {
		return nil, fmt.Errorf("withdrawing from %q: %w", from.Name, ErrNoCheckingAccount)
	}

	if !from.Withdraw(amount) {
		return nil, fmt.Errorf("withdrawing %s from %q: %w", amount.StringFixed(2), from.Name, ErrInsufficientFunds)
	}
	checking.Deposit(amount)
	return checking, nil
}

// PayoutAll pays out the whole balance of fromID.
func (l *Ledger) PayoutAll(fromID int) (*model.Account, error) {
	from, err := l.mustGet(fromID)
	if err != nil {
		return nil, err
	}
	if !from.Balance.IsPositive() {
		return nil, fmt.Errorf("withdrawing from %q: %w", from.Name, ErrNothingToMove)
	}
	return l.Payout(fromID, from.Balance)
}

// Simulate applies the yearly update years times.
func (l *Ledger) Simulate(years int) error {
	if years <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidYears, years)
	}
	for i := 0; i < years; i++ {
		l.ApplyYearlyUpdate()
	}
	return nil
}

// Close deletes an account and explains why when it cannot.
func (l *Ledger) Close(id int) error {
	acct, err := l.mustGet(id)
	if err != nil {
		return err
	}
	if !l.Delete(id) {
		return fmt.Errorf("closing %q (%s left): %w", acct.Name, acct.Balance.StringFixed(2), ErrNonZeroBalance)
	}
	return nil
}

// Package ledger owns the set of accounts for one session and the
// operations that span accounts.
//
// A Ledger is not safe for concurrent use; callers embedding it in a
// concurrent host must serialize access themselves.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/decemberbank/ledger/internal/model"
)

// Ledger is an in-memory registry of accounts keyed by identifier.
type Ledger struct {
	accounts map[int]*model.Account
	order    []int
	next     int
}

// New creates an empty Ledger. The first registered account gets ID 1.
func New() *Ledger {
	return &Ledger{accounts: make(map[int]*model.Account), next: 1}
}

// Register assigns the next identifier to acct, stores it and returns the
// identifier. Names are not checked for uniqueness.
func (l *Ledger) Register(acct *model.Account) int {
	id := l.next
	l.next++

	acct.ID = id
	l.accounts[id] = acct
	l.order = append(l.order, id)
	return id
}

// Delete removes an account. It reports false when no account has that ID
// or the account still holds a positive balance. Deleted IDs are never
// handed out again.
func (l *Ledger) Delete(id int) bool {
	acct, ok := l.accounts[id]
	if !ok || acct.Balance.IsPositive() {
		return false
	}

	delete(l.accounts, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// ApplyYearlyUpdate advances every account by one year.
func (l *Ledger) ApplyYearlyUpdate() {
	for _, acct := range l.accounts {
		acct.ApplyYearlyUpdate()
	}
}

// Get returns an account by ID.
func (l *Ledger) Get(id int) (*model.Account, bool) {
	a, ok := l.accounts[id]
	return a, ok
}

// Exists reports whether an account ID is registered.
func (l *Ledger) Exists(id int) bool {
	_, ok := l.accounts[id]
	return ok
}

// All returns all accounts in registration order.
func (l *Ledger) All() []*model.Account {
	result := make([]*model.Account, 0, len(l.order))
	for _, id := range l.order {
		result = append(result, l.accounts[id])
	}
	return result
}

// ByKind returns all accounts of the given kind in registration order.
func (l *Ledger) ByKind(kind model.AccountKind) []*model.Account {
	var result []*model.Account
	for _, id := range l.order {
		if a := l.accounts[id]; a.Kind() == kind {
			result = append(result, a)
		}
	}
	return result
}

// Len returns the number of registered accounts.
func (l *Ledger) Len() int {
	return len(l.accounts)
}

// TotalBalance sums the balances of all accounts.
func (l *Ledger) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, a := range l.accounts {
		total = total.Add(a.Balance)
	}
	return total
}

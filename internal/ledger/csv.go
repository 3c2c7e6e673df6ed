package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/decemberbank/ledger/internal/model"
)

// StatementHeader is the CSV header written by WriteStatement.
const StatementHeader = "account_id,name,kind,balance,interest_rate,return_rate,tax_rate,opening_balance,net_deposits,unrealized_gains"

const (
	numFields        = 10
	colID            = 0
	colName          = 1
	colKind          = 2
	colBalance       = 3
	colInterestRate  = 4
	colReturnRate    = 5
	colTaxRate       = 6
	colOpeningBal    = 7
	colNetDeposits   = 8
	colUnrealizedGns = 9
)

// WriteStatement writes one row per account, header first.
func WriteStatement(w io.Writer, accounts []*model.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(StatementHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a statement row. Columns that do
// not apply to the account's kind are left empty.
func MarshalAccount(acct *model.Account) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(acct.ID)
	row[colName] = acct.Name
	row[colKind] = string(acct.Kind())
	row[colBalance] = acct.Balance.StringFixed(2)

	switch t := acct.Terms.(type) {
	case *model.CheckingTerms:
	case *model.SavingsTerms:
		row[colInterestRate] = t.InterestRate.String()
	case *model.InvestmentSavingsTerms:
		row[colReturnRate] = t.ReturnRate.String()
		row[colTaxRate] = t.StandardizedTaxRate.String()
		row[colOpeningBal] = t.OpeningBalance.StringFixed(2)
		row[colNetDeposits] = t.NetDeposits.StringFixed(2)
	case *model.BrokerageTerms:
		row[colReturnRate] = t.ReturnRate.String()
		row[colTaxRate] = t.CapitalGainsTaxRate.String()
		row[colUnrealizedGns] = t.UnrealizedGains.StringFixed(2)
	default:
		panic(fmt.Sprintf("ledger: unknown account terms %T", t))
	}
	return row
}

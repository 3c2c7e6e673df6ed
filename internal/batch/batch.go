// Package batch applies scripted ledger operations read from CSV.
//
// A script has the header "op,account,target,amount" followed by one
// operation per row:
//
//	deposit,1,,500
//	withdraw,3,,all        pay out to the checking account
//	transfer,1,2,250.50
//	close,2,,
//	year,,,3               apply three yearly updates
//	open,savings,Buffert,0.03
//	open,brokerage,Fonder,0.07;0.3
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/decemberbank/ledger/internal/config"
	"github.com/decemberbank/ledger/internal/id"
	"github.com/decemberbank/ledger/internal/ledger"
	"github.com/decemberbank/ledger/internal/model"
)

// Header is the CSV header of a batch script.
const Header = "op,account,target,amount"

// Op names a scripted operation.
type Op string

const (
	OpDeposit  Op = "deposit"
	OpWithdraw Op = "withdraw"
	OpTransfer Op = "transfer"
	OpClose    Op = "close"
	OpYear     Op = "year"
	OpOpen     Op = "open"
)

const (
	numFields = 4
	colOp     = 0
	colAcct   = 1
	colTarget = 2
	colAmount = 3

	// open rows reuse the columns for the new account.
	colKind  = colAcct
	colName  = colTarget
	colRates = colAmount

	amountAll = "all"
	rateSep   = ";"
)

// Instruction is one parsed script row.
type Instruction struct {
	Row     int
	Op      Op
	Account int                // source account, zero for year and open
	Target  int                // destination, transfer only
	Amount  decimal.Decimal    // zero when All is set
	All     bool               // move the whole balance
	Years   int                // year only
	Spec    config.AccountSpec // open only
}

func (in Instruction) String() string {
	amount := in.Amount.StringFixed(2)
	if in.All {
		amount = "whole balance"
	}
	switch in.Op {
	case OpDeposit:
		return fmt.Sprintf("deposit %s into %s", amount, id.FormatAccountNumber(in.Account))
	case OpWithdraw:
		return fmt.Sprintf("withdraw %s from %s", amount, id.FormatAccountNumber(in.Account))
	case OpTransfer:
		return fmt.Sprintf("transfer %s from %s to %s", amount, id.FormatAccountNumber(in.Account), id.FormatAccountNumber(in.Target))
	case OpClose:
		return fmt.Sprintf("close %s", id.FormatAccountNumber(in.Account))
	case OpYear:
		return fmt.Sprintf("simulate %d year(s)", in.Years)
	case OpOpen:
		return fmt.Sprintf("open %s account %q", in.Spec.Kind, in.Spec.Name)
	default:
		return string(in.Op)
	}
}

// Parse reads a batch script.
func Parse(r io.Reader) ([]Instruction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading batch CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if got := strings.Join(records[0], ","); got != Header {
		return nil, fmt.Errorf("unexpected header %q, want %q", got, Header)
	}

	var ins []Instruction
	for i, rec := range records[1:] {
		in, err := UnmarshalInstruction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		in.Row = i + 2
		ins = append(ins, in)
	}
	return ins, nil
}

// UnmarshalInstruction converts a CSV row to an Instruction. Columns the
// operation does not use must be empty.
func UnmarshalInstruction(record []string) (Instruction, error) {
	if len(record) != numFields {
		return Instruction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	record = trimFields(record)

	in := Instruction{Op: Op(strings.ToLower(record[colOp]))}
	var err error

	switch in.Op {
	case OpDeposit, OpWithdraw:
		if err := requireEmpty(record, colTarget); err != nil {
			return Instruction{}, err
		}
	case OpClose:
		if err := requireEmpty(record, colTarget, colAmount); err != nil {
			return Instruction{}, err
		}
	case OpYear:
		if err := requireEmpty(record, colAcct, colTarget); err != nil {
			return Instruction{}, err
		}
	case OpTransfer, OpOpen:
	default:
		return Instruction{}, fmt.Errorf("unknown operation %q", record[colOp])
	}
	if in.Op == OpOpen {
		if in.Spec, err = unmarshalSpec(record); err != nil {
			return Instruction{}, err
		}
		return in, nil
	}

	if in.Op != OpYear {
		if in.Account, err = id.ParseAccountRef(record[colAcct]); err != nil {
			return Instruction{}, fmt.Errorf("parsing account: %w", err)
		}
	}
	if in.Op == OpTransfer {
		if in.Target, err = id.ParseAccountRef(record[colTarget]); err != nil {
			return Instruction{}, fmt.Errorf("parsing target: %w", err)
		}
	}

	amount := record[colAmount]
	switch in.Op {
	case OpDeposit:
		if in.Amount, err = decimal.NewFromString(amount); err != nil {
			return Instruction{}, fmt.Errorf("parsing amount %q: %w", amount, err)
		}
	case OpWithdraw, OpTransfer:
		if strings.EqualFold(amount, amountAll) {
			in.All = true
			break
		}
		if in.Amount, err = decimal.NewFromString(amount); err != nil {
			return Instruction{}, fmt.Errorf("parsing amount %q: %w", amount, err)
		}
	case OpYear:
		in.Years = 1
		if amount != "" {
			if in.Years, err = strconv.Atoi(amount); err != nil {
				return Instruction{}, fmt.Errorf("parsing years %q: %w", amount, err)
			}
		}
	}
	return in, nil
}

func trimFields(record []string) []string {
	out := make([]string, len(record))
	for i, f := range record {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

var columnNames = [numFields]string{"op", "account", "target", "amount"}

func requireEmpty(record []string, cols ...int) error {
	for _, c := range cols {
		if record[c] != "" {
			return fmt.Errorf("unexpected %s %q for %s", columnNames[c], record[c], record[colOp])
		}
	}
	return nil
}

// unmarshalSpec reads an open row: kind, name and up to two rates separated
// by ';'. Savings take an interest rate; investment savings and brokerage
// take a return rate then a tax rate. Missing rates are left nil so the
// configured defaults apply.
func unmarshalSpec(record []string) (config.AccountSpec, error) {
	kind, err := model.ParseAccountKind(record[colKind])
	if err != nil {
		return config.AccountSpec{}, fmt.Errorf("parsing kind: %w", err)
	}
	spec := config.AccountSpec{Kind: string(kind), Name: record[colName]}
	if spec.Name == "" {
		return config.AccountSpec{}, errors.New("account name is required")
	}

	var rates []*decimal.Decimal
	if record[colRates] != "" {
		for _, field := range strings.Split(record[colRates], rateSep) {
			rate, err := parseRate(strings.TrimSpace(field))
			if err != nil {
				return config.AccountSpec{}, err
			}
			rates = append(rates, rate)
		}
	}

	maxRates := map[model.AccountKind]int{
		model.KindChecking:          0,
		model.KindSavings:           1,
		model.KindInvestmentSavings: 2,
		model.KindBrokerage:         2,
	}[kind]
	if len(rates) > maxRates {
		return config.AccountSpec{}, fmt.Errorf("%s takes at most %d rate(s), got %d", kind, maxRates, len(rates))
	}

	switch kind {
	case model.KindSavings:
		if len(rates) > 0 {
			spec.InterestRate = rates[0]
		}
	case model.KindInvestmentSavings, model.KindBrokerage:
		if len(rates) > 0 {
			spec.ReturnRate = rates[0]
		}
		if len(rates) > 1 {
			spec.TaxRate = rates[1]
		}
	}
	return spec, nil
}

// parseRate parses one rate. An empty field means the default.
func parseRate(field string) (*decimal.Decimal, error) {
	if field == "" {
		return nil, nil
	}
	rate, err := decimal.NewFromString(field)
	if err != nil {
		return nil, fmt.Errorf("parsing rate %q: %w", field, err)
	}
	if err := ledger.ValidateRate(rate); err != nil {
		return nil, err
	}
	return &rate, nil
}

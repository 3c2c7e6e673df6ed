package batch

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/decemberbank/ledger/internal/config"
	"github.com/decemberbank/ledger/internal/ledger"
)

// Result records the outcome of one instruction.
type Result struct {
	Instruction
	Moved  decimal.Decimal // amount credited or debited, before tax
	Tax    decimal.Decimal // withdrawal tax charged to the source
	Opened int             // ID assigned by open
	Err    error
}

// Runner applies instructions to a ledger.
type Runner struct {
	ledger *ledger.Ledger
	logger *zap.Logger

	// Defaults supplies the rates an open row leaves out.
	Defaults config.RatesConfig

	// ContinueOnError records failures in the results and carries on
	// instead of stopping at the first failing instruction.
	ContinueOnError bool
}

// NewRunner creates a Runner using the built-in default rates. A nil
// logger discards log output.
func NewRunner(l *ledger.Ledger, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{ledger: l, logger: logger, Defaults: config.DefaultRates()}
}

// Apply runs instructions in order. Unless ContinueOnError is set it stops
// at the first failure and returns the results so far with the error.
func (r *Runner) Apply(ins []Instruction) ([]Result, error) {
	results := make([]Result, 0, len(ins))
	var failed int

	for _, in := range ins {
		res := r.apply(in)
		results = append(results, res)

		if res.Err != nil {
			failed++
			r.logger.Warn("batch instruction failed",
				zap.Int("row", in.Row),
				zap.String("op", string(in.Op)),
				zap.Error(res.Err))
			if !r.ContinueOnError {
				return results, fmt.Errorf("row %d (%s): %w", in.Row, in, res.Err)
			}
			continue
		}

		r.logger.Debug("batch instruction applied",
			zap.Int("row", in.Row),
			zap.String("op", string(in.Op)),
			zap.String("moved", res.Moved.StringFixed(2)),
			zap.String("tax", res.Tax.StringFixed(2)),
			zap.Int("opened", res.Opened))
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d instructions failed", failed, len(ins))
	}
	return results, nil
}

func (r *Runner) apply(in Instruction) Result {
	res := Result{Instruction: in, Moved: in.Amount, Tax: decimal.Zero}

	// Preview the tax before the withdrawal changes the source.
	if in.Op == OpWithdraw || in.Op == OpTransfer {
		if src, ok := r.ledger.Get(in.Account); ok {
			if in.All {
				res.Moved = src.Balance
			}
			res.Tax = src.WithdrawalTax(res.Moved)
		}
	}

	switch in.Op {
	case OpDeposit:
		res.Err = r.ledger.Deposit(in.Account, in.Amount)
	case OpWithdraw:
		if in.All {
			_, res.Err = r.ledger.PayoutAll(in.Account)
		} else {
			_, res.Err = r.ledger.Payout(in.Account, in.Amount)
		}
	case OpTransfer:
		if in.All {
			res.Err = r.ledger.TransferAll(in.Account, in.Target)
		} else {
			res.Err = r.ledger.Transfer(in.Account, in.Target, in.Amount)
		}
	case OpClose:
		res.Err = r.ledger.Close(in.Account)
	case OpYear:
		res.Err = r.ledger.Simulate(in.Years)
	case OpOpen:
		res.Opened, res.Err = r.open(in.Spec)
	default:
		res.Err = fmt.Errorf("unknown operation %q", in.Op)
	}

	if res.Err != nil {
		res.Moved = decimal.Zero
		res.Tax = decimal.Zero
	}
	return res
}

func (r *Runner) open(spec config.AccountSpec) (int, error) {
	acct, err := spec.Build(r.Defaults)
	if err != nil {
		return 0, fmt.Errorf("opening account: %w", err)
	}
	return r.ledger.Register(acct), nil
}

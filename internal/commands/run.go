package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decemberbank/ledger/internal/batch"
	"github.com/decemberbank/ledger/internal/id"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	var continueOnError bool
	var exportPath string

	cmd := &cobra.Command{
		Use:   "run <script.csv>",
		Short: "Apply a CSV script of deposits, withdrawals and transfers",
		Long: `Apply a CSV script to the configured accounts. The script starts with
the header "op,account,target,amount". Supported operations are deposit,
withdraw (pays out to the checking account), transfer, close, year and
open. Use "all" as the amount to move a whole balance. An open row reads
"open,<kind>,<name>,<rates>" with rates separated by ';'; missing rates
come from the configured defaults.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening script: %w", err)
			}
			defer f.Close()

			ins, err := batch.Parse(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			runner := batch.NewRunner(s.ledger, s.logger)
			runner.Defaults = s.cfg.Defaults
			runner.ContinueOnError = continueOnError
			results, applyErr := runner.Apply(ins)

			out := cmd.OutOrStdout()
			printResults(out, results, s.cfg.Bank.Currency)
			fmt.Fprintln(out)
			if err := printOverview(out, s.cfg.Bank.Name, s.cfg.Bank.Currency, s.ledger); err != nil {
				return err
			}

			if exportPath != "" {
				if err := writeStatementFile(exportPath, s); err != nil {
					return err
				}
				s.logger.Info("statement exported", zap.String("path", exportPath))
			}
			return applyErr
		},
	}

	cmd.Flags().BoolVar(&continueOnError, "continue", false, "keep going after a failed instruction")
	cmd.Flags().StringVar(&exportPath, "export", "", "write a CSV statement after the script")

	return cmd
}

func printResults(w io.Writer, results []batch.Result, currency string) {
	for _, res := range results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(w, "row %d: %s: FAILED: %v\n", res.Row, res.Instruction, res.Err)
		case res.Opened > 0:
			fmt.Fprintf(w, "row %d: %s: ok (%s)\n", res.Row, res.Instruction, id.FormatAccountNumber(res.Opened))
		case res.Tax.IsPositive():
			fmt.Fprintf(w, "row %d: %s: ok (tax %s %s)\n", res.Row, res.Instruction, res.Tax.StringFixed(2), currency)
		default:
			fmt.Fprintf(w, "row %d: %s: ok\n", res.Row, res.Instruction)
		}
	}
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSimulateCommand(opts *rootOptions) *cobra.Command {
	var years int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Apply yearly interest, returns and taxes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			before := s.ledger.TotalBalance()
			if err := s.ledger.Simulate(years); err != nil {
				return err
			}
			after := s.ledger.TotalBalance()
			s.logger.Info("simulation complete",
				zap.Int("years", years),
				zap.String("total_before", before.StringFixed(2)),
				zap.String("total_after", after.StringFixed(2)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Simulated %d year(s): %s -> %s %s\n\n",
				years, before.StringFixed(2), after.StringFixed(2), s.cfg.Bank.Currency)
			return printOverview(out, s.cfg.Bank.Name, s.cfg.Bank.Currency, s.ledger)
		},
	}

	cmd.Flags().IntVar(&years, "years", 1, "number of years to simulate")

	return cmd
}

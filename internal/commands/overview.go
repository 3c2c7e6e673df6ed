package commands

import (
	"github.com/spf13/cobra"
)

func newOverviewCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "List accounts and total assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			return printOverview(cmd.OutOrStdout(), s.cfg.Bank.Name, s.cfg.Bank.Currency, s.ledger)
		},
	}
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decemberbank/ledger/internal/ledger"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var years int

	cmd := &cobra.Command{
		Use:   "export <statement.csv>",
		Short: "Write a CSV statement of every account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			if years > 0 {
				if err := s.ledger.Simulate(years); err != nil {
					return err
				}
			}
			if err := writeStatementFile(args[0], s); err != nil {
				return err
			}
			s.logger.Info("statement exported",
				zap.String("path", args[0]),
				zap.Int("accounts", s.ledger.Len()),
				zap.Int("years", years))

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d account(s) to %s\n", s.ledger.Len(), args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&years, "years", 0, "simulate this many years before exporting")

	return cmd
}

// writeStatementFile writes the ledger's statement CSV to path.
func writeStatementFile(path string, s *session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating statement dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating statement file: %w", err)
	}

	if err := ledger.WriteStatement(f, s.ledger.All()); err != nil {
		f.Close()
		return fmt.Errorf("writing statement: %w", err)
	}
	return f.Close()
}

package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/decemberbank/ledger/internal/config"
)

func newInitCommand() *cobra.Command {
	var name string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a bank.yaml with the demo accounts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, name, force)
		},
	}

	cmd.Flags().StringVar(&name, "name", defaultBankName, "bank name")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing bank.yaml")

	return cmd
}

func runInit(out io.Writer, dir, name string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, defaultConfigFile)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	cfg := config.Default(name)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid bank: %w", err)
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(out, "Initialized %s at %s\n", name, path)
	return nil
}

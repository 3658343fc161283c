package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankist-dev/bankist/internal/accounts"
	"github.com/bankist-dev/bankist/internal/config"
)

func newInitCommand() *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a config file and the demo accounts",
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

			if err := runInit(absDir, currency); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized Bankist project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "EUR", "currency label shown next to amounts")

	return cmd
}

func runInit(dir, currency string) error {
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("creating directory logs: %w", err)
	}

	cfg := config.Default()
	cfg.Bank.Currency = currency
	cfg.Seed.AccountsFile = accounts.SeedFile
	cfg.Activity.Path = filepath.Join("logs", "activity.csv")
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	store := accounts.NewStore(accounts.DefaultAccounts())
	if err := store.Save(dir); err != nil {
		return fmt.Errorf("writing seed accounts: %w", err)
	}
	return nil
}

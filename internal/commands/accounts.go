package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bankist-dev/bankist/internal/calc"
)

func newAccountsCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the accounts the ledger starts with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "USER\tOWNER\tBALANCE")
			for _, acct := range a.store.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s %s\n", acct.UserName, acct.Owner, calc.Balance(acct.Movements).String(), a.cfg.Bank.Currency)
			}
			return tw.Flush()
		},
	}
}

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bankist-dev/bankist/internal/activity"
	"github.com/bankist-dev/bankist/internal/ledger"
	"github.com/bankist-dev/bankist/internal/shell"
	"github.com/bankist-dev/bankist/internal/view"
)

func newShellCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Log in and run actions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, a, err := newSession(cmd, *configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome to %s. Type help for the list of actions.\n", a.cfg.Bank.Name)
			return sh.Run(cmd.Context(), cmd.InOrStdin(), true)
		},
	}
}

func newRunCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Run an action script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening script: %w", err)
				}
				defer f.Close()
				in = f
			}

			sh, _, err := newSession(cmd, *configPath)
			if err != nil {
				return err
			}
			if err := sh.Run(cmd.Context(), in, false); err != nil {
				return fmt.Errorf("script %s: %w", args[0], err)
			}
			return nil
		},
	}
}

func newSession(cmd *cobra.Command, configPath string) (*shell.Shell, *app, error) {
	a, err := loadApp(configPath, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	out := cmd.OutOrStdout()
	state := ledger.New(
		a.store,
		view.NewTextRenderer(out, a.cfg.Bank.Currency),
		ledger.WithPolicy(a.cfg.LedgerPolicy()),
		ledger.WithLogger(a.log),
	)
	rec := activity.NewRecorder(a.activityPath(configPath))
	a.log.Debug().Str("session", rec.Session()).Msg("session started")

	return shell.New(state, rec, out, a.log), a, nil
}

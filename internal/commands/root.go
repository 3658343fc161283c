package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankist-dev/bankist/internal/buildinfo"
	"github.com/bankist-dev/bankist/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "bankist",
		Short:   "In-memory banking demo",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "config file (optional)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountsCommand(&configPath))
	rootCmd.AddCommand(newShellCommand(&configPath))
	rootCmd.AddCommand(newRunCommand(&configPath))
	rootCmd.AddCommand(newActivityCommand(&configPath))

	return rootCmd
}

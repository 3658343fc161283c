package commands

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bankist-dev/bankist/internal/activity"
)

func newActivityCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "activity",
		Short: "Summarize the activity log by action and outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			path := a.activityPath(*configPath)
			if path == "" {
				return errors.New("activity log is disabled (activity.path is empty)")
			}

			entries, err := activity.Open(path).Entries()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No activity recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ACTION\tOK\tREJECTED\tFAILED\tREASONS")
			for _, t := range activity.Summarize(entries) {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", t.Action, t.OK, t.Rejected, t.Failed, formatReasons(t.Reasons))
			}
			return tw.Flush()
		},
	}
}

func formatReasons(reasons map[string]int) string {
	parts := make([]string, 0, len(reasons))
	for _, code := range slices.Sorted(maps.Keys(reasons)) {
		parts = append(parts, fmt.Sprintf("%s=%d", code, reasons[code]))
	}
	return strings.Join(parts, " ")
}

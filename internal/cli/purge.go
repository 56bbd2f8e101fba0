package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/bootstrap"
)

func newPurgeCommand(opts *RootOptions, factory Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete dedup markers older than the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withComponents(cmd, opts, factory, func(ctx context.Context, c *bootstrap.Components) error {
				deleted, err := c.Retention.RunOnce(ctx)
				if err != nil {
					return err
				}
				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), map[string]int{"deleted": deleted})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "purged %d marker keys (retention %d days)\n",
					deleted, c.Dedup.RetentionDays())
				return nil
			})
		},
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/bootstrap"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/idalloc"
)

func newPendingCommand(opts *RootOptions, factory Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List pending alarms by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withComponents(cmd, opts, factory, func(ctx context.Context, c *bootstrap.Components) error {
				pending, err := c.Manager.Pending(ctx)
				if err != nil {
					return err
				}
				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), pending)
				}

				w := cmd.OutOrStdout()
				for _, category := range domain.Categories() {
					ids := pending[category]
					r := idalloc.Ranges[category]
					count := color.New(color.FgGreen).Sprint(len(ids))
					if len(ids) == r.Capacity() {
						count = color.New(color.FgRed).Sprint(len(ids))
					}
					fmt.Fprintf(w, "%-18s %s/%d  %s  %v\n", category, count, r.Capacity(), r, ids)
				}
				return nil
			})
		},
	}
}

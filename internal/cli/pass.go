package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/bootstrap"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/reminder"
)

func newPassCommand(opts *RootOptions, factory Factory, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:       action + " <category>",
		Short:     short,
		Args:      cobra.ExactArgs(1),
		ValidArgs: categoryNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := domain.ParseCategory(args[0])
			if err != nil {
				return err
			}

			return withComponents(cmd, opts, factory, func(ctx context.Context, c *bootstrap.Components) error {
				var result reminder.PassResult
				switch action {
				case "enable":
					result = c.Manager.Enable(ctx, category)
				case "disable":
					result = c.Manager.Disable(ctx, category)
				case "refresh":
					result = c.Manager.Refresh(ctx, category)
				default:
					return fmt.Errorf("unsupported action %q", action)
				}
				return printPassResult(cmd.OutOrStdout(), opts.Format, result)
			})
		},
	}
}

func categoryNames() []string {
	names := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		names = append(names, c.String())
	}
	return names
}

package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/bootstrap"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/config"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

type RootOptions struct {
	Format  string
	EnvFile string
}

// Factory builds the scheduling core for one command. The returned cleanup
// releases the store.
type Factory func(ctx context.Context, opts *RootOptions) (*bootstrap.Components, func() error, error)

// DefaultFactory loads configuration from the environment (and an optional
// .env file) and wires the configured store and gateway.
func DefaultFactory(ctx context.Context, opts *RootOptions) (*bootstrap.Components, func() error, error) {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := config.ValidateForRun(cfg); err != nil {
		return nil, nil, err
	}
	c, err := bootstrap.Build(ctx, cfg, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}

func NewRootCommand(factory Factory) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "reminderctl",
		Short: "Operate the reminder scheduler",
		Long:  "Inspect and drive the notification reminder scheduler against its configured store and gateway.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load before reading the environment")

	cmd.AddCommand(newPassCommand(opts, factory, "enable", "Schedule a category as if the user switched it on"))
	cmd.AddCommand(newPassCommand(opts, factory, "disable", "Cancel every pending alarm of a category"))
	cmd.AddCommand(newPassCommand(opts, factory, "refresh", "Recompute a category if its preference is on"))
	cmd.AddCommand(newPendingCommand(opts, factory))
	cmd.AddCommand(newPurgeCommand(opts, factory))
	cmd.AddCommand(newSeedCommand(opts, factory))

	return cmd
}

func withComponents(cmd *cobra.Command, opts *RootOptions, factory Factory, fn func(ctx context.Context, c *bootstrap.Components) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, cleanup, err := factory(ctx, opts)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer func() { _ = cleanup() }()
	}
	return fn(ctx, c)
}

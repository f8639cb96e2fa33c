// Package cli implements the folioctl command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/morphofolio/backend/internal/app"
	"github.com/morphofolio/backend/internal/config"
	"github.com/morphofolio/backend/internal/logging"
)

// options carries state shared by every subcommand.
type options struct {
	configFile string
	logLevel   string
	cfg        *config.Config
	open       func(ctx context.Context, cfg *config.Config) (*app.App, error)
}

// NewRootCommand builds the folioctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{open: app.Open}

	root := &cobra.Command{
		Use:   "folioctl",
		Short: "Manage the portfolio catalog and contact messages",
		Long: `folioctl browses the project catalog and works through contact messages
from the terminal, using the same configuration as the API server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = opts.logLevel
			}
			opts.cfg = cfg
			// The dashboard owns the terminal and sets up file logging itself.
			if cmd.Name() != "dashboard" {
				logging.SetupWriter(cmd.ErrOrStderr(), cfg.Logging.Level)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a folio.yaml config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")

	root.AddCommand(newProjectsCommand(opts))
	root.AddCommand(newMessagesCommand(opts))
	root.AddCommand(newDashboardCommand(opts))
	root.AddCommand(newHashPasswordCommand())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// withApp opens the app for the duration of fn.
func (o *options) withApp(ctx context.Context, fn func(a *app.App) error) error {
	a, err := o.open(ctx, o.cfg)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "close:", err)
		}
	}()
	return fn(a)
}

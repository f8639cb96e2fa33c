package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/morphofolio/backend/internal/app"
	"github.com/morphofolio/backend/internal/logging"
	"github.com/morphofolio/backend/internal/tui"
)

func newDashboardCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive message dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog, err := logging.SetupFile(opts.cfg.Logging.File, opts.cfg.Logging.Level)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			return opts.withApp(cmd.Context(), func(a *app.App) error {
				slog.Info("launching dashboard")
				if err := tui.Run(a.Messages); err != nil {
					slog.Error("dashboard error", "error", err)
					return fmt.Errorf("run dashboard: %w", err)
				}
				slog.Info("dashboard exited")
				return nil
			})
		},
	}
}

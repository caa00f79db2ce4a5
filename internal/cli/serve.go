package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/txlens/base-tx-analyzer/internal/app"
	"github.com/txlens/base-tx-analyzer/internal/config"
)

// serveCmd runs the analysis API server until interrupted
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}

		fxApp := fx.New(
			fx.Supply(cfg),
			app.Module,
			fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
				return &fxevent.ZapLogger{Logger: logger}
			}),
			fx.Invoke(func(lc fx.Lifecycle, a *app.Application) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return a.Start(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return a.Stop(ctx)
					},
				})
			}),
		)

		fxApp.Run()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

package root

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/skillbudget/internal/server"
	"github.com/okian/skillbudget/pkg/logger"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(ctx, flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") {
				if err := logger.SetLevelString(cfg.LogLevel); err != nil {
					return err
				}
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return server.Run(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

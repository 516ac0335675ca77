// Package root holds the skillplan commands.
package root

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	app "github.com/okian/skillbudget/internal/app"
	"github.com/okian/skillbudget/internal/config"
	"github.com/okian/skillbudget/internal/server"
	"github.com/okian/skillbudget/internal/ui"
	"github.com/okian/skillbudget/pkg/logger"
)

const Version = "0.1.0"

type globalFlags struct {
	configPath string
	logLevel   string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:           "skillplan",
		Short:         "Pick the best skills to buy for an SP budget",
		Long:          "skillplan loads the skill catalog, applies your grades and SP costs, and finds the highest-rated purchase set within a budget.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
				return err
			}
			return logger.SetLevelString(flags.logLevel)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", os.Getenv(config.EnvFile), "YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newCatalogCmd(&flags),
		newOptimizeCmd(&flags),
		newServeCmd(&flags),
	)
	return cmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func loadConfig(ctx context.Context, flags *globalFlags) (*config.Config, error) {
	return config.LoadFile(ctx, flags.configPath)
}

// startService loads the catalog and reports categories that did not load.
func startService(ctx context.Context, flags *globalFlags, stderr io.Writer) (*app.Service, error) {
	cfg, err := loadConfig(ctx, flags)
	if err != nil {
		return nil, err
	}
	svc, err := server.NewService(cfg, logger.Named("skillplan"))
	if err != nil {
		return nil, err
	}
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	if err := ui.RenderOutcomes(stderr, svc.IngestOutcomes(ctx)); err != nil {
		return nil, err
	}
	return svc, nil
}

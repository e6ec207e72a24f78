// Command signup runs a terminal sign-up form driven by a tether pipeline.
//
// Configuration is read from --config (default $TETHER_CONFIG), or
// config.yaml under the user config directory, with TETHER_* environment
// overrides.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/zoobzio/capitan"
	"go.opentelemetry.io/otel"

	"github.com/zoobzio/tether/internal/config"
	"github.com/zoobzio/tether/internal/telemetry"
	"github.com/zoobzio/tether/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	capitan.Shutdown()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:          "signup",
		Short:        "Terminal sign-up form driven by a tether pipeline",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			if cmd.Flags().Changed("debug") {
				cfg.Debug = debug
			}

			metrics, err := telemetry.New(otel.GetMeterProvider())
			if err != nil {
				return fmt.Errorf("error creating metrics: %w", err)
			}

			ctx := cmd.Context()
			model, err := tui.New(ctx, cfg, metrics)
			if err != nil {
				return fmt.Errorf("error creating form: %w", err)
			}

			if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
				return fmt.Errorf("error running form: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", os.Getenv("TETHER_CONFIG"), "path to a YAML config file")
	cmd.Flags().BoolVar(&debug, "debug", false, "show the latest combined tuples below the form")
	return cmd
}

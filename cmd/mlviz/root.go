package main

import (
	"fmt"
	"log/slog"

	"mlviz/pkg/config"
	"mlviz/pkg/logging"

	"github.com/spf13/cobra"
)

var version = "dev"

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "mlviz",
		Short: "Render classifier metric curves and activation-function shapes",
		Long: `mlviz draws two figures from purely computed data.

  curves       simulates scored datasets (or reads one from CSV), builds
               their Precision-Recall and ROC curves and plots them side by side
  activations  evaluates common neural-network activations over a shared
               input grid and plots them as a gallery`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			slog.SetDefault(logging.NewCLILogger(cmd.ErrOrStderr(), opts.logLevel))
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML file overriding the built-in figure settings")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	cmd.AddCommand(newCurvesCommand(opts))
	cmd.AddCommand(newActivationsCommand(opts))

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

// Package cmd holds the solvency CLI commands.
package cmd

import (
	"github.com/spf13/cobra"

	"solvency-engine/config"
	"solvency-engine/logger"
)

// Version is set at build time with -ldflags.
var Version = "dev"

type rootOptions struct {
	envFile  string
	logLevel string
	cfg      *config.Config
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "solvency",
		Short: "Altman Z-Score solvency and credit risk engine",
		Long: `Altman Z-Score solvency and credit risk engine

Scores companies with the public-manufacturing Altman model
(Z = 1.2 X1 + 1.4 X2 + 3.3 X3 + 0.6 X4 + 1.0 X5) and classifies them as
SAFE (> 2.99), CAUTION (1.81 to 2.99) or DISTRESS (<= 1.81).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file to load (default .env)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(newScoreCommand(opts))
	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newSamplesCommand())

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func (o *rootOptions) init() error {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	o.cfg = cfg

	return logger.Init(logger.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    "solvency-engine",
		ServiceVersion: Version,
	})
}

package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mututech/site/internal/config"
	"github.com/mututech/site/internal/db"
	"github.com/mututech/site/internal/logger"
	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/repository"
)

type rootOptions struct {
	ConfigPath string
	Format     string // "text" | "json"
	Verbose    bool
}

var validFormats = []string{"text", "json"}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "sitectl",
		Short:         "Inspect and maintain the MutuTech site data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}
			return opts.setup(cmd)
		},
	}

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "config.yaml"
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfig, "path to config.yaml")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log storage activity to stderr")

	cmd.AddCommand(newConfigCommand())
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newImportCommand(opts))
	cmd.AddCommand(newSeedCommand(opts))
	cmd.AddCommand(newRepairCommand(opts))
	cmd.AddCommand(newUploadCommand(opts))

	return cmd
}

// setup loads .env and the config file and points the package loggers at stderr.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	_ = godotenv.Load()

	level := "warn"
	if o.Verbose {
		level = "debug"
	}
	l := logger.NewWithWriter(level, cmd.ErrOrStderr())
	config.SetLogger(l.With().Str("component", "config").Logger())
	db.SetLogger(l.With().Str("component", "db").Logger())
	repository.SetLogger(l.With().Str("component", "repository").Logger())

	return config.LoadConfig(o.ConfigPath)
}

func openBackend(ctx context.Context) (*repository.Backend, error) {
	return repository.Open(ctx, config.AppConfig, model.DefaultSeed())
}

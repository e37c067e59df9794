package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/IBM-i2/analyze-connect/internal/config"
	"github.com/IBM-i2/analyze-connect/internal/core"
	"github.com/IBM-i2/analyze-connect/internal/socrata"
)

var subcommandFns = map[string]func(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command{}

type globalFlags struct {
	configPath string
	debug      bool
}

var flags globalFlags

// NewRootCommand builds the connector command from subcommandFns. Run
// without a subcommand it serves.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	rc := &cobra.Command{
		Use:   "server",
		Short: "server - i2 Analyze connector for NYC Emergency Response Incidents",
		Long: `Serves the NYC Emergency Response Incidents dataset to i2 Analyze
as entities and links, fetched on demand from the Socrata API.`,
		SilenceUsage: true,
	}
	rc.PersistentFlags().StringVarP(&flags.configPath, "config", "c", config.Path(), "path to the TOML config file")
	rc.PersistentFlags().BoolVar(&flags.debug, "debug", false, "log at debug level")

	for _, subcomFn := range subcommandFns {
		rc.AddCommand(subcomFn(stdin, stdout, stderr))
	}

	serve := NewServeCommand(stdin, stdout, stderr)
	rc.RunE = serve.RunE
	rc.Flags().AddFlagSet(serve.Flags())

	rc.SetOut(stdout)
	rc.SetErr(stderr)
	return rc
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if flags.debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the file, applies the environment and checks the result.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newDataService(cfg *config.Config, logger *slog.Logger) (*core.ExternalDataService, error) {
	client, err := socrata.NewClient(cfg.Socrata.URL, cfg.Socrata.APIToken,
		socrata.WithTimeout(time.Duration(cfg.Socrata.TimeoutSeconds)*time.Second),
		socrata.WithRateLimit(cfg.Socrata.RequestsPerSecond, cfg.Socrata.Burst),
		socrata.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return core.NewExternalDataService(client, logger), nil
}

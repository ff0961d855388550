package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"heres-tools/cmd/heres/api"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "HERES member registration and account client",
	Long: "HERES member registration and account client\n\n" +
		"Registers youth-group members against the HERES API, activates\n" +
		"accounts and changes passwords.",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the " + appName + " version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), appName, version)
	},
}

// session bundles what every API command needs.
type session struct {
	cfg    *Config
	logger *slog.Logger
	client *api.Client
}

// newSession loads the config and builds the logger and API client from the
// root persistent flags.
func newSession(ctx context.Context) (*session, error) {
	path, err := resolveConfigFile(flagConfig)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(path, flagConfig != "")
	if err != nil {
		return nil, err
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
		if err := cfg.validate(); err != nil {
			return nil, err
		}
	}

	logger := newLogger(os.Stderr, cfg.LogLevel, flagVerbose)
	logger.Debug("config loaded", slog.String("path", path), slog.String("base_url", cfg.BaseURL))

	opts := []api.Option{
		api.WithUserAgent(userAgent(ctx)),
		api.WithLogger(logger),
	}
	if cfg.Token != "" {
		opts = append(opts, api.WithToken(cfg.Token))
	}
	return &session{
		cfg:    cfg,
		logger: logger,
		client: api.NewClient(cfg.BaseURL, opts...),
	}, nil
}

// exitError carries a non-default exit code up to main.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

// exitInvalid is the exit code for input rejected before any request is sent.
const exitInvalid = 2

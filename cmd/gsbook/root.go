package main

import (
	"context"
	"fmt"

	"github.com/jethrolam/gsbook/internal/config"
	"github.com/jethrolam/gsbook/internal/logging"
	"github.com/jethrolam/gsbook/pkg/gsbook/spreadsheet"
	"github.com/jethrolam/gsbook/pkg/gsbook/spreadsheet/gsheets"
	"github.com/jethrolam/gsbook/pkg/gsbook/spreadsheet/xlsx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds state shared by subcommands once the root has run.
type app struct {
	configPath  string
	backend     string
	credentials string
	scopes      []string
	logLevel    string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "gsbook",
		Short: "Derive pivot tables from a spreadsheet event log",
		Long: `gsbook reads the Event tab of a spreadsheet and writes the Summary,
Standard and Individual pivot tables back as tabs of the same sheet.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "gsbook.yaml", "Config file path")
	flags.StringVar(&a.backend, "backend", "", "Spreadsheet backend: google or xlsx")
	flags.StringVar(&a.credentials, "credentials", "", "Service-account credentials file (google backend)")
	flags.StringSliceVar(&a.scopes, "scope", nil, "OAuth scope (repeatable, google backend)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newUpdateCmd(a), newShowCmd(a), newLabelCmd())
	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.backend != "" {
		cfg.Backend = a.backend
	}
	if a.credentials != "" {
		cfg.Google.CredentialsFile = a.credentials
	}
	if len(a.scopes) > 0 {
		cfg.Google.Scopes = a.scopes
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// service builds the configured spreadsheet backend.
func (a *app) service(ctx context.Context) (spreadsheet.Service, error) {
	switch a.cfg.Backend {
	case config.BackendXLSX:
		return xlsx.New(), nil
	case config.BackendGoogle:
		svc, err := gsheets.New(ctx, gsheets.Config{
			CredentialsFile: a.cfg.Google.CredentialsFile,
			Scopes:          a.cfg.Google.Scopes,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalid, a.cfg.Backend)
	}
}

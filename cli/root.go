// Package cli implements the adrija command tree.
package cli

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"adrija-tours/config"
	"adrija-tours/logging"
)

// ExitError wraps an error with a specific process exit code
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

type configKey struct{}

func configFrom(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configKey{}).(*config.Config)
	return cfg
}

// Execute builds the command tree, runs it, and returns the exit code
func Execute() int {
	cmd := NewRootCommand()

	if err := cmd.Execute(); err != nil {
		log.Printf("❌ %v", err)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}

// NewRootCommand constructs the top-level command with all subcommands attached
func NewRootCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "adrija",
		Short: "Adrija Tours catalog service",
		Long: `adrija serves the Adrija Tours destination, hotel and blog catalogs.

Listings support free-text search, categorical filters and sorting, and
the same pipeline is available from the command line through "list".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return &ExitError{Code: 2, Err: err}
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if err := logging.Setup(cfg.Log, cmd.ErrOrStderr()); err != nil {
				return &ExitError{Code: 2, Err: err}
			}

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			log.Debugf("configuration loaded: source=%s env=%s", cfg.Catalog.Source, cfg.Env)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")

	// Flag parsing errors return exit code 2
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Err: err}
	})

	cmd.AddCommand(
		newServeCommand(),
		newListCommand(),
		newSeedCommand(),
		newImagesCommand(),
	)

	return cmd
}

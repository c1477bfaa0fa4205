package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/verbump/pkg/cli/config"
	"github.com/m-mizutani/verbump/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

type runConfig struct {
	stdout io.Writer
}

// Option configures Run
type Option func(*runConfig)

// WithStdout sets where command output is written. Logs always go to
// stderr.
func WithStdout(w io.Writer) Option {
	return func(cfg *runConfig) {
		cfg.stdout = w
	}
}

// Run runs the CLI application
func Run(ctx context.Context, args []string, opts ...Option) error {
	cfg := &runConfig{stdout: os.Stdout}
	for _, opt := range opts {
		opt(cfg)
	}

	var loggerCfg config.Logger
	var logger *slog.Logger

	app := &cli.Command{
		Name:    "verbump",
		Usage:   "Compute the next semantic version from Conventional Commits and prepare the release",
		Version: types.Version,
		Flags:   loggerCfg.Flags(),
		Writer:  cfg.stdout,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdBump(cfg),
			cmdNext(cfg),
			cmdChangelog(cfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

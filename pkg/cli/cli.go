package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/osmload/pkg/cli/config"
	"github.com/m-mizutani/osmload/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		fileCfg   config.File
		logger    *slog.Logger
	)

	flags := append(loggerCfg.Flags(), sentryCfg.Flags()...)
	flags = append(flags, fileCfg.Flags()...)

	app := &cli.Command{
		Name:    "osmload",
		Usage:   "Download OpenStreetMap extracts from Geofabrik and import them into PostGIS",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			if err := sentryCfg.Configure(); err != nil {
				return nil, err
			}

			logger = logger.With(slog.String("run_id", uuid.NewString()))
			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdImport(&fileCfg),
			cmdFetch(&fileCfg),
			cmdStyle(),
			cmdInspect(),
			cmdRegions(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		sentryCfg.Report(err)

		if errors.Is(err, types.ErrRetryExhausted) {
			newStatus(os.Stderr).Fail("Either an incorrect input was entered too many times, or a serious error has occurred. Closing program.")
		}
		return err
	}

	return nil
}

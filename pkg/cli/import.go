package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/cli/config"
	"github.com/m-mizutani/osmload/pkg/domain/interfaces"
	"github.com/m-mizutani/osmload/pkg/infra/geofabrik"
	"github.com/m-mizutani/osmload/pkg/infra/progress"
	"github.com/m-mizutani/osmload/pkg/infra/prompt"
	"github.com/m-mizutani/osmload/pkg/infra/runner"
	"github.com/m-mizutani/osmload/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdImport(fileCfg *config.File) *cli.Command {
	var (
		dbCfg       config.Database
		extractCfg  config.Extract
		toolsCfg    config.Tools
		interactive bool
	)

	flags := append(dbCfg.Flags(), extractCfg.Flags()...)
	flags = append(flags, toolsCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "interactive",
		Aliases:     []string{"i"},
		Usage:       "Prompt for parameters that were not given",
		Destination: &interactive,
	})

	return &cli.Command{
		Name:  "import",
		Usage: "Reset the schema, download the extract and import it",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := fileCfg.Apply(c); err != nil {
				return err
			}

			terminal := prompt.NewTerminal(os.Stdin, os.Stderr)
			if interactive {
				if err := resolveInteractive(c, terminal, &extractCfg, &dbCfg); err != nil {
					return err
				}
			}
			if err := extractCfg.Validate(); err != nil {
				return err
			}
			if err := dbCfg.Validate(); err != nil {
				return err
			}

			return runImport(ctx, &importJob{
				db:       &dbCfg,
				extract:  &extractCfg,
				tools:    &toolsCfg,
				prompter: overwritePrompter(&extractCfg, terminal),
				status:   newStatus(os.Stderr),
			})
		},
	}
}

type importJob struct {
	db       *config.Database
	extract  *config.Extract
	tools    *config.Tools
	prompter interfaces.Prompter
	status   *status
}

func runImport(ctx context.Context, job *importJob) error {
	logger := ctxlog.From(ctx)
	target := job.db.Target()
	req := job.extract.Request()

	if err := runner.LookPath(job.tools.Required(req.ForcePBF, job.db.SchemaReset == "psql")...); err != nil {
		return err
	}

	run := runner.New()

	job.status.Step("Pre-processing database and schema folder...")
	logger.Info("Resetting schema", slog.Any("target", target))
	prepare := usecase.NewPrepare(job.db.SchemaManager(run, job.tools.PSQL), job.extract.WorkDir)
	if err := prepare.Prepare(ctx, target); err != nil {
		return goerr.Wrap(err, "failed to prepare import")
	}

	job.status.Step("Downloading from %s%s-latest...", req.BaseURL, req.Country)
	extract, err := newDownloader(job.extract, job.prompter).Fetch(ctx, req)
	if err != nil {
		return err
	}
	if extract == nil {
		job.status.Warn("The region or country were incorrect and a file could not be found. Please try again!")
		return nil
	}
	if !extract.Downloaded {
		job.status.Step("Continuing with pre-downloaded file...")
	}

	name := filepath.Base(extract.Path)
	job.status.Step("Processing and uploading %s...", name)
	importer := usecase.NewImport(run,
		usecase.WithWorkDir(job.extract.WorkDir),
		usecase.WithOGR2OGR(job.tools.OGR2OGR),
		usecase.WithOSM2PGSQL(job.tools.OSM2PGSQL),
	)
	if err := importer.Import(ctx, extract, target); err != nil {
		return err
	}

	job.status.Done("Completed download and import of %s into %s schema %s!", name, target.Database, target.Schema)
	return nil
}

// overwritePrompter answers the overwrite question from --overwrite, falling
// back to the terminal for ask.
func overwritePrompter(ext *config.Extract, terminal interfaces.Prompter) interfaces.Prompter {
	if answer := ext.FixedAnswer(); answer != "" {
		return prompt.NewScripted(answer)
	}
	return terminal
}

func newDownloader(ext *config.Extract, p interfaces.Prompter) interfaces.DownloadUseCase {
	return usecase.NewDownload(
		geofabrik.NewClient(),
		p,
		usecase.WithProgress(progress.NewBar(os.Stderr)),
		usecase.WithMaxAttempts(ext.MaxAttempts),
	)
}

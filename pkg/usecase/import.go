package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/domain/interfaces"
	"github.com/m-mizutani/osmload/pkg/domain/model"
	"github.com/m-mizutani/osmload/pkg/domain/types"
	"github.com/m-mizutani/osmload/pkg/tagfilter"
)

const (
	layerExt   = ".shp"
	areaMarker = "_a_"
)

type importUseCase struct {
	runner    interfaces.CommandRunner
	workDir   string
	ogr2ogr   string
	osm2pgsql string
}

// ImportOption is a functional option for the import use case
type ImportOption func(*importUseCase)

// WithWorkDir sets the directory holding extracts and per-schema folders
func WithWorkDir(dir string) ImportOption {
	return func(uc *importUseCase) {
		uc.workDir = dir
	}
}

// WithOGR2OGR sets the vector conversion binary
func WithOGR2OGR(bin string) ImportOption {
	return func(uc *importUseCase) {
		if bin != "" {
			uc.ogr2ogr = bin
		}
	}
}

// WithOSM2PGSQL sets the bulk importer binary
func WithOSM2PGSQL(bin string) ImportOption {
	return func(uc *importUseCase) {
		if bin != "" {
			uc.osm2pgsql = bin
		}
	}
}

// NewImport creates a new ImportUseCase
func NewImport(runner interfaces.CommandRunner, opts ...ImportOption) interfaces.ImportUseCase {
	uc := &importUseCase{
		runner:    runner,
		workDir:   ".",
		ogr2ogr:   "ogr2ogr",
		osm2pgsql: "osm2pgsql",
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Import dispatches on the extract suffix
func (uc *importUseCase) Import(ctx context.Context, extract *model.DownloadResult, target *model.ImportTarget) error {
	switch extract.Suffix {
	case types.SuffixShapefile:
		return uc.importArchive(ctx, extract, target)
	case types.SuffixPBF:
		return uc.importPBF(ctx, extract, target)
	default:
		return goerr.New("unsupported extract type",
			goerr.V("path", extract.Path),
			goerr.V("suffix", extract.Suffix),
		)
	}
}

func (uc *importUseCase) importArchive(ctx context.Context, extract *model.DownloadResult, target *model.ImportTarget) error {
	logger := ctxlog.From(ctx)

	dir, err := schemaDir(uc.workDir, target.Schema)
	if err != nil {
		return err
	}
	logger.Info("Making a new directory for the zip file", "dir", dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create schema directory", goerr.V("dir", dir))
	}

	archive := filepath.Join(dir, filepath.Base(extract.Path))
	if err := copyFile(extract.Path, archive); err != nil {
		return goerr.Wrap(err, "failed to copy archive into schema directory")
	}

	logger.Info("Unzipping the zip file", "path", archive)
	if _, err := extractZip(ctx, archive, dir); err != nil {
		return goerr.Wrap(err, "failed to expand archive", goerr.V("path", archive))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return goerr.Wrap(err, "failed to list schema directory", goerr.V("dir", dir))
	}

	var layers int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), layerExt) {
			continue
		}

		logger.Info("Processing and uploading layer", "file", entry.Name(), "schema", target.Schema)
		if err := uc.runner.Run(ctx, ogr2ogrCommand(uc.ogr2ogr, dir, entry.Name(), target)); err != nil {
			return goerr.Wrap(err, "failed to import shapefile layer",
				goerr.V("file", entry.Name()),
				goerr.V("schema", target.Schema),
			)
		}
		layers++
	}

	if layers == 0 {
		return goerr.New("archive contains no shapefile layers", goerr.V("path", archive))
	}

	logger.Info("Imported shapefile layers", "count", layers, "schema", target.Schema)
	return nil
}

// ogr2ogrCommand builds the conversion of one layer. Layers whose name
// carries the area marker mix polygons and multipolygons and are promoted.
func ogr2ogrCommand(bin, dir, file string, target *model.ImportTarget) model.Command {
	args := []string{"-f", "PostgreSQL", target.OGRConnString()}
	if strings.Contains(file, areaMarker) {
		args = append(args, "-nlt", "PROMOTE_TO_MULTI")
	}
	args = append(args, "-lco", "SCHEMA="+target.Schema, file)

	return model.Command{Name: bin, Args: args, Dir: dir, File: file, Secrets: target.Secrets()}
}

func (uc *importUseCase) importPBF(ctx context.Context, extract *model.DownloadResult, target *model.ImportTarget) error {
	logger := ctxlog.From(ctx)
	logger.Info("Processing and uploading extract", "path", extract.Path, "schema", target.Schema)

	return tagfilter.WithStyleFile(uc.workDir, target.Schema, func(style string) error {
		cmd := osm2pgsqlCommand(uc.osm2pgsql, style, extract.Path, target)
		if err := uc.runner.Run(ctx, cmd); err != nil {
			return goerr.Wrap(err, "failed to import PBF extract",
				goerr.V("path", extract.Path),
				goerr.V("schema", target.Schema),
			)
		}
		return nil
	})
}

func osm2pgsqlCommand(bin, style, extract string, target *model.ImportTarget) model.Command {
	return model.Command{
		Name: bin,
		Args: []string{
			"-c",
			"--database=" + target.Database,
			"--user=" + target.User,
			"--host=" + target.Host,
			"--port=" + strconv.Itoa(target.Port),
			"-O", "flex",
			"-S", style,
			extract,
		},
		Env:  target.PasswordEnv(),
		File: extract,
	}
}

package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/domain/interfaces"
	"github.com/m-mizutani/osmload/pkg/domain/model"
)

type prepareUseCase struct {
	schemas interfaces.SchemaManager
	workDir string
}

// NewPrepare creates a PrepareUseCase
func NewPrepare(schemas interfaces.SchemaManager, workDir string) interfaces.PrepareUseCase {
	if workDir == "" {
		workDir = "."
	}
	return &prepareUseCase{schemas: schemas, workDir: workDir}
}

// Prepare removes the schema's working folder and resets the database schema.
// It runs before any download so an aborted run still leaves an empty schema.
func (uc *prepareUseCase) Prepare(ctx context.Context, target *model.ImportTarget) error {
	logger := ctxlog.From(ctx)

	dir, err := schemaDir(uc.workDir, target.Schema)
	if err != nil {
		return err
	}
	logger.Info("Pre-processing database and schema folder", "dir", dir, "target", target.String())

	if err := os.RemoveAll(dir); err != nil {
		return goerr.Wrap(err, "failed to remove schema directory", goerr.V("dir", dir))
	}

	if err := uc.schemas.Reset(ctx, target); err != nil {
		return goerr.Wrap(err, "failed to reset schema", goerr.V("schema", target.Schema))
	}

	return nil
}

// schemaDir returns the folder used for schema under workDir. The schema name
// must be a single path element since the folder is removed recursively.
func schemaDir(workDir, schema string) (string, error) {
	if schema == "" || schema == "." || schema == ".." || filepath.Base(schema) != schema || strings.ContainsAny(schema, `/\`) {
		return "", goerr.New("invalid schema name", goerr.V("schema", schema))
	}
	return filepath.Join(workDir, schema), nil
}

package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/osmload/pkg/usecase"
)

func TestPrepare(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the schema folder and resets the schema", func(t *testing.T) {
		dir := t.TempDir()
		stale := filepath.Join(dir, "germany_test", "old.shp")
		gt.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
		gt.NoError(t, os.WriteFile(stale, []byte("x"), 0644))

		schemas := &mockSchemas{}
		gt.NoError(t, usecase.NewPrepare(schemas, dir).Prepare(ctx, testTarget()))

		_, err := os.Stat(filepath.Join(dir, "germany_test"))
		gt.True(t, os.IsNotExist(err))
		gt.Number(t, len(schemas.resets)).Equal(1)
		gt.String(t, schemas.resets[0]).Equal("germany_test")
	})

	t.Run("reset failure is returned", func(t *testing.T) {
		schemas := &mockSchemas{err: errors.New("permission denied")}
		err := usecase.NewPrepare(schemas, t.TempDir()).Prepare(ctx, testTarget())
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("permission denied")
	})

	t.Run("schema names that escape the work dir are rejected", func(t *testing.T) {
		for _, name := range []string{"", ".", "..", "../x", "a/b"} {
			schemas := &mockSchemas{}
			target := testTarget()
			target.Schema = name
			gt.Error(t, usecase.NewPrepare(schemas, t.TempDir()).Prepare(ctx, target))
			gt.Number(t, len(schemas.resets)).Equal(0)
		}
	})
}

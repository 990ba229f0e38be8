package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/osmload/pkg/domain/model"
	"github.com/m-mizutani/osmload/pkg/domain/types"
	"github.com/m-mizutani/osmload/pkg/infra/prompt"
	"github.com/m-mizutani/osmload/pkg/usecase"
)

func newRequest(dir, country string, forcePBF bool) *model.DownloadRequest {
	return &model.DownloadRequest{
		BaseURL:  "https://download.example.org/europe/",
		Country:  country,
		Suffixes: types.DefaultSuffixes,
		ForcePBF: forcePBF,
		WorkDir:  dir,
	}
}

func TestDownload_PrefersShapefile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	source := &mockSource{files: map[string][]byte{
		"germany-latest-free.shp.zip": []byte("zip"),
		"germany-latest.osm.pbf":      []byte("pbf"),
	}}

	uc := usecase.NewDownload(source, prompt.NewScripted())
	result, err := uc.Fetch(ctx, newRequest(dir, "germany", false))
	gt.NoError(t, err)
	gt.Value(t, result).NotNil()
	gt.Value(t, result.Suffix).Equal(types.SuffixShapefile)
	gt.String(t, result.Path).Equal(filepath.Join(dir, "germany-latest-free.shp.zip"))
	gt.True(t, result.Downloaded)
	gt.Number(t, len(source.probes)).Equal(1)

	data, err := os.ReadFile(result.Path)
	gt.NoError(t, err)
	gt.String(t, string(data)).Equal("zip")
}

func TestDownload_ForcePBF(t *testing.T) {
	ctx := context.Background()

	t.Run("skips the shapefile", func(t *testing.T) {
		dir := t.TempDir()
		source := &mockSource{files: map[string][]byte{
			"germany-latest-free.shp.zip": []byte("zip"),
			"germany-latest.osm.pbf":      []byte("pbf"),
		}}

		result, err := usecase.NewDownload(source, prompt.NewScripted()).Fetch(ctx, newRequest(dir, "germany", true))
		gt.NoError(t, err)
		gt.Value(t, result.Suffix).Equal(types.SuffixPBF)
		gt.True(t, strings.HasSuffix(result.Path, ".osm.pbf"))
		gt.Number(t, len(source.probes)).Equal(1)
		gt.String(t, source.probes[0]).Equal("https://download.example.org/europe/germany-latest.osm.pbf")
	})

	t.Run("absent PBF is no file found", func(t *testing.T) {
		dir := t.TempDir()
		source := &mockSource{files: map[string][]byte{
			"germany-latest-free.shp.zip": []byte("zip"),
		}}

		result, err := usecase.NewDownload(source, prompt.NewScripted()).Fetch(ctx, newRequest(dir, "germany", true))
		gt.NoError(t, err)
		gt.Value(t, result).Nil()
		gt.Number(t, len(source.opens)).Equal(0)
	})
}

func TestDownload_FallsBackToPBF(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	payload := bytes.Repeat([]byte("x"), 3*types.DownloadChunkSize+17)
	source := &mockSource{files: map[string][]byte{
		"monaco-latest.osm.pbf": payload,
	}}
	progress := &recordingProgress{}

	uc := usecase.NewDownload(source, prompt.NewScripted(), usecase.WithProgress(progress))
	result, err := uc.Fetch(ctx, newRequest(dir, "monaco", false))
	gt.NoError(t, err)
	gt.Value(t, result.Suffix).Equal(types.SuffixPBF)
	gt.Number(t, result.Size).Equal(int64(len(payload)))
	gt.Number(t, len(source.probes)).Equal(2)
	gt.String(t, source.probes[0]).Equal("https://download.example.org/europe/monaco-latest-free.shp.zip")
	gt.String(t, source.probes[1]).Equal("https://download.example.org/europe/monaco-latest.osm.pbf")

	gt.Number(t, progress.total).Equal(int64(len(payload)))
	gt.Number(t, progress.sum).Equal(int64(len(payload)))
	gt.True(t, progress.maxAdd <= types.DownloadChunkSize)
	gt.True(t, progress.done)

	_, err = os.Stat(result.Path + ".part")
	gt.True(t, os.IsNotExist(err))
}

func TestDownload_NothingFound(t *testing.T) {
	ctx := context.Background()
	source := &mockSource{files: map[string][]byte{}}

	result, err := usecase.NewDownload(source, prompt.NewScripted()).Fetch(ctx, newRequest(t.TempDir(), "atlantis", false))
	gt.NoError(t, err)
	gt.Value(t, result).Nil()
	gt.Number(t, len(source.probes)).Equal(2)
}

func TestDownload_ProbeError(t *testing.T) {
	ctx := context.Background()
	source := &mockSource{probeErr: errors.New("connection refused")}

	result, err := usecase.NewDownload(source, prompt.NewScripted()).Fetch(ctx, newRequest(t.TempDir(), "monaco", false))
	gt.Error(t, err)
	gt.Value(t, result).Nil()
	gt.String(t, err.Error()).Contains("connection refused")
}

func TestDownload_ExistingFile(t *testing.T) {
	ctx := context.Background()

	writeExisting := func(t *testing.T, dir string) string {
		path := filepath.Join(dir, "germany-latest-free.shp.zip")
		gt.NoError(t, os.WriteFile(path, []byte("old"), 0644))
		return path
	}

	t.Run("no reuses the file without network traffic", func(t *testing.T) {
		dir := t.TempDir()
		path := writeExisting(t, dir)
		source := &mockSource{files: map[string][]byte{"germany-latest-free.shp.zip": []byte("new")}}

		result, err := usecase.NewDownload(source, prompt.NewScripted("n")).Fetch(ctx, newRequest(dir, "germany", false))
		gt.NoError(t, err)
		gt.String(t, result.Path).Equal(path)
		gt.Value(t, result.Suffix).Equal(types.SuffixShapefile)
		gt.False(t, result.Downloaded)
		gt.Number(t, len(source.probes)).Equal(0)
		gt.Number(t, len(source.opens)).Equal(0)

		data, err := os.ReadFile(path)
		gt.NoError(t, err)
		gt.String(t, string(data)).Equal("old")
	})

	t.Run("yes removes the old file before downloading", func(t *testing.T) {
		dir := t.TempDir()
		path := writeExisting(t, dir)
		existedAtOpen := true
		source := &mockSource{
			files: map[string][]byte{"germany-latest-free.shp.zip": []byte("new")},
			onOpen: func(url string) {
				_, err := os.Stat(path)
				existedAtOpen = err == nil
			},
		}

		result, err := usecase.NewDownload(source, prompt.NewScripted("YES")).Fetch(ctx, newRequest(dir, "germany", false))
		gt.NoError(t, err)
		gt.False(t, existedAtOpen)
		gt.True(t, result.Downloaded)

		data, err := os.ReadFile(path)
		gt.NoError(t, err)
		gt.String(t, string(data)).Equal("new")
	})

	t.Run("invalid answer asks again", func(t *testing.T) {
		dir := t.TempDir()
		path := writeExisting(t, dir)
		source := &mockSource{}
		p := prompt.NewScripted("maybe", "", "n")

		result, err := usecase.NewDownload(source, p).Fetch(ctx, newRequest(dir, "germany", false))
		gt.NoError(t, err)
		gt.String(t, result.Path).Equal(path)
		gt.Number(t, len(p.Questions())).Equal(3)
		gt.String(t, p.Questions()[0]).Contains("germany-latest-free.shp.zip")
	})

	t.Run("endless invalid answers exhaust the budget", func(t *testing.T) {
		dir := t.TempDir()
		writeExisting(t, dir)
		source := &mockSource{files: map[string][]byte{"germany-latest-free.shp.zip": []byte("new")}}
		p := prompt.NewScripted("what")

		result, err := usecase.NewDownload(source, p).Fetch(ctx, newRequest(dir, "germany", false))
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrRetryExhausted))
		gt.Value(t, result).Nil()
		gt.Number(t, len(p.Questions())).Equal(types.MaxResolveAttempts)
		gt.Number(t, len(source.probes)).Equal(0)
	})

	t.Run("existing PBF is offered after the shapefile is missing remotely", func(t *testing.T) {
		dir := t.TempDir()
		pbf := filepath.Join(dir, "germany-latest.osm.pbf")
		gt.NoError(t, os.WriteFile(pbf, []byte("pbf"), 0644))
		source := &mockSource{files: map[string][]byte{}}

		result, err := usecase.NewDownload(source, prompt.NewScripted("no")).Fetch(ctx, newRequest(dir, "germany", false))
		gt.NoError(t, err)
		gt.String(t, result.Path).Equal(pbf)
		gt.Value(t, result.Suffix).Equal(types.SuffixPBF)
		gt.Number(t, len(source.probes)).Equal(1)
	})
}

func TestDownload_BudgetCountsProbes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "germany-latest.osm.pbf"), []byte("pbf"), 0644))
	source := &mockSource{files: map[string][]byte{}}

	// one probe for the shapefile, then only one question is left
	p := prompt.NewScripted("?")
	uc := usecase.NewDownload(source, p, usecase.WithMaxAttempts(2))

	_, err := uc.Fetch(ctx, newRequest(dir, "germany", false))
	gt.True(t, errors.Is(err, types.ErrRetryExhausted))
	gt.Number(t, len(source.probes)).Equal(1)
	gt.Number(t, len(p.Questions())).Equal(1)
}

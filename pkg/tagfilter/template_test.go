package tagfilter_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/osmload/pkg/tagfilter"
)

func TestRender(t *testing.T) {
	out, err := tagfilter.Render("monaco_test")
	gt.NoError(t, err)

	gt.String(t, out).Contains(`local schema = "monaco_test"`)
	gt.String(t, out).Contains("name = 'buildings'")
	gt.String(t, out).Contains("name = 'pois'")
	gt.String(t, out).Contains("name = 'roads'")
	gt.String(t, out).Contains("ids = { type = 'area', id_column = 'osm_id' }")
	gt.String(t, out).Contains("ids = { type = 'node', id_column = 'osm_id' }")
	gt.String(t, out).Contains("ids = { type = 'way', id_column = 'osm_id' }")
	gt.String(t, out).Contains("projection = 4326")
	gt.String(t, out).Contains(`"tiger:*",`)
	gt.String(t, out).Contains(`"building:part",`)
	gt.String(t, out).NotContains("{{")
}

func TestRender_OnlySchemaDiffers(t *testing.T) {
	foo, err := tagfilter.Render("schema_alpha_q")
	gt.NoError(t, err)
	bar, err := tagfilter.Render("schema_bravo_z")
	gt.NoError(t, err)

	gt.String(t, foo).NotEqual(bar)
	gt.String(t, strings.ReplaceAll(foo, "schema_alpha_q", "schema_bravo_z")).Equal(bar)

	again, err := tagfilter.Render("schema_alpha_q")
	gt.NoError(t, err)
	gt.String(t, again).Equal(foo)
}

func TestRender_QuotesSchema(t *testing.T) {
	out, err := tagfilter.Render(`x"; os.execute("rm -rf /")--`)
	gt.NoError(t, err)
	gt.String(t, out).Contains(`local schema = "x\"; os.execute(\"rm -rf /\")--"`)

	out, err = tagfilter.Render("line\nbreak")
	gt.NoError(t, err)
	gt.String(t, out).Contains(`local schema = "line\010break"`)
}

func TestWithStyleFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("file exists during callback and is removed afterwards", func(t *testing.T) {
		var seen string
		err := tagfilter.WithStyleFile(dir, "monaco_test", func(path string) error {
			seen = path
			data, err := os.ReadFile(path)
			gt.NoError(t, err)
			gt.String(t, string(data)).Contains(`"monaco_test"`)
			return nil
		})
		gt.NoError(t, err)
		gt.String(t, filepath.Dir(seen)).Equal(dir)

		_, err = os.Stat(seen)
		gt.True(t, os.IsNotExist(err))
	})

	t.Run("removed when callback fails", func(t *testing.T) {
		var seen string
		failure := errors.New("importer failed")
		err := tagfilter.WithStyleFile(dir, "monaco_test", func(path string) error {
			seen = path
			return failure
		})
		gt.True(t, errors.Is(err, failure))

		_, err = os.Stat(seen)
		gt.True(t, os.IsNotExist(err))
	})
}

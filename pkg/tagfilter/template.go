package tagfilter

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/domain/types"
)

//go:embed flex.lua.tmpl
var styleTemplate string

// SRID of every geometry column
const SRID = 4326

var style = template.Must(template.New("flex").Funcs(template.FuncMap{
	"lua": luaString,
}).Parse(styleTemplate))

// luaString quotes s as a Lua string literal. Bytes outside printable ASCII
// are written as three digit decimal escapes.
func luaString(s string) string {
	var buf bytes.Buffer
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case c >= 0x20 && c < 0x7f:
			buf.WriteByte(c)
		default:
			fmt.Fprintf(&buf, "\\%03d", c)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}

// Render returns the osm2pgsql flex style writing into schema
func Render(schema string) (string, error) {
	var buf bytes.Buffer
	if err := style.Execute(&buf, map[string]any{
		"Version":  types.Version,
		"Schema":   schema,
		"SRID":     SRID,
		"DenyKeys": DenyKeys,
		"AreaKeys": AreaKeys,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render style template", goerr.V("schema", schema))
	}
	return buf.String(), nil
}

// WithStyleFile renders the style for schema into a temporary file in dir,
// calls fn with its path and removes the file afterwards, whatever fn returns.
func WithStyleFile(dir, schema string, fn func(path string) error) error {
	content, err := Render(schema)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "osmload-style-*.lua")
	if err != nil {
		return goerr.Wrap(err, "failed to create style file", goerr.V("dir", dir))
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return goerr.Wrap(err, "failed to write style file", goerr.V("path", path))
	}
	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to close style file", goerr.V("path", path))
	}

	return fn(path)
}

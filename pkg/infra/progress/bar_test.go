package progress

import (
	"bytes"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		gt.String(t, formatBytes(tt.in)).Equal(tt.want)
	}
}

func TestBar(t *testing.T) {
	var out bytes.Buffer
	b := NewBar(&out)

	b.Start("monaco-latest.osm.pbf", 2048)
	b.Add(1024)
	b.Add(1024)
	b.Finish()

	gt.String(t, out.String()).Contains("monaco-latest.osm.pbf")
	gt.String(t, out.String()).Contains("2.0 KiB/2.0 KiB")
}

func TestBar_Percent(t *testing.T) {
	b := &bar{total: 0}
	gt.Value(t, b.percent()).Equal(0.0)

	b = &bar{total: 100, current: 250}
	gt.Value(t, b.percent()).Equal(1.0)

	b = &bar{total: 100, current: 25}
	gt.Value(t, b.percent()).Equal(0.25)
}

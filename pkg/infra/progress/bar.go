package progress

import (
	"fmt"
	"io"
	"time"

	bubbles "github.com/charmbracelet/bubbles/progress"
	"github.com/m-mizutani/osmload/pkg/domain/interfaces"
)

const redrawInterval = 100 * time.Millisecond

type bar struct {
	out     io.Writer
	model   bubbles.Model
	name    string
	total   int64
	current int64
	last    time.Time
	now     func() time.Time
}

// NewBar creates a Progress rendering a gradient bar to out, redrawn in place
func NewBar(out io.Writer) interfaces.Progress {
	return &bar{
		out:   out,
		model: bubbles.New(bubbles.WithDefaultGradient(), bubbles.WithWidth(40)),
		now:   time.Now,
	}
}

func (b *bar) Start(name string, total int64) {
	b.name = name
	b.total = total
	b.current = 0
	b.last = time.Time{}
	b.draw()
}

func (b *bar) Add(n int) {
	b.current += int64(n)
	if now := b.now(); now.Sub(b.last) >= redrawInterval {
		b.last = now
		b.draw()
	}
}

func (b *bar) Finish() {
	b.draw()
	fmt.Fprintln(b.out)
}

func (b *bar) draw() {
	fmt.Fprintf(b.out, "\r%s %s %s/%s", b.name, b.model.ViewAs(b.percent()), formatBytes(b.current), formatBytes(b.total))
}

func (b *bar) percent() float64 {
	if b.total <= 0 {
		return 0
	}
	p := float64(b.current) / float64(b.total)
	if p > 1 {
		p = 1
	}
	return p
}

// formatBytes converts bytes to human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

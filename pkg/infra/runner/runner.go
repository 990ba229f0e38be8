package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/domain/interfaces"
	"github.com/m-mizutani/osmload/pkg/domain/model"
)

// stderr bytes kept for the error message
const stderrTail = 2048

type runner struct {
	stdout io.Writer
	stderr io.Writer
}

// Option is a functional option for the runner
type Option func(*runner)

// WithOutput sets where child stdout and stderr are copied to
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// New creates a CommandRunner backed by os/exec
func New(opts ...Option) interfaces.CommandRunner {
	r := &runner{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cmd and waits for it. Failures are returned as *model.ToolError.
func (r *runner) Run(ctx context.Context, cmd model.Command) error {
	logger := ctxlog.From(ctx)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	tail := &tailBuffer{max: stderrTail}
	c.Stdout = r.stdout
	c.Stderr = io.MultiWriter(r.stderr, tail)

	logger.Debug("Running external command", "command", cmd.String(), "dir", cmd.Dir)

	if err := c.Run(); err != nil {
		toolErr := &model.ToolError{
			Tool:   cmd.Name,
			File:   cmd.File,
			Stderr: cmd.Redact(strings.TrimSpace(tail.String())),
			Err:    err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			toolErr.ExitCode = exitErr.ExitCode()
			toolErr.Err = nil
		}
		return goerr.Wrap(toolErr, "external command failed",
			goerr.V("command", cmd.String()),
			goerr.V("dir", cmd.Dir),
		)
	}

	return nil
}

// tailBuffer keeps the last max bytes written to it
type tailBuffer struct {
	buf bytes.Buffer
	max int
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	b.buf.Write(p)
	if over := b.buf.Len() - b.max; over > 0 {
		b.buf.Next(over)
	}
	return n, nil
}

func (b *tailBuffer) String() string { return b.buf.String() }

// LookPath checks that every binary exists, returning the first missing one
// as an error.
func LookPath(names ...string) error {
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			return goerr.Wrap(err, "required program not found in PATH", goerr.V("program", name))
		}
	}
	return nil
}

package model

import (
	"fmt"
	"strings"
)

// Command is one invocation of an external program.
type Command struct {
	Name string   // Binary name or path
	Args []string // Arguments, without the binary
	Dir  string   // Working directory, empty for the current one
	Env  []string // Extra KEY=VALUE entries appended to the parent environment
	File string   // Input file the command works on, for diagnostics

	// Secrets are substrings of Args that must never be displayed
	Secrets []string
}

const redacted = "[REDACTED]"

// Redact replaces every secret of c found in s
func (c Command) Redact(s string) string {
	for _, secret := range c.Secrets {
		if secret != "" {
			s = strings.ReplaceAll(s, secret, redacted)
		}
	}
	return s
}

// String renders the command line with secrets redacted. Env is omitted
// since it may carry secrets too.
func (c Command) String() string {
	return c.Redact(strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " ")))
}

// ToolError is returned when an external program could not be started or
// exited with a nonzero status.
type ToolError struct {
	Tool     string
	File     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Tool)
	if e.File != "" {
		msg += fmt.Sprintf(" on %s", e.File)
	}
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit status %d)", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

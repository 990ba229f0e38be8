package prompt

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/domain/interfaces"
)

type terminal struct {
	in  *bufio.Reader
	out io.Writer
	q   *color.Color
}

// NewTerminal creates a Prompter reading answers line by line from in
func NewTerminal(in io.Reader, out io.Writer) interfaces.Prompter {
	return &terminal{
		in:  bufio.NewReader(in),
		out: out,
		q:   color.New(color.FgCyan, color.Bold),
	}
}

// Ask prints question and returns the answer without the trailing newline
func (t *terminal) Ask(question string) (string, error) {
	if _, err := t.q.Fprint(t.out, question); err != nil {
		return "", goerr.Wrap(err, "failed to write prompt")
	}

	line, err := t.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", goerr.Wrap(err, "failed to read answer", goerr.V("question", question))
	}

	return strings.TrimRight(line, "\r\n"), nil
}

type scripted struct {
	answers []string
	asked   []string
}

// Scripted is a Prompter returning canned answers in order. Once they run out
// the last one is repeated. It is used for non-interactive runs.
type Scripted interface {
	interfaces.Prompter
	Questions() []string
}

// NewScripted creates a scripted Prompter
func NewScripted(answers ...string) Scripted {
	return &scripted{answers: answers}
}

func (s *scripted) Ask(question string) (string, error) {
	s.asked = append(s.asked, question)
	if len(s.answers) == 0 {
		return "", goerr.New("no answer available", goerr.V("question", question))
	}

	idx := len(s.asked) - 1
	if idx >= len(s.answers) {
		idx = len(s.answers) - 1
	}
	return s.answers[idx], nil
}

// Questions returns every question asked so far
func (s *scripted) Questions() []string { return s.asked }

package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/m-mizutani/osmload/pkg/domain/model"
)

// mockSource serves extracts from memory, keyed by file name suffix of the URL
type mockSource struct {
	files    map[string][]byte
	probeErr error
	probes   []string
	opens    []string
	onOpen   func(url string)
}

func (m *mockSource) lookup(url string) ([]byte, bool) {
	for name, data := range m.files {
		if strings.HasSuffix(url, "/"+name) {
			return data, true
		}
	}
	return nil, false
}

func (m *mockSource) Probe(ctx context.Context, url string) (bool, int64, error) {
	m.probes = append(m.probes, url)
	if m.probeErr != nil {
		return false, 0, m.probeErr
	}
	data, ok := m.lookup(url)
	if !ok {
		return false, 0, nil
	}
	return true, int64(len(data)), nil
}

func (m *mockSource) Open(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	m.opens = append(m.opens, url)
	if m.onOpen != nil {
		m.onOpen(url)
	}
	data, ok := m.lookup(url)
	if !ok {
		return nil, 0, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (m *mockSource) Regions(ctx context.Context) ([]*model.Region, error) {
	return nil, nil
}

// mockRunner records commands and optionally fails on the n-th one
type mockRunner struct {
	commands []model.Command
	failAt   int
	onRun    func(cmd model.Command)
}

func (m *mockRunner) Run(ctx context.Context, cmd model.Command) error {
	m.commands = append(m.commands, cmd)
	if m.onRun != nil {
		m.onRun(cmd)
	}
	if m.failAt > 0 && len(m.commands) == m.failAt {
		return &model.ToolError{Tool: cmd.Name, File: cmd.File, ExitCode: 1}
	}
	return nil
}

type mockSchemas struct {
	resets []string
	err    error
}

func (m *mockSchemas) Reset(ctx context.Context, target *model.ImportTarget) error {
	m.resets = append(m.resets, target.Schema)
	return m.err
}

type recordingProgress struct {
	total  int64
	sum    int64
	maxAdd int
	done   bool
}

func (p *recordingProgress) Start(name string, total int64) { p.total = total }
func (p *recordingProgress) Add(n int) {
	p.sum += int64(n)
	if n > p.maxAdd {
		p.maxAdd = n
	}
}
func (p *recordingProgress) Finish() { p.done = true }

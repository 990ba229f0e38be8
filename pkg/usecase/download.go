package usecase

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/domain/interfaces"
	"github.com/m-mizutani/osmload/pkg/domain/model"
	"github.com/m-mizutani/osmload/pkg/domain/types"
)

type downloadUseCase struct {
	source      interfaces.ExtractSource
	prompter    interfaces.Prompter
	progress    interfaces.Progress
	maxAttempts int
}

// DownloadOption is a functional option for the download use case
type DownloadOption func(*downloadUseCase)

// WithProgress sets the progress reporter for streamed downloads
func WithProgress(p interfaces.Progress) DownloadOption {
	return func(uc *downloadUseCase) {
		uc.progress = p
	}
}

// WithMaxAttempts lowers the number of probes and prompts allowed per Fetch.
// It cannot be raised above types.MaxResolveAttempts.
func WithMaxAttempts(n int) DownloadOption {
	return func(uc *downloadUseCase) {
		uc.maxAttempts = n
	}
}

// NewDownload creates a new DownloadUseCase. prompter answers the overwrite
// question when a local file already exists.
func NewDownload(source interfaces.ExtractSource, prompter interfaces.Prompter, opts ...DownloadOption) interfaces.DownloadUseCase {
	uc := &downloadUseCase{
		source:      source,
		prompter:    prompter,
		progress:    nopProgress{},
		maxAttempts: types.MaxResolveAttempts,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type overwriteAnswer int

const (
	answerInvalid overwriteAnswer = iota
	answerYes
	answerNo
)

func parseOverwrite(s string) overwriteAnswer {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return answerYes
	case "n", "no":
		return answerNo
	default:
		return answerInvalid
	}
}

// Fetch walks the candidate suffixes in order. A nil result with a nil error
// means no candidate exists on the server.
func (uc *downloadUseCase) Fetch(ctx context.Context, req *model.DownloadRequest) (*model.DownloadResult, error) {
	logger := ctxlog.From(ctx)
	budget := types.NewAttemptBudget(uc.maxAttempts)

	if req.ForcePBF {
		logger.Info("PBF is being forced")
	}

	for _, suffix := range req.Candidates() {
		local := filepath.Join(req.WorkDir, req.FileName(suffix))

		reuse, err := uc.confirmOverwrite(ctx, budget, local)
		if err != nil {
			return nil, err
		}
		if reuse {
			info, err := os.Stat(local)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to stat existing extract", goerr.V("path", local))
			}
			logger.Info("Continuing with pre-downloaded file", "path", local)
			return &model.DownloadResult{Path: local, Suffix: suffix, Size: info.Size()}, nil
		}

		if err := budget.Enter(); err != nil {
			return nil, err
		}

		url := req.URL(suffix)
		found, size, err := uc.source.Probe(ctx, url)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to probe extract", goerr.V("url", url))
		}
		if !found {
			logger.Info("No extract at candidate URL", "url", url)
			continue
		}

		logger.Info("Found extract, downloading", "url", url, "size_bytes", size)
		written, err := uc.download(ctx, url, local)
		if err != nil {
			return nil, err
		}

		return &model.DownloadResult{Path: local, Suffix: suffix, Size: written, Downloaded: true}, nil
	}

	return nil, nil
}

// confirmOverwrite returns true when an existing file at path should be
// reused. An existing file the operator wants replaced is removed here, before
// any download starts. Every question asked consumes one attempt.
func (uc *downloadUseCase) confirmOverwrite(ctx context.Context, budget *types.AttemptBudget, path string) (bool, error) {
	logger := ctxlog.From(ctx)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to check local extract", goerr.V("path", path))
	}

	question := "A file with that name (" + filepath.Base(path) + ") was already found. Would you like to overwrite it? Y/n\n"
	for {
		if err := budget.Enter(); err != nil {
			return false, err
		}

		answer, err := uc.prompter.Ask(question)
		if err != nil {
			return false, goerr.Wrap(err, "failed to ask for overwrite confirmation")
		}

		switch parseOverwrite(answer) {
		case answerNo:
			return true, nil
		case answerYes:
			if err := os.Remove(path); err != nil {
				return false, goerr.Wrap(err, "failed to remove existing extract", goerr.V("path", path))
			}
			logger.Info("Removed existing extract", "path", path)
			return false, nil
		default:
			logger.Warn("Invalid overwrite answer, asking again", "answer", answer)
		}
	}
}

// download streams url into path via a .part file renamed on success
func (uc *downloadUseCase) download(ctx context.Context, url, path string) (int64, error) {
	body, size, err := uc.source.Open(ctx, url)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to open extract download", goerr.V("url", url))
	}
	defer body.Close()

	part := path + ".part"
	out, err := os.Create(part)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create download file", goerr.V("path", part))
	}

	uc.progress.Start(filepath.Base(path), size)
	written, err := copyChunks(out, body, uc.progress)
	uc.progress.Finish()

	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(part)
		return 0, goerr.Wrap(err, "failed to write extract", goerr.V("url", url), goerr.V("path", path))
	}

	if err := os.Rename(part, path); err != nil {
		_ = os.Remove(part)
		return 0, goerr.Wrap(err, "failed to move download into place", goerr.V("path", path))
	}

	return written, nil
}

// copyChunks copies src to dst in DownloadChunkSize reads, reporting each one
func copyChunks(dst io.Writer, src io.Reader, p interfaces.Progress) (int64, error) {
	buf := make([]byte, types.DownloadChunkSize)
	var written int64
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return written, werr
			}
			written += int64(n)
			p.Add(n)
		}
		if err == io.EOF {
			return written, nil
		}
		if err != nil {
			return written, err
		}
	}
}

type nopProgress struct{}

func (nopProgress) Start(string, int64) {}
func (nopProgress) Add(int)             {}
func (nopProgress) Finish()             {}

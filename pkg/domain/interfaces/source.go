package interfaces

import (
	"context"
	"io"

	"github.com/m-mizutani/osmload/pkg/domain/model"
)

// ExtractSource defines operations against the extract download server
type ExtractSource interface {
	// Probe issues a metadata-only request. found is false when the server does
	// not have the resource or does not report its size.
	Probe(ctx context.Context, url string) (found bool, size int64, err error)

	// Open starts a streamed download. The caller must close the body.
	Open(ctx context.Context, url string) (body io.ReadCloser, size int64, err error)

	// Regions returns the catalog of downloadable regions
	Regions(ctx context.Context) ([]*model.Region, error)
}

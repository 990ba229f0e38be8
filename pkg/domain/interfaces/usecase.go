package interfaces

import (
	"context"

	"github.com/m-mizutani/osmload/pkg/domain/model"
)

// DownloadUseCase resolves which extract exists and fetches it
type DownloadUseCase interface {
	// Fetch returns nil without error when no candidate file exists remotely
	Fetch(ctx context.Context, req *model.DownloadRequest) (*model.DownloadResult, error)
}

// ImportUseCase loads a downloaded extract into the target schema
type ImportUseCase interface {
	Import(ctx context.Context, extract *model.DownloadResult, target *model.ImportTarget) error
}

// PrepareUseCase resets the working directory and database schema
type PrepareUseCase interface {
	Prepare(ctx context.Context, target *model.ImportTarget) error
}

package interfaces

import (
	"context"

	"github.com/m-mizutani/osmload/pkg/domain/model"
)

// CommandRunner executes external programs. A nonzero exit status must be
// returned as *model.ToolError.
type CommandRunner interface {
	Run(ctx context.Context, cmd model.Command) error
}

// SchemaManager resets the target schema before an import
type SchemaManager interface {
	// Reset drops the schema if it exists (cascading) and creates it again
	Reset(ctx context.Context, target *model.ImportTarget) error
}

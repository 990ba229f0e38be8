package postgres

import (
	"context"
	"database/sql"
	"net/url"

	// registers the "postgres" driver
	_ "github.com/lib/pq"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/domain/interfaces"
	"github.com/m-mizutani/osmload/pkg/domain/model"
)

type sqlManager struct {
	sslMode string
}

// NewSQL creates a SchemaManager talking to the server directly with lib/pq.
// sslMode is passed through as the sslmode connection parameter.
func NewSQL(sslMode string) interfaces.SchemaManager {
	if sslMode == "" {
		sslMode = "disable"
	}
	return &sqlManager{sslMode: sslMode}
}

func (m *sqlManager) dsn(target *model.ImportTarget) string {
	q := url.Values{}
	q.Set("sslmode", m.sslMode)
	return target.URL() + "?" + q.Encode()
}

// Reset drops and recreates the schema inside one transaction
func (m *sqlManager) Reset(ctx context.Context, target *model.ImportTarget) error {
	logger := ctxlog.From(ctx)

	db, err := sql.Open("postgres", m.dsn(target))
	if err != nil {
		return goerr.Wrap(err, "failed to open database", goerr.V("target", target.String()))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return goerr.Wrap(err, "failed to connect to database", goerr.V("target", target.String()))
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range resetStatements(target.Schema) {
		logger.Debug("Executing schema statement", "statement", stmt, "target", target.String())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return goerr.Wrap(err, "failed to reset schema",
				goerr.V("schema", target.Schema),
				goerr.V("statement", stmt),
			)
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit schema reset", goerr.V("schema", target.Schema))
	}

	return nil
}

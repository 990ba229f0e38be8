package postgres

import (
	"context"

	"github.com/lib/pq"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/domain/interfaces"
	"github.com/m-mizutani/osmload/pkg/domain/model"
)

// psqlManager resets schemas by shelling out to the psql client
type psqlManager struct {
	runner interfaces.CommandRunner
	binary string
}

// NewPSQL creates a SchemaManager that runs psql through runner
func NewPSQL(runner interfaces.CommandRunner, binary string) interfaces.SchemaManager {
	if binary == "" {
		binary = "psql"
	}
	return &psqlManager{runner: runner, binary: binary}
}

// Reset runs DROP SCHEMA IF EXISTS ... CASCADE followed by CREATE SCHEMA
func (m *psqlManager) Reset(ctx context.Context, target *model.ImportTarget) error {
	logger := ctxlog.From(ctx)

	for _, stmt := range resetStatements(target.Schema) {
		cmd := model.Command{
			Name: m.binary,
			Args: []string{connURL(target), "-v", "ON_ERROR_STOP=1", "-c", stmt},
			Env:  target.PasswordEnv(),
		}
		logger.Debug("Executing schema statement", "statement", stmt, "target", target.String())

		if err := m.runner.Run(ctx, cmd); err != nil {
			return goerr.Wrap(err, "failed to reset schema",
				goerr.V("schema", target.Schema),
				goerr.V("statement", stmt),
			)
		}
	}

	return nil
}

func resetStatements(schema string) []string {
	ident := pq.QuoteIdentifier(schema)
	return []string{
		"DROP SCHEMA IF EXISTS " + ident + " CASCADE",
		"CREATE SCHEMA " + ident,
	}
}

// connURL returns the target URL without the password, which travels in
// PGPASSWORD instead so it never shows up in the process list.
func connURL(target *model.ImportTarget) string {
	t := *target
	t.Password = ""
	return t.URL()
}

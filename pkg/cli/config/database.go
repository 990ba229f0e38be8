package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/domain/interfaces"
	"github.com/m-mizutani/osmload/pkg/domain/model"
	"github.com/m-mizutani/osmload/pkg/infra/postgres"
	"github.com/urfave/cli/v3"
)

// Database holds the import target configuration
type Database struct {
	Host        string
	Port        int
	Name        string
	User        string
	Password    string `masq:"secret"`
	Schema      string
	SchemaReset string
}

// Flags returns CLI flags for database configuration
func (c *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db-host",
			Usage:       "PostgreSQL host",
			Value:       "127.0.0.1",
			Destination: &c.Host,
			Sources:     cli.EnvVars("OSMLOAD_DB_HOST"),
		},
		&cli.IntFlag{
			Name:        "db-port",
			Usage:       "PostgreSQL port",
			Value:       5432,
			Destination: &c.Port,
			Sources:     cli.EnvVars("OSMLOAD_DB_PORT"),
		},
		&cli.StringFlag{
			Name:        "db-name",
			Usage:       "Database name",
			Value:       "db",
			Destination: &c.Name,
			Sources:     cli.EnvVars("OSMLOAD_DB_NAME"),
		},
		&cli.StringFlag{
			Name:        "db-user",
			Usage:       "Database user",
			Value:       "user",
			Destination: &c.User,
			Sources:     cli.EnvVars("OSMLOAD_DB_USER"),
		},
		&cli.StringFlag{
			Name:        "db-password",
			Usage:       "Database password, empty for no password",
			Destination: &c.Password,
			Sources:     cli.EnvVars("OSMLOAD_DB_PASSWORD"),
		},
		&cli.StringFlag{
			Name:        "schema",
			Usage:       "Schema the extract is imported into. It is dropped and recreated",
			Destination: &c.Schema,
			Sources:     cli.EnvVars("OSMLOAD_SCHEMA"),
		},
		&cli.StringFlag{
			Name:        "schema-reset",
			Usage:       "How the schema is reset (psql, sql)",
			Value:       "psql",
			Destination: &c.SchemaReset,
			Sources:     cli.EnvVars("OSMLOAD_SCHEMA_RESET"),
		},
	}
}

// Validate checks the fields that have no usable default
func (c *Database) Validate() error {
	if c.Schema == "" {
		return goerr.New("schema is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return goerr.New("invalid database port", goerr.V("port", c.Port))
	}
	switch c.SchemaReset {
	case "psql", "sql":
	default:
		return goerr.New("invalid schema reset method", goerr.V("method", c.SchemaReset))
	}
	return nil
}

// Target builds the import target
func (c *Database) Target() *model.ImportTarget {
	return &model.ImportTarget{
		Host:     c.Host,
		Port:     c.Port,
		Database: c.Name,
		User:     c.User,
		Password: c.Password,
		Schema:   c.Schema,
	}
}

// SchemaManager returns the schema reset implementation selected by
// --schema-reset. psql is run through runner.
func (c *Database) SchemaManager(runner interfaces.CommandRunner, psqlBin string) interfaces.SchemaManager {
	if c.SchemaReset == "sql" {
		return postgres.NewSQL("")
	}
	return postgres.NewPSQL(runner, psqlBin)
}

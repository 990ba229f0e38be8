package cli

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/cli/config"
	"github.com/m-mizutani/osmload/pkg/domain/interfaces"
	"github.com/urfave/cli/v3"
)

type question struct {
	flag   string
	prompt string
	set    func(answer string) error
}

func setString(dst *string) func(string) error {
	return func(s string) error {
		*dst = s
		return nil
	}
}

// resolveInteractive asks for every parameter that was not given by flag,
// environment or config file. An empty answer keeps the default.
func resolveInteractive(c *cli.Command, p interfaces.Prompter, ext *config.Extract, db *config.Database) error {
	questions := []question{
		{"region", "Please input a valid region for download.geofabrik.de: ", setString(&ext.Region)},
		{"country", "Please input a valid country for download.geofabrik.de: ", setString(&ext.Country)},
		{"schema", "Please enter a schema name: ", setString(&db.Schema)},
		{"db-host", "Please enter a host IP (default: 127.0.0.1): ", setString(&db.Host)},
		{"db-port", "Please enter a port (default: 5432): ", func(s string) error {
			port, err := strconv.Atoi(s)
			if err != nil {
				return goerr.Wrap(err, "invalid port", goerr.V("port", s))
			}
			db.Port = port
			return nil
		}},
		{"db-name", "Please enter a database name (default: db): ", setString(&db.Name)},
		{"db-user", "Please enter a user name (default: user): ", setString(&db.User)},
		{"db-password", "Please enter a password (empty for none): ", setString(&db.Password)},
		{"force-pbf", "Do you want to force download the OSM PBF file with tags? (y/N) ", func(s string) error {
			ext.ForcePBF = strings.EqualFold(s, "y") || strings.EqualFold(s, "yes")
			return nil
		}},
	}

	for _, q := range questions {
		if c.IsSet(q.flag) {
			continue
		}
		answer, err := p.Ask(q.prompt)
		if err != nil {
			return goerr.Wrap(err, "failed to read parameter", goerr.V("flag", q.flag))
		}
		if answer = strings.TrimSpace(answer); answer == "" {
			continue
		}
		if err := q.set(answer); err != nil {
			return err
		}
	}
	return nil
}

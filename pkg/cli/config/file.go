package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File is an optional TOML file providing flag values. Keys are flag names
// with "_" or "-"; the [database] table maps to the db-* flags.
//
//	country = "monaco"
//	region  = "europe"
//	schema  = "monaco"
//
//	[database]
//	host = "10.0.0.5"
//	port = 5433
type File struct {
	Path string
}

// Flags returns CLI flags for the config file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML config file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("OSMLOAD_CONFIG"),
		},
	}
}

// Values reads the file and returns flag name to value pairs
func (c *File) Values() (map[string]string, error) {
	if c.Path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", c.Path))
	}

	var doc map[string]any
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.Path))
	}

	values := make(map[string]string)
	for key, v := range doc {
		if key == "database" {
			table, ok := v.(map[string]any)
			if !ok {
				return nil, goerr.New("database must be a table", goerr.V("path", c.Path))
			}
			for k, tv := range table {
				values["db-"+flagName(k)] = fmt.Sprint(tv)
			}
			continue
		}
		if _, ok := v.(map[string]any); ok {
			return nil, goerr.New("unknown table in config file", goerr.V("table", key))
		}
		values[flagName(key)] = fmt.Sprint(v)
	}
	return values, nil
}

func flagName(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// Apply sets every flag of cmd that is present in the file and was not given
// on the command line or through the environment. Keys that match no flag
// of cmd are an error.
func (c *File) Apply(cmd *cli.Command) error {
	values, err := c.Values()
	if err != nil {
		return err
	}

	known := make(map[string]bool)
	for _, f := range cmd.Flags {
		for _, name := range f.Names() {
			known[name] = true
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, name := range keys {
		if !known[name] {
			return goerr.New("unknown key in config file", goerr.V("key", name), goerr.V("path", c.Path))
		}
		if cmd.IsSet(name) {
			continue
		}
		if err := cmd.Set(name, values[name]); err != nil {
			return goerr.Wrap(err, "invalid value in config file", goerr.V("key", name))
		}
	}
	return nil
}

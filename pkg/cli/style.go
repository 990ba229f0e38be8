package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/tagfilter"
	"github.com/urfave/cli/v3"
)

func cmdStyle() *cli.Command {
	var (
		schema string
		output string
	)

	return &cli.Command{
		Name:  "style",
		Usage: "Print the osm2pgsql flex style rendered for a schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "schema",
				Usage:       "Schema the style writes into",
				Required:    true,
				Destination: &schema,
				Sources:     cli.EnvVars("OSMLOAD_SCHEMA"),
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Write to file instead of stdout",
				Destination: &output,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			style, err := tagfilter.Render(schema)
			if err != nil {
				return err
			}

			if output == "" {
				_, err := c.Root().Writer.Write([]byte(style))
				return err
			}
			if err := os.WriteFile(output, []byte(style), 0o644); err != nil {
				return goerr.Wrap(err, "failed to write style", goerr.V("path", output))
			}
			return nil
		},
	}
}

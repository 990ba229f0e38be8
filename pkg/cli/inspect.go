package cli

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdInspect() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Count how the tag filter routes the objects of a local .osm.pbf",
		ArgsUsage: "<extract.osm.pbf>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one extract path is required")
			}

			counts, err := usecase.Inspect(ctx, c.Args().First())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(c.Root().Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(counts)
		},
	}
}

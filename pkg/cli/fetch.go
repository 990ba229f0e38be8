package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/osmload/pkg/cli/config"
	"github.com/m-mizutani/osmload/pkg/infra/prompt"
	"github.com/urfave/cli/v3"
)

func cmdFetch(fileCfg *config.File) *cli.Command {
	var extractCfg config.Extract

	return &cli.Command{
		Name:  "fetch",
		Usage: "Download the extract without touching the database",
		Flags: extractCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := fileCfg.Apply(c); err != nil {
				return err
			}
			if err := extractCfg.Validate(); err != nil {
				return err
			}

			st := newStatus(os.Stderr)
			req := extractCfg.Request()
			st.Step("Downloading from %s%s-latest...", req.BaseURL, req.Country)

			p := overwritePrompter(&extractCfg, prompt.NewTerminal(os.Stdin, os.Stderr))
			extract, err := newDownloader(&extractCfg, p).Fetch(ctx, req)
			if err != nil {
				return err
			}
			if extract == nil {
				st.Warn("The region or country were incorrect and a file could not be found. Please try again!")
				return nil
			}

			fmt.Fprintln(c.Root().Writer, extract.Path)
			return nil
		},
	}
}

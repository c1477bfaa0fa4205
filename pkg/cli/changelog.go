package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/verbump/pkg/cli/config"
	"github.com/m-mizutani/verbump/pkg/infra/changelog"
	"github.com/m-mizutani/verbump/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdChangelog(run *runConfig) *cli.Command {
	var (
		repoCfg        config.Repository
		releaseCfg     config.Release
		onlyUnreleased bool
	)

	flags := append(repoCfg.Flags(), releaseCfg.FileFlags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "unreleased",
		Aliases:     []string{"u"},
		Usage:       "Only render the changes since the last tag",
		Destination: &onlyUnreleased,
		Sources:     cli.EnvVars("VERBUMP_UNRELEASED"),
	})

	return &cli.Command{
		Name:    "changelog",
		Aliases: []string{"cl"},
		Usage:   "Render the changelog to stdout",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := repoCfg.Open()
			if err != nil {
				return err
			}
			root, err := client.Root()
			if err != nil {
				return err
			}

			settings, err := releaseCfg.Load(ctx, root)
			if err != nil {
				return err
			}

			bumpUC := usecase.NewBump(client, usecase.WithTagPolicy(repoCfg.TagPolicy()))
			releaseUC := usecase.NewRelease(bumpUC, changelog.New(usecase.ParseCommit), nil)

			text, err := releaseUC.RenderChangelog(ctx, settings, onlyUnreleased)
			if err != nil {
				return err
			}

			fmt.Fprint(run.stdout, text)
			return nil
		},
	}
}

package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/verbump/pkg/cli/config"
	"github.com/m-mizutani/verbump/pkg/infra/changelog"
	"github.com/m-mizutani/verbump/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdBump(run *runConfig) *cli.Command {
	var (
		repoCfg    config.Repository
		releaseCfg config.Release
	)

	flags := append(repoCfg.Flags(), releaseCfg.Flags()...)

	return &cli.Command{
		Name:    "bump",
		Aliases: []string{"b"},
		Usage:   "Patch the build descriptor, write changelogs and optionally commit and tag",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

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

			logger.Info("Starting release",
				"root", root,
				"dry_run", settings.DryRun,
				"commit", settings.Commit.Enabled,
			)

			bumpUC := usecase.NewBump(client, usecase.WithTagPolicy(repoCfg.TagPolicy()))
			releaseUC := usecase.NewRelease(bumpUC, changelog.New(usecase.ParseCommit), client)

			result, err := releaseUC.ProcessRelease(ctx, settings)
			if err != nil {
				return goerr.Wrap(err, "failed to process release")
			}

			printResult(run.stdout, result, settings.DryRun)
			return nil
		},
	}
}

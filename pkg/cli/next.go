package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/verbump/pkg/cli/config"
	"github.com/m-mizutani/verbump/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdNext(run *runConfig) *cli.Command {
	var repoCfg config.Repository

	return &cli.Command{
		Name:    "next",
		Aliases: []string{"n"},
		Usage:   "Print the next version, or nothing when no release is due",
		Flags:   repoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := repoCfg.Open()
			if err != nil {
				return err
			}

			plan, err := usecase.NewBump(client, usecase.WithTagPolicy(repoCfg.TagPolicy())).Plan(ctx)
			if err != nil {
				return err
			}

			if plan.Next != nil {
				fmt.Fprintln(run.stdout, plan.Next.String())
			}
			return nil
		},
	}
}

package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/HiddenStrawberry/anubis-discuss/internal/printer"
)

type StarCmd struct {
	flags *Flags
	unset bool
}

// NewStarCmd creates the star command.
func NewStarCmd(flags *Flags) *StarCmd {
	return &StarCmd{flags: flags}
}

// Register adds the star command to the application.
func (cmd *StarCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "star",
		Usage:     "Star or unstar a discussion",
		UsageText: "anubis-discuss star <did> [--unset]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "unset",
				Aliases:     []string{"u"},
				Usage:       "remove the star",
				Destination: &cmd.unset,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StarCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	did := c.Args().First()
	if did == "" {
		return fmt.Errorf("usage: anubis-discuss star <did>")
	}

	cl, err := cmd.flags.RequireClient()
	if err != nil {
		return err
	}

	if err := cl.SetStar(ctx, did, !cmd.unset); err != nil {
		return fmt.Errorf("star: %w", err)
	}

	if cmd.unset {
		p.Successf("Unstarred discussion %s", did)
	} else {
		p.Successf("Starred discussion %s", did)
	}
	return nil
}

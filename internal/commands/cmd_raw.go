package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type RawCmd struct {
	flags *Flags
	drid  string
	drrid string
	page  int
}

// NewRawCmd creates the raw source command.
func NewRawCmd(flags *Flags) *RawCmd {
	return &RawCmd{flags: flags}
}

// Register adds the raw command to the application.
func (cmd *RawCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "raw",
		Usage:     "Print the raw markdown source of a discussion, comment or reply",
		UsageText: "anubis-discuss raw <did> [--drid <id> [--drrid <id>]]",
		Description: `Prints unrendered markdown to stdout.

With no flags the discussion body is printed. --drid selects a comment,
--drrid a nested reply under that comment.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "drid",
				Usage:       "comment id",
				Destination: &cmd.drid,
			},
			&cli.StringFlag{
				Name:        "drrid",
				Usage:       "nested reply id (requires --drid)",
				Destination: &cmd.drrid,
			},
			&cli.IntFlag{
				Name:        "page",
				Usage:       "reply page to search",
				Value:       1,
				Destination: &cmd.page,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RawCmd) run(ctx context.Context, c *cli.Command) error {
	did := c.Args().First()
	if did == "" {
		return fmt.Errorf("usage: anubis-discuss raw <did>")
	}
	if cmd.drrid != "" && cmd.drid == "" {
		return fmt.Errorf("--drrid requires --drid")
	}

	cl, err := cmd.flags.RequireClient()
	if err != nil {
		return err
	}

	d, err := cl.Discussion(ctx, did, cmd.page)
	if err != nil {
		return fmt.Errorf("load discussion: %w", err)
	}

	rawURL := d.RawURL
	if cmd.drid != "" {
		r, ok := d.Reply(cmd.drid)
		if !ok {
			return fmt.Errorf("comment %q not found on page %d", cmd.drid, cmd.page)
		}
		rawURL = r.RawURL
		if cmd.drrid != "" {
			rawURL = ""
			for _, t := range r.Tail {
				if t.ID == cmd.drrid {
					rawURL = t.RawURL
					break
				}
			}
			if rawURL == "" {
				return fmt.Errorf("reply %q not found under comment %q", cmd.drrid, cmd.drid)
			}
		}
	}

	text, err := cl.Raw(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("fetch raw source: %w", err)
	}

	fmt.Fprintln(c.Root().Writer, text)
	return nil
}

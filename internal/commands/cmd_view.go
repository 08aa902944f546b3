package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/urfave/cli/v3"

	"github.com/HiddenStrawberry/anubis-discuss/internal/tui"
)

type ViewCmd struct {
	flags *Flags
	page  int
}

// NewViewCmd creates the interactive thread view command.
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{flags: flags}
}

// Flags returns the view command's flags, for registration on the root
// command when view runs as the default action.
func (cmd *ViewCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "page",
			Usage:       "reply page to open",
			Value:       1,
			Destination: &cmd.page,
		},
	}
}

// Register adds the view command to the application.
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Open a discussion thread",
		UsageText: "anubis-discuss view <did> [options]",
		Description: `Opens the interactive thread view for a discussion.

Comments render as markdown. Keybindings open inline editors for new
comments, replies and edits; destructive operations ask for confirmation.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

func (cmd *ViewCmd) Run(ctx context.Context, c *cli.Command) error {
	did := c.Args().First()
	if did == "" {
		return fmt.Errorf("usage: anubis-discuss view <did>")
	}

	cl, err := cmd.flags.RequireClient()
	if err != nil {
		return err
	}

	model := tui.New(cmd.flags.Config, cl, did, cmd.page)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run thread view: %w", err)
	}
	return nil
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/discussion"
	"github.com/HiddenStrawberry/anubis-discuss/internal/printer"
)

type PostCmd struct {
	flags *Flags

	drid    string
	file    string
	content string
}

// NewPostCmd creates the post command.
func NewPostCmd(flags *Flags) *PostCmd {
	return &PostCmd{flags: flags}
}

// Register adds the post command to the application.
func (cmd *PostCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "post",
		Usage:     "Post a comment or reply without opening the thread view",
		UsageText: "anubis-discuss post <did> [--drid <id>] [message]",
		Description: `Posts a new top-level comment, or with --drid a reply to that comment.

The message can be provided as:
- A command-line argument
- From a file with -f/--file
- From stdin when piped
- From an interactive form otherwise

Examples:
  anubis-discuss post 42 "Looks right to me"
  anubis-discuss post 42 --drid 7 -f answer.md
  echo "ack" | anubis-discuss post 42 --drid 7`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "drid",
				Usage:       "comment id to reply to",
				Destination: &cmd.drid,
			},
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "read message from file",
				Destination: &cmd.file,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PostCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	did := c.Args().First()
	if did == "" {
		return fmt.Errorf("usage: anubis-discuss post <did> [message]")
	}

	if err := cmd.resolveContent(c); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}
	if strings.TrimSpace(cmd.content) == "" {
		return fmt.Errorf("message is empty")
	}

	form := discussion.FormDescriptor{
		"operation": discussion.OpReply,
		"did":       did,
	}
	if cmd.drid != "" {
		form["operation"] = discussion.OpTailReply
		form["drid"] = cmd.drid
	}
	form["content"] = cmd.content

	cl, err := cmd.flags.RequireClient()
	if err != nil {
		return err
	}

	if err := cl.Submit(ctx, did, form); err != nil {
		return fmt.Errorf("post: %w", err)
	}

	if cmd.drid != "" {
		p.Successf("Reply posted to comment %s", cmd.drid)
	} else {
		p.Successf("Comment posted")
	}
	return nil
}

// resolveContent fills cmd.content from the first available source:
// argument, file, piped stdin, interactive form.
func (cmd *PostCmd) resolveContent(c *cli.Command) error {
	if msg := c.Args().Get(1); msg != "" {
		cmd.content = msg
		return nil
	}

	if cmd.file != "" {
		data, err := os.ReadFile(cmd.file)
		if err != nil {
			return fmt.Errorf("read message file: %w", err)
		}
		cmd.content = string(data)
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		cmd.content = string(data)
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Message").
				Description("Markdown is rendered by the server").
				Validate(validateMessage).
				Value(&cmd.content),
		),
	).Run()
}

func validateMessage(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}

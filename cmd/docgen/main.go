// Command docgen generates CLI reference documentation from the
// anubis-discuss command definitions. Output is written to
// docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/HiddenStrawberry/anubis-discuss/internal/commands"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "anubis-discuss",
		Usage:     "Read and write Anubis discussion threads from the terminal",
		UsageText: "anubis-discuss [global options] command [command options]",
		Description: `A terminal client for Anubis discussion threads.

Run 'anubis-discuss view <did>' to open the interactive thread view, or use
'post', 'raw' and 'star' for one-shot operations.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("ANUBIS_DISCUSS_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file",
				Sources: cli.EnvVars("ANUBIS_DISCUSS_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("ANUBIS_DISCUSS_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "server",
				Usage:   "Anubis server base URL (overrides config)",
				Sources: cli.EnvVars("ANUBIS_DISCUSS_SERVER"),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "session token (overrides credential rules)",
				Sources: cli.EnvVars("ANUBIS_DISCUSS_TOKEN"),
			},
		},
	}

	viewCmd := commands.NewViewCmd(flags)
	root.Flags = append(root.Flags, viewCmd.Flags()...)

	root = viewCmd.Register(root)
	root = commands.NewRawCmd(flags).Register(root)
	root = commands.NewPostCmd(flags).Register(root)
	root = commands.NewStarCmd(flags).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}

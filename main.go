package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/HiddenStrawberry/anubis-discuss/internal/client"
	"github.com/HiddenStrawberry/anubis-discuss/internal/commands"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/config"
	"github.com/HiddenStrawberry/anubis-discuss/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "anubis-discuss",
		Usage:     "Read and write Anubis discussion threads from the terminal",
		UsageText: "anubis-discuss [global options] command [command options]",
		Description: `A terminal client for Anubis discussion threads.

Run 'anubis-discuss view <did>' to open the interactive thread view, or use
'post', 'raw' and 'star' for one-shot operations.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("ANUBIS_DISCUSS_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("ANUBIS_DISCUSS_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("ANUBIS_DISCUSS_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "server",
				Usage:       "Anubis server base URL (overrides config)",
				Sources:     cli.EnvVars("ANUBIS_DISCUSS_SERVER"),
				Destination: &flags.Server,
			},
			&cli.StringFlag{
				Name:        "token",
				Usage:       "session token (overrides credential rules)",
				Sources:     cli.EnvVars("ANUBIS_DISCUSS_TOKEN"),
				Destination: &flags.Token,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.Server != "" {
				cfg.Server.BaseURL = flags.Server
			}
			flags.Config = cfg

			// No server means read-only local commands only; the ones
			// that talk to a server check for the client themselves.
			if cfg.Server.BaseURL == "" {
				return ctx, nil
			}

			token := flags.Token
			if token == "" {
				u, err := url.Parse(cfg.Server.BaseURL)
				if err != nil {
					return ctx, fmt.Errorf("parse server url: %w", err)
				}
				token = cfg.TokenFor(u.Host)
			}

			cl, err := client.New(cfg.Server.BaseURL, token, cfg.Server.Timeout)
			if err != nil {
				return ctx, fmt.Errorf("build client: %w", err)
			}
			flags.Client = cl

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	viewCmd := commands.NewViewCmd(flags)

	app = viewCmd.Register(app)
	app = commands.NewRawCmd(flags).Register(app)
	app = commands.NewPostCmd(flags).Register(app)
	app = commands.NewStarCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Open the thread view directly when called with a bare discussion id.
	app.Flags = append(app.Flags, viewCmd.Flags()...)
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() == 0 {
			return fmt.Errorf("missing discussion id. Run 'anubis-discuss --help' for usage")
		}
		return viewCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

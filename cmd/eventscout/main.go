package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/yair/eventscout/pkg/logging"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "eventscout",
		Usage: "Browse Ticketmaster events and keep a list of favorites.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.json",
				Usage:   "path to a JSON or YAML config file",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override the configured log level",
			},
		},
		Action: browseAction,
		Commands: []*cli.Command{
			browseCommand(),
			serveCommand(),
			searchCommand(),
			segmentsCommand(),
			genreCommand(),
			favoritesCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logging.New(os.Stderr, "error").Error("eventscout failed", "err", err)
		os.Exit(1)
	}
}

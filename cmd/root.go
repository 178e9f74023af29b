package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "tubefeed",
		Usage: "An aggregated feed of your channel subscriptions",
		Description: `Tracks a set of channels and serves a single page with their
		latest uploads, newest first.

		Subscriptions are kept in a flat text file with one channel id per
		line. The server command fetches every subscribed channel's feed
		through a feed translation endpoint, merges the results and serves
		the rendered page on a local port until terminated.

		Flags can generally be set via environment variables, e.g.:

		--file => TUBEFEED_FILE=subscriptions
		--port => TUBEFEED_PORT=3210
		`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Value:   "subscriptions",
				Usage:   "Path to the subscriptions file",
				EnvVars: []string{"TUBEFEED_FILE"},
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				EnvVars: []string{"TUBEFEED_DEBUG"},
			},
		},
		Before: func(ctx *cli.Context) error {
			if ctx.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			subscribeCmd(),
			unsubscribeCmd(),
			listCmd(),
			serverCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

func Execute() {
	if err := RootApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

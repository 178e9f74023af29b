package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"tubefeed/config"
	"tubefeed/feeds"
	"tubefeed/instances"
	"tubefeed/models"
	"tubefeed/render"
	"tubefeed/server"
	"tubefeed/store"
)

func serverCmd() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Aggregate subscriptions and serve the feed page",
		Description: `Runs one aggregation pass over the subscribed channels,
renders the result to a single HTML page and serves that page on the
configured port until the process is terminated.

The page is built once per invocation. Restart the server to refresh it.

With --invidious the watch and thumbnail links are built against the first
reachable mirror listed by the instance directory. If no mirror is available
the server falls back to linking the platform directly.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to bind the HTTP server to",
				EnvVars: []string{"TUBEFEED_PORT"},
			},
			&cli.BoolFlag{
				Name:    "invidious",
				Usage:   "Build links against an Invidious mirror",
				EnvVars: []string{"TUBEFEED_INVIDIOUS"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration file",
				EnvVars: []string{"TUBEFEED_CONFIG"},
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.Load(ctx.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if port := ctx.Int("port"); port != 0 {
				cfg.Port = port
			}

			s := store.New(ctx.String("file"))
			if err := s.Init(); err != nil {
				return err
			}
			channels, err := s.All()
			if err != nil {
				return err
			}

			instance := models.DirectInstance()
			if ctx.Bool("invidious") {
				mirror, err := instances.NewDirectory(cfg.Directory).Lookup(ctx.Context)
				if err != nil {
					log.WithFields(log.Fields{
						"error": err,
					}).Warn("No mirror available, linking the platform directly")
				} else {
					instance = mirror
				}
			}

			log.WithFields(log.Fields{
				"channels": len(channels),
				"instance": instance.URL,
			}).Info("Aggregating subscriptions")

			videos, err := feeds.NewAggregator(cfg, instance).Aggregate(ctx.Context, channels)
			if err != nil {
				return err
			}

			page, err := render.Page(instance, videos, time.Now())
			if err != nil {
				return err
			}

			app := server.Server(&server.ServerConfig{Page: page})

			// Graceful shutdown
			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt)
			go func() {
				<-c
				fmt.Println("Gracefully shutting down...")
				app.ShutdownWithTimeout(10 * time.Second)
			}()

			log.WithFields(log.Fields{
				"port":   cfg.Port,
				"videos": len(videos),
			}).Info("Starting server")

			if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
				return fmt.Errorf("failed to bind port %d: %w", cfg.Port, err)
			}
			return nil
		},
	}
}

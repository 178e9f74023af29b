package cmd

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"tubefeed/store"
)

func subscribeCmd() *cli.Command {
	return &cli.Command{
		Name:      "subscribe",
		Usage:     "Subscribe to one or more channels",
		ArgsUsage: "<urls...>",
		Description: `Add channels to the subscriptions file.

Accepts channel URLs or bare channel ids. URLs that do not end in a valid
channel id are skipped with a warning. Subscribing twice to the same channel
is a no-op.`,
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() == 0 {
				return errors.New("specify at least one channel URL")
			}

			s := store.New(ctx.String("file"))
			if err := s.Init(); err != nil {
				return err
			}

			for _, arg := range ctx.Args().Slice() {
				id, ok := store.ParseChannelURI(arg)
				if !ok {
					log.WithFields(log.Fields{
						"url": arg,
					}).Warn("Not a valid channel URL, skipping")
					continue
				}
				if err := s.Add(id); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func unsubscribeCmd() *cli.Command {
	return &cli.Command{
		Name:      "unsubscribe",
		Usage:     "Unsubscribe from one or more channels",
		ArgsUsage: "<urls...>",
		Description: `Remove channels from the subscriptions file.

Accepts channel URLs or bare channel ids. Channels that are not subscribed
are skipped with a warning.`,
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() == 0 {
				return errors.New("specify at least one channel URL")
			}

			s := store.New(ctx.String("file"))
			if err := s.Init(); err != nil {
				return err
			}

			for _, arg := range ctx.Args().Slice() {
				id, ok := store.ParseChannelURI(arg)
				if !ok {
					log.WithFields(log.Fields{
						"url": arg,
					}).Warn("Not a valid channel URL, skipping")
					continue
				}
				if err := s.Remove(id); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

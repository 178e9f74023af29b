package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"tubefeed/store"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List subscribed channels",
		Description: `Print the subscribed channel ids, one per line, in the
order they appear in the subscriptions file.`,
		Action: func(ctx *cli.Context) error {
			s := store.New(ctx.String("file"))
			if err := s.Init(); err != nil {
				return err
			}

			ids, err := s.All()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

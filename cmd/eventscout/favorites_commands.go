package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yair/eventscout/pkg/interfaces"
)

func favoritesCommand() *cli.Command {
	return &cli.Command{
		Name:  "favorites",
		Usage: "Manage saved events.",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Print saved events.",
				Action: func(c *cli.Context) error {
					rt, err := loadRuntime(c, false)
					if err != nil {
						return err
					}
					defer rt.Close()

					favorites, err := rt.favorites()
					if err != nil {
						return err
					}

					events, err := favorites.GetAll(c.Context)
					if err != nil {
						return err
					}
					printEvents(c.App.Writer, events)
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "Fetch an event from the catalog and save it.",
				ArgsUsage: "<event id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("event id is required")
					}

					rt, err := loadRuntime(c, false)
					if err != nil {
						return err
					}
					defer rt.Close()

					catalog, err := rt.catalog()
					if err != nil {
						return err
					}
					favorites, err := rt.favorites()
					if err != nil {
						return err
					}

					event, err := interfaces.NewBrowseService(catalog, rt.logger).Event(c.Context, id)
					if err != nil {
						return fmt.Errorf("failed to fetch event %s: %w", id, err)
					}

					added, err := favorites.Add(c.Context, *event)
					if err != nil {
						return err
					}
					if added {
						fmt.Fprintf(c.App.Writer, "saved %s\n", event.Name)
					} else {
						fmt.Fprintf(c.App.Writer, "%s is already saved\n", event.Name)
					}
					return nil
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a saved event.",
				ArgsUsage: "<event id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("event id is required")
					}

					rt, err := loadRuntime(c, false)
					if err != nil {
						return err
					}
					defer rt.Close()

					favorites, err := rt.favorites()
					if err != nil {
						return err
					}

					if err := favorites.Remove(c.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "removed %s\n", id)
					return nil
				},
			},
		},
	}
}

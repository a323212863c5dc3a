package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yair/eventscout/pkg/domain"
	"github.com/yair/eventscout/pkg/interfaces"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Print one page of events matching the filter.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "keyword", Aliases: []string{"k"}},
			&cli.StringFlag{Name: "city"},
			&cli.StringFlag{Name: "segment", Usage: "segment id, see the segments command"},
			&cli.IntFlag{Name: "page", Value: 0},
		},
		Action: func(c *cli.Context) error {
			rt, err := loadRuntime(c, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			catalog, err := rt.catalog()
			if err != nil {
				return err
			}

			filter := domain.Filter{
				Keyword:   c.String("keyword"),
				City:      c.String("city"),
				SegmentID: c.String("segment"),
			}
			events, err := interfaces.NewBrowseService(catalog, rt.logger).Search(c.Context, filter, c.Int("page"))
			if err != nil {
				return err
			}

			printEvents(c.App.Writer, events)
			return nil
		},
	}
}

func segmentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "segments",
		Usage: "List the event categories available as a filter.",
		Action: func(c *cli.Context) error {
			rt, err := loadRuntime(c, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			catalog, err := rt.catalog()
			if err != nil {
				return err
			}

			segments, err := interfaces.NewBrowseService(catalog, rt.logger).Segments(c.Context)
			if err != nil {
				return err
			}

			for _, segment := range segments {
				id := segment.ID
				if id == "" {
					id = "-"
				}
				fmt.Fprintf(c.App.Writer, "%-20s %s\n", id, segment.Name)
			}
			return nil
		},
	}
}

func genreCommand() *cli.Command {
	return &cli.Command{
		Name:      "genre",
		Usage:     "Look up a genre by id.",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return fmt.Errorf("genre id is required")
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

			result := interfaces.NewBrowseService(catalog, rt.logger).Genre(c.Context, id)
			switch {
			case result.Found:
				fmt.Fprintf(c.App.Writer, "%s %s\n", result.Genre.ID, result.Genre.Name)
			case result.Err != nil:
				return fmt.Errorf("genre lookup failed: %w", result.Err)
			default:
				fmt.Fprintln(c.App.Writer, "genre not found")
			}
			return nil
		},
	}
}

func printEvents(w io.Writer, events []domain.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}

	for _, event := range events {
		fmt.Fprintf(w, "%s  %s  %s\n", event.ID, event.DisplayDate(), event.Name)
		if loc := event.Location(); loc != "" {
			fmt.Fprintf(w, "    %s\n", loc)
		}
	}
}

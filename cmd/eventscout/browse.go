package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/yair/eventscout/pkg/ui"
)

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:   "browse",
		Usage:  "Open the interactive event browser (default).",
		Action: browseAction,
	}
}

func browseAction(c *cli.Context) error {
	rt, err := loadRuntime(c, true)
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

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	relay := ui.NewStateRelay()
	controller := rt.controller(catalog, relay.Publish)
	defer controller.Close()

	app := ui.NewApp(ui.Commands(ctx, controller, catalog, favorites, rt.logger))
	program := tea.NewProgram(app, tea.WithAltScreen())

	go relay.Run(ctx, program.Send)

	rt.logger.Info("starting browser")
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	rt.logger.Info("browser closed")
	return nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yair/eventscout/pkg/interfaces"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Expose the event list and favorites over a local HTTP API.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "override the configured port"},
		},
		Action: func(c *cli.Context) error {
			rt, err := loadRuntime(c, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			if port := c.String("port"); port != "" {
				rt.cfg.Server.Port = port
			}

			catalog, err := rt.catalog()
			if err != nil {
				return err
			}
			favorites, err := rt.favorites()
			if err != nil {
				return err
			}

			controller := rt.controller(catalog, nil)
			defer controller.Close()

			events := interfaces.NewEventHandler(controller, interfaces.NewBrowseService(catalog, rt.logger))
			router := interfaces.NewRouter(events, interfaces.NewFavoritesHandler(favorites), rt.logger.WithPrefix("http"))
			interfaces.LogRoutes(router, rt.logger)

			srv := &http.Server{
				Addr:         ":" + rt.cfg.Server.Port,
				Handler:      router,
				ReadTimeout:  time.Duration(rt.cfg.Server.ReadTimeout) * time.Second,
				WriteTimeout: time.Duration(rt.cfg.Server.WriteTimeout) * time.Second,
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				rt.logger.Info("server listening", "port", rt.cfg.Server.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})

			g.Go(func() error {
				controller.Search(gctx)
				return nil
			})

			g.Go(func() error {
				<-gctx.Done()
				rt.logger.Info("shutting down server")

				controller.Close()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					rt.logger.Error("server forced to shutdown", "err", err)
					return err
				}
				return nil
			})

			if err := g.Wait(); err != nil {
				return err
			}

			rt.logger.Info("server stopped")
			return nil
		},
	}
}

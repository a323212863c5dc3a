package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/yair/eventscout/pkg/collectors"
	"github.com/yair/eventscout/pkg/config"
	"github.com/yair/eventscout/pkg/integrations"
	"github.com/yair/eventscout/pkg/listing"
	"github.com/yair/eventscout/pkg/logging"
)

const defaultTUILogFile = "eventscout.log"

// runtime bundles the components one command needs and closes them in
// reverse order of creation.
type runtime struct {
	cfg    *config.Config
	logger *log.Logger

	closers []func() error
}

func loadRuntime(c *cli.Context, logToFile bool) (*runtime, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	rt := &runtime{cfg: cfg}

	switch {
	case logToFile || cfg.Log.File != "":
		path := cfg.Log.File
		if path == "" {
			path = defaultTUILogFile
		}
		logger, closer, err := logging.OpenFile(path, cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		rt.logger = logger
		rt.closers = append(rt.closers, closer.Close)
	default:
		rt.logger = logging.New(os.Stderr, cfg.Log.Level)
	}

	return rt, nil
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			rt.logger.Warn("failed to close component", "err", err)
		}
	}
}

func (rt *runtime) catalog() (*integrations.TicketmasterClient, error) {
	if err := rt.cfg.Validate(); err != nil {
		return nil, err
	}

	return integrations.NewTicketmasterClient(integrations.TicketmasterConfig{
		APIKey:            rt.cfg.Ticketmaster.APIKey,
		BaseURL:           rt.cfg.Ticketmaster.BaseURL,
		Timeout:           rt.cfg.Ticketmaster.RequestTimeout(),
		RequestsPerSecond: rt.cfg.Ticketmaster.RequestRate(),
		Logger:            rt.logger.WithPrefix("ticketmaster"),
	})
}

func (rt *runtime) favorites() (*collectors.FavoritesWriter, error) {
	db, err := collectors.NewSQLiteDB(rt.cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, db.Close)

	kv, err := collectors.NewSQLiteKV(db)
	if err != nil {
		return nil, err
	}

	repo, err := collectors.NewFavoritesRepository(kv, rt.logger.WithPrefix("favorites"))
	if err != nil {
		return nil, err
	}

	writer := collectors.NewFavoritesWriter(repo)
	rt.closers = append(rt.closers, func() error {
		writer.Close()
		return nil
	})
	return writer, nil
}

func (rt *runtime) controller(catalog listing.EventSearcher, onChange func(listing.State)) *listing.Controller {
	opts := []listing.Option{
		listing.WithDebounce(rt.cfg.Listing.Debounce()),
		listing.WithDedupe(rt.cfg.Listing.DedupePages),
		listing.WithLogger(rt.logger.WithPrefix("listing")),
	}
	if onChange != nil {
		opts = append(opts, listing.WithOnChange(onChange))
	}
	return listing.New(catalog, opts...)
}

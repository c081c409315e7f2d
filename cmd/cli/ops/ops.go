// Package ops holds the trackside-cli commands. Every command wires the full
// client stack: transport client, domain adapters, application store, and the
// sqlite snapshot so selections and collections survive between invocations.
package ops

import (
	"context"
	"log/slog"
	"os"

	"github.com/myrjola/trackside/internal/api"
	"github.com/myrjola/trackside/internal/db"
	"github.com/myrjola/trackside/internal/envstruct"
	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/logging"
	"github.com/myrjola/trackside/internal/repositories"
	"github.com/myrjola/trackside/internal/services"
	"github.com/myrjola/trackside/internal/store"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "ops",
	Title: "Operations",
}

type config struct {
	APIURL    string `env:"TRACKSIDE_API_URL" envDefault:"http://localhost:4000/api"`
	SqliteURL string `env:"TRACKSIDE_SQLITE_URL" envDefault:"./trackside.sqlite"`
	Actor     string `env:"TRACKSIDE_ACTOR" envDefault:"dispatcher"`
}

type stack struct {
	store *store.Store
	dbs   *db.Database
}

// newStack builds the store over the live API and hydrates it from the local
// snapshot. Callers must Close when done.
func newStack(ctx context.Context) (*stack, error) {
	var cfg config
	if err := envstruct.Populate(&cfg, os.LookupEnv); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	dbs, err := db.NewDatabase(cfg.SqliteURL)
	if err != nil {
		return nil, errors.Wrap(err, "open database", slog.String("url", cfg.SqliteURL))
	}

	client := api.NewClient(cfg.APIURL, logger)
	svcs := services.New(client, logger)
	s := store.New(store.Dependencies{
		Trains:          svcs.Trains,
		Recommendations: svcs.Recommendations,
		Predictions:     svcs.Predictions,
		KPIs:            svcs.KPIs,
		Simulations:     svcs.Simulations,
		Audit:           svcs.Audit,
		Chat:            svcs.Chat,
		Persister:       repositories.NewSnapshotRepository(dbs, logger),
		Logger:          logger,
		Actor:           cfg.Actor,
	})
	if err = s.Hydrate(ctx); err != nil {
		_ = dbs.Close()
		return nil, errors.Wrap(err, "hydrate store")
	}

	return &stack{store: s, dbs: dbs}, nil
}

func (s *stack) Close() error {
	return s.dbs.Close()
}

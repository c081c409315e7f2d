// Command web is the mock Trackside operations API. It serves synthetic
// fleet data, recommendations, KPIs, predictions, simulations, audit, and
// chat behind the JSON envelope contract the dashboard adapters consume.
package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/myrjola/trackside/internal/envstruct"
	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/logging"
	"github.com/myrjola/trackside/internal/mock"
	"github.com/myrjola/trackside/internal/pprofserver"
)

type application struct {
	logger  *slog.Logger
	source  *mock.Source
	journal *mock.Journal
	desk    *mock.Desk
}

type config struct {
	Addr      string `env:"TRACKSIDE_ADDR" envDefault:"localhost:4000"`
	PprofPort string `env:"TRACKSIDE_PPROF_PORT" envDefault:":6060"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse config")
	}

	// Initialise pprof listening on localhost so that it's not open to the world.
	pprofserver.Launch(cfg.PprofPort, logger)

	source := mock.NewSource(uint64(time.Now().UnixNano()))
	app := &application{
		logger:  logger,
		source:  source,
		journal: mock.NewJournal(),
		desk:    mock.NewDesk(source),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

func main() {
	ctx := context.Background()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})))

	// A missing .env file is fine; the defaults cover local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "load .env", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server failed", errors.SlogError(err))
		os.Exit(1)
	}
}

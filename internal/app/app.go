// Package app opens the stores a homegrid command works against: the
// config file, the SQLite database, the layout store over it, and the
// service directory.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"nathanbeddoewebdev/homegrid/internal/config"
	"nathanbeddoewebdev/homegrid/internal/database"
	"nathanbeddoewebdev/homegrid/internal/layoutstore"
	"nathanbeddoewebdev/homegrid/internal/logger"
	"nathanbeddoewebdev/homegrid/internal/servicedir"
	"nathanbeddoewebdev/homegrid/internal/services/auth"
	"nathanbeddoewebdev/homegrid/internal/stats"
	"nathanbeddoewebdev/homegrid/internal/util"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Env is everything a command needs for one invocation. Close releases the
// database.
type Env struct {
	Config   *config.Config
	DB       *sql.DB
	Layouts  *layoutstore.Store
	Services *servicedir.SQLiteRepository
	Log      *slog.Logger
}

// Open loads the config and opens the database it points at.
func Open() (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	blobs, err := layoutstore.NewSQLiteBlobs(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	repo, err := servicedir.NewSQLiteRepository(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	log := logger.OrDefault(nil)
	return &Env{
		Config:   cfg,
		DB:       db,
		Layouts:  layoutstore.New(blobs, log),
		Services: repo,
		Log:      log,
	}, nil
}

// Close closes the database.
func (e *Env) Close() error {
	return e.DB.Close()
}

// HomeServices returns the services of home in directory order.
func (e *Env) HomeServices(home string) ([]domain.Service, error) {
	records, err := e.Services.ListByHome(home)
	if err != nil {
		return nil, err
	}
	return servicedir.Services(records), nil
}

// staleIntervals is how many refresh intervals a cached payload may be
// served stale while it revalidates.
const staleIntervals = 10

// Refresher builds a stats refresher that reads tokens from tokens and
// caches payloads in the user cache directory. Cached payloads count as
// fresh for one refresh interval.
func (e *Env) Refresher(tokens auth.Store) *stats.Refresher {
	interval := e.Config.Refresh()
	return &stats.Refresher{
		Fetcher:  stats.NewHTTPFetcher(tokens),
		Cache:    stats.CacheWithTTLs(stats.DefaultDir(), interval, staleIntervals*interval),
		Interval: interval,
		Log:      e.Log,
	}
}

// AddHomeFlag registers the --home flag on cmd and its children.
func AddHomeFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String("home", "", "Home to operate on (overrides default-home)")
}

// ResolveHome returns the --home flag when it was passed, otherwise the
// configured default home.
func ResolveHome(cmd *cobra.Command, cfg *config.Config) (string, error) {
	home := cfg.Home()
	if f := cmd.Flag("home"); f != nil && f.Changed {
		home = strings.TrimSpace(f.Value.String())
	}
	if err := util.ValidateName("home", home); err != nil {
		return "", err
	}
	return home, nil
}

// Interactive reports whether stdout is a terminal.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

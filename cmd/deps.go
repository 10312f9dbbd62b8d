package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/api"
	"github.com/abhisek/pathwise/internal/config"
	"github.com/abhisek/pathwise/internal/logger"
	"github.com/abhisek/pathwise/internal/store"
	"github.com/abhisek/pathwise/internal/store/redisstore"
	"github.com/abhisek/pathwise/internal/unlock"
)

// markerBackend is the unlock marker set, local or shared.
type markerBackend interface {
	unlock.MarkerStore
	unlock.MarkerLister
}

// deps are the long-lived services a command needs.
type deps struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   *store.Store
	client  *api.Client
	markers markerBackend
	closers []io.Closer
}

// openDeps loads config, opens the store and the marker backend, and builds
// the API client. Interactive runs log to a file since the TUI owns the
// terminal; everything else logs to stderr.
func openDeps(cmd *cobra.Command, interactive bool) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	d := &deps{cfg: cfg}

	var out io.Writer = os.Stderr
	if interactive {
		logPath := cfg.LogFile
		if logPath == "" {
			logPath = logger.PathBeside(dbPath)
		}
		f, err := logger.OpenFile(logPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Logging disabled:", err)
			out = io.Discard
		} else {
			out = f
			d.closers = append(d.closers, f)
		}
	}
	d.log = logger.New(cfg.LogLevel, cfg.LogFormat, out)

	st, err := store.Open(dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st)
	d.markers = st.Markers()

	if cfg.UsesRedis() {
		rm, err := redisstore.New(cfg.RedisURL)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Redis unavailable, keeping unlocks locally:", err)
			d.log.Warn().Err(err).Msg("redis marker store unavailable")
		} else {
			d.markers = rm
			d.closers = append(d.closers, rm)
		}
	}

	d.client = api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithLogger(d.log),
	)

	d.log.Debug().
		Str("db", dbPath).
		Str("api", cfg.APIBaseURL).
		Bool("redis", cfg.UsesRedis()).
		Msg("dependencies ready")
	return d, nil
}

// Close releases everything opened by openDeps, newest first.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			d.log.Warn().Err(err).Msg("close")
		}
	}
	d.closers = nil
}

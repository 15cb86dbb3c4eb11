package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkarsai/worktime/internal/config"
	"github.com/mkarsai/worktime/internal/session"
	"github.com/mkarsai/worktime/internal/store"
)

// app bundles everything a command needs: configuration, the opened store
// and the tracker built on top of it. Commands obtain one through openApp
// and must Close it when done.
type app struct {
	cfg     *config.Config
	store   store.Store
	tracker *session.Tracker
	log     zerolog.Logger
}

func openApp() (*app, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	log := setupLogger(cfg.LogLevel)

	st, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}

	tracker, err := session.NewTracker(st, time.Now, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &app{cfg: cfg, store: st, tracker: tracker, log: log}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func setupLogger(cfgLevel string) zerolog.Logger {
	level := zerolog.WarnLevel
	switch cfgLevel {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	if verboseFlag {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

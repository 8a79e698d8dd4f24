package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gnnlimit/config"
	"github.com/katalvlaran/gnnlimit/logging"
	"github.com/katalvlaran/gnnlimit/store"
)

// Seed offsets per pipeline stage, so every stage draws an independent
// stream from the single configured seed.
const (
	seedGenerate int64 = iota
	seedSplit
	seedInit
	seedShuffle
	seedSweep
)

// runEnv is what every subcommand needs: validated config, logger, store.
type runEnv struct {
	cfg     *config.Experiment
	logger  *slog.Logger
	store   *store.Store
	out     io.Writer
	jsonOut bool
}

func (e *runEnv) seed(stage int64) int64 { return e.cfg.Seed + stage }

func (e *runEnv) key(label ...string) string { return store.Key(e.cfg.Name, label...) }

func (e *runEnv) Close() error { return e.store.Close() }

// setup loads the config named by --config (or the defaults), applies
// command-line overrides, validates it and opens the store.
func setup(cmd *cobra.Command) (*runEnv, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if v, _ := cmd.Flags().GetString("experiment"); v != "" {
		cfg.Name = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Logging.Format = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.EnsureName()

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())

	backend, err := openBackend(cfg.Store)
	if err != nil {
		return nil, err
	}
	jsonOut, _ := cmd.Flags().GetBool("json")

	logger.Debug("environment ready", "experiment", cfg.Name, "backend", cfg.Store.Backend, "path", cfg.Store.Path)
	return &runEnv{
		cfg:     cfg,
		logger:  logger,
		store:   store.New(backend),
		out:     cmd.OutOrStdout(),
		jsonOut: jsonOut,
	}, nil
}

func openBackend(sc config.StoreConfig) (store.Backend, error) {
	switch sc.Backend {
	case "sqlite":
		return store.OpenSQLite(sc.Path)
	case "badger":
		return store.OpenBadger(sc.Path)
	case "memory":
		return store.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", sc.Backend)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jeranaias/bingogen/internal/backend"
	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/config"
	"github.com/jeranaias/bingogen/internal/export"
	"github.com/jeranaias/bingogen/internal/goals"
	"github.com/jeranaias/bingogen/internal/grid"
	"github.com/jeranaias/bingogen/internal/history"
	"github.com/jeranaias/bingogen/internal/util"
)

// shutdownTimeout bounds the wait for the worker after the front end exits.
const shutdownTimeout = 5 * time.Second

// =============================================================================
// CONFIG AND LOGGING
// =============================================================================

// loadConfig reads the config file and applies flag overrides. A broken
// default config file is logged and replaced by defaults; a broken file
// named with --config is an error.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.configPath != "" {
		loaded, err := config.LoadFromPath(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		loaded, err := config.Load()
		if err != nil {
			slog.Warn("config load failed, using defaults", "error", err)
		}
		cfg = loaded
		if cfg == nil {
			cfg = config.Default()
		}
	}

	if opts.exportDir != "" {
		cfg.Export.Dir = opts.exportDir
	}
	if opts.size != 0 {
		size, err := grid.ParseSize(opts.size)
		if err != nil {
			return nil, fmt.Errorf("--size: %w", err)
		}
		cfg.Board.DefaultSize = int(size)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	config.SetGlobal(cfg)
	return cfg, nil
}

// newLogger returns a text logger at the configured level.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// =============================================================================
// RUNTIME
// =============================================================================

// runtime is everything a front end needs: the worker, its collaborators
// and the front end's two bridge endpoints.
type runtime struct {
	cfg *config.Config
	log *slog.Logger

	ledger  *history.Ledger // nil when disabled or unavailable
	pool    *goals.Pool     // nil without goals.pool_path
	watcher *goals.Watcher

	toWorker   *bridge.BackendHandle
	fromWorker *bridge.FrontendReceiver
	worker     *backend.Worker
	cancel     context.CancelFunc
}

// startRuntime prepares the export directory, opens the ledger, loads the
// goal pool and starts the worker. Ledger and pool failures are logged and
// the feature is left off.
func startRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) *runtime {
	r := &runtime{cfg: cfg, log: logger}

	dir := cfg.ExportDir()
	if !util.DirExists(dir) {
		if cfg.Export.CreateOnStart {
			if err := os.MkdirAll(dir, 0755); err != nil {
				logger.Warn("could not create export directory", "dir", dir, "error", err)
			}
		} else {
			logger.Warn("export directory missing, exports will fail", "dir", dir)
		}
	}

	if cfg.History.Enabled {
		ledger, err := history.Open(cfg.HistoryPath())
		if err != nil {
			logger.Warn("history disabled", "error", err)
		} else {
			r.ledger = ledger
		}
	}

	if path := cfg.GoalsPath(); path != "" {
		pool, err := goals.Load(path)
		if err != nil {
			logger.Warn("goal pool unavailable", "path", path, "error", err)
		} else {
			logger.Info("goal pool loaded", "path", path, "goals", pool.Len())
			r.pool = pool
		}
	}

	recv, toWorker, fromWorker, toUI := bridge.CreatePair(cfg.BridgeOptions())
	r.toWorker = toWorker
	r.fromWorker = fromWorker

	deps := backend.Deps{
		Engine:   export.NewEngine(&export.Options{OutputDir: dir}, logger),
		Frontend: toUI,
		Pool:     r.pool,
		Logger:   logger,
	}
	if r.ledger != nil {
		deps.Ledger = r.ledger
	}

	workerCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.worker = backend.Start(workerCtx, deps, recv)
	return r
}

// poolCount is the pool size for display, -1 without a pool.
func (r *runtime) poolCount() int {
	if r.pool == nil {
		return -1
	}
	return r.pool.Len()
}

// watchPool starts hot reload of the goal file when configured.
func (r *runtime) watchPool(onReload goals.ReloadFunc) {
	if r.pool == nil || !r.cfg.Goals.Watch {
		return
	}
	w, err := goals.NewWatcher(r.pool, goals.DefaultDebounce, onReload, r.log)
	if err != nil {
		r.log.Warn("goal pool watch disabled", "error", err)
		return
	}
	if err := w.Watch(); err != nil {
		r.log.Warn("goal pool watch disabled", "error", err)
		_ = w.Close()
		return
	}
	r.watcher = w
}

// Close releases the front end's handle, waits for the worker to drain and
// closes the ledger.
func (r *runtime) Close() {
	if r.watcher != nil {
		if err := r.watcher.Close(); err != nil {
			r.log.Debug("watcher close", "error", err)
		}
	}

	r.toWorker.Close()
	select {
	case <-r.worker.Done():
	case <-time.After(shutdownTimeout):
		r.log.Warn("worker did not stop in time")
	}
	r.cancel()

	if r.ledger != nil {
		if err := r.ledger.Close(); err != nil {
			r.log.Warn("history close failed", "error", err)
		}
	}
}

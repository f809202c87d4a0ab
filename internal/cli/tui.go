// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/bingogen/internal/ui/app"
	"github.com/jeranaias/bingogen/internal/ui/styles"
)

// runTUI starts the board editor. Logs go to a file because the terminal
// belongs to the renderer.
func runTUI(ctx context.Context, opts *globalOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logPath := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	logFile, err := tea.LogToFile(logPath, "bingogen")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg)

	rt := startRuntime(ctx, cfg, logger)
	defer rt.Close()

	deps := app.Deps{
		Config:    cfg,
		Theme:     styles.NewTheme(cfg.UI.Theme),
		Backend:   rt.toWorker,
		Frontend:  rt.fromWorker,
		PoolCount: rt.poolCount(),
		Logger:    logger,
	}
	if rt.ledger != nil {
		deps.History = rt.ledger
	}
	m := app.New(deps)
	defer m.Shutdown()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	rt.watchPool(func(count int, err error) {
		p.Send(app.PoolReloadedMsg{Count: count, Err: err})
	})

	logger.Info("tui started", "export_dir", cfg.ExportDir(), "size", cfg.BoardSize().String())
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui: %w", err)
	}
	logger.Info("tui stopped")
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jeranaias/bingogen/internal/config"
	"github.com/jeranaias/bingogen/internal/shell"
)

func newShellCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit and export a board from a line-oriented prompt",
		Long: `Start an interactive shell with the same board, randomize and export
operations as the editor. Commands are read from stdin, so the shell can
also be scripted:

  printf 'size 3\nset 2 2 Beat the boss\nexport lockout\n' | bingogen shell`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg)

			rt := startRuntime(cmd.Context(), cfg, logger)
			defer rt.Close()
			rt.watchPool(func(count int, err error) {
				if err != nil {
					logger.Warn("goal pool reload failed", "error", err)
					return
				}
				logger.Info("goal pool reloaded", "goals", count)
			})

			s := shell.New(shell.Options{
				Backend:  rt.toWorker,
				Frontend: rt.fromWorker,
				Size:     cfg.BoardSize(),
				Out:      cmd.OutOrStdout(),
				Color:    shell.ColorEnabled(),
				Logger:   logger,
			})

			var in shell.LineReader
			if shell.IsTTY() && cmd.InOrStdin() == os.Stdin {
				in = shell.NewLinerReader(historyFile())
			} else {
				in = shell.NewScannerReader(cmd.InOrStdin(), nil)
			}
			defer in.Close()

			return s.Run(cmd.Context(), in)
		},
	}
}

func historyFile() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return ""
	}
	return filepath.Join(dir, "shell_history")
}

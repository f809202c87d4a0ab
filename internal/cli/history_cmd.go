// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/history"
)

type historyOptions struct {
	limit int
	prune int
}

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	hopts := &historyOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List exports recorded in the history ledger",
		Long: `List the most recent exports, newest first. With --prune N only the
newest N records are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("history is disabled (set history.enabled = true)")
			}

			ledger, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer ledger.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if hopts.prune > 0 {
				removed, err := ledger.Prune(ctx, hopts.prune)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d records\n", removed)
			}

			limit := hopts.limit
			if limit <= 0 {
				limit = cfg.History.Limit
			}
			records, err := ledger.List(ctx, limit)
			if err != nil {
				return err
			}
			total, err := ledger.Count(ctx)
			if err != nil {
				return err
			}
			return printHistory(out, records, total)
		},
	}
	cmd.Flags().IntVarP(&hopts.limit, "limit", "n", 0, "records to show (default history.limit)")
	cmd.Flags().IntVar(&hopts.prune, "prune", 0, "keep only the newest N records")
	return cmd
}

// printHistory renders records as a table followed by a count line.
func printHistory(w io.Writer, records []bridge.ExportRecord, total int) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No exports recorded yet.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Created", "Format", "File", "Cells", "Bytes"})
	for _, rec := range records {
		row := []string{
			rec.CreatedAt.Local().Format(time.DateTime),
			rec.Format.Label(),
			rec.Path,
			strconv.Itoa(rec.Cells),
			strconv.Itoa(rec.Bytes),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("render history: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render history: %w", err)
	}
	fmt.Fprintf(w, "Showing %d of %d exports\n", len(records), total)
	return nil
}

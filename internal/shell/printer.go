// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/export"
	"github.com/jeranaias/bingogen/internal/grid"
	"github.com/jeranaias/bingogen/internal/ui/components"
	"github.com/jeranaias/bingogen/internal/util"
)

// maxCellWidth bounds goal text in the board table.
const maxCellWidth = 24

// Printer writes shell output, colored when enabled.
type Printer struct {
	out io.Writer

	green  *color.Color
	cyan   *color.Color
	yellow *color.Color
	red    *color.Color
	muted  *color.Color
}

// NewPrinter creates a printer on out.
func NewPrinter(out io.Writer, useColor bool) *Printer {
	p := &Printer{
		out:    out,
		green:  color.New(color.FgGreen),
		cyan:   color.New(color.FgCyan),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed, color.Bold),
		muted:  color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.green, p.cyan, p.yellow, p.red, p.muted} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Notification prints a worker notification. Warnings and errors get a
// hint line when the message matches a known pattern.
func (p *Printer) Notification(n bridge.AddNotification) {
	switch n.Type {
	case bridge.NotificationSuccess:
		p.green.Fprintf(p.out, "[OK] %s\n", n.Message)
	case bridge.NotificationInfo:
		p.cyan.Fprintf(p.out, "[i] %s\n", n.Message)
	case bridge.NotificationWarning:
		p.yellow.Fprintf(p.out, "[!] %s\n", n.Message)
	default:
		p.red.Fprintf(p.out, "[X] %s\n", n.Message)
	}
	if n.Type == bridge.NotificationWarning || n.Type == bridge.NotificationError {
		if hint := components.DefaultMatcher().Hint(n.Message); hint != "" {
			p.muted.Fprintf(p.out, "    Hint: %s\n", hint)
		}
	}
}

// Export prints where an export landed.
func (p *Printer) Export(rec bridge.ExportRecord) {
	p.muted.Fprintf(p.out, "    %s, %d cells, %d bytes: %s\n", rec.Format.Label(), rec.Cells, rec.Bytes, rec.Path)
}

// Info prints a plain line.
func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintf(p.out, format+"\n", a...)
}

// Error prints a local failure.
func (p *Printer) Error(err error) {
	p.red.Fprintf(p.out, "[X] %v\n", err)
}

// Board prints the active sub-grid as a table. Rows and columns are
// numbered from 1 the way the set command addresses them; goals over the
// Lockout-Live limit are marked with '!'.
func (p *Printer) Board(b *grid.Board, size grid.Size) error {
	n := int(size)
	table := tablewriter.NewWriter(p.out)

	header := make([]string, 0, n+1)
	header = append(header, "")
	for col := 1; col <= n; col++ {
		header = append(header, strconv.Itoa(col))
	}
	table.Header(header)

	cells := grid.ActiveCells(b, size)
	for row := 0; row < n; row++ {
		line := make([]string, 0, n+1)
		line = append(line, strconv.Itoa(row+1))
		for _, text := range cells[row*n : (row+1)*n] {
			line = append(line, cellText(text))
		}
		if err := table.Append(line); err != nil {
			return fmt.Errorf("render board: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render board: %w", err)
	}
	return nil
}

func cellText(text string) string {
	if text == "" {
		return components.EmptyCellText
	}
	mark := ""
	if export.GoalTooLong(text) {
		mark = "!"
	}
	return util.TruncateWidth(text, maxCellWidth) + mark
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/util"
)

// ErrExportDirMissing is returned when the export directory does not exist.
// The engine never creates it.
var ErrExportDirMissing = errors.New("export directory does not exist")

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders one document format.
type Exporter interface {
	// Export converts a document to the target format and returns the content.
	Export(doc any) ([]byte, error)

	// Format returns the format written by this exporter.
	Format() bridge.ExportFormat

	// FileExtension returns the file extension including the dot.
	FileExtension() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files are written. It must exist.
	OutputDir string

	// FilePerm is the permission of written files.
	// Default: 0644
	FilePerm os.FileMode

	// Now returns the time used in filenames. Default: time.Now
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir: "export",
		FilePerm:  0644,
		Now:       time.Now,
	}
}

// Result describes a written export.
type Result struct {
	Format    bridge.ExportFormat
	Filename  string
	Path      string
	Document  []byte
	CreatedAt time.Time
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine validates, renders and writes board exports.
type Engine struct {
	opts   *Options
	logger *slog.Logger
}

// NewEngine creates an engine. Nil options and logger use defaults.
func NewEngine(opts *Options, logger *slog.Logger) *Engine {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.FilePerm == 0 {
		opts.FilePerm = 0644
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{opts: opts, logger: logger}
}

// OutputDir returns the directory files are written to.
func (e *Engine) OutputDir() string {
	return e.opts.OutputDir
}

// BingoSync writes a BingoSync board.
func (e *Engine) BingoSync(cards []bridge.BingoSyncCard) (*Result, error) {
	return e.ExportToFile(cards, NewBingoSyncExporter())
}

// LockoutLive validates and writes a Lockout-Live board. A board with an
// over-long goal returns a *ValidationError and nothing is written.
func (e *Engine) LockoutLive(board bridge.LockoutLiveBoard) (*Result, error) {
	if err := ValidateLockoutLive(board); err != nil {
		return nil, err
	}
	return e.ExportToFile(board, NewLockoutLiveExporter())
}

// ExportToFile renders doc with exporter and writes it into the output
// directory. On error no filename is reported.
func (e *Engine) ExportToFile(doc any, exporter Exporter) (*Result, error) {
	content, err := exporter.Export(doc)
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	if err := checkDir(e.opts.OutputDir); err != nil {
		return nil, err
	}

	now := e.opts.Now()
	filename := Filename(now, exporter.Format(), exporter.FileExtension())
	outputPath := filepath.Join(e.opts.OutputDir, filename)

	if err := util.AtomicWriteFile(outputPath, content, e.opts.FilePerm); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	e.logger.Info("export written",
		"format", string(exporter.Format()),
		"path", outputPath,
		"bytes", len(content))

	return &Result{
		Format:    exporter.Format(),
		Filename:  filename,
		Path:      outputPath,
		Document:  content,
		CreatedAt: now,
	}, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// TimestampLayout is the local-time prefix of every export filename.
const TimestampLayout = "2006-01-02_15-04-05"

// Filename returns "<timestamp>_<format><ext>".
func Filename(t time.Time, format bridge.ExportFormat, ext string) string {
	return fmt.Sprintf("%s_%s%s", t.Format(TimestampLayout), format, ext)
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrExportDirMissing, dir)
	}
	if err != nil {
		return fmt.Errorf("stat export directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("export path %s is not a directory", dir)
	}
	return nil
}

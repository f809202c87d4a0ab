// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// LineReader supplies command lines. Prompt returns io.EOF when input ends
// or the user aborts.
type LineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// =============================================================================
// LINER INPUT
// =============================================================================

// LinerReader reads lines with editing, history and tab completion.
type LinerReader struct {
	line        *liner.State
	historyFile string
}

// NewLinerReader creates a reader whose history persists in historyFile.
// An empty historyFile keeps history in memory only.
func NewLinerReader(historyFile string) *LinerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	r := &LinerReader{line: line, historyFile: historyFile}
	r.loadHistory()
	return r
}

func (r *LinerReader) loadHistory() {
	if r.historyFile == "" {
		return
	}
	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = r.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads one line and adds it to history.
func (r *LinerReader) Prompt(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and restores the terminal.
func (r *LinerReader) Close() error {
	if r.historyFile != "" {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = r.line.WriteHistory(f)
			f.Close()
		}
	}
	return r.line.Close()
}

func complete(line string) []string {
	var out []string
	for _, name := range commandNames() {
		if strings.HasPrefix(name, line) {
			out = append(out, name)
		}
	}
	if rest, ok := strings.CutPrefix(line, "export "); ok {
		for _, f := range []string{"bingosync", "lockout"} {
			if strings.HasPrefix(f, rest) {
				out = append(out, "export "+f)
			}
		}
	}
	return out
}

// =============================================================================
// PLAIN INPUT
// =============================================================================

// ScannerReader reads lines from a non-interactive source such as a pipe.
// The prompt is written to out when out is not nil.
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScannerReader creates a reader over in.
func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(in), out: out}
}

// Prompt returns the next line.
func (r *ScannerReader) Prompt(prompt string) (string, error) {
	if r.out != nil {
		fmt.Fprint(r.out, prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// Close is a no-op.
func (r *ScannerReader) Close() error {
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/grid"
)

// DefaultTimeout bounds the wait for the worker's reply to one request.
const DefaultTimeout = 30 * time.Second

// Prompt is shown before every command line.
const Prompt = "bingogen> "

var (
	// ErrWorkerStopped is returned when the worker closed its side of the
	// bridge.
	ErrWorkerStopped = errors.New("worker stopped")

	// ErrUnknownCommand is returned for input that names no command.
	ErrUnknownCommand = errors.New("unknown command")
)

// Options configures a Session. Backend and Frontend are required.
type Options struct {
	Backend  *bridge.BackendHandle
	Frontend *bridge.FrontendReceiver
	Size     grid.Size
	Out      io.Writer
	Color    bool
	Logger   *slog.Logger
	// Timeout bounds the wait for each reply. Default: DefaultTimeout.
	Timeout time.Duration
}

// Session is the shell's presentation actor. Like the TUI it owns the board
// and size, sends intents over the bridge and waits for the one
// notification that ends each request.
type Session struct {
	backend  *bridge.BackendHandle
	frontend *bridge.FrontendReceiver
	print    *Printer
	log      *slog.Logger
	timeout  time.Duration

	board grid.Board
	size  grid.Size
}

// New creates a session.
func New(opts Options) *Session {
	if opts.Backend == nil || opts.Frontend == nil {
		panic("shell: Backend and Frontend are required")
	}
	size := opts.Size
	if !size.Valid() {
		size = grid.DefaultSize
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Session{
		backend:  opts.Backend,
		frontend: opts.Frontend,
		print:    NewPrinter(out, opts.Color),
		log:      logger.With("component", "shell"),
		timeout:  timeout,
		size:     size,
	}
}

// Board returns a copy of the board.
func (s *Session) Board() grid.Board {
	return s.board
}

// Size returns the selected size.
func (s *Session) Size() grid.Size {
	return s.size
}

// Run reads commands from in until quit, end of input or ctx cancellation.
func (s *Session) Run(ctx context.Context, in LineReader) error {
	s.print.Info("bingogen shell. Type 'help' for commands.")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line, err := in.Prompt(Prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		quit, err := s.Execute(ctx, line)
		if errors.Is(err, ErrWorkerStopped) {
			s.print.Error(err)
			return err
		}
		if err != nil {
			s.print.Error(err)
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one command line. It reports whether the shell should exit.
func (s *Session) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name := strings.ToLower(fields[0])
	cmd, ok := commands[name]
	if !ok {
		return false, fmt.Errorf("%w %q (try 'help')", ErrUnknownCommand, fields[0])
	}
	if cmd.quit {
		return true, nil
	}
	return false, cmd.run(s, ctx, fields[1:])
}

// =============================================================================
// COMMANDS
// =============================================================================

type command struct {
	usage string
	help  string
	quit  bool
	run   func(s *Session, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":      {usage: "help", help: "list commands", run: (*Session).cmdHelp},
		"size":      {usage: "size [3-9]", help: "show or change the board size (clears the board)", run: (*Session).cmdSize},
		"set":       {usage: "set <row> <col> <goal>", help: "write a goal, rows and columns count from 1", run: (*Session).cmdSet},
		"unset":     {usage: "unset <row> <col>", help: "empty one cell", run: (*Session).cmdUnset},
		"clear":     {usage: "clear", help: "empty every cell", run: (*Session).cmdClear},
		"show":      {usage: "show", help: "print the board", run: (*Session).cmdShow},
		"randomize": {usage: "randomize", help: "fill the board from the goal pool", run: (*Session).cmdRandomize},
		"export":    {usage: "export bingosync|lockout", help: "write the board as JSON", run: (*Session).cmdExport},
		"quit":      {usage: "quit", help: "leave the shell", quit: true},
		"exit":      {usage: "exit", help: "leave the shell", quit: true},
	}
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Session) cmdHelp(_ context.Context, _ []string) error {
	for _, name := range commandNames() {
		c := commands[name]
		s.print.Info("  %-26s %s", c.usage, c.help)
	}
	return nil
}

func (s *Session) cmdSize(_ context.Context, args []string) error {
	if len(args) == 0 {
		s.print.Info("Board size: %s", s.size)
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("size: %q is not a number", args[0])
	}
	size, err := grid.ParseSize(n)
	if err != nil {
		return err
	}
	if size != s.size {
		s.board.Clear()
		s.size = size
	}
	s.print.Info("Board size: %s", s.size)
	return nil
}

// cell converts 1-based row and column arguments to backing coordinates.
func (s *Session) cell(args []string) (row, col int, err error) {
	if len(args) < 2 {
		return 0, 0, errors.New("row and column are required")
	}
	n := int(s.size)
	r, err1 := strconv.Atoi(args[0])
	c, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || r < 1 || r > n || c < 1 || c > n {
		return 0, 0, fmt.Errorf("row and column must be between 1 and %d", n)
	}
	origin := s.size.Origin()
	return origin + r - 1, origin + c - 1, nil
}

func (s *Session) cmdSet(_ context.Context, args []string) error {
	row, col, err := s.cell(args)
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}
	goal := strings.Join(args[2:], " ")
	if goal == "" {
		return errors.New("set: goal text is required (use unset to empty a cell)")
	}
	s.board.Set(row, col, goal)
	return nil
}

func (s *Session) cmdUnset(_ context.Context, args []string) error {
	row, col, err := s.cell(args)
	if err != nil {
		return fmt.Errorf("unset: %w", err)
	}
	s.board.Set(row, col, "")
	return nil
}

func (s *Session) cmdClear(_ context.Context, _ []string) error {
	s.board.Clear()
	return nil
}

func (s *Session) cmdShow(_ context.Context, _ []string) error {
	return s.print.Board(&s.board, s.size)
}

func (s *Session) cmdRandomize(ctx context.Context, _ []string) error {
	return s.request(ctx, bridge.RandomizeBoard{
		RequestID: bridge.NewRequestID(),
		Size:      int(s.size),
		Count:     s.size.Count(),
	})
}

func (s *Session) cmdExport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("export: choose bingosync or lockout")
	}
	var msg bridge.MessageToBackend
	switch strings.ToLower(args[0]) {
	case "bingosync", "bs":
		msg = bridge.CreateBingoSyncFile{
			RequestID: bridge.NewRequestID(),
			Cards:     grid.BingoSyncCards(&s.board, s.size),
		}
	case "lockout", "lockoutlive", "ll":
		msg = bridge.CreateLockoutLiveFile{
			RequestID: bridge.NewRequestID(),
			Board:     grid.LockoutLiveBoard(&s.board, s.size),
		}
	default:
		return fmt.Errorf("export: unknown format %q", args[0])
	}
	return s.request(ctx, msg)
}

// =============================================================================
// WORKER ROUND TRIP
// =============================================================================

// request sends msg and prints replies until the notification that ends it.
func (s *Session) request(ctx context.Context, msg bridge.MessageToBackend) error {
	s.log.Debug("sending request", "request_id", msg.ID(), "type", fmt.Sprintf("%T", msg))
	s.backend.Send(msg)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	for {
		reply, err := s.frontend.Recv(ctx)
		if errors.Is(err, bridge.ErrClosed) {
			return ErrWorkerStopped
		}
		if err != nil {
			return fmt.Errorf("waiting for worker: %w", err)
		}
		if s.apply(reply) {
			return nil
		}
	}
}

// apply handles one reply and reports whether it ended the request.
func (s *Session) apply(msg bridge.MessageToFrontend) bool {
	switch m := msg.(type) {
	case bridge.AddNotification:
		s.print.Notification(m)
		return true
	case bridge.ExportFinished:
		s.print.Export(m.Record)
	case bridge.FillBoard:
		if grid.Size(m.Size) != s.size {
			s.log.Debug("dropping fill for old size", "request_id", m.RequestID, "size", m.Size)
			return false
		}
		s.board.Fill(s.size, m.Goals)
	}
	return false
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/config"
	"github.com/jeranaias/bingogen/internal/grid"
	"github.com/jeranaias/bingogen/internal/ui/components"
	"github.com/jeranaias/bingogen/internal/ui/styles"
)

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// Deps wires the model to the rest of the program. Backend and Frontend are
// required.
type Deps struct {
	Config   *config.Config
	Theme    *styles.Theme
	Backend  *bridge.BackendHandle
	Frontend *bridge.FrontendReceiver
	History  HistoryLister // nil when the ledger is disabled
	// PoolCount is the goal pool size at startup, -1 without a pool.
	PoolCount int
	Logger    *slog.Logger
	// Clipboard writes text to the system clipboard. Default:
	// clipboard.WriteAll.
	Clipboard func(string) error
	// Now is the clock for toasts. Default: time.Now.
	Now func() time.Time
}

// Model is the root Bubble Tea model. It owns the board and is the only
// sender on the backend handle.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg      *config.Config
	theme    *styles.Theme
	keys     KeyMap
	backend  *bridge.BackendHandle
	frontend *bridge.FrontendReceiver
	history  HistoryLister
	limiter  *rate.Limiter
	copy     func(string) error
	log      *slog.Logger

	// Dimensions
	width  int
	height int

	// Board state
	board   grid.Board
	size    grid.Size
	editing bool
	editor  textinput.Model

	// Components
	page      components.Page
	boardView *components.BoardView
	header    *components.Header
	statusBar *components.StatusBar
	toasts    *components.ToastManager
	pending   components.PendingIndicator
	ticking   bool

	// Exports page
	exports     []bridge.ExportRecord
	lastDoc     []byte
	exportsView viewport.Model

	// Help
	help      help.Model
	showHelp  bool
	helpCache string
	helpWidth int

	bridgeClosed bool
	quitting     bool
}

// New creates the root model. It panics when Backend or Frontend is nil.
func New(deps Deps) *Model {
	if deps.Backend == nil || deps.Frontend == nil {
		panic("app: Backend and Frontend are required")
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := deps.Theme
	if theme == nil {
		theme = styles.NewTheme(cfg.UI.Theme)
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	copyFn := deps.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	toasts := components.NewToastManager(time.Duration(cfg.UI.ToastSeconds) * time.Second)
	if deps.Now != nil {
		toasts.SetClock(deps.Now)
	}

	editor := textinput.New()
	editor.Prompt = ""
	editor.Placeholder = "goal"

	size := cfg.BoardSize()
	boardView := components.NewBoardView(theme)
	boardView.SetSize(size)

	header := components.NewHeader(theme)
	header.Size = size
	header.PoolCount = deps.PoolCount

	statusBar := components.NewStatusBar()
	statusBar.Size = size
	statusBar.ExportDir = cfg.ExportDir()

	ctx, cancel := context.WithCancel(context.Background())

	return &Model{
		ctx:         ctx,
		cancel:      cancel,
		cfg:         cfg,
		theme:       theme,
		keys:        DefaultKeyMap(),
		backend:     deps.Backend,
		frontend:    deps.Frontend,
		history:     deps.History,
		limiter:     newLimiter(cfg.UI.ExportsPerSecond),
		copy:        copyFn,
		log:         logger.With("component", "tui"),
		size:        size,
		editor:      editor,
		page:        components.PageGenerator,
		boardView:   boardView,
		header:      header,
		statusBar:   statusBar,
		toasts:      toasts,
		pending:     components.NewPendingIndicator(),
		exportsView: viewport.New(80, 10),
		help:        help.New(),
	}
}

// newLimiter throttles requests to perSecond with a matching burst. Zero or
// less disables throttling.
func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Init drains messages the worker queued before the program loop started,
// then starts the blocking receive.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for {
		msg, ok := m.frontend.TryRecv()
		if !ok {
			break
		}
		cmds = append(cmds, m.applyFrontend(msg))
	}
	cmds = append(cmds, waitForFrontend(m.ctx, m.frontend))
	if m.history != nil {
		cmds = append(cmds, loadHistory(m.ctx, m.history, m.cfg.History.Limit))
	}
	return tea.Batch(cmds...)
}

// Shutdown stops the pending receive. Call after the program exits.
func (m *Model) Shutdown() {
	m.cancel()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Board returns a copy of the board.
func (m *Model) Board() grid.Board {
	return m.board
}

// Size returns the selected board size.
func (m *Model) Size() grid.Size {
	return m.size
}

// Page returns the visible page.
func (m *Model) Page() components.Page {
	return m.page
}

// Editing reports whether a cell editor is open.
func (m *Model) Editing() bool {
	return m.editing
}

// Toasts returns the visible toasts, newest first.
func (m *Model) Toasts() []components.Toast {
	return m.toasts.Toasts()
}

// Exports returns the known export records, newest first.
func (m *Model) Exports() []bridge.ExportRecord {
	return append([]bridge.ExportRecord(nil), m.exports...)
}

// Pending returns the number of requests awaiting a notification.
func (m *Model) Pending() int {
	return m.pending.Len()
}

// ShowingHelp reports whether the help overlay is open.
func (m *Model) ShowingHelp() bool {
	return m.showHelp
}

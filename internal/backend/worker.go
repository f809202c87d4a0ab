// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"

	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/export"
	"github.com/jeranaias/bingogen/internal/goals"
	"github.com/jeranaias/bingogen/internal/grid"
)

// Recorder appends written exports to a ledger.
type Recorder interface {
	Record(ctx context.Context, rec bridge.ExportRecord) (bridge.ExportRecord, error)
}

// Deps are the collaborators owned by the worker. Engine and Frontend are
// required; the rest may be nil.
type Deps struct {
	Engine   *export.Engine
	Frontend *bridge.FrontendHandle
	Pool     *goals.Pool
	Ledger   Recorder
	Logger   *slog.Logger
	Rand     *rand.Rand
}

// =============================================================================
// WORKER LIFECYCLE
// =============================================================================

// Worker is the backend actor. It handles one request at a time in arrival
// order and reports every outcome through Frontend.
type Worker struct {
	deps Deps
	recv *bridge.BackendReceiver
	log  *slog.Logger
	done chan struct{}
}

// Start launches the worker loop on its own OS thread. The worker takes
// ownership of deps.Frontend and closes it when the loop exits.
func Start(ctx context.Context, deps Deps, recv *bridge.BackendReceiver) *Worker {
	w := newWorker(deps, recv)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		w.Run(ctx)
	}()
	return w
}

func newWorker(deps Deps, recv *bridge.BackendReceiver) *Worker {
	if deps.Engine == nil || deps.Frontend == nil || recv == nil {
		panic("backend: Engine, Frontend and receiver are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		deps: deps,
		recv: recv,
		log:  logger.With("component", "backend"),
		done: make(chan struct{}),
	}
}

// Done is closed after the loop has exited.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Run processes requests until every BackendHandle is closed or ctx is
// cancelled. Start calls it; tests may call it directly.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)
	defer w.deps.Frontend.Close()

	w.log.Debug("backend started")
	for {
		msg, err := w.recv.Recv(ctx)
		if errors.Is(err, bridge.ErrClosed) {
			w.log.Info("backend receiver shut down")
			return
		}
		if err != nil {
			w.log.Info("backend stopped", "reason", err)
			return
		}
		w.handle(ctx, msg)
	}
}

// =============================================================================
// DISPATCH
// =============================================================================

func (w *Worker) handle(ctx context.Context, msg bridge.MessageToBackend) {
	log := w.log.With("request_id", msg.ID())

	switch m := msg.(type) {
	case bridge.CreateBingoSyncFile:
		log.Debug("create bingo sync file", "cards", len(m.Cards))
		res, err := w.deps.Engine.BingoSync(m.Cards)
		w.finishExport(ctx, log, m.RequestID, len(m.Cards), res, err)

	case bridge.CreateLockoutLiveFile:
		log.Debug("create lockout live file", "objectives", len(m.Board.Objectives))
		res, err := w.deps.Engine.LockoutLive(m.Board)
		w.finishExport(ctx, log, m.RequestID, len(m.Board.Objectives), res, err)

	case bridge.RandomizeBoard:
		w.randomize(log, m)

	default:
		log.Error("unknown request", "type", fmt.Sprintf("%T", msg))
		w.deps.Frontend.SendError(fmt.Sprintf("Error: 'unknown request %T'", msg))
	}
}

func (w *Worker) finishExport(ctx context.Context, log *slog.Logger, requestID string, cells int, res *export.Result, err error) {
	var verr *export.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Info("export rejected", "format", verr.Format, "position", verr.Position, "length", verr.Length)
		w.deps.Frontend.SendWarning(verr.Error())
		return
	case err != nil:
		log.Error("export failed", "error", err)
		w.deps.Frontend.SendError(fmt.Sprintf("Error: '%v'", err))
		return
	}

	rec := bridge.ExportRecord{
		ID:        bridge.NewRequestID(),
		RequestID: requestID,
		Format:    res.Format,
		Filename:  res.Filename,
		Path:      res.Path,
		Bytes:     len(res.Document),
		Cells:     cells,
		CreatedAt: res.CreatedAt,
		Document:  res.Document,
	}
	if w.deps.Ledger != nil {
		stored, err := w.deps.Ledger.Record(ctx, rec)
		if err != nil {
			log.Warn("history record failed", "error", err)
		} else {
			rec.ID = stored.ID
		}
	}

	w.deps.Frontend.Send(bridge.ExportFinished{Record: rec})
	w.deps.Frontend.SendSuccess(fmt.Sprintf("Created file '%s'", res.Filename))
}

func (w *Worker) randomize(log *slog.Logger, m bridge.RandomizeBoard) {
	size := grid.Size(m.Size)
	if !size.Valid() {
		w.deps.Frontend.SendWarning(fmt.Sprintf("Cannot randomize: %v", grid.ErrInvalidSize))
		return
	}
	if w.deps.Pool == nil {
		w.deps.Frontend.SendWarning("No goal pool configured (set goals.pool_path)")
		return
	}

	want := size.Count()
	if m.Count > 0 && m.Count < want {
		want = m.Count
	}

	drawn, err := w.deps.Pool.Draw(want, w.deps.Rand)
	if errors.Is(err, goals.ErrEmptyPool) {
		w.deps.Frontend.SendWarning("Goal pool is empty")
		return
	}
	if err != nil {
		log.Error("randomize failed", "error", err)
		w.deps.Frontend.SendError(fmt.Sprintf("Error: '%v'", err))
		return
	}

	if log.Enabled(context.Background(), slog.LevelDebug) {
		var preview grid.Board
		preview.Fill(size, drawn)
		log.Debug("randomized board", "size", size.String(), "goals", len(drawn),
			"board", grid.Describe(&preview, size))
	}
	w.deps.Frontend.Send(bridge.FillBoard{RequestID: m.RequestID, Size: int(size), Goals: drawn})
	if len(drawn) < want {
		w.deps.Frontend.SendWarning(fmt.Sprintf("Goal pool has only %d goals for %d cells", len(drawn), want))
		return
	}
	w.deps.Frontend.SendInfo(fmt.Sprintf("Randomized %s board", size))
}

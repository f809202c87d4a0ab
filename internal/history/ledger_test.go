// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/bingogen/internal/bridge"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	ledger, err := Open(filepath.Join(t.TempDir(), "db", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ledger.Close() })
	return ledger
}

func record(format bridge.ExportFormat, name string, at time.Time) bridge.ExportRecord {
	return bridge.ExportRecord{
		RequestID: "req-" + name,
		Format:    format,
		Filename:  name,
		Path:      "/exports/" + name,
		Bytes:     123,
		Cells:     25,
		CreatedAt: at,
		Document:  []byte("[]"),
	}
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	ledger := openTestLedger(t)
	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	first, err := ledger.Record(ctx, record(bridge.FormatBingoSync, "a.json", base))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	_, err = ledger.Record(ctx, record(bridge.FormatLockoutLive, "b.json", base.Add(time.Second)))
	require.NoError(t, err)

	recs, err := ledger.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "b.json", recs[0].Filename)
	assert.Equal(t, bridge.FormatLockoutLive, recs[0].Format)
	assert.Equal(t, "a.json", recs[1].Filename)
	assert.Equal(t, first.ID, recs[1].ID)
	assert.Equal(t, "req-a.json", recs[1].RequestID)
	assert.Equal(t, 25, recs[1].Cells)
	assert.Equal(t, 123, recs[1].Bytes)
	assert.True(t, base.Equal(recs[1].CreatedAt))
	assert.Nil(t, recs[1].Document)
}

func TestListLimit(t *testing.T) {
	ctx := context.Background()
	ledger := openTestLedger(t)
	base := time.Now()
	for i := 0; i < 5; i++ {
		_, err := ledger.Record(ctx, record(bridge.FormatBingoSync, "f", base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
	}

	recs, err := ledger.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	n, err := ledger.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	ledger := openTestLedger(t)
	base := time.Now()
	for i := 0; i < 4; i++ {
		_, err := ledger.Record(ctx, record(bridge.FormatBingoSync, "f", base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
	}

	removed, err := ledger.Prune(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	recs, err := ledger.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, base.Add(3*time.Second).Truncate(time.Microsecond).Equal(recs[0].CreatedAt))
}

func TestReopenKeepsRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	ledger, err := Open(path)
	require.NoError(t, err)
	_, err = ledger.Record(ctx, record(bridge.FormatBingoSync, "a.json", time.Now()))
	require.NoError(t, err)
	require.NoError(t, ledger.Close())

	ledger, err = Open(path)
	require.NoError(t, err)
	defer ledger.Close()
	n, err := ledger.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClosedLedger(t *testing.T) {
	ledger := openTestLedger(t)
	require.NoError(t, ledger.Close())
	require.NoError(t, ledger.Close())

	_, err := ledger.Record(context.Background(), record(bridge.FormatBingoSync, "a", time.Now()))
	assert.ErrorIs(t, err, ErrClosed)
	_, err = ledger.List(context.Background(), 1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

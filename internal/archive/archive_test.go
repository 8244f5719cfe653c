// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package archive

import (
	"context"
	"testing"
	"time"

	"github.com/keydesk/keydesk/client"
	"github.com/keydesk/keydesk/internal/backup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func snapshotOf(t *testing.T, keys int) *backup.Snapshot {
	t.Helper()
	ctx := context.Background()
	mem := client.NewMemoryClient()
	res, err := mem.CreateKeys(ctx, keys, 30)
	require.NoError(t, err)
	require.NoError(t, mem.Activate(res.Keys[0], "HWID-0001", "10.1.1.1"))
	snap, err := backup.Collect(ctx, mem, 20)
	require.NoError(t, err)
	return snap
}

func TestOpen_RejectsUnknownType(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x")
	assert.Error(t, err)
}

func TestSaveAndList(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	older := snapshotOf(t, 3)
	older.TakenAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := snapshotOf(t, 2)
	newer.TakenAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	newer.Source = "http://licenses.internal"

	require.NoError(t, s.Save(ctx, older))
	require.NoError(t, s.Save(ctx, newer))

	list, err := s.Snapshots(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID, "newest first")
	assert.Equal(t, older.ID, list[1].ID)
	assert.Equal(t, 2, list[0].KeyCount)
	assert.Equal(t, "http://licenses.internal", list[0].Source)
	assert.Equal(t, 3, list[1].TotalKeys)

	keys, err := s.Keys(ctx, older.ID)
	require.NoError(t, err)
	require.Len(t, keys, 3)
	var bound int
	for i, k := range keys {
		assert.Equal(t, older.Keys[i].KeyValue, k.KeyValue)
		if k.HasHWID() {
			bound++
			assert.Equal(t, "HWID-0001", k.HWIDValue())
			assert.True(t, k.FirstLoginAt.Valid)
		}
	}
	assert.Equal(t, 1, bound)

	logs, err := s.Logs(ctx, older.ID)
	require.NoError(t, err)
	assert.Len(t, logs, len(older.Logs))
}

func TestSave_DuplicateSnapshotRollsBack(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	snap := snapshotOf(t, 2)

	require.NoError(t, s.Save(ctx, snap))
	require.Error(t, s.Save(ctx, snap))

	keys, err := s.Keys(ctx, snap.ID)
	require.NoError(t, err)
	assert.Len(t, keys, 2, "failed save left no extra rows")
}

func TestSave_LargeSnapshotIsChunked(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	snap := snapshotOf(t, insertChunk+25)

	require.NoError(t, s.Save(ctx, snap))
	keys, err := s.Keys(ctx, snap.ID)
	require.NoError(t, err)
	assert.Len(t, keys, insertChunk+25)
}

// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/keydesk/keydesk/client"
	"github.com/keydesk/keydesk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T, keys int) *client.MemoryClient {
	t.Helper()
	mem := client.NewMemoryClient()
	_, err := mem.CreateKeys(context.Background(), keys, 30)
	require.NoError(t, err)
	return mem
}

func TestCollect_CrawlsEveryPage(t *testing.T) {
	mem := seeded(t, 53)
	snap, err := Collect(context.Background(), mem, 10)
	require.NoError(t, err)

	assert.Len(t, snap.Keys, 53)
	assert.Equal(t, 53, snap.Stats.TotalKeys)
	assert.Len(t, snap.Logs, 1)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, FormatVersion, snap.Version)

	seen := map[string]bool{}
	for _, k := range snap.Keys {
		assert.False(t, seen[k.KeyValue], "duplicate key %s", k.KeyValue)
		seen[k.KeyValue] = true
	}

	// items keep page order
	want, err := mem.ListKeys(context.Background(), 1, 100)
	require.NoError(t, err)
	for i := range want.Items {
		assert.Equal(t, want.Items[i].KeyValue, snap.Keys[i].KeyValue)
	}
}

func TestCollect_FailureAborts(t *testing.T) {
	mem := seeded(t, 30)
	mock := client.NewMockClient(mem, client.MockClientOverwrites{
		ListLogs: func(context.Context, int, int) (model.Page[model.LogRecord], error) {
			return model.Page[model.LogRecord]{}, errors.New("boom")
		},
	})
	_, err := Collect(context.Background(), mock, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logs")
}

func TestCollect_RejectsAbsurdPageCount(t *testing.T) {
	mock := client.NewMockClient(seeded(t, 3), client.MockClientOverwrites{
		ListKeys: func(context.Context, int, int) (model.Page[model.KeyRecord], error) {
			return model.Page[model.KeyRecord]{CurrentPage: 1, Pages: 1 << 62}, nil
		},
	})
	_, err := Collect(context.Background(), mock, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keys")
	assert.Equal(t, 1, mock.CallCount("ListKeys"))
}

func TestCollect_RequestsEachPageOnce(t *testing.T) {
	mock := client.NewMockClient(seeded(t, 35), client.MockClientOverwrites{})
	_, err := Collect(context.Background(), mock, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, mock.CallCount("ListKeys"))
	assert.Equal(t, 1, mock.CallCount("ListLogs"))
	assert.Equal(t, 1, mock.CallCount("GetStats"))
}

func TestWriteRead_RoundTrip(t *testing.T) {
	snap, err := Collect(context.Background(), seeded(t, 5), 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, snap))
	got, err := Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, snap.ID, got.ID)
	assert.True(t, snap.TakenAt.Equal(got.TakenAt))
	assert.Equal(t, snap.Stats, got.Stats)
	require.Len(t, got.Keys, 5)
	keys := func(s *Snapshot) []string {
		var out []string
		for _, k := range s.Keys {
			out = append(out, k.KeyValue)
		}
		sort.Strings(out)
		return out
	}
	assert.Equal(t, keys(snap), keys(got))
	assert.True(t, snap.Keys[0].CreatedAt.Time.Equal(got.Keys[0].CreatedAt.Time))
}

func TestReadFile_RejectsGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not zstd")))
	assert.Error(t, err)
	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.zst"))
	assert.Error(t, err)
}

func TestWriteFile_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), NormalizeFileName("snap.json"))
	assert.Equal(t, ".zst", filepath.Ext(path))

	snap := &Snapshot{Version: FormatVersion, ID: "fixed", TakenAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, WriteFile(path, snap))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fixed", got.ID)
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "keydesk-backup-2026-10-16.json.zst", DefaultFileName(time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, "a.json.zst", NormalizeFileName("a.json"))
	assert.Equal(t, "a.zst", NormalizeFileName("a.zst"))
}

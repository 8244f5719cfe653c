// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"testing"
	"time"

	"github.com/keydesk/keydesk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_Lifecycle(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.SetClock(func() time.Time { return base })

	res, err := c.CreateKeys(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, res.Keys, 3)
	for _, k := range res.Keys {
		assert.True(t, model.IsKeyValue(k), "key %q", k)
	}

	page, err := c.ListKeys(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, res.Keys[2], page.Items[0].KeyValue, "newest first")

	kv := res.Keys[0]
	require.NoError(t, c.Activate(kv, "HWID-1", "10.0.0.1"))
	k, err := c.GetKey(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, "In use", k.Status)
	assert.Equal(t, "HWID-1", k.HWIDValue())

	_, err = c.PauseKey(ctx, kv)
	require.NoError(t, err)
	k, _ = c.GetKey(ctx, kv)
	assert.True(t, k.IsPaused)
	assert.Equal(t, model.StatusPaused, model.ClassifyStatus(k.Status))

	_, err = c.ResetHWID(ctx, kv)
	require.NoError(t, err)
	k, _ = c.GetKey(ctx, kv)
	assert.False(t, k.HasHWID())

	c.SetClock(func() time.Time { return base.AddDate(0, 0, 30) })
	require.NoError(t, c.Activate(res.Keys[1], "HWID-2", ""))
	c.SetClock(func() time.Time { return base.AddDate(0, 0, 60) })
	k, _ = c.GetKey(ctx, res.Keys[1])
	assert.Equal(t, "Expired", k.Status)

	stats, err := c.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalKeys)
	assert.Equal(t, 1, stats.UsedKeys)

	msg, err := c.DeleteAllKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3 key(s) deleted", msg)

	logs, err := c.ListLogs(ctx, 1, 50)
	require.NoError(t, err)
	require.NotEmpty(t, logs.Items)
	assert.Equal(t, "DELETE_ALL", logs.Items[0].Action, "newest first")
}

func TestMemoryClient_Errors(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()
	_, err := c.GetKey(ctx, "00000000")
	assert.True(t, IsNotFound(err))
	_, err = c.CreateKeys(ctx, 0, 30)
	assert.Error(t, err)
	_, err = c.CreateKeys(ctx, 1, 366)
	assert.Error(t, err)

	page, err := c.ListKeys(ctx, 5, 20)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Pages)
}

func TestMockClient_RecordsAndForwards(t *testing.T) {
	base := NewMemoryClient()
	m := NewMockClient(base, MockClientOverwrites{
		PauseKey: func(ctx context.Context, keyValue string) (string, error) {
			return "mocked " + keyValue, nil
		},
	})
	msg, err := m.PauseKey(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Equal(t, "mocked 12345678", msg)
	_, err = m.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"PauseKey", "GetStats"}, m.Calls())
	assert.Equal(t, 1, m.CallCount("GetStats"))
	assert.Panics(t, func() { _, _ = NewMockClient(nil, MockClientOverwrites{}).GetStats(context.Background()) })
}

// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"sync"

	"github.com/keydesk/keydesk/internal/model"
)

// MockClient forwards every call to an overwrite when set, else to BaseClient.
// It records the name of each call so tests can assert on traffic.
type MockClient struct {
	BaseClient Client
	Overwrites MockClientOverwrites

	mu    sync.Mutex
	calls []string
}

type MockClientOverwrites struct {
	Close          func(ctx context.Context) error
	GetStats       func(ctx context.Context) (model.Stats, error)
	ListKeys       func(ctx context.Context, page, perPage int) (model.Page[model.KeyRecord], error)
	GetKey         func(ctx context.Context, keyValue string) (model.KeyRecord, error)
	ListLogs       func(ctx context.Context, page, perPage int) (model.Page[model.LogRecord], error)
	CreateKeys     func(ctx context.Context, quantity, expirationDays int) (CreateKeysResult, error)
	PauseKey       func(ctx context.Context, keyValue string) (string, error)
	UnpauseKey     func(ctx context.Context, keyValue string) (string, error)
	ResetHWID      func(ctx context.Context, keyValue string) (string, error)
	DeleteKey      func(ctx context.Context, keyValue string) (string, error)
	PauseAllKeys   func(ctx context.Context) (string, error)
	UnpauseAllKeys func(ctx context.Context) (string, error)
	DeleteAllKeys  func(ctx context.Context) (string, error)
}

var _ Client = (*MockClient)(nil)

// client := NewMockClient(nil, MockClientOverwrites{ /* overwrite Client methods here... */ })
func NewMockClient(base Client, overwrites MockClientOverwrites) *MockClient {
	return &MockClient{
		BaseClient: base,
		Overwrites: overwrites,
	}
}

// Calls returns the method names invoked so far, in order.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times method was invoked.
func (m *MockClient) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (m *MockClient) record(method string) {
	m.mu.Lock()
	m.calls = append(m.calls, method)
	m.mu.Unlock()
}

// --- Client implementation ---

func (m *MockClient) Close(ctx context.Context) error {
	m.record("Close")
	if m.Overwrites.Close != nil {
		return m.Overwrites.Close(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.Close(ctx)
	}
	panic("MockClient.Close not implemented")
}
func (m *MockClient) GetStats(ctx context.Context) (model.Stats, error) {
	m.record("GetStats")
	if m.Overwrites.GetStats != nil {
		return m.Overwrites.GetStats(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.GetStats(ctx)
	}
	panic("MockClient.GetStats not implemented")
}
func (m *MockClient) ListKeys(ctx context.Context, page, perPage int) (model.Page[model.KeyRecord], error) {
	m.record("ListKeys")
	if m.Overwrites.ListKeys != nil {
		return m.Overwrites.ListKeys(ctx, page, perPage)
	} else if m.BaseClient != nil {
		return m.BaseClient.ListKeys(ctx, page, perPage)
	}
	panic("MockClient.ListKeys not implemented")
}
func (m *MockClient) GetKey(ctx context.Context, keyValue string) (model.KeyRecord, error) {
	m.record("GetKey")
	if m.Overwrites.GetKey != nil {
		return m.Overwrites.GetKey(ctx, keyValue)
	} else if m.BaseClient != nil {
		return m.BaseClient.GetKey(ctx, keyValue)
	}
	panic("MockClient.GetKey not implemented")
}
func (m *MockClient) ListLogs(ctx context.Context, page, perPage int) (model.Page[model.LogRecord], error) {
	m.record("ListLogs")
	if m.Overwrites.ListLogs != nil {
		return m.Overwrites.ListLogs(ctx, page, perPage)
	} else if m.BaseClient != nil {
		return m.BaseClient.ListLogs(ctx, page, perPage)
	}
	panic("MockClient.ListLogs not implemented")
}
func (m *MockClient) CreateKeys(ctx context.Context, quantity, expirationDays int) (CreateKeysResult, error) {
	m.record("CreateKeys")
	if m.Overwrites.CreateKeys != nil {
		return m.Overwrites.CreateKeys(ctx, quantity, expirationDays)
	} else if m.BaseClient != nil {
		return m.BaseClient.CreateKeys(ctx, quantity, expirationDays)
	}
	panic("MockClient.CreateKeys not implemented")
}
func (m *MockClient) PauseKey(ctx context.Context, keyValue string) (string, error) {
	m.record("PauseKey")
	if m.Overwrites.PauseKey != nil {
		return m.Overwrites.PauseKey(ctx, keyValue)
	} else if m.BaseClient != nil {
		return m.BaseClient.PauseKey(ctx, keyValue)
	}
	panic("MockClient.PauseKey not implemented")
}
func (m *MockClient) UnpauseKey(ctx context.Context, keyValue string) (string, error) {
	m.record("UnpauseKey")
	if m.Overwrites.UnpauseKey != nil {
		return m.Overwrites.UnpauseKey(ctx, keyValue)
	} else if m.BaseClient != nil {
		return m.BaseClient.UnpauseKey(ctx, keyValue)
	}
	panic("MockClient.UnpauseKey not implemented")
}
func (m *MockClient) ResetHWID(ctx context.Context, keyValue string) (string, error) {
	m.record("ResetHWID")
	if m.Overwrites.ResetHWID != nil {
		return m.Overwrites.ResetHWID(ctx, keyValue)
	} else if m.BaseClient != nil {
		return m.BaseClient.ResetHWID(ctx, keyValue)
	}
	panic("MockClient.ResetHWID not implemented")
}
func (m *MockClient) DeleteKey(ctx context.Context, keyValue string) (string, error) {
	m.record("DeleteKey")
	if m.Overwrites.DeleteKey != nil {
		return m.Overwrites.DeleteKey(ctx, keyValue)
	} else if m.BaseClient != nil {
		return m.BaseClient.DeleteKey(ctx, keyValue)
	}
	panic("MockClient.DeleteKey not implemented")
}
func (m *MockClient) PauseAllKeys(ctx context.Context) (string, error) {
	m.record("PauseAllKeys")
	if m.Overwrites.PauseAllKeys != nil {
		return m.Overwrites.PauseAllKeys(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.PauseAllKeys(ctx)
	}
	panic("MockClient.PauseAllKeys not implemented")
}
func (m *MockClient) UnpauseAllKeys(ctx context.Context) (string, error) {
	m.record("UnpauseAllKeys")
	if m.Overwrites.UnpauseAllKeys != nil {
		return m.Overwrites.UnpauseAllKeys(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.UnpauseAllKeys(ctx)
	}
	panic("MockClient.UnpauseAllKeys not implemented")
}
func (m *MockClient) DeleteAllKeys(ctx context.Context) (string, error) {
	m.record("DeleteAllKeys")
	if m.Overwrites.DeleteAllKeys != nil {
		return m.Overwrites.DeleteAllKeys(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.DeleteAllKeys(ctx)
	}
	panic("MockClient.DeleteAllKeys not implemented")
}

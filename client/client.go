// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"

	"github.com/keydesk/keydesk/internal/model"
)

// Client is one method per REST endpoint of the license backend.
type Client interface {
	// --- Lifecycle ---

	// Close releases idle connections held by the client.
	Close(ctx context.Context) error

	// --- Read ---

	GetStats(ctx context.Context) (model.Stats, error)

	ListKeys(ctx context.Context, page, perPage int) (model.Page[model.KeyRecord], error)

	GetKey(ctx context.Context, keyValue string) (model.KeyRecord, error)

	ListLogs(ctx context.Context, page, perPage int) (model.Page[model.LogRecord], error)

	// --- Key lifecycle ---

	CreateKeys(ctx context.Context, quantity, expirationDays int) (CreateKeysResult, error)

	PauseKey(ctx context.Context, keyValue string) (string, error)

	UnpauseKey(ctx context.Context, keyValue string) (string, error)

	ResetHWID(ctx context.Context, keyValue string) (string, error)

	DeleteKey(ctx context.Context, keyValue string) (string, error)

	// --- Bulk ---

	PauseAllKeys(ctx context.Context) (string, error)

	UnpauseAllKeys(ctx context.Context) (string, error)

	DeleteAllKeys(ctx context.Context) (string, error)
}

// CreateKeysResult is the response to a key creation request.
type CreateKeysResult struct {
	Message string   `json:"message"`
	Keys    []string `json:"keys"`
}

// DefaultPerPage is the page size the console requests.
const DefaultPerPage = 20

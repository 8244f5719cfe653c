// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package client is the HTTP client wrapper for the license backend's REST
// API. HTTPClient talks to a real backend, MemoryClient keeps an in-process
// key store for demos and UI work, and MockClient lets tests overwrite single
// calls.
package client

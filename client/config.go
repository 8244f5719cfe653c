// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"net/http"
	"time"
)

// Config holds everything needed to build an HTTPClient.
type Config struct {
	// BaseURL is the backend origin; "/api" is appended to it.
	BaseURL string
	// Token is sent as a bearer token when non-empty.
	Token string
	// Timeout bounds a whole request. Zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client
}

func NewDefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:5000",
	}
}

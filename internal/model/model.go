// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// package model holds the records the license backend hands to the console.
// Every entity is server-owned; the console only keeps transient copies of
// the page it is currently showing.
package model

import (
	"fmt"
	"strings"
)

// KeyRecord is a license key and its lifecycle metadata.
type KeyRecord struct {
	KeyValue       string    `json:"key_value"`
	Status         string    `json:"status"`
	HWID           *string   `json:"hwid"`
	CreatedAt      Timestamp `json:"created_at"`
	FirstLoginAt   Timestamp `json:"first_login_at"`
	ExpiresAt      Timestamp `json:"expires_at"`
	LoginCount     int       `json:"login_count"`
	ExpirationDays int       `json:"expiration_days"`
	IsPaused       bool      `json:"is_paused"`
}

// String returns the key value.
func (k KeyRecord) String() string {
	return k.KeyValue
}

// HasHWID reports whether a hardware identifier is bound to the key.
func (k KeyRecord) HasHWID() bool {
	return k.HWID != nil && *k.HWID != ""
}

// HWIDValue returns the bound hardware identifier or "".
func (k KeyRecord) HWIDValue() string {
	if k.HWID == nil {
		return ""
	}
	return *k.HWID
}

// LogRecord is one entry of the backend's audit trail.
type LogRecord struct {
	Timestamp Timestamp `json:"timestamp"`
	KeyValue  string    `json:"key_value,omitempty"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
}

// Page is one page of a server-side paginated list.
type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"current_page"`
	Pages       int `json:"pages"`
}

// Stats are the aggregate counters shown on the dashboard.
type Stats struct {
	TotalKeys  int `json:"total_keys"`
	ActiveKeys int `json:"active_keys"`
	UsedKeys   int `json:"used_keys"`
}

// StatusClass is the visual classification of a key status label.
type StatusClass string

const (
	StatusActive  StatusClass = "active"
	StatusUnused  StatusClass = "unused"
	StatusPaused  StatusClass = "paused"
	StatusExpired StatusClass = "expired"
)

// statusLabels maps the labels the backend is known to emit (Portuguese and
// English) to their class.
var statusLabels = map[string]StatusClass{
	"em uso":        StatusActive,
	"in use":        StatusActive,
	"in-use":        StatusActive,
	"active":        StatusActive,
	"não utilizada": StatusUnused,
	"disponível":    StatusUnused,
	"unused":        StatusUnused,
	"available":     StatusUnused,
	"pausada":       StatusPaused,
	"paused":        StatusPaused,
	"expirada":      StatusExpired,
	"expired":       StatusExpired,
}

// ClassifyStatus maps a server status label to its class. The match is
// case-insensitive and unknown labels fall back to StatusUnused.
func ClassifyStatus(label string) StatusClass {
	if c, ok := statusLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return c
	}
	return StatusUnused
}

// IsKeyValue reports whether s is a well-formed key value: exactly eight
// ASCII digits.
func IsKeyValue(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// KeyPath returns the URL path segment for a key, rejecting anything that is
// not a key value so it can never escape the key-scoped endpoints.
func KeyPath(keyValue string) (string, error) {
	if !IsKeyValue(keyValue) {
		return "", fmt.Errorf("invalid key value %q", keyValue)
	}
	return "/keys/" + keyValue, nil
}

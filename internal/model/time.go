// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/keydesk/keydesk/internal/logging"
)

// Timestamp is a nullable point in time as sent by the backend. The backend
// emits naive ISO-8601 values (no zone) which are interpreted as UTC.
type Timestamp struct {
	time.Time
	Valid bool
}

// NewTimestamp wraps t as a valid Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseTimestamp parses any of the accepted timestamp layouts. An empty
// string yields an invalid (null) Timestamp.
func ParseTimestamp(s string) (Timestamp, error) {
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// UnmarshalJSON accepts null, "" and the layouts known to ParseTimestamp.
// Other strings decode as null so one odd field does not fail a whole page.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		logging.Warnf("%v, treating as empty", err)
		*t = Timestamp{}
		return nil
	}
	*t = parsed
	return nil
}

// MarshalJSON writes null for invalid timestamps and RFC 3339 otherwise.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

// Ptr returns a pointer to the time, or nil when the timestamp is null.
func (t Timestamp) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// Format renders t with the given layout, or fallback when t is null.
func (t Timestamp) Format(layout, fallback string) string {
	if !t.Valid {
		return fallback
	}
	return t.Time.Local().Format(layout)
}

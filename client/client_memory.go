// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/keydesk/keydesk/internal/model"
)

// MemoryClient is a local, in-process stand-in for the backend. It backs the
// `--demo` mode of the console and UI tests; nothing is persisted.
type MemoryClient struct {
	mu   sync.Mutex
	now  func() time.Time
	rand func() int
	keys map[string]*memoryKey
	logs []model.LogRecord
	seq  int
}

type memoryKey struct {
	record  model.KeyRecord
	created int // insertion order, newest listed first
}

// *MemoryClient implements Client
var _ Client = (*MemoryClient)(nil)

// --- Lifecycle & Initialization ---

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		now:  time.Now,
		rand: func() int { return rand.IntN(100_000_000) },
		keys: map[string]*memoryKey{},
	}
}

// SetClock replaces the time source. Tests may set a fixed clock.
func (c *MemoryClient) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Activate simulates a first login from a device: it binds hwid and starts
// the expiration countdown.
func (c *MemoryClient) Activate(keyValue, hwid, ip string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	k, ok := c.keys[keyValue]
	if !ok {
		return &APIError{Status: 404, Message: "Key not found"}
	}
	now := c.now().UTC()
	if !k.record.FirstLoginAt.Valid {
		k.record.FirstLoginAt = model.NewTimestamp(now)
		k.record.ExpiresAt = model.NewTimestamp(now.AddDate(0, 0, k.record.ExpirationDays))
		h := hwid
		k.record.HWID = &h
	}
	k.record.LoginCount++
	c.logLocked(keyValue, "LOGIN", "hwid "+hwid, ip)
	return nil
}

func (c *MemoryClient) Close(ctx context.Context) error {
	return nil
}

// --- Read ---

func (c *MemoryClient) GetStats(ctx context.Context) (model.Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var s model.Stats
	for _, k := range c.keys {
		c.refreshStatusLocked(k)
		s.TotalKeys++
		if !k.record.IsPaused && model.ClassifyStatus(k.record.Status) != model.StatusExpired {
			s.ActiveKeys++
		}
		if k.record.FirstLoginAt.Valid {
			s.UsedKeys++
		}
	}
	return s, nil
}

func (c *MemoryClient) ListKeys(ctx context.Context, page, perPage int) (model.Page[model.KeyRecord], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ordered := make([]*memoryKey, 0, len(c.keys))
	for _, k := range c.keys {
		c.refreshStatusLocked(k)
		ordered = append(ordered, k)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].created > ordered[j].created })
	records := make([]model.KeyRecord, len(ordered))
	for i, k := range ordered {
		records[i] = k.record
	}
	return paginate(records, page, perPage), nil
}

func (c *MemoryClient) GetKey(ctx context.Context, keyValue string) (model.KeyRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k, ok := c.keys[keyValue]
	if !ok {
		return model.KeyRecord{}, &APIError{Status: 404, Message: "Key not found"}
	}
	c.refreshStatusLocked(k)
	return k.record, nil
}

func (c *MemoryClient) ListLogs(ctx context.Context, page, perPage int) (model.Page[model.LogRecord], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	newestFirst := make([]model.LogRecord, len(c.logs))
	for i, l := range c.logs {
		newestFirst[len(c.logs)-1-i] = l
	}
	return paginate(newestFirst, page, perPage), nil
}

// --- Key lifecycle ---

func (c *MemoryClient) CreateKeys(ctx context.Context, quantity, expirationDays int) (CreateKeysResult, error) {
	if quantity < 1 || quantity > 1000 {
		return CreateKeysResult{}, &APIError{Status: 400, Message: "Quantity must be between 1 and 1000"}
	}
	if expirationDays < 1 || expirationDays > 365 {
		return CreateKeysResult{}, &APIError{Status: 400, Message: "Expiration days must be between 1 and 365"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	created := make([]string, 0, quantity)
	for range quantity {
		kv := c.uniqueKeyLocked()
		c.seq++
		c.keys[kv] = &memoryKey{
			record: model.KeyRecord{
				KeyValue:       kv,
				Status:         "Unused",
				CreatedAt:      model.NewTimestamp(c.now().UTC()),
				ExpirationDays: expirationDays,
			},
			created: c.seq,
		}
		created = append(created, kv)
	}
	c.logLocked("", "CREATE_KEYS", fmt.Sprintf("%d key(s), %d day(s)", quantity, expirationDays), "")
	return CreateKeysResult{
		Message: fmt.Sprintf("%d key(s) created successfully", quantity),
		Keys:    created,
	}, nil
}

func (c *MemoryClient) PauseKey(ctx context.Context, keyValue string) (string, error) {
	return c.mutate(keyValue, "PAUSE", func(k *model.KeyRecord) { k.IsPaused = true }, "Key %s paused")
}

func (c *MemoryClient) UnpauseKey(ctx context.Context, keyValue string) (string, error) {
	return c.mutate(keyValue, "UNPAUSE", func(k *model.KeyRecord) { k.IsPaused = false }, "Key %s unpaused")
}

func (c *MemoryClient) ResetHWID(ctx context.Context, keyValue string) (string, error) {
	return c.mutate(keyValue, "RESET_HWID", func(k *model.KeyRecord) {
		k.HWID = nil
		k.FirstLoginAt = model.Timestamp{}
		k.ExpiresAt = model.Timestamp{}
	}, "HWID of key %s reset")
}

func (c *MemoryClient) DeleteKey(ctx context.Context, keyValue string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.keys[keyValue]; !ok {
		return "", &APIError{Status: 404, Message: "Key not found"}
	}
	delete(c.keys, keyValue)
	c.logLocked(keyValue, "DELETE", "", "")
	return fmt.Sprintf("Key %s deleted", keyValue), nil
}

// --- Bulk ---

func (c *MemoryClient) PauseAllKeys(ctx context.Context) (string, error) {
	return c.mutateAll("PAUSE_ALL", true, "%d key(s) paused")
}

func (c *MemoryClient) UnpauseAllKeys(ctx context.Context) (string, error) {
	return c.mutateAll("UNPAUSE_ALL", false, "%d key(s) unpaused")
}

func (c *MemoryClient) DeleteAllKeys(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.keys)
	if n == 0 {
		return "No keys to delete", nil
	}
	c.keys = map[string]*memoryKey{}
	c.logLocked("", "DELETE_ALL", fmt.Sprintf("%d key(s)", n), "")
	return fmt.Sprintf("%d key(s) deleted", n), nil
}

// --- helpers ---

func (c *MemoryClient) mutate(keyValue, action string, fn func(*model.KeyRecord), msgFmt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k, ok := c.keys[keyValue]
	if !ok {
		return "", &APIError{Status: 404, Message: "Key not found"}
	}
	fn(&k.record)
	c.refreshStatusLocked(k)
	c.logLocked(keyValue, action, "", "")
	return fmt.Sprintf(msgFmt, keyValue), nil
}

func (c *MemoryClient) mutateAll(action string, paused bool, msgFmt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range c.keys {
		k.record.IsPaused = paused
		c.refreshStatusLocked(k)
	}
	c.logLocked("", action, "", "")
	return fmt.Sprintf(msgFmt, len(c.keys)), nil
}

func (c *MemoryClient) refreshStatusLocked(k *memoryKey) {
	r := &k.record
	switch {
	case r.IsPaused:
		r.Status = "Paused"
	case r.ExpiresAt.Valid && c.now().After(r.ExpiresAt.Time):
		r.Status = "Expired"
	case r.FirstLoginAt.Valid:
		r.Status = "In use"
	default:
		r.Status = "Unused"
	}
}

func (c *MemoryClient) uniqueKeyLocked() string {
	for {
		kv := fmt.Sprintf("%08d", c.rand()%100_000_000)
		if _, taken := c.keys[kv]; !taken {
			return kv
		}
	}
}

func (c *MemoryClient) logLocked(keyValue, action, details, ip string) {
	c.logs = append(c.logs, model.LogRecord{
		Timestamp: model.NewTimestamp(c.now().UTC()),
		KeyValue:  keyValue,
		Action:    action,
		Details:   details,
		IPAddress: ip,
	})
}

// paginate slices items the way the backend does: 1-based pages, at least
// one page even when empty, out-of-range pages return no items.
func paginate[T any](items []T, page, perPage int) model.Page[T] {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}
	pages := (len(items) + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	start := (page - 1) * perPage
	out := []T{}
	if start < len(items) {
		end := min(start+perPage, len(items))
		out = append(out, items[start:end]...)
	}
	return model.Page[T]{Items: out, CurrentPage: page, Pages: pages}
}

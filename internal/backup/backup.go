// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup takes a full snapshot of the backend (stats, every key and
// every log entry) and stores it as Zstandard-compressed JSON.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/keydesk/keydesk/client"
	"github.com/keydesk/keydesk/internal/logging"
	"github.com/keydesk/keydesk/internal/model"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/errgroup"
)

// FormatVersion is written into every snapshot.
const FormatVersion = 1

// maxConcurrentPages bounds the page requests in flight per list.
const maxConcurrentPages = 4

// maxPages caps the page count accepted from the server for one list.
const maxPages = 100000

// Snapshot is a point-in-time copy of the backend's data.
type Snapshot struct {
	Version int               `json:"version"`
	ID      string            `json:"id"`
	TakenAt time.Time         `json:"taken_at"`
	Source  string            `json:"source,omitempty"`
	Stats   model.Stats       `json:"stats"`
	Keys    []model.KeyRecord `json:"keys"`
	Logs    []model.LogRecord `json:"logs"`
}

// Collect crawls every key and log page of c together with the stats.
// The lists are fetched concurrently; the first failure cancels the rest.
func Collect(ctx context.Context, c client.Client, perPage int) (*Snapshot, error) {
	if perPage < 1 {
		perPage = client.DefaultPerPage
	}
	snap := &Snapshot{Version: FormatVersion, ID: uuid.NewString(), TakenAt: time.Now().UTC()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := c.GetStats(ctx)
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		snap.Stats = s
		return nil
	})
	g.Go(func() error {
		keys, err := crawl(ctx, c.ListKeys, perPage)
		if err != nil {
			return fmt.Errorf("keys: %w", err)
		}
		snap.Keys = keys
		return nil
	})
	g.Go(func() error {
		logs, err := crawl(ctx, c.ListLogs, perPage)
		if err != nil {
			return fmt.Errorf("logs: %w", err)
		}
		snap.Logs = logs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collect snapshot: %w", err)
	}
	logging.Debugf("backup: collected %d keys, %d logs", len(snap.Keys), len(snap.Logs))
	return snap, nil
}

type pageFunc[T any] func(ctx context.Context, page, perPage int) (model.Page[T], error)

// crawl fetches page one to learn the page count, then the remaining pages
// in parallel, and returns the items in page order.
func crawl[T any](ctx context.Context, fetch pageFunc[T], perPage int) ([]T, error) {
	first, err := fetch(ctx, 1, perPage)
	if err != nil {
		return nil, fmt.Errorf("page 1: %w", err)
	}
	if first.Pages > maxPages {
		return nil, fmt.Errorf("server reports %d pages, limit is %d", first.Pages, maxPages)
	}
	pages := max(first.Pages, 1)
	results := make([][]T, pages)
	results[0] = first.Items

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)
	for p := 2; p <= pages; p++ {
		g.Go(func() error {
			pg, err := fetch(ctx, p, perPage)
			if err != nil {
				return fmt.Errorf("page %d: %w", p, err)
			}
			results[p-1] = pg.Items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]T, 0, len(first.Items)*pages)
	for _, items := range results {
		all = append(all, items...)
	}
	return all, nil
}

// DefaultFileName returns the file name used when none is given.
func DefaultFileName(now time.Time) string {
	return fmt.Sprintf("keydesk-backup-%s.json.zst", now.Format("2006-01-02"))
}

// NormalizeFileName appends ".zst" when name lacks it.
func NormalizeFileName(name string) string {
	if !strings.HasSuffix(name, ".zst") {
		return name + ".zst"
	}
	return name
}

// Write encodes snap as indented JSON through a zstd encoder.
func Write(w io.Writer, snap *Snapshot) error {
	zstdWriter, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}

	encoder := json.NewEncoder(zstdWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snap); err != nil {
		_ = zstdWriter.Close()
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	return zstdWriter.Close()
}

// Read decodes a snapshot written by Write.
func Read(r io.Reader) (*Snapshot, error) {
	zstdReader, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zstdReader.Close()

	var snap Snapshot
	if err := json.NewDecoder(zstdReader).Decode(&snap); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	if snap.Version > FormatVersion {
		return nil, fmt.Errorf("unsupported backup version %d", snap.Version)
	}
	return &snap, nil
}

// WriteFile writes snap to filename.
func WriteFile(filename string, snap *Snapshot) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	if err := Write(file, snap); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReadFile reads a snapshot from filename.
func ReadFile(filename string) (*Snapshot, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Read(file)
}

// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"context"
	"time"

	"github.com/keydesk/keydesk/internal/logging"
)

// DefaultStatsInterval is the period of the background stats refresh.
const DefaultStatsInterval = 30 * time.Second

// LoadStats refreshes the dashboard counters. Failures are logged, never
// toasted, so a flaky connection does not flood the operator.
func (c *Console) LoadStats(ctx context.Context) error {
	s, err := c.client.GetStats(ctx)
	if err != nil {
		logging.Warnf("load stats: %v", err)
		return err
	}
	c.update(func(sc *Screen) { sc.Stats = s })
	return nil
}

// StartStatsRefresh reloads the stats every interval until ctx ends.
// onTick, if set, runs after each refresh.
func (c *Console) StartStatsRefresh(ctx context.Context, interval time.Duration, onTick func()) {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = c.LoadStats(ctx)
				if onTick != nil {
					onTick()
				}
			}
		}
	}()
}

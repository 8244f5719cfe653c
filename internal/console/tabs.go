// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"context"
	"fmt"
)

// SwitchTab activates tab name. Entering the keys or logs tab loads the
// first page of that list, not the page last viewed there.
func (c *Console) SwitchTab(ctx context.Context, name string) error {
	tab := Tab(name)
	switch tab {
	case TabDashboard, TabKeys, TabLogs:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTab, name)
	}
	c.update(func(s *Screen) { s.Tab = tab })

	var err error
	switch tab {
	case TabKeys:
		_, err = c.LoadKeys(ctx, 1)
	case TabLogs:
		_, err = c.LoadLogs(ctx, 1)
	}
	return err
}

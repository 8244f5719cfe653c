// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"context"

	"github.com/keydesk/keydesk/internal/view"
)

// LoadLogs fetches one page of the audit log.
func (c *Console) LoadLogs(ctx context.Context, page int) (ListState, error) {
	if page < 1 {
		page = 1
	}
	res, err := c.client.ListLogs(ctx, page, c.perPage)
	if err := c.fail("load logs", err); err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.screen.Logs, err
	}
	st := ListState{Page: res.CurrentPage, Pages: res.Pages}
	if st.Page < 1 {
		st.Page = page
	}
	c.update(func(s *Screen) {
		s.LogRows = view.LogRows(res.Items)
		s.LogPagination = view.Pagination(view.ActionLoadLogs, st.Page, st.Pages)
		s.Logs = st
	})
	return st, nil
}

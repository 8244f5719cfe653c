// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"context"
	"strings"

	"github.com/keydesk/keydesk/internal/view"
)

// LoadKeys fetches one page of keys and replaces the key table with it.
// Any filter is cleared from the rows; the filter text is kept.
func (c *Console) LoadKeys(ctx context.Context, page int) (ListState, error) {
	if page < 1 {
		page = 1
	}
	res, err := c.client.ListKeys(ctx, page, c.perPage)
	if err := c.fail("load keys", err); err != nil {
		return c.keysState(), err
	}
	st := ListState{Page: res.CurrentPage, Pages: res.Pages}
	if st.Page < 1 {
		st.Page = page
	}
	c.update(func(s *Screen) {
		s.KeyRecords = res.Items
		s.KeyRows = view.KeyRows(res.Items)
		s.KeyPagination = view.Pagination(view.ActionLoadKeys, st.Page, st.Pages)
		s.Keys = st
	})
	return st, nil
}

func (c *Console) keysState() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen.Keys
}

// FilterKeys hides every displayed key row whose text does not contain
// filter, ignoring case. No request is made. It returns the number of rows
// left visible.
func (c *Console) FilterKeys(filter string) int {
	needle := strings.ToLower(filter)
	visible := 0
	c.update(func(s *Screen) {
		s.Filter = filter
		rows := make([]*view.Node, len(s.KeyRows))
		for i, r := range s.KeyRows {
			cp := *r
			cp.Hidden = !strings.Contains(strings.ToLower(view.TextContent(r)), needle)
			if !cp.Hidden {
				visible++
			}
			rows[i] = &cp
		}
		s.KeyRows = rows
	})
	return visible
}

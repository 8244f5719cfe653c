// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package view

import (
	"strconv"

	"github.com/keydesk/keydesk/internal/i18n"
)

// PageWindow is the radius of numbered buttons around the current page.
const PageWindow = 2

// Pagination renders the page controls of a list whose loader is kind.
// It returns nil when there is at most one page.
func Pagination(kind ActionKind, current, pages int) *Node {
	if pages <= 1 {
		return nil
	}
	nav := el(TagNav, "pagination")
	if current > 1 {
		nav.Children = append(nav.Children, button("prev", i18n.T("view.pagination.previous"), "", Action{Kind: kind, Page: current - 1}))
	}
	for i := max(1, current-PageWindow); i <= min(pages, current+PageWindow); i++ {
		class := "page"
		if i == current {
			class = "page active"
		}
		nav.Children = append(nav.Children, button(class, strconv.Itoa(i), "", Action{Kind: kind, Page: i}))
	}
	if current < pages {
		nav.Children = append(nav.Children, button("next", i18n.T("view.pagination.next"), "", Action{Kind: kind, Page: current + 1}))
	}
	return nav
}

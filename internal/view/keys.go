// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package view

import (
	"fmt"
	"strconv"

	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/model"
)

// KeyColumns is the column count of the key table.
const KeyColumns = 8

// KeyColumnTitles returns the localized key table headers.
func KeyColumnTitles() []string {
	return []string{
		i18n.T("view.column.key"),
		i18n.T("view.column.status"),
		i18n.T("view.column.hwid"),
		i18n.T("view.column.created"),
		i18n.T("view.column.first_login"),
		i18n.T("view.column.expires"),
		i18n.T("view.column.logins"),
		i18n.T("view.column.actions"),
	}
}

// FormatDate renders ts in the locale's date layout, or "-" when unset.
func FormatDate(ts model.Timestamp) string {
	return ts.Format(i18n.T("view.date_layout"), "-")
}

// ShortHWID is the table form of a hardware id: its first eight characters
// followed by an ellipsis, or "-" when unset.
func ShortHWID(k model.KeyRecord) string {
	if !k.HasHWID() {
		return "-"
	}
	h := []rune(k.HWIDValue())
	if len(h) > 8 {
		h = h[:8]
	}
	return string(h) + "..."
}

// StatusBadge renders a status label with its status class.
func StatusBadge(label string) *Node {
	return text(TagBadge, "status-badge status-"+string(model.ClassifyStatus(label)), label)
}

// KeyRows renders the body of the key table. An empty list yields a single
// row spanning every column with the "no keys" message.
func KeyRows(keys []model.KeyRecord) []*Node {
	if len(keys) == 0 {
		cell := text(TagCell, "text-center", i18n.T("view.no_keys"))
		cell.Span = KeyColumns
		return []*Node{el(TagRow, "empty", cell)}
	}
	rows := make([]*Node, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, KeyRow(k))
	}
	return rows
}

// KeyRow renders one key.
func KeyRow(k model.KeyRecord) *Node {
	toggle := button("action-btn btn-warning", "", "pause", Action{Kind: ActionPauseKey, KeyValue: k.KeyValue})
	if k.IsPaused {
		toggle = button("action-btn btn-success", "", "play", Action{Kind: ActionUnpauseKey, KeyValue: k.KeyValue})
	}
	return el(TagRow, "key-row",
		el(TagCell, "key", text(TagCode, "", k.KeyValue)),
		el(TagCell, "status", StatusBadge(k.Status)),
		text(TagCell, "hwid", ShortHWID(k)),
		text(TagCell, "created", FormatDate(k.CreatedAt)),
		text(TagCell, "first-login", FormatDate(k.FirstLoginAt)),
		text(TagCell, "expires", FormatDate(k.ExpiresAt)),
		text(TagCell, "logins", strconv.Itoa(k.LoginCount)),
		el(TagCell, "actions",
			button("action-btn btn-primary", "", "eye", Action{Kind: ActionShowKey, KeyValue: k.KeyValue}),
			toggle,
			button("action-btn btn-secondary", "", "undo", Action{Kind: ActionResetHWID, KeyValue: k.KeyValue}),
			button("action-btn btn-danger", "", "trash", Action{Kind: ActionDeleteKey, KeyValue: k.KeyValue}),
		),
	)
}

func detail(label, value string) *Node {
	return el(TagField, "detail-item", text(TagText, "label", label), text(TagText, "value", value))
}

// KeyDetails renders the detail modal for k with the actions that apply to
// its current state.
func KeyDetails(k model.KeyRecord) *Node {
	hwid := k.HWIDValue()
	if !k.HasHWID() {
		hwid = i18n.T("view.details.not_set")
	}
	toggle := button("btn btn-warning", i18n.T("view.button.pause"), "pause", Action{Kind: ActionPauseKey, KeyValue: k.KeyValue})
	if k.IsPaused {
		toggle = button("btn btn-success", i18n.T("view.button.unpause"), "play", Action{Kind: ActionUnpauseKey, KeyValue: k.KeyValue})
	}
	return el(TagGroup, "key-details",
		text(TagHeading, "title", fmt.Sprintf(i18n.T("view.details.title"), k.KeyValue)),
		el(TagGroup, "detail-grid",
			el(TagField, "detail-item", text(TagText, "label", i18n.T("view.details.status")), StatusBadge(k.Status)),
			detail(i18n.T("view.details.hwid"), hwid),
			detail(i18n.T("view.details.created"), FormatDate(k.CreatedAt)),
			detail(i18n.T("view.details.first_login"), k.FirstLoginAt.Format(i18n.T("view.date_layout"), i18n.T("view.details.never"))),
			detail(i18n.T("view.details.expires"), k.ExpiresAt.Format(i18n.T("view.date_layout"), i18n.T("view.details.not_set"))),
			detail(i18n.T("view.details.logins"), strconv.Itoa(k.LoginCount)),
			detail(i18n.T("view.details.expiration_days"), fmt.Sprintf(i18n.T("view.details.days"), k.ExpirationDays)),
		),
		el(TagGroup, "modal-actions",
			toggle,
			button("btn btn-secondary", i18n.T("view.button.reset_hwid"), "undo", Action{Kind: ActionResetHWID, KeyValue: k.KeyValue}),
			button("btn btn-danger", i18n.T("view.button.delete"), "trash", Action{Kind: ActionDeleteKey, KeyValue: k.KeyValue}),
			button("btn btn-primary", i18n.T("view.button.close"), "", Action{Kind: ActionCloseModal}),
		),
	)
}

// CreatedKeys renders the modal shown after a successful creation: every new
// key as a code chip.
func CreatedKeys(keys []string) *Node {
	chips := make([]*Node, 0, len(keys))
	for _, k := range keys {
		chips = append(chips, text(TagCode, "key-chip", k))
	}
	copied := append([]string(nil), keys...)
	return el(TagGroup, "created-keys",
		text(TagHeading, "title", i18n.T("view.created.title")),
		text(TagText, "total", fmt.Sprintf(i18n.T("view.created.total"), len(keys))),
		el(TagGroup, "key-chips", append([]*Node{text(TagText, "label", i18n.T("view.created.keys"))}, chips...)...),
		el(TagGroup, "modal-actions",
			button("btn btn-secondary", i18n.T("view.button.copy"), "copy", Action{Kind: ActionCopyKeys, Keys: copied}),
			button("btn btn-primary", i18n.T("view.button.close"), "", Action{Kind: ActionCloseModal}),
		),
	)
}

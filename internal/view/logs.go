// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package view

import (
	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/model"
)

// LogColumns is the column count of the log table.
const LogColumns = 5

// LogColumnTitles returns the localized log table headers.
func LogColumnTitles() []string {
	return []string{
		i18n.T("view.column.timestamp"),
		i18n.T("view.column.key"),
		i18n.T("view.column.action"),
		i18n.T("view.column.details"),
		i18n.T("view.column.ip"),
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// LogRows renders the read-only log table body.
func LogRows(logs []model.LogRecord) []*Node {
	if len(logs) == 0 {
		cell := text(TagCell, "text-center", i18n.T("view.no_logs"))
		cell.Span = LogColumns
		return []*Node{el(TagRow, "empty", cell)}
	}
	rows := make([]*Node, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, el(TagRow, "log-row",
			text(TagCell, "timestamp", FormatDate(l.Timestamp)),
			el(TagCell, "key", text(TagCode, "", orDash(l.KeyValue))),
			el(TagCell, "action", text(TagBadge, "action-badge", l.Action)),
			text(TagCell, "details", orDash(l.Details)),
			text(TagCell, "ip", orDash(l.IPAddress)),
		))
	}
	return rows
}

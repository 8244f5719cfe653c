// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/keydesk/keydesk/internal/notify"
	"github.com/keydesk/keydesk/internal/view"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("81"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	toastStyles = map[notify.Kind]lipgloss.Style{
		notify.KindInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		notify.KindSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		notify.KindWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		notify.KindError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
	toastPrefixes = map[notify.Kind]string{
		notify.KindInfo:    "ℹ",
		notify.KindSuccess: "✔",
		notify.KindWarning: "⚠",
		notify.KindError:   "✖",
	}
)

func printToast(w io.Writer, t notify.Toast) {
	fmt.Fprintln(w, toastStyles[t.Kind].Render(toastPrefixes[t.Kind]+" "+t.Message))
}

// renderTable draws rows under headers with a rounded border.
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// rowCells flattens the first n cells of each rendered row.
func rowCells(rows []*view.Node, n int) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells := make([]string, 0, n)
		for i, c := range r.Children {
			if i >= n {
				break
			}
			cells = append(cells, view.TextContent(c))
		}
		out = append(out, cells)
	}
	return out
}

// isEmptyList reports whether rows is the single "nothing here" row.
func isEmptyList(rows []*view.Node) bool {
	return len(rows) == 1 && rows[0].HasClass("empty")
}

// printDetails writes the label/value pairs of a details view.
func printDetails(w io.Writer, n *view.Node) {
	if h := view.Find(n, "title"); h != nil {
		fmt.Fprintln(w, headerStyle.UnsetPadding().Render(h.Text))
	}
	view.Walk(n, func(x *view.Node) bool {
		if x.Tag != view.TagField || len(x.Children) < 2 {
			return true
		}
		fmt.Fprintf(w, "  %s: %s\n", labelStyle.Render(view.TextContent(x.Children[0])), view.TextContent(x.Children[1]))
		return false
	})
}

func printPage(w io.Writer, format string, page, pages int) {
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(format, page, max(1, pages))))
}

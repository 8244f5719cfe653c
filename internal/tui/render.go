// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/keydesk/keydesk/internal/console"
	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/model"
	"github.com/keydesk/keydesk/internal/view"
)

// maxToasts is how many toasts are drawn at once, newest last.
const maxToasts = 3

// cellText flattens a table cell. Table cells cannot carry styles, so the
// status gets a glyph and action buttons show their icons.
func cellText(cell *view.Node) string {
	switch {
	case cell.HasClass("status"):
		label := view.TextContent(cell)
		return statusGlyph(model.ClassifyStatus(label)) + " " + label
	case cell.HasClass("actions"):
		var icons []string
		for _, b := range view.Buttons(cell) {
			icons = append(icons, iconGlyphs[b.Icon])
		}
		return strings.Join(icons, " ")
	}
	return view.TextContent(cell)
}

// tableRows converts rendered rows into table rows of exactly cols cells.
// A spanning cell takes the first column and leaves the rest blank.
func tableRows(rows []*view.Node, cols int) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		row := make(table.Row, cols)
		for i, cell := range r.Children {
			if i >= cols {
				break
			}
			row[i] = cellText(cell)
		}
		out = append(out, row)
	}
	return out
}

func keyTableRows(rows []*view.Node) []table.Row {
	return tableRows(rows, view.KeyColumns)
}

func logTableRows(rows []*view.Node) []table.Row {
	return tableRows(rows, view.LogColumns)
}

// View draws the screen, with the confirm dialog or the modal on top.
func (m *consoleModel) View() string {
	toasts := m.renderToasts()
	area := m.height - lipgloss.Height(toasts)
	if toasts == "" {
		area = m.height
	}

	var body string
	switch {
	case m.confirm != nil:
		body = lipgloss.Place(m.width, area, lipgloss.Center, lipgloss.Center, m.confirm.dialog.Render())
	case m.screen.Modal.Open:
		body = lipgloss.Place(m.width, area, lipgloss.Center, lipgloss.Center, m.renderModal())
	default:
		body = m.renderMain()
	}
	if toasts == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, toasts)
}

// modalBounds returns the position and size of the modal box as placed by View.
func (m *consoleModel) modalBounds() (x, y, w, h int) {
	box := m.renderModal()
	w, h = lipgloss.Width(box), lipgloss.Height(box)
	area := m.height
	if toasts := m.renderToasts(); toasts != "" {
		area -= lipgloss.Height(toasts)
	}
	x = centerOffset(m.width, w)
	y = centerOffset(area, h)
	return x, y, w, h
}

// centerOffset mirrors how lipgloss.Place centers content.
func centerOffset(outer, inner int) int {
	gap := outer - inner
	if gap <= 0 {
		return 0
	}
	return int(math.Round(float64(gap) * 0.5))
}

func (m *consoleModel) renderToasts() string {
	active := m.console.Notifier().Active()
	if len(active) > maxToasts {
		active = active[len(active)-maxToasts:]
	}
	lines := make([]string, 0, len(active))
	for _, t := range active {
		lines = append(lines, toastKindStyle(t.Kind).Render(toastIcon(t.Kind)+" "+t.Message))
	}
	if len(lines) == 0 {
		return ""
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *consoleModel) renderMain() string {
	title := mainTitleStyle.Render(i18n.T("tui.title"))
	if m.busy > 0 {
		title = lipgloss.JoinHorizontal(lipgloss.Bottom, title, helpStyle.Render("  "+i18n.T("tui.busy")))
	}

	var tabs []string
	for i, tab := range console.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, i18n.T("tui.tab."+string(tab)))
		if tab == m.screen.Tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	var content, help, right string
	switch m.screen.Tab {
	case console.TabKeys:
		content = m.renderKeys()
		help = i18n.T("tui.help.keys")
		right = fmt.Sprintf(i18n.T("tui.footer.page"), m.screen.Keys.Page, max(1, m.screen.Keys.Pages))
	case console.TabLogs:
		content = m.renderLogs()
		help = i18n.T("tui.help.logs")
		right = fmt.Sprintf(i18n.T("tui.footer.page"), m.screen.Logs.Page, max(1, m.screen.Logs.Pages))
	default:
		content = m.renderDashboard()
		help = i18n.T("tui.help.dashboard")
	}
	if m.focus != focusNone {
		help = i18n.T("tui.help.input")
	}

	footer := helpStyle.Render(AlignFooter(help, right, max(0, m.width-4)))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
		content,
		"",
		footer,
	))
}

func statPane(label string, value int) string {
	return paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		paneTitleStyle.Render(label),
		specialStyle.Bold(true).Render(strconv.Itoa(value)),
	))
}

func (m *consoleModel) renderDashboard() string {
	s := m.screen.Stats
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statPane(i18n.T("tui.stats.total"), s.TotalKeys), " ",
		statPane(i18n.T("tui.stats.active"), s.ActiveKeys), " ",
		statPane(i18n.T("tui.stats.used"), s.UsedKeys),
	)

	create := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(i18n.T("tui.create.title")),
		lipgloss.JoinHorizontal(lipgloss.Center,
			i18n.T("tui.create.quantity")+" ", m.quantity.View(), "   ",
			i18n.T("tui.create.days")+" ", m.days.View(),
		),
		helpStyle.Render(i18n.T("tui.create.hint")),
	)

	search := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(i18n.T("tui.search.title")),
		m.search.View(),
		helpStyle.Render(i18n.T("tui.search.hint")),
	)

	bulk := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(i18n.T("tui.bulk.title")),
		helpStyle.Render(i18n.T("tui.bulk.hint")),
	)

	return lipgloss.JoinVertical(lipgloss.Left, stats, "", create, "", search, "", bulk)
}

func (m *consoleModel) renderKeys() string {
	filter := i18n.T("tui.filter.label") + " " + m.filter.View()
	if m.screen.Filter != "" {
		filter += helpStyle.Render(fmt.Sprintf("  "+i18n.T("tui.filter.count"), len(m.keyRows), len(m.screen.KeyRows)))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		filter,
		"",
		m.keysTable.View(),
		renderPagination(m.screen.KeyPagination),
	)
}

func (m *consoleModel) renderLogs() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.logsTable.View(),
		renderPagination(m.screen.LogPagination),
	)
}

func renderPagination(nav *view.Node) string {
	if nav == nil {
		return ""
	}
	var parts []string
	for _, b := range nav.Children {
		if b.HasClass("active") {
			parts = append(parts, activeButtonStyle.Render(b.Text))
		} else {
			parts = append(parts, buttonStyle.Render(b.Text))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *consoleModel) renderModal() string {
	var focused *view.Node
	if buttons := view.Buttons(m.screen.Modal.Content); m.modalCursor < len(buttons) {
		focused = buttons[m.modalCursor]
	}
	return dialogBoxStyle.Render(renderNode(m.screen.Modal.Content, focused))
}

// renderNode draws a modal's view tree. focused is the button under the cursor.
func renderNode(n *view.Node, focused *view.Node) string {
	if n == nil {
		return ""
	}
	switch n.Tag {
	case view.TagHeading:
		return titleStyle.Render(n.Text)
	case view.TagCode:
		return codeStyle.Render(n.Text)
	case view.TagBadge:
		class := model.ClassifyStatus(n.Text)
		return statusStyle(class).Render(statusGlyph(class) + " " + n.Text)
	case view.TagButton:
		label := n.Text
		if g := iconGlyphs[n.Icon]; g != "" {
			label = g + " " + label
		}
		if n == focused {
			return activeButtonStyle.Render(label)
		}
		return buttonStyle.Render(label)
	case view.TagText:
		if n.HasClass("label") {
			return paneTitleStyle.Render(n.Text)
		}
		return n.Text
	case view.TagField:
		parts := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			parts = append(parts, renderNode(c, focused))
		}
		return strings.Join(parts, ": ")
	}

	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		parts = append(parts, renderNode(c, focused))
	}
	switch {
	case n.HasClass("modal-actions"):
		return "\n" + lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	case n.HasClass("key-chips"):
		if len(parts) == 0 {
			return ""
		}
		chips := lipgloss.NewStyle().Width(58).Render(strings.Join(parts[1:], " "))
		return lipgloss.JoinVertical(lipgloss.Left, parts[0], chips)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

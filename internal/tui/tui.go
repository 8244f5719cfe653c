// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui is the interactive terminal front end of the console. It
// draws the console's screen with bubbletea and lipgloss and turns key
// presses and clicks into console operations.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/keydesk/keydesk/internal/console"
	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/logging"
	"github.com/keydesk/keydesk/internal/view"
)

// toastTick is how often the toast stack is redrawn so expired toasts go away.
const toastTick = 500 * time.Millisecond

type focusArea int

const (
	focusNone focusArea = iota
	focusQuantity
	focusDays
	focusSearch
	focusFilter
)

// screenChangedMsg is sent whenever the console's screen changes.
type screenChangedMsg struct{}

// opDoneMsg reports the end of a console operation run in a command.
type opDoneMsg struct {
	op  string
	err error
}

type toastTickMsg struct{}

// consoleModel is the root bubbletea model.
type consoleModel struct {
	ctx      context.Context
	console  *console.Console
	confirms *Confirmer
	copy     func(string) error

	screen  console.Screen
	width   int
	height  int
	busy    int
	focus   focusArea
	confirm *pendingConfirm

	quantity textinput.Model
	days     textinput.Model
	search   textinput.Model
	filter   textinput.Model

	keysTable   table.Model
	keyRows     []*view.Node
	logsTable   table.Model
	modalCursor int
	modalShown  *view.Node
}

func newInput(placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	ti.Prompt = "› "
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(paneStyle.GetBorderStyle()).
		BorderForeground(colorSubtle).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorWhite).
		Background(colorHighlight).
		Bold(false)
	t.SetStyles(s)
	return t
}

func keyColumns() []table.Column {
	titles := view.KeyColumnTitles()
	widths := []int{10, 16, 12, 17, 17, 17, 7, 10}
	cols := make([]table.Column, len(titles))
	for i, title := range titles {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

func logColumns() []table.Column {
	titles := view.LogColumnTitles()
	widths := []int{17, 10, 16, 40, 16}
	cols := make([]table.Column, len(titles))
	for i, title := range titles {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

// newConsoleModel builds the model over cons. confirms may be nil when the
// console never asks questions.
func newConsoleModel(ctx context.Context, cons *console.Console, confirms *Confirmer) *consoleModel {
	m := &consoleModel{
		ctx:       ctx,
		console:   cons,
		confirms:  confirms,
		copy:      clipboard.WriteAll,
		width:     100,
		height:    30,
		quantity:  newInput("1", 4, 6),
		days:      newInput("30", 3, 5),
		search:    newInput(i18n.T("tui.search.placeholder"), keyLength, 12),
		filter:    newInput(i18n.T("tui.filter.placeholder"), 64, 30),
		keysTable: newTable(keyColumns()),
		logsTable: newTable(logColumns()),
	}
	m.sync()
	m.quantity.SetValue(m.screen.Form.Quantity)
	m.days.SetValue(m.screen.Form.ExpirationDays)
	return m
}

// keyLength is the length of a key value.
const keyLength = 8

func tickToasts() tea.Cmd {
	return tea.Tick(toastTick, func(time.Time) tea.Msg { return toastTickMsg{} })
}

// Init loads the first screen and starts listening for questions.
func (m *consoleModel) Init() tea.Cmd {
	return tea.Batch(m.runOp("init", m.console.Init), m.confirms.wait(m.ctx), tickToasts())
}

// runOp runs fn off the UI goroutine and reports back with an opDoneMsg.
// Failures have already been toasted by the console.
func (m *consoleModel) runOp(op string, fn func(ctx context.Context) error) tea.Cmd {
	m.busy++
	ctx := m.ctx
	return func() tea.Msg {
		err := fn(ctx)
		if err != nil {
			logging.Debugf("tui: %s: %v", op, err)
		}
		return opDoneMsg{op: op, err: err}
	}
}

// sync pulls a fresh copy of the console's screen into the model.
func (m *consoleModel) sync() {
	m.screen = m.console.Snapshot()

	m.keyRows = m.screen.VisibleKeyRows()
	m.keysTable.SetRows(keyTableRows(m.keyRows))
	if c := m.keysTable.Cursor(); c >= len(m.keyRows) || c < 0 {
		m.keysTable.SetCursor(max(0, len(m.keyRows)-1))
	}
	m.logsTable.SetRows(logTableRows(m.screen.LogRows))
	if c := m.logsTable.Cursor(); c >= len(m.screen.LogRows) || c < 0 {
		m.logsTable.SetCursor(max(0, len(m.screen.LogRows)-1))
	}

	if m.screen.Modal.Content != m.modalShown {
		m.modalShown = m.screen.Modal.Content
		m.modalCursor = 0
	}
	if !m.filter.Focused() {
		m.filter.SetValue(m.screen.Filter)
	}
}

func (m *consoleModel) resize() {
	h := max(5, m.height-14)
	m.keysTable.SetHeight(h)
	m.logsTable.SetHeight(h)
}

// Update routes messages to the handler of whatever holds the focus:
// the confirm dialog, then the modal, then a text input, then the tab.
func (m *consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case screenChangedMsg:
		m.sync()
		return m, nil
	case opDoneMsg:
		if m.busy > 0 {
			m.busy--
		}
		m.sync()
		if msg.op == "create" && msg.err == nil {
			m.quantity.SetValue(m.screen.Form.Quantity)
			m.days.SetValue(m.screen.Form.ExpirationDays)
		}
		return m, nil
	case toastTickMsg:
		return m, tickToasts()
	case confirmRequestMsg:
		m.confirm = newPendingConfirm(msg.req)
		return m, nil
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.confirm != nil:
			return m.updateConfirm(msg)
		case m.screen.Modal.Open:
			return m.updateModal(msg)
		case m.focus != focusNone:
			return m.updateInput(msg)
		}
		return m.updateNav(msg)
	}

	if in := m.focusedInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *consoleModel) focusedInput() *textinput.Model {
	switch m.focus {
	case focusQuantity:
		return &m.quantity
	case focusDays:
		return &m.days
	case focusSearch:
		return &m.search
	case focusFilter:
		return &m.filter
	}
	return nil
}

func (m *consoleModel) setFocus(f focusArea) tea.Cmd {
	m.quantity.Blur()
	m.days.Blur()
	m.search.Blur()
	m.filter.Blur()
	m.focus = f
	if in := m.focusedInput(); in != nil {
		return in.Focus()
	}
	return nil
}

func (m *consoleModel) switchTab(tab console.Tab) tea.Cmd {
	return m.runOp("tab", func(ctx context.Context) error {
		return m.console.SwitchTab(ctx, string(tab))
	})
}

func (m *consoleModel) reload() tea.Cmd {
	switch m.screen.Tab {
	case console.TabKeys:
		page := m.screen.Keys.Page
		return m.runOp("reload", func(ctx context.Context) error {
			_, err := m.console.LoadKeys(ctx, page)
			return err
		})
	case console.TabLogs:
		page := m.screen.Logs.Page
		return m.runOp("reload", func(ctx context.Context) error {
			_, err := m.console.LoadLogs(ctx, page)
			return err
		})
	}
	return m.runOp("reload", m.console.LoadStats)
}

func (m *consoleModel) dispatch(a *view.Action) tea.Cmd {
	if a == nil {
		return nil
	}
	act := *a
	return m.runOp(string(act.Kind), func(ctx context.Context) error {
		return m.console.Dispatch(ctx, act)
	})
}

// pageButton returns the action of the "prev" or "next" control of nav.
func pageButton(nav *view.Node, class string) *view.Action {
	if b := view.Find(nav, class); b != nil {
		return b.Action
	}
	return nil
}

func (m *consoleModel) updateNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		return m, m.switchTab(console.TabDashboard)
	case "2":
		return m, m.switchTab(console.TabKeys)
	case "3":
		return m, m.switchTab(console.TabLogs)
	case "r":
		return m, m.reload()
	}

	switch m.screen.Tab {
	case console.TabDashboard:
		switch msg.String() {
		case "tab", "c":
			return m, m.setFocus(focusQuantity)
		case "s", "/":
			return m, m.setFocus(focusSearch)
		case "p":
			return m, m.runOp("pause-all", m.console.PauseAllKeys)
		case "u":
			return m, m.runOp("unpause-all", m.console.UnpauseAllKeys)
		case "D":
			return m, m.runOp("delete-all", m.console.DeleteAllKeys)
		}
	case console.TabKeys:
		switch msg.String() {
		case "/":
			return m, m.setFocus(focusFilter)
		case "esc":
			if m.screen.Filter != "" {
				m.console.FilterKeys("")
				m.sync()
			}
			return m, nil
		case "n", "right":
			return m, m.dispatch(pageButton(m.screen.KeyPagination, "next"))
		case "b", "left":
			return m, m.dispatch(pageButton(m.screen.KeyPagination, "prev"))
		case "enter", "p", "h", "d":
			return m, m.rowAction(msg.String())
		}
		var cmd tea.Cmd
		m.keysTable, cmd = m.keysTable.Update(msg)
		return m, cmd
	case console.TabLogs:
		switch msg.String() {
		case "n", "right":
			return m, m.dispatch(pageButton(m.screen.LogPagination, "next"))
		case "b", "left":
			return m, m.dispatch(pageButton(m.screen.LogPagination, "prev"))
		}
		var cmd tea.Cmd
		m.logsTable, cmd = m.logsTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

// rowAction presses one of the selected row's buttons. Rows carry them in
// the order show, pause/unpause, reset, delete.
func (m *consoleModel) rowAction(key string) tea.Cmd {
	i := m.keysTable.Cursor()
	if i < 0 || i >= len(m.keyRows) {
		return nil
	}
	buttons := view.Buttons(m.keyRows[i])
	idx := map[string]int{"enter": 0, "p": 1, "h": 2, "d": 3}[key]
	if idx >= len(buttons) {
		return nil
	}
	return m.dispatch(buttons[idx].Action)
}

func (m *consoleModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.setFocus(focusNone)
	case "tab", "shift+tab":
		if m.focus == focusFilter {
			return m, m.setFocus(focusNone)
		}
		order := []focusArea{focusQuantity, focusDays, focusSearch}
		step := 1
		if msg.String() == "shift+tab" {
			step = len(order) - 1
		}
		for i, f := range order {
			if f == m.focus {
				return m, m.setFocus(order[(i+step)%len(order)])
			}
		}
		return m, nil
	case "enter":
		switch m.focus {
		case focusQuantity, focusDays:
			q, d := m.quantity.Value(), m.days.Value()
			return m, m.runOp("create", func(ctx context.Context) error {
				_, err := m.console.CreateKeys(ctx, q, d)
				return err
			})
		case focusSearch:
			input := m.search.Value()
			return m, m.runOp("search", func(ctx context.Context) error {
				_, err := m.console.SearchKey(ctx, input)
				return err
			})
		case focusFilter:
			return m, m.setFocus(focusNone)
		}
	}

	in := m.focusedInput()
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	switch m.focus {
	case focusSearch:
		if clean := console.SanitizeSearch(in.Value()); clean != in.Value() {
			in.SetValue(clean)
		}
	case focusFilter:
		if in.Value() != before {
			m.console.FilterKeys(in.Value())
			m.sync()
		}
	}
	return m, cmd
}

func (m *consoleModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	buttons := view.Buttons(m.screen.Modal.Content)
	switch msg.String() {
	case "esc", "q":
		m.console.CloseModal()
		m.sync()
		return m, nil
	case "left", "shift+tab", "h":
		if len(buttons) > 0 {
			m.modalCursor = (m.modalCursor + len(buttons) - 1) % len(buttons)
		}
	case "right", "tab", "l":
		if len(buttons) > 0 {
			m.modalCursor = (m.modalCursor + 1) % len(buttons)
		}
	case "enter", " ":
		if m.modalCursor < len(buttons) {
			return m, m.press(buttons[m.modalCursor])
		}
	}
	return m, nil
}

// press activates a modal button. Copy and close act locally; every other
// action goes through the console.
func (m *consoleModel) press(b *view.Node) tea.Cmd {
	if b == nil || b.Action == nil {
		return nil
	}
	switch b.Action.Kind {
	case view.ActionCopyKeys:
		n := m.console.Notifier()
		if err := m.copy(strings.Join(b.Action.Keys, "\n")); err != nil {
			logging.Warnf("tui: clipboard: %v", err)
			n.Error(i18n.T("tui.copy_failed", err.Error()))
		} else {
			n.Success(i18n.T("tui.copied", len(b.Action.Keys)))
		}
		return nil
	case view.ActionCloseModal:
		m.console.CloseModal()
		m.sync()
		return nil
	}
	return m.dispatch(b.Action)
}

func (m *consoleModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.confirm.dialog
	switch msg.String() {
	case "left", "h":
		d.FocusLeft()
	case "right", "l":
		d.FocusRight()
	case "tab", "shift+tab":
		d.Toggle()
	case "y", "Y":
		return m.answer(true)
	case "n", "N", "esc":
		return m.answer(false)
	case "enter", " ":
		return m.answer(!d.IsFocusedRight())
	}
	return m, nil
}

func (m *consoleModel) answer(ok bool) (tea.Model, tea.Cmd) {
	m.confirm.answer(ok)
	m.confirm = nil
	return m, m.confirms.wait(m.ctx)
}

// updateMouse handles left clicks on the modal: outside its box is the
// backdrop and closes it.
func (m *consoleModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.confirm != nil || !m.screen.Modal.Open {
		return m, nil
	}
	x, y, w, h := m.modalBounds()
	target := console.ClickBackdrop
	if msg.X >= x && msg.X < x+w && msg.Y >= y && msg.Y < y+h {
		target = console.ClickContent
	}
	if m.console.ClickModal(target) {
		m.sync()
	}
	return m, nil
}

// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/keydesk/keydesk/client"
	"github.com/keydesk/keydesk/internal/console"
	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/notify"
)

func init() {
	i18n.Init("en")
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// newTestModel returns a model over an in-memory backend holding n keys,
// with the first screen already loaded.
func newTestModel(t *testing.T, n int, conf *Confirmer) (*consoleModel, *console.Console, *client.MemoryClient) {
	t.Helper()
	ctx := context.Background()
	mem := client.NewMemoryClient()
	if n > 0 {
		if _, err := mem.CreateKeys(ctx, n, 30); err != nil {
			t.Fatalf("seed keys: %v", err)
		}
	}
	opts := console.Options{}
	if conf != nil {
		opts.Confirmer = conf
	}
	cons := console.New(mem, opts)
	m := newConsoleModel(ctx, cons, conf)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(m.runOp("init", cons.Init)())
	return m, cons, mem
}

// press sends a key and runs the command it returns, if any, the way the
// program would.
func press(m *consoleModel, msg tea.KeyMsg) {
	_, cmd := m.Update(msg)
	if cmd == nil {
		return
	}
	if out := cmd(); out != nil {
		if _, ok := out.(opDoneMsg); ok {
			m.Update(out)
		}
	}
}

func TestInit_LoadsStatsAndFirstKeyPage(t *testing.T) {
	m, _, _ := newTestModel(t, 3, nil)
	if m.busy != 0 {
		t.Fatalf("expected no operation in flight, got %d", m.busy)
	}
	if got := m.screen.Stats.TotalKeys; got != 3 {
		t.Fatalf("expected 3 keys in stats, got %d", got)
	}
	if got := len(m.keysTable.Rows()); got != 3 {
		t.Fatalf("expected 3 table rows, got %d", got)
	}
	for _, row := range m.keysTable.Rows() {
		if len(row) != 8 {
			t.Fatalf("expected 8 cells per row, got %d", len(row))
		}
	}
}

func TestEmptyKeyList_RendersSingleMessageRow(t *testing.T) {
	m, _, _ := newTestModel(t, 0, nil)
	rows := m.keysTable.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0][0] != "No keys found" {
		t.Fatalf("unexpected message %q", rows[0][0])
	}
}

func TestNumberKeys_SwitchTabs(t *testing.T) {
	m, _, _ := newTestModel(t, 2, nil)
	press(m, runes("2"))
	if m.screen.Tab != console.TabKeys {
		t.Fatalf("expected keys tab, got %s", m.screen.Tab)
	}
	press(m, runes("3"))
	if m.screen.Tab != console.TabLogs {
		t.Fatalf("expected logs tab, got %s", m.screen.Tab)
	}
	if len(m.logsTable.Rows()) == 0 {
		t.Fatalf("expected log rows after entering the logs tab")
	}
	press(m, runes("1"))
	if m.screen.Tab != console.TabDashboard {
		t.Fatalf("expected dashboard tab, got %s", m.screen.Tab)
	}
}

func TestBackdropClick_ClosesModal(t *testing.T) {
	m, cons, _ := newTestModel(t, 1, nil)
	cons.ShowKeyDetails(m.screen.KeyRecords[0])
	m.Update(screenChangedMsg{})
	if !m.screen.Modal.Open {
		t.Fatalf("expected modal to be open")
	}

	m.Update(leftClick(m.width/2, m.height/2))
	if !m.screen.Modal.Open {
		t.Fatalf("a click inside the box must not close the modal")
	}

	m.Update(leftClick(0, 0))
	if m.screen.Modal.Open {
		t.Fatalf("a click on the backdrop should close the modal")
	}
	if m.screen.Modal.Content == nil {
		t.Fatalf("closing keeps the modal content")
	}
}

func TestModal_EscCloses(t *testing.T) {
	m, cons, _ := newTestModel(t, 1, nil)
	cons.ShowKeyDetails(m.screen.KeyRecords[0])
	m.Update(screenChangedMsg{})
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen.Modal.Open {
		t.Fatalf("esc should close the modal")
	}
}

func TestModal_PauseButtonPausesKey(t *testing.T) {
	m, cons, mem := newTestModel(t, 1, nil)
	key := m.screen.KeyRecords[0]
	cons.ShowKeyDetails(key)
	m.Update(screenChangedMsg{})

	// The first button toggles pause.
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	got, err := mem.GetKey(context.Background(), key.KeyValue)
	if err != nil {
		t.Fatalf("get key: %v", err)
	}
	if !got.IsPaused {
		t.Fatalf("expected key to be paused")
	}
	if m.screen.Modal.Open {
		t.Fatalf("a successful action closes the modal")
	}
}

func TestCreatedKeysModal_CopiesToClipboard(t *testing.T) {
	m, cons, _ := newTestModel(t, 0, nil)
	if _, err := cons.CreateKeys(context.Background(), "2", "30"); err != nil {
		t.Fatalf("create keys: %v", err)
	}
	m.Update(screenChangedMsg{})

	var copied string
	m.copy = func(s string) error { copied = s; return nil }
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if lines := strings.Split(copied, "\n"); len(lines) != 2 {
		t.Fatalf("expected two copied keys, got %q", copied)
	}
	toast, ok := cons.Notifier().Last()
	if !ok || toast.Kind != notify.KindSuccess {
		t.Fatalf("expected a success toast after copying, got %+v", toast)
	}
}

func TestConfirmDialog_RepliesToConsole(t *testing.T) {
	conf := NewConfirmer()
	m, _, _ := newTestModel(t, 0, conf)
	ctx := context.Background()

	ask := func() chan bool {
		result := make(chan bool, 1)
		go func() { result <- conf.Confirm(ctx, "Delete everything?") }()
		m.Update(conf.wait(ctx)())
		if m.confirm == nil {
			t.Fatalf("expected the confirm dialog to be shown")
		}
		return result
	}

	result := ask()
	if !strings.Contains(m.View(), "Delete everything?") {
		t.Fatalf("dialog should show the question")
	}
	m.Update(runes("y"))
	if !<-result {
		t.Fatalf("expected y to confirm")
	}
	if m.confirm != nil {
		t.Fatalf("dialog should be gone after answering")
	}

	result = ask()
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if <-result {
		t.Fatalf("enter on the default button must decline")
	}
}

func TestConfirmer_ContextCancelDeclines(t *testing.T) {
	conf := NewConfirmer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if conf.Confirm(ctx, "anything") {
		t.Fatalf("a cancelled context must decline")
	}
}

func TestConfirmerWait_EndsWithContext(t *testing.T) {
	conf := NewConfirmer()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan tea.Msg, 1)
	go func() { done <- conf.wait(ctx)() }()
	cancel()
	select {
	case msg := <-done:
		if msg != nil {
			t.Fatalf("expected no message after cancel, got %T", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("wait did not return after the context ended")
	}
}

func TestFilterInput_HidesRowsLive(t *testing.T) {
	m, _, _ := newTestModel(t, 3, nil)
	press(m, runes("2"))
	press(m, runes("/"))
	if m.focus != focusFilter {
		t.Fatalf("expected filter focus")
	}

	want := m.screen.KeyRecords[0].KeyValue
	for _, r := range want {
		press(m, runes(string(r)))
	}
	if m.screen.Filter != want {
		t.Fatalf("expected filter %q, got %q", want, m.screen.Filter)
	}
	if len(m.keyRows) != 1 {
		t.Fatalf("expected exactly one visible row, got %d", len(m.keyRows))
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen.Filter != "" || len(m.keyRows) != 3 {
		t.Fatalf("esc should clear the filter, got %q with %d rows", m.screen.Filter, len(m.keyRows))
	}
}

func TestSearchInput_KeepsDigitsOnly(t *testing.T) {
	m, _, _ := newTestModel(t, 0, nil)
	press(m, runes("s"))
	for _, r := range "12a-3" {
		press(m, runes(string(r)))
	}
	if got := m.search.Value(); got != "123" {
		t.Fatalf("expected sanitized search %q, got %q", "123", got)
	}
}

func TestCreateFromDashboard_ResetsForm(t *testing.T) {
	m, _, mem := newTestModel(t, 0, nil)
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusQuantity {
		t.Fatalf("expected quantity focus")
	}
	m.quantity.SetValue("4")
	m.days.SetValue("10")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	stats, err := mem.GetStats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalKeys != 4 {
		t.Fatalf("expected 4 keys created, got %d", stats.TotalKeys)
	}
	if m.quantity.Value() != "1" || m.days.Value() != "30" {
		t.Fatalf("form should reset, got %q/%q", m.quantity.Value(), m.days.Value())
	}
	if !m.screen.Modal.Open {
		t.Fatalf("expected the created keys modal")
	}
}

func TestView_ShowsTabsAndKeys(t *testing.T) {
	m, _, _ := newTestModel(t, 1, nil)
	press(m, runes("2"))
	out := m.View()
	if !strings.Contains(out, m.screen.KeyRecords[0].KeyValue) {
		t.Fatalf("keys view should list the key value")
	}
	for _, tab := range []string{"Dashboard", "Keys", "Logs"} {
		if !strings.Contains(out, tab) {
			t.Fatalf("tab bar missing %q", tab)
		}
	}
}

// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestKeysList_PrintsEveryKey(t *testing.T) {
	a, _, mem := newTestApp(t)
	keys := seedKeys(t, mem, 3)
	out, err := executeCommand(t, a, "", "keys", "list")
	if err != nil {
		t.Fatalf("keys list failed: %v", err)
	}
	for _, k := range keys {
		if !strings.Contains(out, k) {
			t.Fatalf("missing key %s:\n%s", k, out)
		}
	}
	if !strings.Contains(out, "Page 1 of 1") {
		t.Fatalf("missing page footer:\n%s", out)
	}
}

func TestKeysList_FilterHidesRows(t *testing.T) {
	a, _, mem := newTestApp(t)
	keys := seedKeys(t, mem, 2)
	out, err := executeCommand(t, a, "", "keys", "list", "--filter", keys[0])
	if err != nil {
		t.Fatalf("keys list failed: %v", err)
	}
	if !strings.Contains(out, keys[0]) || strings.Contains(out, keys[1]) {
		t.Fatalf("filter should keep only %s:\n%s", keys[0], out)
	}
}

func TestKeysList_Empty(t *testing.T) {
	a, _, _ := newTestApp(t)
	out, err := executeCommand(t, a, "", "keys", "list")
	if err != nil {
		t.Fatalf("keys list failed: %v", err)
	}
	if !strings.Contains(out, "No keys found") {
		t.Fatalf("expected the empty message:\n%s", out)
	}
}

func TestKeysCreate_PrintsNewKeys(t *testing.T) {
	a, mock, _ := newTestApp(t)
	out, err := executeCommand(t, a, "", "keys", "create", "--quantity", "3", "--days", "10")
	if err != nil {
		t.Fatalf("keys create failed: %v", err)
	}
	if mock.CallCount("CreateKeys") != 1 {
		t.Fatalf("expected one CreateKeys call, got %v", mock.Calls())
	}
	if !strings.Contains(out, "3 key(s) created successfully") {
		t.Fatalf("expected the server message as a toast:\n%s", out)
	}
}

func TestKeysCreate_OutOfRangeMakesNoRequest(t *testing.T) {
	a, mock, _ := newTestApp(t)
	out, err := executeCommand(t, a, "", "keys", "create", "--quantity", "0")
	if err == nil {
		t.Fatalf("expected a validation error")
	}
	if mock.CallCount("CreateKeys") != 0 {
		t.Fatalf("validation failure must not reach the API")
	}
	if !strings.Contains(out, "Quantity") {
		t.Fatalf("expected the validation message:\n%s", out)
	}
}

func TestKeysShow_PrintsDetails(t *testing.T) {
	a, _, mem := newTestApp(t)
	keys := seedKeys(t, mem, 1)
	out, err := executeCommand(t, a, "", "keys", "show", keys[0])
	if err != nil {
		t.Fatalf("keys show failed: %v", err)
	}
	if !strings.Contains(out, "Key details: "+keys[0]) {
		t.Fatalf("missing details heading:\n%s", out)
	}
}

func TestKeysShow_MalformedKeyMakesNoRequest(t *testing.T) {
	a, mock, _ := newTestApp(t)
	if _, err := executeCommand(t, a, "", "keys", "show", "123"); err == nil {
		t.Fatalf("expected an error for a short key")
	}
	if mock.CallCount("GetKey") != 0 {
		t.Fatalf("a malformed key must not reach the API")
	}
}

func TestKeysPause_PausesKey(t *testing.T) {
	a, _, mem := newTestApp(t)
	keys := seedKeys(t, mem, 1)
	if _, err := executeCommand(t, a, "", "keys", "pause", keys[0]); err != nil {
		t.Fatalf("keys pause failed: %v", err)
	}
	k, err := mem.GetKey(context.Background(), keys[0])
	if err != nil {
		t.Fatalf("get key: %v", err)
	}
	if !k.IsPaused {
		t.Fatalf("expected key to be paused")
	}
}

func TestKeysDelete_Confirmation(t *testing.T) {
	a, mock, mem := newTestApp(t)
	keys := seedKeys(t, mem, 1)

	out, err := executeCommand(t, a, "n\n", "keys", "delete", keys[0])
	if err != nil {
		t.Fatalf("declined delete should not fail: %v", err)
	}
	if mock.CallCount("DeleteKey") != 0 {
		t.Fatalf("declined delete must not call the API")
	}
	if !strings.Contains(out, keys[0]) || !strings.Contains(out, "[y/N]") {
		t.Fatalf("expected a prompt naming the key:\n%s", out)
	}

	if _, err := executeCommand(t, a, "y\n", "keys", "delete", keys[0]); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if mock.CallCount("DeleteKey") != 1 {
		t.Fatalf("expected one DeleteKey call, got %v", mock.Calls())
	}
}

func TestKeysDelete_NonTerminalDeclinesWithoutYes(t *testing.T) {
	a, mock, mem := newTestApp(t)
	a.isTerminal = func(io.Reader) bool { return false }
	keys := seedKeys(t, mem, 1)

	if _, err := executeCommand(t, a, "y\n", "keys", "delete", keys[0]); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if mock.CallCount("DeleteKey") != 0 {
		t.Fatalf("non-interactive stdin must decline")
	}

	if _, err := executeCommand(t, a, "", "--yes", "keys", "delete", keys[0]); err != nil {
		t.Fatalf("delete --yes failed: %v", err)
	}
	if mock.CallCount("DeleteKey") != 1 {
		t.Fatalf("--yes should confirm, got %v", mock.Calls())
	}
}

func TestKeysDeleteAll_SecondDeclineIssuesNoCall(t *testing.T) {
	a, mock, mem := newTestApp(t)
	seedKeys(t, mem, 2)

	if _, err := executeCommand(t, a, "y\nn\n", "keys", "delete-all"); err != nil {
		t.Fatalf("delete-all failed: %v", err)
	}
	if mock.CallCount("DeleteAllKeys") != 0 {
		t.Fatalf("a single yes must not delete anything")
	}
	stats, _ := mem.GetStats(context.Background())
	if stats.TotalKeys != 2 {
		t.Fatalf("expected keys to survive, got %d", stats.TotalKeys)
	}

	out, err := executeCommand(t, a, "y\ny\n", "keys", "delete-all")
	if err != nil {
		t.Fatalf("delete-all failed: %v", err)
	}
	if mock.CallCount("DeleteAllKeys") != 1 {
		t.Fatalf("expected one DeleteAllKeys call, got %v", mock.Calls())
	}
	if !strings.Contains(out, "2 key(s) deleted") {
		t.Fatalf("expected the server message:\n%s", out)
	}
}

func TestKeysPauseAll(t *testing.T) {
	a, mock, mem := newTestApp(t)
	seedKeys(t, mem, 2)
	if _, err := executeCommand(t, a, "y\n", "keys", "pause-all"); err != nil {
		t.Fatalf("pause-all failed: %v", err)
	}
	if mock.CallCount("PauseAllKeys") != 1 {
		t.Fatalf("expected one PauseAllKeys call, got %v", mock.Calls())
	}
}

func TestIsYes(t *testing.T) {
	for in, want := range map[string]bool{"y\n": true, "YES": true, " yes ": true, "n": false, "": false, "maybe": false} {
		if got := isYes(in); got != want {
			t.Fatalf("isYes(%q) = %v, want %v", in, got, want)
		}
	}
}

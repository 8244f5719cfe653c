// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/keydesk/keydesk/internal/backup"
)

func TestBackupThenArchive(t *testing.T) {
	a, _, mem := newTestApp(t)
	seedKeys(t, mem, 4)

	out, err := executeCommand(t, a, "", "backup", "snap.json")
	if err != nil {
		t.Fatalf("backup failed: %v\n%s", err, out)
	}
	if _, err := os.Stat("snap.json.zst"); err != nil {
		t.Fatalf("expected snap.json.zst: %v", err)
	}
	snap, err := backup.ReadFile("snap.json.zst")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if len(snap.Keys) != 4 {
		t.Fatalf("expected 4 keys in the backup, got %d", len(snap.Keys))
	}

	out, err = executeCommand(t, a, "", "archive", "--from", "snap.json.zst")
	if err != nil {
		t.Fatalf("archive failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, snap.ID) {
		t.Fatalf("expected the snapshot id in the output:\n%s", out)
	}

	out, err = executeCommand(t, a, "", "archive", "list")
	if err != nil {
		t.Fatalf("archive list failed: %v", err)
	}
	if !strings.Contains(out, snap.ID) {
		t.Fatalf("archive list should show the snapshot:\n%s", out)
	}
}

func TestArchiveList_Empty(t *testing.T) {
	a, _, _ := newTestApp(t)
	out, err := executeCommand(t, a, "", "archive", "list")
	if err != nil {
		t.Fatalf("archive list failed: %v", err)
	}
	if !strings.Contains(out, "No snapshots") {
		t.Fatalf("expected the empty message:\n%s", out)
	}
}

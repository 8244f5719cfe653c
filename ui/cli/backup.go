// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/keydesk/keydesk/internal/archive"
	"github.com/keydesk/keydesk/internal/backup"
	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/logging"
	"github.com/spf13/cobra"
)

// baseURLer is implemented by clients that talk to a real server.
type baseURLer interface {
	BaseURL() string
}

// collect crawls the backend into a snapshot labelled with its source.
func (a *app) collect(ctx context.Context) (*backup.Snapshot, error) {
	snap, err := backup.Collect(ctx, a.client, a.cfg.PerPage)
	if err != nil {
		return nil, err
	}
	snap.Source = "demo"
	if b, ok := a.client.(baseURLer); ok {
		snap.Source = b.BaseURL()
	}
	return snap, nil
}

// newBackupCmd represents the 'backup' command.
func newBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: "Save every key and log entry as compressed (zstd) JSON",
		Long: `Crawls every page of keys and logs together with the statistics and
writes them into a single Zstandard-compressed JSON file.

If an output file is specified, '.zst' will be appended to the name if it's not already present.
If no output file is specified, a default filename 'keydesk-backup-YYYY-MM-DD.json.zst' is used.

Examples:
  # Backup to a default file (e.g., keydesk-backup-2026-10-16.json.zst)
  keydesk backup

  # Backup to a specific file
  keydesk backup my-backup.json`, // .zst will be appended
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile := backup.DefaultFileName(time.Now())
			if len(args) > 0 {
				outputFile = backup.NormalizeFileName(args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("cli.backup.starting"))

			snap, err := a.collect(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("cli.backup.error_export"), err)
			}
			if err := backup.WriteFile(outputFile, snap); err != nil {
				return fmt.Errorf("%s: %w", i18n.T("cli.backup.error_write"), err)
			}
			fmt.Fprintln(out, i18n.T("cli.backup.success", len(snap.Keys), len(snap.Logs), outputFile))
			return nil
		},
	}
}

// newArchiveCmd represents the 'archive' command group.
func newArchiveCmd(a *app) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Store a snapshot in the archive database",
		Long: `Stores a snapshot of every key and log entry in the SQL archive
configured under 'archive' (sqlite, postgres or mysql). The snapshot is taken
from the live backend, or read from a backup file with --from.

Example:
  keydesk archive --from keydesk-backup-2026-10-16.json.zst`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var snap *backup.Snapshot
			var err error
			if from != "" {
				snap, err = backup.ReadFile(from)
			} else {
				snap, err = a.collect(ctx)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("cli.archive.error_snapshot"), err)
			}

			store, err := archive.Open(ctx, a.cfg.Archive.Type, a.cfg.Archive.DSN)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("cli.archive.error_open"), err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					logging.Warnf("close archive: %v", err)
				}
			}()

			if err := store.Save(ctx, snap); err != nil {
				return fmt.Errorf("%s: %w", i18n.T("cli.archive.error_save"), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.archive.success", snap.ID, a.cfg.Archive.Type))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Read the snapshot from a backup file instead of the API")
	cmd.AddCommand(newArchiveListCmd(a))
	return cmd
}

func newArchiveListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := archive.Open(ctx, a.cfg.Archive.Type, a.cfg.Archive.DSN)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("cli.archive.error_open"), err)
			}
			defer func() { _ = store.Close() }()

			snaps, err := store.Snapshots(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(snaps) == 0 {
				fmt.Fprintln(out, i18n.T("cli.archive.empty"))
				return nil
			}
			rows := make([][]string, 0, len(snaps))
			for _, s := range snaps {
				rows = append(rows, []string{
					s.ID,
					s.TakenAt.Local().Format(time.DateTime),
					s.Source,
					strconv.Itoa(s.KeyCount),
					strconv.Itoa(s.LogCount),
				})
			}
			fmt.Fprintln(out, renderTable([]string{
				i18n.T("cli.archive.column.id"),
				i18n.T("cli.archive.column.taken_at"),
				i18n.T("cli.archive.column.source"),
				i18n.T("cli.archive.column.keys"),
				i18n.T("cli.archive.column.logs"),
			}, rows))
			return nil
		},
	}
}

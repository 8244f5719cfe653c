// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"

	"github.com/keydesk/keydesk/internal/console"
	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/view"
	"github.com/spf13/cobra"
)

// newKeysCmd is the root command for key management operations.
func newKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage license keys (list, create, show, pause, reset, delete)",
		Long: `The 'keys' command group covers everything the key tab of the TUI does:
  - List keys page by page, optionally filtered
  - Create a batch of keys
  - Show the details of one key
  - Pause, unpause, reset the hardware id of, or delete a key
  - Pause, unpause or delete every key`,
	}
	cmd.AddCommand(
		newKeysListCmd(a),
		newKeysCreateCmd(a),
		newKeysShowCmd(a),
		newKeyActionCmd(a, "pause", "Pause a key", (*console.Console).PauseKey),
		newKeyActionCmd(a, "unpause", "Unpause a key", (*console.Console).UnpauseKey),
		newKeyActionCmd(a, "reset-hwid", "Reset the hardware id bound to a key", (*console.Console).ResetHWID),
		newKeyActionCmd(a, "delete", "Delete a key", (*console.Console).DeleteKey),
		newBulkCmd(a, "pause-all", "Pause every key", (*console.Console).PauseAllKeys),
		newBulkCmd(a, "unpause-all", "Unpause every key", (*console.Console).UnpauseAllKeys),
		newBulkCmd(a, "delete-all", "Delete every key (asks twice)", (*console.Console).DeleteAllKeys),
	)
	return cmd
}

func newKeysListCmd(a *app) *cobra.Command {
	var page int
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of keys",
		Long: `Display one page of keys in table format with their status, hardware id,
dates and login count. --filter hides rows whose text does not contain
the given string, ignoring case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cons := a.cliConsole(cmd)
			state, err := cons.LoadKeys(cmd.Context(), page)
			if err != nil {
				return err
			}
			if filter != "" {
				cons.FilterKeys(filter)
			}
			s := cons.Snapshot()
			out := cmd.OutOrStdout()

			rows := s.VisibleKeyRows()
			if len(rows) == 0 || isEmptyList(rows) {
				fmt.Fprintln(out, i18n.T("view.no_keys"))
				return nil
			}
			// The actions column only makes sense in the TUI.
			headers := view.KeyColumnTitles()[:view.KeyColumns-1]
			fmt.Fprintln(out, renderTable(headers, rowCells(rows, len(headers))))
			printPage(out, i18n.T("cli.page"), state.Page, state.Pages)
			return nil
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page to show")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only show rows containing this text")
	return cmd
}

func newKeysCreateCmd(a *app) *cobra.Command {
	var quantity, days string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a batch of keys",
		Long: `Creates between 1 and 1000 keys that expire between 1 and 365 days after
their first login, and prints the new key values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cons := a.cliConsole(cmd)
			res, err := cons.CreateKeys(cmd.Context(), quantity, days)
			if err != nil {
				return err
			}
			for _, k := range res.Keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&quantity, "quantity", "q", "1", "Number of keys to create (1-1000)")
	cmd.Flags().StringVarP(&days, "days", "d", "30", "Days until expiration after first login (1-365)")
	return cmd
}

func newKeysShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <key>",
		Short: "Show the details of a key",
		Long:  `Looks a key up by its 8-digit value. Non-digits in the argument are ignored.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cons := a.cliConsole(cmd)
			if _, err := cons.SearchKey(cmd.Context(), args[0]); err != nil {
				return err
			}
			printDetails(cmd.OutOrStdout(), cons.Snapshot().Modal.Content)
			return nil
		},
	}
}

type keyActionFunc func(c *console.Console, ctx context.Context, keyValue string) error

func newKeyActionCmd(a *app, use, short string, action keyActionFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <key>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return action(a.cliConsole(cmd), cmd.Context(), console.SanitizeSearch(args[0]))
		},
	}
}

type bulkActionFunc func(c *console.Console, ctx context.Context) error

func newBulkCmd(a *app, use, short string, action bulkActionFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return action(a.cliConsole(cmd), cmd.Context())
		},
	}
}

// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/keydesk/keydesk/client"
	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/model"
	"github.com/keydesk/keydesk/internal/view"
	"github.com/spf13/cobra"
)

func printStats(w io.Writer, s model.Stats) {
	fmt.Fprintln(w, renderTable(
		[]string{i18n.T("tui.stats.total"), i18n.T("tui.stats.active"), i18n.T("tui.stats.used")},
		[][]string{{strconv.Itoa(s.TotalKeys), strconv.Itoa(s.ActiveKeys), strconv.Itoa(s.UsedKeys)}},
	))
}

func newStatsCmd(a *app) *cobra.Command {
	var watch bool
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the key statistics",
		Long: `Prints the total, active and used key counters. With --watch the
counters are refreshed every interval until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cons := a.cliConsole(cmd)
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			if err := cons.LoadStats(ctx); err != nil {
				return fmt.Errorf("%s: %s", i18n.T("cli.error.stats"), client.Message(err))
			}
			printStats(out, cons.Snapshot().Stats)
			if !watch {
				return nil
			}

			if interval <= 0 {
				interval = a.cfg.StatsInterval
			}
			cons.StartStatsRefresh(ctx, interval, func() {
				fmt.Fprintln(out, mutedStyle.Render(time.Now().Format(time.TimeOnly)))
				printStats(out, cons.Snapshot().Stats)
			})
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep refreshing until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Refresh interval for --watch (default: stats_interval)")
	return cmd
}

func newLogsCmd(a *app) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show one page of the access log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cons := a.cliConsole(cmd)
			state, err := cons.LoadLogs(cmd.Context(), page)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rows := cons.Snapshot().LogRows
			if isEmptyList(rows) {
				fmt.Fprintln(out, i18n.T("view.no_logs"))
				return nil
			}
			fmt.Fprintln(out, renderTable(view.LogColumnTitles(), rowCells(rows, view.LogColumns)))
			printPage(out, i18n.T("cli.page"), state.Page, state.Pages)
			return nil
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page to show")
	return cmd
}

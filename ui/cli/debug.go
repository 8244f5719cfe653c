// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/keydesk/keydesk/internal/config"
	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newDebugCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Dump debug information about config, env, flags and settings",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "--- KEYDESK DEBUG ---")

			if path, err := config.GetConfigPath(false); err == nil {
				fmt.Fprintf(out, "User config path: %s\n", path)
			}
			fmt.Fprintf(out, "Language: %s (available: %s)\n", i18n.GetLang(), strings.Join(i18n.LocaleTags(), ", "))

			// Effective settings, token masked.
			shown := a.cfg
			if shown.API.Token != "" {
				shown.API.Token = "********"
			}
			b, err := yaml.Marshal(shown)
			if err != nil {
				logging.Errorf("could not marshal settings: %v", err)
			} else {
				fmt.Fprintln(out, "-- effective settings --")
				fmt.Fprint(out, string(b))
			}

			fmt.Fprintln(out, "-- flags --")
			cmd.Flags().VisitAll(func(f *pflag.Flag) {
				val := f.Value.String()
				if f.Name == "api.token" && val != "" {
					val = "********"
				}
				fmt.Fprintf(out, "%s = %s\n", f.Name, val)
			})

			fmt.Fprintln(out, "-- environment (KEYDESK_*) --")
			for _, e := range os.Environ() {
				if !strings.HasPrefix(e, "KEYDESK_") {
					continue
				}
				if strings.HasPrefix(e, "KEYDESK_API_TOKEN=") {
					e = "KEYDESK_API_TOKEN=********"
				}
				fmt.Fprintln(out, e)
			}

			fmt.Fprintln(out, "--- END DEBUG ---")
		},
	}
}

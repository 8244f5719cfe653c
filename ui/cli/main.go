// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, the global flags and the services every
// subcommand shares.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/keydesk/keydesk/buildvars"
	"github.com/keydesk/keydesk/client"
	"github.com/keydesk/keydesk/internal/config"
	"github.com/keydesk/keydesk/internal/console"
	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/logging"
	"github.com/keydesk/keydesk/internal/notify"
	"github.com/keydesk/keydesk/internal/tui"
	"github.com/spf13/cobra"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)

// demoKeys is how many keys the in-memory demo backend starts with.
const demoKeys = 45

// app holds the state shared by the commands of one invocation.
type app struct {
	cfgFile   string
	verbose   bool
	assumeYes bool
	demo      bool

	cfg    config.Config
	client client.Client

	// Overridable in tests.
	newClient  func(cfg config.Config) (client.Client, error)
	isTerminal func(r io.Reader) bool
}

func newApp() *app {
	a := &app{isTerminal: stdinIsTerminal}
	a.newClient = a.defaultClient
	return a
}

// defaultClient builds the HTTP client, or the seeded in-memory backend in
// demo mode.
func (a *app) defaultClient(cfg config.Config) (client.Client, error) {
	if a.demo {
		mem := client.NewMemoryClient()
		res, err := mem.CreateKeys(context.Background(), demoKeys, 30)
		if err != nil {
			return nil, err
		}
		for i, kv := range res.Keys[:5] {
			_ = mem.Activate(kv, fmt.Sprintf("DEMO-HWID-%04d-ABCDEF", i), "127.0.0.1")
		}
		return mem, nil
	}
	return client.NewHTTPClient(client.Config{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.Token,
		Timeout: cfg.API.Timeout,
	})
}

// setup loads the configuration and builds the client. It runs before every
// command except version.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.verbose {
		logging.SetDebug(true)
	}

	path, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// First run: persist a config file the operator can edit. A token given
	// on the command line or in the environment is never written.
	if path == nil {
		persisted := cfg
		persisted.API.Token = ""
		if wrote, err := config.EnsureUserConfig(&persisted); err != nil {
			logging.Warnf("could not write default config file: %v", err)
		} else if wrote {
			logging.Infof("wrote default config to user config path")
		}
	}

	i18n.Init(cfg.Language)
	a.cfg = cfg

	c, err := a.newClient(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", i18n.T("cli.error.client"), err)
	}
	a.client = c
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) {
	if a.client == nil {
		return
	}
	if err := a.client.Close(cmd.Context()); err != nil {
		logging.Debugf("close client: %v", err)
	}
}

// console builds a console over the client. Toasts are printed to w as they
// are pushed.
func (a *app) console(conf console.Confirmer, w io.Writer) *console.Console {
	n := notify.New(a.cfg.ToastTTL)
	if w != nil {
		n.OnPush(func(t notify.Toast) { printToast(w, t) })
	}
	return console.New(a.client, console.Options{
		PerPage:   a.cfg.PerPage,
		Confirmer: conf,
		Notifier:  n,
	})
}

// cliConsole is the console used by one-shot commands.
func (a *app) cliConsole(cmd *cobra.Command) *console.Console {
	conf := newPromptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout(), a.assumeYes, a.isTerminal(cmd.InOrStdin()))
	return a.console(conf, cmd.OutOrStdout())
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	conf := tui.NewConfirmer()
	cons := a.console(conf, nil)
	return tui.Run(cmd.Context(), cons, conf, tui.Options{StatsInterval: a.cfg.StatsInterval})
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if cmd.Flags().Changed("config") {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return nil, fmt.Errorf("could not read --config flag: %w", err)
		}

		// If the flag is set but the value is empty, do nothing.
		if path == "" {
			return nil, nil
		}

		// Make sure the user-provided file exists to avoid unwanted behavior.
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		return &path, nil
	}
	return nil, nil
}

// Execute runs the CLI entrypoint. main should call this function and
// handle process exit.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd creates and configures a new root cobra command.
// Every call returns a fresh tree so tests can run commands in isolation.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keydesk",
		Short: "Keydesk is an admin console for a license key backend.",
		Long: `Keydesk talks to the REST API of a license key service. It lists,
creates, pauses, resets and deletes keys, shows the access log and keeps
the dashboard statistics up to date.

Running without a subcommand will launch the interactive TUI.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
		RunE:              a.runTUI,
	}

	v, c, d := resolveBuildVersion(nil)
	compositeVersion := v
	if c != "" && c != "dev" {
		compositeVersion = compositeVersion + " (" + c + ")"
	}
	if d != "" {
		compositeVersion = compositeVersion + " built: " + d
	}
	cmd.Version = compositeVersion

	// Flag names match the config keys so viper picks them up.
	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file")
	pf.String("api.base_url", "", "Base URL of the license API (without /api)")
	pf.String("api.token", "", "Bearer token sent to the API")
	pf.Duration("api.timeout", 0, "HTTP timeout per request (0 means none)")
	pf.String("language", "", `Interface language ("en", "pt-BR")`)
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose (debug) logging")
	pf.BoolVarP(&a.assumeYes, "yes", "y", false, "Answer yes to every confirmation")
	pf.BoolVar(&a.demo, "demo", false, "Use a built-in in-memory backend seeded with demo keys")

	cmd.AddCommand(
		newStatsCmd(a),
		newKeysCmd(a),
		newLogsCmd(a),
		newBackupCmd(a),
		newArchiveCmd(a),
		newDebugCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		// No config or client is needed to print the version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		PersistentPostRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// As a last resort, if no version was discovered, but a gitCommit was
	// provided via ldflags, show that to aid support.
	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}

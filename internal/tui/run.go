// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/keydesk/keydesk/internal/console"
	"github.com/keydesk/keydesk/internal/logging"
)

// Options configures Run.
type Options struct {
	// StatsInterval is the period of the background stats refresh.
	StatsInterval time.Duration
	// LogFile receives diagnostics while the program owns the terminal.
	// Empty means DefaultLogFile.
	LogFile string
}

// DefaultLogFile is keydesk.log in the user cache directory.
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "keydesk", "keydesk.log")
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		path = DefaultLogFile()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// Run starts the interactive console and blocks until the operator quits.
// conf must be the Confirmer the console was built with.
func Run(ctx context.Context, cons *console.Console, conf *Confirmer, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if f, err := openLogFile(opts.LogFile); err == nil {
		logging.SetOutput(f)
		defer func() {
			logging.SetOutput(os.Stderr)
			_ = f.Close()
		}()
	} else {
		logging.Warnf("tui: cannot open log file, logging is discarded: %v", err)
		logging.SetOutput(io.Discard)
		defer logging.SetOutput(os.Stderr)
	}

	m := newConsoleModel(ctx, cons, conf)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	// Listeners fire from controller goroutines and from Update itself, so
	// Send must not block the caller.
	cons.OnChange(func() { go p.Send(screenChangedMsg{}) })
	cons.StartStatsRefresh(ctx, opts.StatsInterval, nil)

	logging.Infof("tui: started")
	_, err := p.Run()
	return err
}

// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/logging"
	"golang.org/x/term"
)

// stdinIsTerminal reports whether r is a terminal.
func stdinIsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// promptConfirmer asks y/N questions on the terminal.
type promptConfirmer struct {
	in          *bufio.Reader
	out         io.Writer
	assumeYes   bool
	interactive bool

	startOnce sync.Once
	lines     chan string
}

func newPromptConfirmer(in io.Reader, out io.Writer, assumeYes, interactive bool) *promptConfirmer {
	return &promptConfirmer{
		in:          bufio.NewReader(in),
		out:         out,
		assumeYes:   assumeYes,
		interactive: interactive,
	}
}

// Confirm implements console.Confirmer. Without --yes a non-interactive
// stdin declines every question.
func (p *promptConfirmer) Confirm(ctx context.Context, message string) bool {
	if p.assumeYes {
		fmt.Fprintf(p.out, "%s %s\n", message, i18n.T("cli.confirm.assumed"))
		return true
	}
	if !p.interactive {
		logging.Warnf("confirmation declined, stdin is not a terminal (use --yes): %s", message)
		return false
	}

	fmt.Fprintf(p.out, "%s %s ", message, i18n.T("cli.confirm.prompt"))
	p.startOnce.Do(p.readLines)
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return false
	case line, ok := <-p.lines:
		return ok && isYes(line)
	}
}

// readLines starts the one reader of p.in. Lines wait in p.lines until a
// question takes them, so a cancelled question never consumes the answer
// meant for the next one.
func (p *promptConfirmer) readLines() {
	p.lines = make(chan string)
	go func() {
		defer close(p.lines)
		for {
			line, err := p.in.ReadString('\n')
			if line != "" {
				p.lines <- line
			}
			if err != nil {
				return
			}
		}
	}()
}

// isYes accepts the affirmative answers of the active language.
func isYes(line string) bool {
	a := strings.ToLower(strings.TrimSpace(line))
	if a == "" {
		return false
	}
	for _, y := range strings.Split(i18n.T("cli.confirm.yes_answers"), ",") {
		if a == strings.TrimSpace(y) {
			return true
		}
	}
	return false
}

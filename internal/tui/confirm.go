// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/tui/frame"
)

// confirmRequest is one question waiting for the operator.
type confirmRequest struct {
	message string
	reply   chan bool
}

// confirmRequestMsg delivers a question to the UI goroutine.
type confirmRequestMsg struct {
	req confirmRequest
}

// Confirmer answers the console's questions through a dialog drawn by the
// running program. Controllers block in Confirm until the operator answers
// or the context ends.
type Confirmer struct {
	requests chan confirmRequest
}

// NewConfirmer returns a Confirmer to be handed to both console.New and Run.
func NewConfirmer() *Confirmer {
	return &Confirmer{requests: make(chan confirmRequest)}
}

// Confirm implements console.Confirmer.
func (c *Confirmer) Confirm(ctx context.Context, message string) bool {
	req := confirmRequest{message: message, reply: make(chan bool, 1)}
	select {
	case c.requests <- req:
	case <-ctx.Done():
		return false
	}
	select {
	case ok := <-req.reply:
		return ok
	case <-ctx.Done():
		return false
	}
}

// wait returns a command that blocks until the next question arrives or
// ctx ends.
func (c *Confirmer) wait(ctx context.Context) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case req := <-c.requests:
			return confirmRequestMsg{req: req}
		case <-ctx.Done():
			return nil
		}
	}
}

// pendingConfirm is the question currently on screen.
type pendingConfirm struct {
	req    confirmRequest
	dialog *frame.Dialog
}

func newPendingConfirm(req confirmRequest) *pendingConfirm {
	d := frame.NewDialog(i18n.T("tui.confirm.title"), req.message, i18n.T("tui.confirm.yes"), i18n.T("tui.confirm.no"))
	d.SetStyles(confirmDialogStyles())
	// Default to "No" so a stray enter never deletes anything.
	d.FocusRight()
	return &pendingConfirm{req: req, dialog: d}
}

func (p *pendingConfirm) answer(ok bool) {
	p.req.reply <- ok
}

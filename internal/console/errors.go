// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"context"
	"errors"

	"github.com/keydesk/keydesk/client"
	"github.com/keydesk/keydesk/internal/logging"
)

var (
	// ErrValidation is returned when user input is rejected before any
	// request is made.
	ErrValidation = errors.New("validation failed")
	// ErrUnknownTab is returned by SwitchTab for a name that is not a tab.
	ErrUnknownTab = errors.New("unknown tab")
)

// fail reports a failed request: it is logged and surfaced as an error toast
// with the server supplied message, then handed back so the caller stops.
func (c *Console) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	logging.Errorf("%s: %v", op, err)
	if !errors.Is(err, context.Canceled) {
		c.notifier.Error(client.Message(err))
	}
	return err
}

// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"context"
	"fmt"

	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/logging"
)

type keyCall func(ctx context.Context, keyValue string) (string, error)

type bulkCall func(ctx context.Context) (string, error)

// PauseKey pauses one key.
func (c *Console) PauseKey(ctx context.Context, keyValue string) error {
	return c.keyAction(ctx, "pause key", keyValue, "", c.client.PauseKey, true)
}

// UnpauseKey resumes one key.
func (c *Console) UnpauseKey(ctx context.Context, keyValue string) error {
	return c.keyAction(ctx, "unpause key", keyValue, "", c.client.UnpauseKey, true)
}

// ResetHWID unbinds the hardware id of one key after confirmation.
func (c *Console) ResetHWID(ctx context.Context, keyValue string) error {
	return c.keyAction(ctx, "reset hwid", keyValue, "console.confirm.reset_hwid", c.client.ResetHWID, false)
}

// DeleteKey removes one key after confirmation.
func (c *Console) DeleteKey(ctx context.Context, keyValue string) error {
	return c.keyAction(ctx, "delete key", keyValue, "console.confirm.delete", c.client.DeleteKey, true)
}

// keyAction runs a single-key action. A declined confirmation is a silent
// no-op. On success the key list is reloaded at the page shown before the
// action and the modal is closed.
func (c *Console) keyAction(ctx context.Context, op, keyValue, confirmID string, call keyCall, refreshStats bool) error {
	if confirmID != "" && !c.confirm(ctx, fmt.Sprintf(i18n.T(confirmID), keyValue)) {
		logging.Debugf("%s %s: declined", op, keyValue)
		return nil
	}
	page := c.keysState().Page

	msg, err := call(ctx, keyValue)
	if err := c.fail(op, err); err != nil {
		return err
	}
	c.notifier.Success(msg)
	_, _ = c.LoadKeys(ctx, page)
	if refreshStats {
		_ = c.LoadStats(ctx)
	}
	c.CloseModal()
	return nil
}

// PauseAllKeys pauses every key after confirmation.
func (c *Console) PauseAllKeys(ctx context.Context) error {
	return c.bulkAction(ctx, "pause all keys", []string{"console.confirm.pause_all"}, c.client.PauseAllKeys)
}

// UnpauseAllKeys resumes every key after confirmation.
func (c *Console) UnpauseAllKeys(ctx context.Context) error {
	return c.bulkAction(ctx, "unpause all keys", []string{"console.confirm.unpause_all"}, c.client.UnpauseAllKeys)
}

// DeleteAllKeys removes every key. Two confirmations in a row are required.
func (c *Console) DeleteAllKeys(ctx context.Context) error {
	return c.bulkAction(ctx, "delete all keys", []string{"console.confirm.delete_all", "console.confirm.delete_all_final"}, c.client.DeleteAllKeys)
}

func (c *Console) bulkAction(ctx context.Context, op string, confirmIDs []string, call bulkCall) error {
	for _, id := range confirmIDs {
		if !c.confirm(ctx, i18n.T(id)) {
			logging.Debugf("%s: declined", op)
			return nil
		}
	}
	page := c.keysState().Page

	msg, err := call(ctx)
	if err := c.fail(op, err); err != nil {
		return err
	}
	c.notifier.Success(msg)
	_, _ = c.LoadKeys(ctx, page)
	_ = c.LoadStats(ctx)
	return nil
}

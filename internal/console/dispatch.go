// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"context"
	"fmt"

	"github.com/keydesk/keydesk/internal/view"
)

// Dispatch runs the controller a view button is wired to. Copying keys is
// left to the front end and is a no-op here.
func (c *Console) Dispatch(ctx context.Context, a view.Action) error {
	switch a.Kind {
	case view.ActionLoadKeys:
		_, err := c.LoadKeys(ctx, a.Page)
		return err
	case view.ActionLoadLogs:
		_, err := c.LoadLogs(ctx, a.Page)
		return err
	case view.ActionShowKey:
		return c.ShowKey(ctx, a.KeyValue)
	case view.ActionPauseKey:
		return c.PauseKey(ctx, a.KeyValue)
	case view.ActionUnpauseKey:
		return c.UnpauseKey(ctx, a.KeyValue)
	case view.ActionResetHWID:
		return c.ResetHWID(ctx, a.KeyValue)
	case view.ActionDeleteKey:
		return c.DeleteKey(ctx, a.KeyValue)
	case view.ActionCloseModal:
		c.CloseModal()
		return nil
	case view.ActionCopyKeys:
		return nil
	default:
		return fmt.Errorf("unknown action %q", a.Kind)
	}
}

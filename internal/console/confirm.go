// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import "context"

// Confirmer asks the operator a blocking yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, message string) bool {
	return f(ctx, message)
}

// AlwaysConfirm affirms every question.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) bool { return true })

// NeverConfirm declines every question.
var NeverConfirm = ConfirmFunc(func(context.Context, string) bool { return false })

func (c *Console) confirm(ctx context.Context, message string) bool {
	if ctx.Err() != nil {
		return false
	}
	return c.confirmer.Confirm(ctx, message)
}

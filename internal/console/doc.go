// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package console holds the controllers of the license administration
// console. A Console owns the screen state (active tab, stats, the key and
// log pages, the modal) and implements every user operation on top of a
// client.Client. Front ends render Snapshot() and route button presses
// through Dispatch.
//
// State is guarded by a mutex that is never held across a request, so
// concurrent operations complete independently; whichever finishes last
// determines what is shown.
package console

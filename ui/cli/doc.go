// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Keydesk using Cobra.
// It loads configuration, builds the API client and the console, and either
// starts the interactive TUI or runs one console operation per command.
// Commands stay thin: every operation goes through internal/console so the
// CLI reports exactly what the TUI would.
package cli

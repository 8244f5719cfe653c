// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Keydesk.
//
// Usage:
//
//	go run . [flags]
//	./keydesk [flags]
//
// This launches the Keydesk CLI. See --help for options.
package main

import (
	"os"

	"github.com/keydesk/keydesk/internal/logging"
	"github.com/keydesk/keydesk/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}

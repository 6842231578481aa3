// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

// Command jslt is a thin CLI wrapper around pkg/jslt: it reads a program
// and an input document from files or stdin and runs transform/validate.
package main

import (
	"log/slog"
	"os"

	"github.com/holomush/jsltcore/pkg/errutil"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		errutil.LogError(slog.Default(), "jslt command failed", err)
		os.Exit(1)
	}
}

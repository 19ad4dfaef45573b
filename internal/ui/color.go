// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package ui provides color output helpers for the ymlforge CLI.
//
// Colors respect the NO_COLOR environment variable and are disabled
// automatically when output is not a TTY (e.g., when piped), so the
// progress lines other tools key off stay byte-stable.
package ui

import (
	"github.com/fatih/color"
)

// Pre-configured color instances for consistent CLI output.
var (
	// Red is used for error messages and failures.
	Red = color.New(color.FgRed)

	// Green is used for success messages and completions.
	Green = color.New(color.FgGreen)

	// Cyan is used for informational messages.
	Cyan = color.New(color.FgCyan)

	// Bold is used for important labels.
	Bold = color.New(color.Bold)

	// Dim is used for less important details like paths.
	Dim = color.New(color.Faint)
)

// InitColors configures global color output based on the noColor flag.
// Call early in main() after parsing flags.
func InitColors(noColor bool) {
	if noColor {
		color.NoColor = true
	}
}

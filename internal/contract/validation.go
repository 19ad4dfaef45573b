// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package contract validates the CLI request before any work starts:
// required flags and the key=value shape of variable bindings. The
// output format name is not checked here; adapters.ParseFormat parses it.
package contract

import (
	"fmt"
	"strings"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	OK      bool
	Message string
}

// ValidateRequest checks the flag combination of one CLI invocation.
func ValidateRequest(root, entry string) *ValidationResult {
	if root == "" {
		return &ValidationResult{Message: "missing required flag -r (root directory)"}
	}
	if entry == "" {
		return &ValidationResult{Message: "missing required flag -e (entry pattern)"}
	}
	return &ValidationResult{OK: true}
}

// ParseBindings parses repeated key=value variable bindings.
func ParseBindings(bindings []string) (map[string]string, error) {
	vars := make(map[string]string, len(bindings))
	for _, b := range bindings {
		key, value, found := strings.Cut(b, "=")
		if !found {
			return nil, fmt.Errorf("invalid KEY=value: no `=` found in `%s`", b)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid KEY=value: empty key in `%s`", b)
		}
		vars[key] = value
	}
	return vars, nil
}

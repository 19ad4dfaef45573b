// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package output provides the JSON encoding helpers shared by the
// file-backed output sinks, ensuring consistent formatting across the
// assembly and schema files they write.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrettyJSON encodes data as indented JSON with 2-space indentation,
// the standard format for every JSON artifact the assembler writes.
func PrettyJSON(data any) ([]byte, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("JSON encoding failed: %w", err)
	}
	return b, nil
}

// PrettyJSONTo writes data as indented JSON to the given writer.
func PrettyJSONTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package adapters declares the capability interfaces the assembly
// engine is generic over: part reading, schema reading, and the two
// output sinks. In-memory implementations back the test suite;
// filesystem implementations back the CLI. Both live in pkg/infra.
package adapters

import (
	"fmt"

	"github.com/kraklabs/ymlforge/pkg/document"
)

// PartReader resolves part identifiers to raw document values and
// expands entry glob patterns. Identifiers are opaque to the engine;
// file-backed readers append the fixed part extension.
//
// Implementations must be safe for concurrent use: one reader is shared
// by every assembly worker.
type PartReader interface {
	// Get returns the parsed raw value for an identifier.
	Get(identifier string) (*document.Value, error)

	// ExpandGlob expands a glob pattern relative to the reader's root,
	// returning relative identifiers with the part extension stripped.
	ExpandGlob(pattern string) ([]string, error)
}

// SchemaReader loads a JSON-Schema document, dispatching on the file
// extension: .json parses as JSON, .yml/.yaml parse as YAML and
// convert. Any other extension is rejected.
type SchemaReader interface {
	GetSchema(path string) (any, error)
}

// AssemblySink receives a finished assembly under an entry key.
// File-backed sinks create missing parent directories and write with
// the format's canonical extension; in-memory sinks insert into a
// per-format mapping.
type AssemblySink interface {
	Write(value *document.Value, key string, format Format) error
}

// SchemaSink receives the validation schema that an assembly was
// checked against. File-backed sinks write pretty-printed JSON.
type SchemaSink interface {
	Write(schema any, key string) error
}

// Format selects the serialization of an assembly output.
type Format int

const (
	// FormatYAML emits the document form. This is the default.
	FormatYAML Format = iota

	// FormatJSON emits the JSON form.
	FormatJSON
)

// ParseFormat reads a CLI format name.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("could not parse %q as output format (want yml or json)", s)
}

// String returns the CLI name of the format.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yml"
}

// Extension returns the canonical file extension of the format.
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".yml"
}

// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package testing provides shared helpers for exercising the assembly
// pipeline against in-memory adapters.
package testing

import (
	"testing"

	"github.com/kraklabs/ymlforge/pkg/assembler"
	"github.com/kraklabs/ymlforge/pkg/infra"
)

// Harness bundles an assembler with the in-memory adapters behind it,
// so tests can seed parts and inspect outputs directly.
type Harness struct {
	Assembler  *assembler.Assembler
	Parts      *infra.MemPartReader
	Assemblies *infra.MemAssemblySink
	Schemas    *infra.MemSchemaSink
}

// Setup creates an assembler over in-memory adapters seeded with the
// given part sources (identifier to YAML text). Schemas are still read
// from schemaRoot on disk, matching how the integration fixtures are
// laid out; pass t.TempDir() when no schema is involved.
//
// Example:
//
//	h := testing.Setup(t, t.TempDir(), map[string]string{
//	    "book": "title: $title",
//	})
//	err := h.Assembler.Assemble("book", "", map[string]string{"title": "x"}, adapters.FormatYAML)
func Setup(t *testing.T, schemaRoot string, parts map[string]string) *Harness {
	t.Helper()

	reader := infra.NewMemPartReader(parts)
	assemblies := infra.NewMemAssemblySink()
	schemas := infra.NewMemSchemaSink()

	return &Harness{
		Assembler:  assembler.New(reader, infra.NewFSSchemaReader(schemaRoot), assemblies, schemas),
		Parts:      reader,
		Assemblies: assemblies,
		Schemas:    schemas,
	}
}

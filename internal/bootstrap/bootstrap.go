// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package bootstrap wires the assembly engine to its filesystem
// adapters for the CLI. This function is the single place where the
// production adapter set is chosen.
package bootstrap

import (
	"github.com/kraklabs/ymlforge/pkg/assembler"
	"github.com/kraklabs/ymlforge/pkg/infra"
)

// App bundles the assembled engine with the reader the CLI also uses
// directly for glob expansion.
type App struct {
	Assembler *assembler.Assembler
	Parts     *infra.FSPartReader
}

// NewApp builds a filesystem-backed assembler reading parts and schemas
// beneath root and writing outputs beneath outDir.
func NewApp(root, outDir string) *App {
	parts := infra.NewFSPartReader(root)
	return &App{
		Assembler: assembler.New(
			parts,
			infra.NewFSSchemaReader(root),
			infra.NewFSAssemblySink(outDir),
			infra.NewFSSchemaSink(outDir),
		),
		Parts: parts,
	}
}

// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package variables implements the variable scope of the assembly
// pipeline and the injection pass that rewrites $name references and
// evaluates the resulting expressions inside document strings.
package variables

// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package assembler drives the document assembly pipeline: recursive
// part loading with variable scoping, mix-in collection and injection,
// transformation over the flattened view, optional schema validation,
// and delivery to the output sinks.
package assembler

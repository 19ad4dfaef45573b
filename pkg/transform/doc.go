// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package transform implements the last stage of the assembly pipeline:
// flattening a document into an ordered list of (dotted path, leaf)
// pairs, applying the operations extracted from the reserved _transform
// key through the expression evaluator, and materializing the list back
// into a document.
package transform

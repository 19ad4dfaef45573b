// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package document defines the in-memory value model shared by every
// stage of the assembly pipeline.
//
// A Value is a recursive sum over the YAML data model: null, booleans,
// numbers (integers and floats kept distinct), strings, sequences,
// insertion-ordered mappings, and tagged values (a textual tag label
// wrapping an inner Value). Values are plain trees: there is no sharing
// between nodes, and every pipeline stage either returns fresh nodes or
// mutates a tree it exclusively owns.
//
// The package also carries the conversions at the model boundary:
// yaml.Node on the parse/emit side (preserving tags and key order) and
// JSON on the validation/output side.
package document

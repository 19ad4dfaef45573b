// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package infra provides the concrete adapters behind the engine's
// capability interfaces: filesystem-backed part and schema readers and
// output sinks for the CLI, and in-memory counterparts for tests and
// embedding.
package infra

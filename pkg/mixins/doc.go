// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package mixins implements the deferred-contribution mechanism of the
// assembly pipeline: the trim pass strips !mix-tagged mapping entries
// into a side table keyed by destination path, and the injection pass
// folds the table back into the document with structural merges.
package mixins

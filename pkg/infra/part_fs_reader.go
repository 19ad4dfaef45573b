// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/internal/metrics"
	"github.com/kraklabs/ymlforge/pkg/document"
)

// PartExtension is the fixed extension of part source files. Glob
// patterns and identifiers are written without it.
const PartExtension = ".pyml"

// FSPartReader resolves part identifiers against a root directory, with
// a read-through cache of parsed values. The cache is the only state
// shared across assembly workers; it takes a single-writer lock, and
// two workers racing on the same identifier may both parse it, which is
// harmless (idempotent insert, last write wins).
type FSPartReader struct {
	root string

	mu    sync.RWMutex
	cache map[string]*document.Value
}

// NewFSPartReader creates a reader rooted at the given directory.
func NewFSPartReader(root string) *FSPartReader {
	return &FSPartReader{root: root, cache: map[string]*document.Value{}}
}

// Get resolves an identifier to its parsed raw value, reading through
// the cache. Hits and misses print their marker line.
func (r *FSPartReader) Get(identifier string) (*document.Value, error) {
	r.mu.RLock()
	cached, ok := r.cache[identifier]
	r.mu.RUnlock()
	if ok {
		fmt.Printf("reading from cache: %s\n", identifier)
		metrics.PartCacheHits.Inc()
		return cached.Clone(), nil
	}

	fmt.Printf("reading: %s\n", identifier)
	metrics.PartCacheMisses.Inc()

	path := filepath.Join(r.root, identifier+PartExtension)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Io("could not read part %s", identifier).Wrap(err)
	}
	value, err := document.Parse(data)
	if err != nil {
		return nil, errors.Parse("could not parse part %s", identifier).Wrap(err)
	}

	r.mu.Lock()
	r.cache[identifier] = value
	r.mu.Unlock()

	return value.Clone(), nil
}

// ExpandGlob expands a glob pattern relative to the root, returning
// sorted relative identifiers with the part extension stripped.
func (r *FSPartReader) ExpandGlob(pattern string) ([]string, error) {
	root, err := filepath.Abs(r.root)
	if err != nil {
		return nil, errors.Io("could not resolve root %s", r.root).Wrap(err)
	}
	if _, err := os.Stat(root); err != nil {
		return nil, errors.Io("could not open root %s", r.root).Wrap(err)
	}

	matches, err := doublestar.Glob(os.DirFS(root), filepath.ToSlash(pattern)+PartExtension)
	if err != nil {
		return nil, errors.Io("could not expand glob %s", pattern).Wrap(err)
	}

	identifiers := make([]string, 0, len(matches))
	for _, m := range matches {
		identifiers = append(identifiers, strings.TrimSuffix(m, PartExtension))
	}
	sort.Strings(identifiers)
	return identifiers, nil
}

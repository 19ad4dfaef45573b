// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package infra

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/pkg/document"
)

// MemPartReader serves parts from an in-memory map of YAML sources,
// keyed by identifier. It backs the test suite.
type MemPartReader struct {
	parts map[string]string
}

// NewMemPartReader creates a reader over the given sources.
func NewMemPartReader(parts map[string]string) *MemPartReader {
	return &MemPartReader{parts: parts}
}

// Get parses and returns the source registered for an identifier.
func (r *MemPartReader) Get(identifier string) (*document.Value, error) {
	src, ok := r.parts[identifier]
	if !ok {
		return nil, errors.Io("no part registered for %s", identifier)
	}
	value, err := document.Parse([]byte(src))
	if err != nil {
		return nil, errors.Parse("could not parse part %s", identifier).Wrap(err)
	}
	return value, nil
}

// ExpandGlob matches the pattern against the registered identifiers.
func (r *MemPartReader) ExpandGlob(pattern string) ([]string, error) {
	var out []string
	for id := range r.parts {
		ok, err := doublestar.Match(pattern, id)
		if err != nil {
			return nil, errors.Io("could not expand glob %s", pattern).Wrap(err)
		}
		if ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}

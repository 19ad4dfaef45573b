// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package infra

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/internal/output"
)

// FSSchemaSink writes validated schemas as pretty-printed JSON beneath
// an output directory, replacing the key's extension with .json.
type FSSchemaSink struct {
	dir string
}

// NewFSSchemaSink creates a sink writing beneath dir.
func NewFSSchemaSink(dir string) *FSSchemaSink {
	return &FSSchemaSink{dir: dir}
}

// Write stores the schema JSON under the key.
func (s *FSSchemaSink) Write(schema any, key string) error {
	key = strings.TrimSuffix(key, filepath.Ext(key))
	outPath := filepath.Join(s.dir, key+".json")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return errors.Io("could not create output directory").Wrap(err)
	}

	data, err := output.PrettyJSON(schema)
	if err != nil {
		return errors.Io("could not serialize schema %s", key).Wrap(err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return errors.Io("could not write schema to output directory").Wrap(err)
	}
	return nil
}

// MemSchemaSink keeps the last written schema. It backs the test suite.
type MemSchemaSink struct {
	mu     sync.Mutex
	schema any
	ok     bool
}

// NewMemSchemaSink creates an empty sink.
func NewMemSchemaSink() *MemSchemaSink {
	return &MemSchemaSink{}
}

// Write stores the schema.
func (s *MemSchemaSink) Write(schema any, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schema = schema
	s.ok = true
	return nil
}

// Schema returns the last written schema.
func (s *MemSchemaSink) Schema() (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schema, s.ok
}

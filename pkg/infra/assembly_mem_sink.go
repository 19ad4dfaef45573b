// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package infra

import (
	"sync"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/pkg/adapters"
	"github.com/kraklabs/ymlforge/pkg/document"
)

// MemAssemblySink collects assemblies into per-format maps keyed by
// entry. Insertion is guarded by a single-writer lock; concurrent
// workers share one sink.
type MemAssemblySink struct {
	mu   sync.Mutex
	yaml map[string]*document.Value
	json map[string]any
}

// NewMemAssemblySink creates an empty sink.
func NewMemAssemblySink() *MemAssemblySink {
	return &MemAssemblySink{
		yaml: map[string]*document.Value{},
		json: map[string]any{},
	}
}

// Write stores the value under the entry key in the map matching the
// requested format.
func (s *MemAssemblySink) Write(value *document.Value, key string, format adapters.Format) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch format {
	case adapters.FormatJSON:
		converted, err := value.ToJSONValue()
		if err != nil {
			return errors.Io("could not convert assembly %s to json", key).Wrap(err)
		}
		s.json[key] = converted
	default:
		s.yaml[key] = value.Clone()
	}
	return nil
}

// YAMLOutput returns the document-form assembly stored for a key.
func (s *MemAssemblySink) YAMLOutput(key string) (*document.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.yaml[key]
	return v, ok
}

// JSONOutput returns the JSON-form assembly stored for a key.
func (s *MemAssemblySink) JSONOutput(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.json[key]
	return v, ok
}

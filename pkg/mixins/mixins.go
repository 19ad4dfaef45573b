// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package mixins

import (
	"github.com/kraklabs/ymlforge/pkg/document"
)

// Table accumulates mix-in contributions per destination path. Keys are
// dotted paths interpreted at injection time; contributions for a key
// keep their collection order, and keys keep the order they first
// appeared in.
type Table struct {
	keys    []string
	entries map[string][]*document.Value
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{entries: map[string][]*document.Value{}}
}

// Add appends contributions under a destination path.
func (t *Table) Add(key string, values ...*document.Value) {
	if _, ok := t.entries[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.entries[key] = append(t.entries[key], values...)
}

// Merge appends every entry of other into t, preserving order.
func (t *Table) Merge(other *Table) {
	for _, key := range other.keys {
		t.Add(key, other.entries[key]...)
	}
}

// Get returns the contributions collected for a path.
func (t *Table) Get(key string) []*document.Value {
	return t.entries[key]
}

// Keys returns the destination paths in first-appearance order.
func (t *Table) Keys() []string {
	return t.keys
}

// Len returns the number of distinct destination paths.
func (t *Table) Len() int {
	return len(t.keys)
}

// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package variables

import (
	"sort"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/pkg/document"
)

// Variables maps names to document values. A scope is flat: includer
// keys override includee keys at the include site, and there is no
// lexical nesting beyond include sites.
//
// Lookup order is irrelevant, but substitution iterates names in sorted
// order so a pass is deterministic.
type Variables map[string]*document.Value

// New returns an empty scope.
func New() Variables {
	return Variables{}
}

// FromStrings builds a scope from raw key=value CLI bindings. Every
// value enters as a string.
func FromStrings(m map[string]string) Variables {
	vars := New()
	for k, v := range m {
		vars[k] = document.String(v)
	}
	return vars
}

// FromValue interprets a document value as a scope: a mapping with
// string keys, or null for the empty scope. Anything else is a parse
// error, as is a non-string key.
func FromValue(v *document.Value) (Variables, error) {
	vars := New()
	switch v.Kind {
	case document.KindNull:
		return vars, nil
	case document.KindMapping:
		for _, e := range v.Map {
			if e.Key.Kind != document.KindString {
				return nil, errors.Parse("variable key is not a string")
			}
			vars[e.Key.Str] = e.Value
		}
		return vars, nil
	}
	return nil, errors.Parse("cannot parse as variables")
}

// Clone returns a shallow copy of the scope. Values are shared; the
// injection pass never mutates them.
func (vars Variables) Clone() Variables {
	out := make(Variables, len(vars))
	for k, v := range vars {
		out[k] = v
	}
	return out
}

// Extend merges overrides into a clone of the scope. Override keys win
// on conflict.
func (vars Variables) Extend(overrides Variables) Variables {
	out := vars.Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// names returns the variable names in sorted order.
func (vars Variables) names() []string {
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

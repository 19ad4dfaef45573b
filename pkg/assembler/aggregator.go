// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package assembler

import (
	"strings"

	"github.com/kraklabs/ymlforge/pkg/adapters"
	"github.com/kraklabs/ymlforge/pkg/document"
	"github.com/kraklabs/ymlforge/pkg/mixins"
	"github.com/kraklabs/ymlforge/pkg/variables"
)

// includeTagPrefix marks a tagged node as an inclusion; the remainder
// of the label is the included identifier, and the inner value supplies
// variable overrides for the included subtree.
const includeTagPrefix = "!inc::"

// Aggregator loads one entry: it resolves inclusions recursively,
// injects variables along the way, and accumulates the mix-in
// contributions of the whole subtree. One aggregator serves one entry.
type Aggregator struct {
	reader adapters.PartReader
	mixins *mixins.Table
}

// NewAggregator creates an aggregator reading parts from reader.
func NewAggregator(reader adapters.PartReader) *Aggregator {
	return &Aggregator{reader: reader, mixins: mixins.NewTable()}
}

// Mixins returns the table accumulated so far.
func (a *Aggregator) Mixins() *mixins.Table {
	return a.mixins
}

// Load produces the fully-included, variable-substituted value for an
// identifier. The returned value carries no inclusion tags; mix-in
// contributions land in the aggregator's table.
func (a *Aggregator) Load(identifier string, vars variables.Variables) (*document.Value, error) {
	raw, err := a.reader.Get(identifier)
	if err != nil {
		return nil, err
	}

	part, local, err := parsePart(raw, vars)
	if err != nil {
		return nil, err
	}

	// Mix-in bodies are aggregated on their own before being recorded,
	// so inclusions inside them resolve with the scope of this part.
	for _, key := range local.Keys() {
		for _, contribution := range local.Get(key) {
			sub := NewAggregator(a.reader)
			resolved, err := sub.visit(contribution, vars)
			if err != nil {
				return nil, err
			}
			sub.mixins.Add(key, resolved)
			a.mixins.Merge(sub.mixins)
		}
	}

	return a.visit(part, vars)
}

// visit resolves inclusion tags and elides nulls. Non-inclusion tags
// are preserved with their inner value visited.
func (a *Aggregator) visit(v *document.Value, vars variables.Variables) (*document.Value, error) {
	switch v.Kind {
	case document.KindTagged:
		return a.visitTagged(v, vars)
	case document.KindMapping:
		out := document.Mapping()
		for _, e := range v.Map {
			child, err := a.visit(e.Value, vars)
			if err != nil {
				return nil, err
			}
			if child.IsNull() {
				continue
			}
			out.Map = append(out.Map, document.MapEntry{Key: e.Key.Clone(), Value: child})
		}
		if len(out.Map) == 0 {
			return document.Null(), nil
		}
		return out, nil
	case document.KindSequence:
		out := document.Sequence()
		for _, e := range v.Seq {
			child, err := a.visit(e, vars)
			if err != nil {
				return nil, err
			}
			if child.IsNull() {
				continue
			}
			out.Seq = append(out.Seq, child)
		}
		if len(out.Seq) == 0 {
			return document.Null(), nil
		}
		return out, nil
	}
	return v.Clone(), nil
}

func (a *Aggregator) visitTagged(v *document.Value, vars variables.Variables) (*document.Value, error) {
	if !strings.HasPrefix(v.Tag, includeTagPrefix) {
		inner, err := a.visit(v.Inner, vars)
		if err != nil {
			return nil, err
		}
		return document.Tagged(v.Tag, inner), nil
	}

	identifier := strings.TrimPrefix(v.Tag, includeTagPrefix)
	overrides, err := variables.FromValue(v.Inner)
	if err != nil {
		return nil, err
	}
	scope := vars.Extend(overrides)

	included, err := a.Load(identifier, scope)
	if err != nil {
		return nil, err
	}

	// A second injection pass lets identifiers defined only at the
	// include site reach the included text; it is a no-op on text the
	// recursive load already substituted.
	included, err = scope.Inject(included)
	if err != nil {
		return nil, err
	}
	return a.visit(included, scope)
}

// parsePart runs the per-part passes on a freshly read value: variable
// injection with the current scope, then the mix-in trim.
func parsePart(raw *document.Value, vars variables.Variables) (*document.Value, *mixins.Table, error) {
	injected, err := vars.Inject(raw)
	if err != nil {
		return nil, nil, err
	}
	table := mixins.NewTable()
	trimmed, err := table.Trim(injected)
	if err != nil {
		return nil, nil, err
	}
	return trimmed, table, nil
}

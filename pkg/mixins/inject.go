// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package mixins

import (
	"strconv"
	"strings"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/pkg/document"
)

// Inject folds every table entry into the document. The dotted key is
// resolved segment by segment from the root, materializing intermediate
// containers as needed; the contributions are then merged at the
// destination in collection order.
func (t *Table) Inject(doc *document.Value) (*document.Value, error) {
	if t.Len() == 0 {
		return doc.Clone(), nil
	}

	out := doc.Clone()
	for _, key := range t.keys {
		target, err := entryToMixOn(key, out)
		if err != nil {
			return nil, err
		}
		merged := target.Clone()
		for _, contribution := range t.entries[key] {
			merged, err = mergeValues(merged, contribution)
			if err != nil {
				return nil, err
			}
		}
		*target = *merged
	}
	return out, nil
}

// entryToMixOn walks the dotted key from the root, creating containers
// along the way: a null node becomes a sequence when the segment parses
// as an index and a mapping otherwise; missing mapping keys are
// inserted as null; sequences grow to cover the index. Descending into
// a scalar, or into a sequence with a non-numeric segment, is an error.
func entryToMixOn(key string, root *document.Value) (*document.Value, error) {
	current := root
	for _, part := range strings.Split(key, ".") {
		switch current.Kind {
		case document.KindNull:
			if index, err := strconv.Atoi(part); err == nil && index >= 0 {
				seq := make([]*document.Value, index+1)
				for i := range seq {
					seq[i] = document.Null()
				}
				*current = document.Value{Kind: document.KindSequence, Seq: seq}
				current = current.Seq[index]
			} else {
				m := document.Mapping()
				m.MapSet(part, document.Null())
				*current = *m
				current = current.Map[0].Value
			}
		case document.KindMapping:
			entry, ok := current.MapGet(part)
			if !ok {
				current.MapSet(part, document.Null())
				entry, _ = current.MapGet(part)
			}
			current = entry
		case document.KindSequence:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 {
				return nil, errors.Parse("cannot mix on %s because it is a sequence", key)
			}
			for len(current.Seq) <= index {
				current.Seq = append(current.Seq, document.Null())
			}
			current = current.Seq[index]
		default:
			return nil, errors.Parse("cannot mix on %s because it is a leaf", key)
		}
	}
	return current, nil
}

// mergeValues combines the value already at the destination with one
// contribution. Null yields to the other side; mappings extend with the
// contribution winning on conflict; sequences concatenate; a scalar
// meeting a scalar becomes a two-element sequence.
func mergeValues(base, mix *document.Value) (*document.Value, error) {
	switch {
	case base.Kind == document.KindNull:
		return mix.Clone(), nil
	case mix.Kind == document.KindNull:
		return base, nil
	case base.Kind == document.KindMapping && mix.Kind == document.KindMapping:
		for _, e := range mix.Map {
			if e.Key.Kind == document.KindString {
				base.MapSet(e.Key.Str, e.Value.Clone())
				continue
			}
			replaced := false
			for i, be := range base.Map {
				if be.Key.Equal(e.Key) {
					base.Map[i].Value = e.Value.Clone()
					replaced = true
					break
				}
			}
			if !replaced {
				base.Map = append(base.Map, document.MapEntry{Key: e.Key.Clone(), Value: e.Value.Clone()})
			}
		}
		return base, nil
	case base.Kind == document.KindSequence && mix.Kind == document.KindSequence:
		for _, e := range mix.Seq {
			base.Seq = append(base.Seq, e.Clone())
		}
		return base, nil
	case base.Kind == document.KindSequence && mix.Kind == document.KindMapping:
		return nil, errors.Parse("cannot mix a mapping value into a sequence")
	case base.Kind == document.KindSequence:
		base.Seq = append(base.Seq, mix.Clone())
		return base, nil
	case mix.Kind == document.KindSequence:
		out := document.Sequence(base)
		for _, e := range mix.Seq {
			out.Seq = append(out.Seq, e.Clone())
		}
		return out, nil
	default:
		return document.Sequence(base, mix.Clone()), nil
	}
}

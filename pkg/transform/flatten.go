// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package transform

import (
	"sort"
	"strconv"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/pkg/document"
)

// operationsKey is the reserved mapping key holding the operations
// list. It is removed from the document before flattening.
const operationsKey = "_transform"

// FromDocument flattens a document into its ordered leaf view. Numbers
// are normalized to floating point at this layer; integer form is
// recovered at emit time for leaves the transformer left whole. Tagged
// nodes must not reach this stage.
func FromDocument(v *document.Value) (*List, error) {
	v = v.Clone()

	var ops []string
	if v.Kind == document.KindMapping {
		if entry := v.MapDelete(operationsKey); entry != nil {
			extracted, err := extractOperations(entry)
			if err != nil {
				return nil, err
			}
			ops = extracted
		}
	}

	list := NewList(ops)
	if err := flattenInto(list, v, ""); err != nil {
		return nil, err
	}
	return list, nil
}

// extractOperations reads the _transform value: a single string, a
// sequence of strings and/or string sequences, or a mapping whose keys
// are sorted lexicographically and whose values are strings or string
// sequences.
func extractOperations(v *document.Value) ([]string, error) {
	switch v.Kind {
	case document.KindString:
		return []string{v.Str}, nil
	case document.KindSequence:
		var ops []string
		for _, e := range v.Seq {
			switch e.Kind {
			case document.KindString:
				ops = append(ops, e.Str)
			case document.KindSequence:
				nested, err := stringSlice(e)
				if err != nil {
					return nil, err
				}
				ops = append(ops, nested...)
			default:
				return nil, errors.Transform("_transform should be composed of strings or of lists of string")
			}
		}
		return ops, nil
	case document.KindMapping:
		keys := make([]string, 0, len(v.Map))
		for _, e := range v.Map {
			if e.Key.Kind != document.KindString {
				return nil, errors.Transform("_transform should be a mapping of string")
			}
			keys = append(keys, e.Key.Str)
		}
		sort.Strings(keys)

		var ops []string
		for _, key := range keys {
			entry, _ := v.MapGet(key)
			switch entry.Kind {
			case document.KindString:
				ops = append(ops, entry.Str)
			case document.KindSequence:
				nested, err := stringSlice(entry)
				if err != nil {
					return nil, err
				}
				ops = append(ops, nested...)
			default:
				return nil, errors.Transform("_transform should be a mapping of string")
			}
		}
		return ops, nil
	}
	return nil, errors.Transform("_transform should be a string or a list of string")
}

func stringSlice(v *document.Value) ([]string, error) {
	out := make([]string, 0, len(v.Seq))
	for _, e := range v.Seq {
		if e.Kind != document.KindString {
			return nil, errors.Transform("_transform should be a list of string")
		}
		out = append(out, e.Str)
	}
	return out, nil
}

func flattenInto(list *List, v *document.Value, path string) error {
	switch v.Kind {
	case document.KindString:
		list.Set(path, v.Str)
	case document.KindBool:
		list.Set(path, v.Bool)
	case document.KindInt:
		list.Set(path, float64(v.Int))
	case document.KindFloat:
		list.Set(path, v.Float)
	case document.KindNull:
		list.Set(path, nil)
	case document.KindMapping:
		for _, e := range v.Map {
			if e.Key.Kind != document.KindString {
				return errors.Transform("mapping key is not a string: %s", e.Key.GoString())
			}
			child := e.Key.Str
			if path != "" {
				child = path + "." + child
			}
			if err := flattenInto(list, e.Value, child); err != nil {
				return err
			}
		}
	case document.KindSequence:
		for i, e := range v.Seq {
			child := strconv.Itoa(i)
			if path != "" {
				child = path + "." + child
			}
			if err := flattenInto(list, e, child); err != nil {
				return err
			}
		}
	case document.KindTagged:
		return errors.Transform("unhandled tag: %s", v.Tag)
	}
	return nil
}

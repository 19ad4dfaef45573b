// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package mixins

import (
	"strings"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/pkg/document"
)

// mixTag marks a mapping entry for relocation into the table. The
// marker is matched as a prefix of the tag label.
const mixTag = "!mix"

// Trim recursively removes !mix-tagged mapping entries from v,
// recording each stripped value in the table under the entry's key.
// The inner value is trimmed first, so nested !mix entries contribute
// under their own keys. Only mapping entries produce contributions: a
// !mix-tagged sequence element stays a tagged value.
func (t *Table) Trim(v *document.Value) (*document.Value, error) {
	switch v.Kind {
	case document.KindTagged:
		inner, err := t.Trim(v.Inner)
		if err != nil {
			return nil, err
		}
		return document.Tagged(v.Tag, inner), nil
	case document.KindSequence:
		out := make([]*document.Value, 0, len(v.Seq))
		for _, e := range v.Seq {
			trimmed, err := t.Trim(e)
			if err != nil {
				return nil, err
			}
			out = append(out, trimmed)
		}
		return document.Sequence(out...), nil
	case document.KindMapping:
		return t.trimMapping(v)
	}
	return v.Clone(), nil
}

func (t *Table) trimMapping(v *document.Value) (*document.Value, error) {
	out := document.Mapping()
	for _, e := range v.Map {
		if e.Value.Kind == document.KindTagged && strings.HasPrefix(e.Value.Tag, mixTag) {
			if e.Key.Kind != document.KindString {
				return nil, errors.Parse("invalid key for mixin: %s", e.Key.GoString())
			}
			contribution, err := t.Trim(e.Value.Inner)
			if err != nil {
				return nil, err
			}
			t.Add(e.Key.Str, contribution)
			continue
		}

		trimmed, err := t.Trim(e.Value)
		if err != nil {
			return nil, err
		}
		out.Map = append(out.Map, document.MapEntry{Key: e.Key.Clone(), Value: trimmed})
	}
	return out, nil
}

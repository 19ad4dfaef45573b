// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package transform

import (
	"math"
	"strconv"
	"strings"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/pkg/document"
)

// ToDocument materializes the flat list back into a document tree. The
// first path's first segment decides the root container; at each level
// the kind of the next segment decides the child container, numeric
// segments producing sequences and anything else mappings. Existing
// non-null nodes along a path are traversed without being overwritten.
func (l *List) ToDocument() (*document.Value, error) {
	if len(l.pairs) == 0 {
		return document.Null(), nil
	}

	first := l.pairs[0]
	if first.Path == "" {
		return leafValue(first.Leaf)
	}

	root := containerFor(strings.SplitN(first.Path, ".", 2)[0])

	for _, pair := range l.pairs {
		leaf, err := leafValue(pair.Leaf)
		if err != nil {
			return nil, err
		}

		current := root
		parts := strings.Split(pair.Path, ".")
		for pi, part := range parts {
			var next *string
			if pi+1 < len(parts) {
				next = &parts[pi+1]
			}

			switch current.Kind {
			case document.KindSequence:
				index, err := strconv.Atoi(part)
				if err != nil || index < 0 {
					return nil, errors.Transform("expected a number, got %q", part)
				}
				for len(current.Seq) <= index {
					current.Seq = append(current.Seq, document.Null())
				}
				if current.Seq[index].Kind == document.KindNull {
					current.Seq[index] = childFor(next, leaf)
				}
				current = current.Seq[index]
			case document.KindMapping:
				entry, ok := current.MapGet(part)
				if !ok {
					current.MapSet(part, childFor(next, leaf))
					entry, _ = current.MapGet(part)
				} else if entry.Kind == document.KindNull {
					*entry = *childFor(next, leaf)
				}
				current = entry
			default:
				return nil, errors.Transform("can only insert into a mapping or a sequence, got %s", current.Kind)
			}
		}
	}

	return root, nil
}

// containerFor picks the container kind implied by a path segment.
func containerFor(segment string) *document.Value {
	if _, err := strconv.Atoi(segment); err == nil {
		return document.Sequence()
	}
	return document.Mapping()
}

// childFor returns the node to materialize under the current segment: a
// container shaped by the following segment, or the leaf itself when
// the path ends here.
func childFor(next *string, leaf *document.Value) *document.Value {
	if next == nil {
		return leaf
	}
	return containerFor(*next)
}

// leafValue converts a flat leaf back into a document value. Floats
// whose fractional part is zero and whose magnitude fits an integer are
// emitted as integers; this downcast is the only place integer-ness is
// recovered after evaluation.
func leafValue(leaf Leaf) (*document.Value, error) {
	switch n := leaf.(type) {
	case nil:
		return document.Null(), nil
	case bool:
		return document.Bool(n), nil
	case string:
		return document.String(n), nil
	case int:
		return document.Int(int64(n)), nil
	case int64:
		return document.Int(n), nil
	case float64:
		if n == math.Trunc(n) && n < float64(math.MaxInt64) && n > float64(math.MinInt64) {
			return document.Int(int64(n)), nil
		}
		return document.Float(n), nil
	}
	return nil, errors.Transform("can't convert %v to a document value", leaf)
}

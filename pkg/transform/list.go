// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package transform

// Leaf is one scalar of the flat view: nil, bool, int64, float64 or
// string. Document numbers enter as float64; the evaluator may hand
// back int64.
type Leaf any

// Pair is one (path, leaf) element of the flat view. The path is the
// dotted trail of mapping keys and sequence indices from the root.
type Pair struct {
	Path string
	Leaf Leaf
}

// List is the ordered flat view of a document, together with the
// operations extracted from the reserved _transform key. Order is the
// left-to-right depth-first walk of the source tree; rewriting an
// existing path keeps its position, new paths append.
type List struct {
	pairs []Pair
	ops   []string
}

// NewList returns an empty list carrying the given operations.
func NewList(ops []string) *List {
	return &List{ops: ops}
}

// Set writes a leaf, keeping the position of an existing path and
// appending a new one.
func (l *List) Set(path string, leaf Leaf) {
	for i := range l.pairs {
		if l.pairs[i].Path == path {
			l.pairs[i].Leaf = leaf
			return
		}
	}
	l.pairs = append(l.pairs, Pair{Path: path, Leaf: leaf})
}

// Get returns the leaf stored at a path.
func (l *List) Get(path string) (Leaf, bool) {
	for i := range l.pairs {
		if l.pairs[i].Path == path {
			return l.pairs[i].Leaf, true
		}
	}
	return nil, false
}

// Pairs returns the pairs in order. The slice is the list's backing
// store; callers must not mutate it.
func (l *List) Pairs() []Pair {
	return l.pairs
}

// Operations returns the transform operations in application order.
func (l *List) Operations() []string {
	return l.ops
}

// Len returns the number of pairs.
func (l *List) Len() int {
	return len(l.pairs)
}

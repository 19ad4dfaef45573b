// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package document

import (
	"fmt"
	"strconv"
)

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
	KindTagged
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindTagged:
		return "tagged"
	}
	return "unknown"
}

// MapEntry is one key/value pair of a mapping. Mappings keep their
// entries in insertion order.
type MapEntry struct {
	Key   *Value
	Value *Value
}

// Value is one node of a document tree. Exactly the fields relevant to
// Kind are meaningful; the rest are zero.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Seq   []*Value
	Map   []MapEntry

	// Tag and Inner are set for KindTagged only. Tag keeps its leading
	// "!" exactly as written in the source.
	Tag   string
	Inner *Value
}

// Null returns a fresh null value.
func Null() *Value { return &Value{Kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

// Int returns an integer value.
func Int(i int64) *Value { return &Value{Kind: KindInt, Int: i} }

// Float returns a floating-point value.
func Float(f float64) *Value { return &Value{Kind: KindFloat, Float: f} }

// String returns a string value.
func String(s string) *Value { return &Value{Kind: KindString, Str: s} }

// Sequence returns a sequence over the given elements.
func Sequence(elems ...*Value) *Value {
	return &Value{Kind: KindSequence, Seq: elems}
}

// Mapping returns an empty mapping.
func Mapping() *Value { return &Value{Kind: KindMapping} }

// Tagged wraps inner with a tag label.
func Tagged(tag string, inner *Value) *Value {
	return &Value{Kind: KindTagged, Tag: tag, Inner: inner}
}

// IsNull reports whether v is the null variant.
func (v *Value) IsNull() bool { return v.Kind == KindNull }

// MapGet looks up a string key in a mapping. The second result is false
// when the key is absent or v is not a mapping.
func (v *Value) MapGet(key string) (*Value, bool) {
	if v.Kind != KindMapping {
		return nil, false
	}
	for _, e := range v.Map {
		if e.Key.Kind == KindString && e.Key.Str == key {
			return e.Value, true
		}
	}
	return nil, false
}

// MapSet sets a string key in a mapping. An existing key keeps its
// position and gets the new value; a new key is appended.
func (v *Value) MapSet(key string, val *Value) {
	for i, e := range v.Map {
		if e.Key.Kind == KindString && e.Key.Str == key {
			v.Map[i].Value = val
			return
		}
	}
	v.Map = append(v.Map, MapEntry{Key: String(key), Value: val})
}

// MapDelete removes a string key from a mapping and returns the removed
// value, or nil when the key was absent.
func (v *Value) MapDelete(key string) *Value {
	for i, e := range v.Map {
		if e.Key.Kind == KindString && e.Key.Str == key {
			removed := e.Value
			v.Map = append(v.Map[:i], v.Map[i+1:]...)
			return removed
		}
	}
	return nil
}

// Equal reports structural equality. Mappings compare entries in order,
// so two mappings with the same pairs in a different order are unequal.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindInt:
		return v.Int == other.Int
	case KindFloat:
		return v.Float == other.Float
	case KindString:
		return v.Str == other.Str
	case KindSequence:
		if len(v.Seq) != len(other.Seq) {
			return false
		}
		for i := range v.Seq {
			if !v.Seq[i].Equal(other.Seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.Map) != len(other.Map) {
			return false
		}
		for i := range v.Map {
			if !v.Map[i].Key.Equal(other.Map[i].Key) || !v.Map[i].Value.Equal(other.Map[i].Value) {
				return false
			}
		}
		return true
	case KindTagged:
		return v.Tag == other.Tag && v.Inner.Equal(other.Inner)
	}
	return false
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	out := &Value{Kind: v.Kind, Bool: v.Bool, Int: v.Int, Float: v.Float, Str: v.Str, Tag: v.Tag}
	if v.Inner != nil {
		out.Inner = v.Inner.Clone()
	}
	if v.Seq != nil {
		out.Seq = make([]*Value, len(v.Seq))
		for i, e := range v.Seq {
			out.Seq[i] = e.Clone()
		}
	}
	if v.Map != nil {
		out.Map = make([]MapEntry, len(v.Map))
		for i, e := range v.Map {
			out.Map[i] = MapEntry{Key: e.Key.Clone(), Value: e.Value.Clone()}
		}
	}
	return out
}

// Render returns the textual form of a scalar the way it appears when
// spliced into a string: strings verbatim, numbers in decimal form,
// booleans as true/false. Containers, tags and null render empty.
func (v *Value) Render() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	}
	return ""
}

// GoString helps debugging output in tests.
func (v *Value) GoString() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool, KindInt, KindFloat:
		return v.Render()
	case KindString:
		return strconv.Quote(v.Str)
	case KindSequence:
		s := "["
		for i, e := range v.Seq {
			if i > 0 {
				s += ", "
			}
			s += e.GoString()
		}
		return s + "]"
	case KindMapping:
		s := "{"
		for i, e := range v.Map {
			if i > 0 {
				s += ", "
			}
			s += e.Key.GoString() + ": " + e.Value.GoString()
		}
		return s + "}"
	case KindTagged:
		return fmt.Sprintf("%s %s", v.Tag, v.Inner.GoString())
	}
	return "?"
}

// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package transform

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/pkg/document"
)

func TestTransform_Assignments(t *testing.T) {
	list := NewList([]string{
		"a.0.u = a.0.u + 1",
		"a.0.v = a.0.v || true",
	})
	list.Set("a.0.u", float64(1))
	list.Set("a.0.v", false)
	list.Set("b.x", float64(3))

	require.NoError(t, list.Transform())

	u, _ := list.Get("a.0.u")
	assert.Equal(t, float64(2), u)
	v, _ := list.Get("a.0.v")
	assert.Equal(t, true, v)
	x, _ := list.Get("b.x")
	assert.Equal(t, float64(3), x)
}

func TestTransform_Ceil(t *testing.T) {
	list := NewList([]string{"ceiled = ceil(entry_int / 2)"})
	list.Set("entry_int", float64(3))

	require.NoError(t, list.Transform())

	ceiled, ok := list.Get("ceiled")
	require.True(t, ok)
	assert.InDelta(t, 2.0, ceiled, 0)
}

func TestTransform_MathFunctions(t *testing.T) {
	list := NewList([]string{
		"a = floor(2.7)",
		"b = round(2.4)",
		"c = abs(0 - 5)",
		"d = min(3, 1)",
		"e = max(3, 1)",
	})

	require.NoError(t, list.Transform())

	for path, want := range map[string]float64{"a": 2, "b": 2, "c": 5, "d": 1, "e": 3} {
		got, ok := list.Get(path)
		require.True(t, ok, path)
		assert.InDelta(t, want, toFloat(t, got), 0, path)
	}
}

func toFloat(t *testing.T, leaf Leaf) float64 {
	t.Helper()
	switch n := leaf.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	t.Fatalf("leaf %v (%T) is not numeric", leaf, leaf)
	return 0
}

func TestTransform_OrderMatters(t *testing.T) {
	run := func(ops []string) float64 {
		list := NewList(ops)
		list.Set("a", float64(3))
		require.NoError(t, list.Transform())
		got, _ := list.Get("a")
		return toFloat(t, got)
	}

	addThenDouble := run([]string{"a = a + 1", "a = a * 2"})
	doubleThenAdd := run([]string{"a = a * 2", "a = a + 1"})

	assert.InDelta(t, 8, addThenDouble, 0)
	assert.InDelta(t, 7, doubleThenAdd, 0)
	assert.NotEqual(t, addThenDouble, doubleThenAdd)
}

func TestTransform_NewPathAppends(t *testing.T) {
	list := NewList([]string{"derived = base * 2"})
	list.Set("base", float64(5))

	require.NoError(t, list.Transform())

	require.Equal(t, 2, list.Len())
	assert.Equal(t, "derived", list.Pairs()[1].Path)
}

func TestTransform_RewriteKeepsPosition(t *testing.T) {
	list := NewList([]string{"first = first + 1"})
	list.Set("first", float64(1))
	list.Set("second", float64(2))

	require.NoError(t, list.Transform())

	assert.Equal(t, "first", list.Pairs()[0].Path)
	assert.Equal(t, float64(2), list.Pairs()[0].Leaf)
}

func TestTransform_ComparisonOperatorsNotAssignments(t *testing.T) {
	list := NewList([]string{
		"eq = a == 3",
		"ne = a != 3",
		"le = a <= 3",
		"ge = a >= 3",
	})
	list.Set("a", float64(3))

	require.NoError(t, list.Transform())

	for path, want := range map[string]bool{"eq": true, "ne": false, "le": true, "ge": true} {
		got, ok := list.Get(path)
		require.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}
}

func TestTransform_FailingOperationCarriesDiagnostic(t *testing.T) {
	list := NewList([]string{"x = nonexistent + 1"})

	err := list.Transform()
	require.Error(t, err)

	var fe *errors.Error
	require.True(t, stderrors.As(err, &fe))
	assert.Equal(t, errors.KindTransform, fe.Kind)
}

func TestTransform_BareExpressionAllowed(t *testing.T) {
	list := NewList([]string{"1 + 1"})
	require.NoError(t, list.Transform())
	assert.Equal(t, 0, list.Len())
}

func TestTransform_EndToEnd(t *testing.T) {
	doc := mustParse(t, `
entry_int: 1
entry_float: 1.0
_transform:
  - entry_int = entry_int + 1.2
  - entry_float = entry_float + 1
`)
	list, err := FromDocument(doc)
	require.NoError(t, err)
	require.NoError(t, list.Transform())

	out, err := list.ToDocument()
	require.NoError(t, err)

	entryInt, _ := out.MapGet("entry_int")
	assert.True(t, entryInt.Equal(document.Float(2.2)), "got %s", entryInt.GoString())
	entryFloat, _ := out.MapGet("entry_float")
	assert.True(t, entryFloat.Equal(document.Int(2)), "got %s", entryFloat.GoString())
}

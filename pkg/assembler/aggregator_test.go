// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/ymlforge/pkg/document"
	"github.com/kraklabs/ymlforge/pkg/infra"
	"github.com/kraklabs/ymlforge/pkg/variables"
)

func mustParse(t *testing.T, src string) *document.Value {
	t.Helper()
	v, err := document.Parse([]byte(src))
	require.NoError(t, err)
	return v
}

func scope(t *testing.T, src string) variables.Variables {
	t.Helper()
	vars, err := variables.FromValue(mustParse(t, src))
	require.NoError(t, err)
	return vars
}

func TestLoad_InjectsVariablesAndCollectsMixins(t *testing.T) {
	agg := NewAggregator(infra.NewMemPartReader(map[string]string{
		"part": `
foo:
    - $test
    - $test2
bar: !mix
    - $test is $test2
`,
	}))

	got, err := agg.Load("part", scope(t, "test: test_value\ntest2: test_value2\n"))
	require.NoError(t, err)

	want := mustParse(t, "foo:\n  - test_value\n  - test_value2\n")
	assert.True(t, got.Equal(want), "got %s", got.GoString())

	bar := agg.Mixins().Get("bar")
	require.Len(t, bar, 1)
	assert.True(t, bar[0].Equal(mustParse(t, "- test_value is test_value2\n")))
}

func TestLoad_ResolvesIncludesWithBindings(t *testing.T) {
	agg := NewAggregator(infra.NewMemPartReader(map[string]string{
		"entry": `
story: !inc::stories/crash
    brand: AUDI
`,
		"stories/crash": `
content: It's a $brand car crash
`,
	}))

	got, err := agg.Load("entry", variables.New())
	require.NoError(t, err)

	want := mustParse(t, "story:\n  content: It's a AUDI car crash\n")
	assert.True(t, got.Equal(want), "got %s", got.GoString())
}

func TestLoad_IncluderWinsOnConflict(t *testing.T) {
	agg := NewAggregator(infra.NewMemPartReader(map[string]string{
		"entry": `
inner: !inc::sub
    name: override
`,
		"sub": "value: $name\n",
	}))

	got, err := agg.Load("entry", scope(t, "name: outer\n"))
	require.NoError(t, err)

	inner, ok := got.MapGet("inner")
	require.True(t, ok)
	value, ok := inner.MapGet("value")
	require.True(t, ok)
	assert.True(t, value.Equal(document.String("override")))
}

func TestLoad_IncludeWithoutBindings(t *testing.T) {
	agg := NewAggregator(infra.NewMemPartReader(map[string]string{
		"entry": "sub: !inc::leaf\n",
		"leaf":  "a: 1\n",
	}))

	got, err := agg.Load("entry", variables.New())
	require.NoError(t, err)

	want := mustParse(t, "sub:\n  a: 1\n")
	assert.True(t, got.Equal(want), "got %s", got.GoString())
}

func TestLoad_IncludeRejectsScalarBindings(t *testing.T) {
	agg := NewAggregator(infra.NewMemPartReader(map[string]string{
		"entry": "sub: !inc::leaf not_a_mapping\n",
		"leaf":  "a: 1\n",
	}))

	_, err := agg.Load("entry", variables.New())
	assert.Error(t, err)
}

func TestLoad_MixinsTravelAcrossIncludes(t *testing.T) {
	agg := NewAggregator(infra.NewMemPartReader(map[string]string{
		"entry": `
base: here
extra: !inc::fragment
`,
		"fragment": `
tags: !mix
    - imported
`,
	}))

	got, err := agg.Load("entry", variables.New())
	require.NoError(t, err)

	tags := agg.Mixins().Get("tags")
	require.Len(t, tags, 1)
	assert.True(t, tags[0].Equal(mustParse(t, "- imported\n")))

	// the fragment emptied out entirely, so its include site elides
	_, ok := got.MapGet("extra")
	assert.False(t, ok)
}

func TestLoad_MixinBodiesResolveIncludes(t *testing.T) {
	agg := NewAggregator(infra.NewMemPartReader(map[string]string{
		"entry": `
covers: !mix
    - !inc::cover
        size: 15
`,
		"cover": `
color: rose
size: $size
`,
	}))

	_, err := agg.Load("entry", variables.New())
	require.NoError(t, err)

	covers := agg.Mixins().Get("covers")
	require.Len(t, covers, 1)
	want := mustParse(t, "- color: rose\n  size: 15\n")
	assert.True(t, covers[0].Equal(want), "got %s", covers[0].GoString())
}

func TestLoad_NullElision(t *testing.T) {
	agg := NewAggregator(infra.NewMemPartReader(map[string]string{
		"entry": `
summary: $undefined_maybe
story:
    content: $gone
kept:
    - $gone
    - present
`,
	}))

	got, err := agg.Load("entry", scope(t, "undefined_maybe: null\ngone: null\n"))
	require.NoError(t, err)

	_, ok := got.MapGet("summary")
	assert.False(t, ok)
	_, ok = got.MapGet("story")
	assert.False(t, ok, "mapping emptied by elision collapses away")

	kept, ok := got.MapGet("kept")
	require.True(t, ok)
	require.Equal(t, document.KindSequence, kept.Kind)
	require.Len(t, kept.Seq, 1)
	assert.True(t, kept.Seq[0].Equal(document.String("present")))
}

func TestLoad_PreservesForeignTags(t *testing.T) {
	agg := NewAggregator(infra.NewMemPartReader(map[string]string{
		"entry": "x: !custom 3\n",
	}))

	got, err := agg.Load("entry", variables.New())
	require.NoError(t, err)

	x, ok := got.MapGet("x")
	require.True(t, ok)
	require.Equal(t, document.KindTagged, x.Kind)
	assert.Equal(t, "!custom", x.Tag)
}

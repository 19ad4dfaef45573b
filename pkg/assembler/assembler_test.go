// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package assembler_test

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/ymlforge/internal/errors"
	testinfra "github.com/kraklabs/ymlforge/internal/testing"
	"github.com/kraklabs/ymlforge/pkg/adapters"
	"github.com/kraklabs/ymlforge/pkg/document"
)

// bookParts is a small book assembled from several parts: an include
// with bindings, mix-ins contributed from both sides, and a transform.
var bookParts = map[string]string{
	"simple_book": `
title: Juliette coupe le gateau
summary: L'anniversaire de Juliette tourne mal
story: !inc::stories/cake
    chapter: 5
covers:
    - color: red
      size: 10
tags:
    - investigation
page:
    number: 39
    weight: 10
_transform: page.number = page.number + 1
`,
	"stories/cake": `
content: Elle a 21 ans et se coupe le doigt.
chapter: $chapter
tags: !mix
    - adult
covers: !mix
    - color: rose
      size: 15
    - color: black
      size: 20
`,
}

func yamlOutput(t *testing.T, h *testinfra.Harness, key string) *document.Value {
	t.Helper()
	out, ok := h.Assemblies.YAMLOutput(key)
	require.True(t, ok, "no yml output for %s", key)
	return out
}

func TestAssemble_Book(t *testing.T) {
	h := testinfra.Setup(t, t.TempDir(), bookParts)
	require.NoError(t, h.Assembler.Assemble("simple_book", "", nil, adapters.FormatYAML))

	book := yamlOutput(t, h, "simple_book")

	title, _ := book.MapGet("title")
	assert.True(t, title.Equal(document.String("Juliette coupe le gateau")))

	story, ok := book.MapGet("story")
	require.True(t, ok)
	chapter, _ := story.MapGet("chapter")
	assert.True(t, chapter.Equal(document.Int(5)))

	covers, ok := book.MapGet("covers")
	require.True(t, ok)
	require.Equal(t, document.KindSequence, covers.Kind)
	require.Len(t, covers.Seq, 3)
	colors := map[string]int64{}
	for _, c := range covers.Seq {
		color, _ := c.MapGet("color")
		size, _ := c.MapGet("size")
		colors[color.Str] = size.Int
	}
	assert.Equal(t, map[string]int64{"red": 10, "rose": 15, "black": 20}, colors)

	tags, ok := book.MapGet("tags")
	require.True(t, ok)
	require.Len(t, tags.Seq, 2)

	page, _ := book.MapGet("page")
	number, _ := page.MapGet("number")
	assert.True(t, number.Equal(document.Int(40)), "got %s", number.GoString())
}

func TestAssemble_ArithmeticInStrings(t *testing.T) {
	h := testinfra.Setup(t, t.TempDir(), map[string]string{
		"sums": "- $test + $test2\n",
	})
	vars := map[string]string{"test": "1", "test2": "10.1"}
	require.NoError(t, h.Assembler.Assemble("sums", "", vars, adapters.FormatYAML))

	out := yamlOutput(t, h, "sums")
	require.Equal(t, document.KindSequence, out.Kind)
	require.Len(t, out.Seq, 1)
	assert.True(t, out.Seq[0].Equal(document.Float(11.1)), "got %s", out.Seq[0].GoString())
}

func TestAssemble_IntegerSurvivesTransform(t *testing.T) {
	h := testinfra.Setup(t, t.TempDir(), map[string]string{
		"count": "n: 1\n_transform:\n  - n = n + 1\n",
	})
	require.NoError(t, h.Assembler.Assemble("count", "", nil, adapters.FormatYAML))

	out := yamlOutput(t, h, "count")
	n, _ := out.MapGet("n")
	assert.True(t, n.Equal(document.Int(2)), "got %s", n.GoString())
}

func TestAssemble_CeilTransform(t *testing.T) {
	h := testinfra.Setup(t, t.TempDir(), map[string]string{
		"half": "entry_int: 3\n_transform:\n  - ceiled = ceil(entry_int / 2)\n",
	})
	require.NoError(t, h.Assembler.Assemble("half", "", nil, adapters.FormatYAML))

	out := yamlOutput(t, h, "half")
	ceiled, ok := out.MapGet("ceiled")
	require.True(t, ok)
	assert.True(t, ceiled.Equal(document.Int(2)), "got %s", ceiled.GoString())
}

func TestAssemble_LabeledTransformAppliesInKeyOrder(t *testing.T) {
	h := testinfra.Setup(t, t.TempDir(), map[string]string{
		"labeled": `
a: 3
_transform:
  t20: a = a * 2
  t10: a = a + 1
`,
	})
	require.NoError(t, h.Assembler.Assemble("labeled", "", nil, adapters.FormatYAML))

	out := yamlOutput(t, h, "labeled")
	a, _ := out.MapGet("a")
	assert.True(t, a.Equal(document.Int(8)), "got %s", a.GoString())
}

func TestAssemble_NullElisionInSequences(t *testing.T) {
	h := testinfra.Setup(t, t.TempDir(), map[string]string{
		"entry": `
items: !inc::fragment
    undef_null_var: null
`,
		"fragment": `
- $undef_null_var
- kept
`,
	})
	require.NoError(t, h.Assembler.Assemble("entry", "", nil, adapters.FormatYAML))

	out := yamlOutput(t, h, "entry")
	items, ok := out.MapGet("items")
	require.True(t, ok)
	require.Equal(t, document.KindSequence, items.Kind)
	require.Len(t, items.Seq, 1)
	assert.True(t, items.Seq[0].Equal(document.String("kept")))
}

func TestAssemble_DeepVariableReplacement(t *testing.T) {
	h := testinfra.Setup(t, t.TempDir(), map[string]string{
		"entry": `
content: !inc::story
    what: car crashed
content_bis: !inc::story
    what: car crashed
`,
		"story": "text: Some $what\n",
	})
	require.NoError(t, h.Assembler.Assemble("entry", "", nil, adapters.FormatYAML))

	out := yamlOutput(t, h, "entry")
	content, _ := out.MapGet("content")
	text, _ := content.MapGet("text")
	assert.True(t, text.Equal(document.String("Some car crashed")))
}

func TestAssemble_JSONFormat(t *testing.T) {
	h := testinfra.Setup(t, t.TempDir(), map[string]string{
		"entry": "a: 1\nb: text\n",
	})
	require.NoError(t, h.Assembler.Assemble("entry", "", nil, adapters.FormatJSON))

	out, ok := h.Assemblies.JSONOutput("entry")
	require.True(t, ok)
	m, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(1), m["a"])
	assert.Equal(t, "text", m["b"])
}

func TestAssemble_ValidSchema(t *testing.T) {
	schemaRoot := t.TempDir()
	schema := `
type: object
properties:
  title:
    type: string
  chapter:
    type: integer
required:
  - title
`
	require.NoError(t, os.WriteFile(filepath.Join(schemaRoot, "book-schema.yml"), []byte(schema), 0o644))

	h := testinfra.Setup(t, schemaRoot, map[string]string{
		"entry": "title: ok\nchapter: 3\n",
	})
	require.NoError(t, h.Assembler.Assemble("entry", "book-schema.yml", nil, adapters.FormatYAML))

	written, ok := h.Schemas.Schema()
	require.True(t, ok)
	assert.NotNil(t, written)
}

func TestAssemble_InvalidDocumentFailsValidation(t *testing.T) {
	schemaRoot := t.TempDir()
	schema := `{"type": "object", "required": ["missing_key"]}`
	require.NoError(t, os.WriteFile(filepath.Join(schemaRoot, "schema.json"), []byte(schema), 0o644))

	h := testinfra.Setup(t, schemaRoot, map[string]string{
		"entry": "title: ok\n",
	})
	err := h.Assembler.Assemble("entry", "schema.json", nil, adapters.FormatYAML)
	require.Error(t, err)

	var fe *errors.Error
	require.True(t, stderrors.As(err, &fe))
	assert.Equal(t, errors.KindValidate, fe.Kind)

	// nothing is written when validation fails
	_, ok := h.Assemblies.YAMLOutput("entry")
	assert.False(t, ok)
	_, ok = h.Schemas.Schema()
	assert.False(t, ok)
}

func TestAssemble_MissingPartIsIoError(t *testing.T) {
	h := testinfra.Setup(t, t.TempDir(), map[string]string{})
	err := h.Assembler.Assemble("ghost", "", nil, adapters.FormatYAML)
	require.Error(t, err)

	var fe *errors.Error
	require.True(t, stderrors.As(err, &fe))
	assert.Equal(t, errors.KindIo, fe.Kind)
}

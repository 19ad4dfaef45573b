// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package variables

import (
	"regexp"

	"github.com/expr-lang/expr"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/pkg/document"
)

// Inject walks a value and rewrites strings that reference variables or
// contain expressions.
//
// A reference is the literal $name bounded by a word boundary on the
// right. A string equal to exactly $name is replaced by the variable's
// value with its type preserved; otherwise each occurrence is spliced in
// textually and the resulting string is handed to the expression
// evaluator, which may turn it into a boolean or a number. The pass
// reruns until a fix-point. Undefined identifiers are left intact.
func (vars Variables) Inject(v *document.Value) (*document.Value, error) {
	switch v.Kind {
	case document.KindTagged:
		return vars.injectTagged(v)
	case document.KindMapping:
		return vars.injectMapping(v)
	case document.KindSequence:
		return vars.injectSequence(v)
	case document.KindString:
		return vars.injectString(v.Str)
	}
	return v.Clone(), nil
}

func (vars Variables) injectTagged(v *document.Value) (*document.Value, error) {
	label, err := vars.injectString(v.Tag)
	if err != nil {
		return nil, err
	}
	if label.Kind != document.KindString {
		return nil, errors.Parse("%s can't be used as tag", v.Tag)
	}
	inner, err := vars.Inject(v.Inner)
	if err != nil {
		return nil, err
	}
	return document.Tagged(label.Str, inner), nil
}

func (vars Variables) injectSequence(v *document.Value) (*document.Value, error) {
	out := make([]*document.Value, 0, len(v.Seq))
	for _, e := range v.Seq {
		injected, err := vars.Inject(e)
		if err != nil {
			return nil, err
		}
		out = append(out, injected)
	}
	return document.Sequence(out...), nil
}

func (vars Variables) injectMapping(v *document.Value) (*document.Value, error) {
	out := document.Mapping()
	for _, e := range v.Map {
		key := e.Key
		if key.Kind == document.KindString {
			injected, err := vars.injectString(key.Str)
			if err != nil {
				return nil, err
			}
			key = injected
		}

		var keyStr string
		switch key.Kind {
		case document.KindString, document.KindInt, document.KindFloat, document.KindBool:
			keyStr = key.Render()
		default:
			return nil, errors.Parse("%s can't be used as mapping key", e.Key.GoString())
		}

		val, err := vars.Inject(e.Value)
		if err != nil {
			return nil, err
		}
		out.MapSet(keyStr, val)
	}
	return out, nil
}

// injectString applies the scope to one string, variable by variable in
// sorted name order, until a full pass makes no change. A standalone
// reference swaps in the variable's value as-is; once the value stops
// being a string, the remaining passes inject it structurally.
func (vars Variables) injectString(s string) (*document.Value, error) {
	val := document.String(s)
	for {
		changed := false
		for _, name := range vars.names() {
			var next *document.Value
			var err error
			if val.Kind == document.KindString {
				next, err = vars.substitute(val.Str, name)
			} else {
				next, err = vars.Inject(val)
			}
			if err != nil {
				return nil, err
			}
			if !next.Equal(val) {
				changed = true
			}
			val = next
		}
		if !changed {
			break
		}
	}
	return val, nil
}

// substitute applies a single variable to a string: standalone
// replacement first, textual splicing plus expression evaluation
// otherwise.
func (vars Variables) substitute(s, name string) (*document.Value, error) {
	ident := "$" + name
	if s == ident {
		return vars[name].Clone(), nil
	}

	re, err := regexp.Compile(`\$` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return nil, errors.Parse("%s can't be used as variable identifier", name).Wrap(err)
	}
	replaced := re.ReplaceAllLiteralString(s, vars[name].Render())
	return evaluateString(replaced), nil
}

// evaluateString hands a string to the expression evaluator. Results of
// boolean or numeric kind replace the string; anything else, including
// evaluation failure, leaves it as plain text. Strings containing a
// multi-byte character are exempt.
func evaluateString(s string) *document.Value {
	for _, r := range s {
		if r > 127 {
			return document.String(s)
		}
	}

	out, err := expr.Eval(s, map[string]any{})
	if err != nil {
		return document.String(s)
	}
	switch n := out.(type) {
	case bool:
		return document.Bool(n)
	case int:
		return document.Int(int64(n))
	case int64:
		return document.Int(n)
	case float64:
		return document.Float(n)
	}
	return document.String(s)
}

// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/kraklabs/ymlforge/internal/errors"
)

// Transform applies the operations list against the flat view, in
// order. An operation is either an assignment `path = expression` or a
// bare expression; identifiers resolve to flat paths, and an assignment
// writes back to the list, keeping the position of an existing path.
// The first failing operation aborts with the evaluator's diagnostic.
func (l *List) Transform() error {
	for _, op := range l.ops {
		if err := l.apply(op); err != nil {
			return err
		}
	}
	return nil
}

func (l *List) apply(op string) error {
	target, rhs, isAssign := splitAssign(op)
	if !isAssign {
		rhs = op
	}

	rewritten, env := l.bind(rhs)
	out, err := expr.Eval(rewritten, env)
	if err != nil {
		return errors.Transform("%s", err.Error())
	}
	if !isAssign {
		return nil
	}

	switch n := out.(type) {
	case nil, bool, string, int64, float64:
		l.Set(target, n)
	case int:
		l.Set(target, int64(n))
	case float32:
		l.Set(target, float64(n))
	default:
		return errors.Transform("can't store %T result of %q", out, op)
	}
	return nil
}

// splitAssign finds the first `=` that is not part of a comparison
// operator and splits the operation around it. Parentheses and string
// literals are not tracked.
func splitAssign(op string) (target, rhs string, ok bool) {
	for i := 0; i < len(op); i++ {
		if op[i] != '=' {
			continue
		}
		if i+1 < len(op) && op[i+1] == '=' {
			i++
			continue
		}
		if i > 0 && strings.ContainsRune("!<>=", rune(op[i-1])) {
			continue
		}
		return strings.TrimSpace(op[:i]), op[i+1:], true
	}
	return "", "", false
}

// bind rewrites every flat path mentioned in the expression into a
// synthetic identifier and returns the environment binding those
// identifiers to the current leaves. Dotted paths would otherwise read
// as member access to the evaluator. Longer paths are rewritten first
// so a path is never shadowed by its own prefix.
func (l *List) bind(expression string) (string, map[string]any) {
	order := make([]int, len(l.pairs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(l.pairs[order[a]].Path) > len(l.pairs[order[b]].Path)
	})

	env := make(map[string]any, len(l.pairs))
	for _, i := range order {
		path := l.pairs[i].Path
		if path == "" {
			continue
		}
		ident := fmt.Sprintf("__v%d", i)
		replaced := replaceIdent(expression, path, ident)
		if replaced != expression {
			expression = replaced
			env[ident] = l.pairs[i].Leaf
		}
	}
	return expression, env
}

// replaceIdent substitutes whole-identifier occurrences of path, where
// the neighboring characters must not belong to the identifier charset
// (letters, digits, underscore, dot).
func replaceIdent(s, path, ident string) string {
	var out strings.Builder
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], path)
		if j < 0 {
			out.WriteString(s[i:])
			break
		}
		start := i + j
		end := start + len(path)
		boundedLeft := start == 0 || !isIdentChar(s[start-1])
		boundedRight := end == len(s) || !isIdentChar(s[end])
		if boundedLeft && boundedRight {
			out.WriteString(s[i:start])
			out.WriteString(ident)
		} else {
			out.WriteString(s[i:end])
		}
		i = end
	}
	return out.String()
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '.' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		wantKind Kind
		wantMsg  string
	}{
		{"io", Io("cannot read %s", "file"), KindIo, "cannot read file"},
		{"parse", Parse("bad %s", "shape"), KindParse, "bad shape"},
		{"validate", Validate("invalid"), KindValidate, "invalid"},
		{"transform", Transform("bad op"), KindTransform, "bad op"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.wantKind)
			}
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestOther(t *testing.T) {
	underlying := fmt.Errorf("boom")
	err := Other(underlying)
	if err.Kind != KindOther {
		t.Errorf("Kind = %v, want KindOther", err.Kind)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find the wrapped error")
	}

	if Other(nil) != nil {
		t.Error("Other(nil) should be nil")
	}
}

func TestWrap(t *testing.T) {
	underlying := fmt.Errorf("root cause")
	err := Parse("could not parse part").Wrap(underlying)

	if got := err.Error(); got != "could not parse part: root cause" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find the wrapped error")
	}

	var target *Error
	if !errors.As(err, &target) {
		t.Fatal("errors.As should extract *Error")
	}
	if target.Kind != KindParse {
		t.Errorf("Kind = %v, want KindParse", target.Kind)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindIo, "io"},
		{KindParse, "parse"},
		{KindValidate, "validate"},
		{KindTransform, "transform"},
		{KindOther, "other"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	err := Validate("generated document is not valid")
	got := err.Format(true)

	if !strings.HasPrefix(got, "Error: ") {
		t.Errorf("Format() = %q, want Error: prefix", got)
	}
	if !strings.Contains(got, "generated document is not valid") {
		t.Errorf("Format() = %q, missing message", got)
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("Format(noColor=true) contains ANSI codes: %q", got)
	}
}

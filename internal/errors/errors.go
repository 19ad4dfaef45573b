// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured error handling for the ymlforge CLI
// and engine.
//
// Every failure in the assembly pipeline is one of five kinds: Io
// (reader, sink, filesystem), Parse (malformed source, bad mix-in
// target, bad variable shape), Validate (schema compile or validation),
// Transform (evaluator diagnostic), or Other. All carry a
// human-readable message and optionally wrap an underlying error for
// errors.Is/As compatibility.
//
// The CLI exits with code 1 on any error after printing it to standard
// output:
//
//	if err := run(); err != nil {
//	    errors.Fatal(err)
//	}
package errors

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Kind categorizes a pipeline error.
type Kind int

const (
	// KindOther is a generic error with no more precise category.
	KindOther Kind = iota

	// KindIo covers reader, sink and filesystem failures.
	KindIo

	// KindParse covers malformed sources, bad mix-in targets and bad
	// variable shapes.
	KindParse

	// KindValidate covers schema compilation and instance validation
	// failures.
	KindValidate

	// KindTransform carries a diagnostic from the expression evaluator.
	KindTransform
)

// String returns the display label of the kind.
func (k Kind) String() string {
	switch k {
	case KindIo:
		return "io"
	case KindParse:
		return "parse"
	case KindValidate:
		return "validate"
	case KindTransform:
		return "transform"
	}
	return "other"
}

// Error is a categorized pipeline error.
type Error struct {
	// Kind is the error category.
	Kind Kind

	// Message describes what went wrong.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Io creates an io error from a format string.
func Io(format string, args ...any) *Error {
	return &Error{Kind: KindIo, Message: fmt.Sprintf(format, args...)}
}

// Parse creates a parse error from a format string.
func Parse(format string, args ...any) *Error {
	return &Error{Kind: KindParse, Message: fmt.Sprintf(format, args...)}
}

// Validate creates a validation error from a format string.
func Validate(format string, args ...any) *Error {
	return &Error{Kind: KindValidate, Message: fmt.Sprintf(format, args...)}
}

// Transform creates a transform error from a format string.
func Transform(format string, args ...any) *Error {
	return &Error{Kind: KindTransform, Message: fmt.Sprintf(format, args...)}
}

// Other wraps an arbitrary error. A nil err yields nil.
func Other(err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindOther, Message: err.Error(), Err: err}
}

// Wrap attaches an underlying error to e and returns e.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

var colorError = color.New(color.FgRed, color.Bold)

// Format renders the error for terminal display. Color output respects
// the NO_COLOR environment variable and the noColor parameter.
func (e *Error) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Error())
	out.WriteString("\n")
	return out.String()
}

// Fatal prints the error to standard output and exits with code 1.
// It never returns. A nil error does nothing.
func Fatal(err error) {
	if err == nil {
		return
	}
	if fe, ok := err.(*Error); ok {
		fmt.Print(fe.Format(false))
	} else {
		fmt.Printf("Error: %v\n", err)
	}
	os.Exit(1)
}

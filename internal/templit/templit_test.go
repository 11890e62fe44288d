package templit

import (
	"errors"
	"strings"
	"testing"
)

// locate is a test helper that runs Locate and returns the region content,
// after asserting the region is delimited by backticks in the source.
func locate(t *testing.T, source string, target Target) string {
	t.Helper()
	r, err := Locate(source, target)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if r.Start < 1 || r.End > len(source) || r.Start > r.End {
		t.Fatalf("region out of bounds: %+v (len %d)", r, len(source))
	}
	if source[r.Start-1] != '`' {
		t.Errorf("char before Start = %q, want backtick", source[r.Start-1])
	}
	if source[r.End] != '`' {
		t.Errorf("char at End = %q, want backtick", source[r.End])
	}
	return source[r.Start:r.End]
}

func TestLocateAssignment(t *testing.T) {
	t.Parallel()
	source := "function f(x) {\n  const body = `Hello ${name}!`;\n}"
	got := locate(t, source, Target{Function: "f", Variable: "body"})
	if got != "Hello ${name}!" {
		t.Errorf("content = %q, want %q", got, "Hello ${name}!")
	}
}

func TestLocateReturnStyle(t *testing.T) {
	t.Parallel()
	source := "function greet(name) {\n  return `Hi ${ {x:1}.x }`;\n}"
	got := locate(t, source, Target{Function: "greet", Return: true})
	if got != "Hi ${ {x:1}.x }" {
		t.Errorf("content = %q, want %q", got, "Hi ${ {x:1}.x }")
	}
}

// TestLocateEscapedBacktick verifies that a backslash-escaped backtick inside
// the literal never terminates the scan.
func TestLocateEscapedBacktick(t *testing.T) {
	t.Parallel()
	source := "function f() {\n  const s = `a \\` b`;\n}"
	got := locate(t, source, Target{Function: "f", Variable: "s"})
	if got != "a \\` b" {
		t.Errorf("content = %q, want %q", got, "a \\` b")
	}
}

// TestLocateBracesOutsideInterpolation verifies that bare braces in literal
// text (inline CSS, for instance) don't disturb the scan.
func TestLocateBracesOutsideInterpolation(t *testing.T) {
	t.Parallel()
	source := "function f() {\n  const s = `<style>body { color: red }</style>`;\n}"
	got := locate(t, source, Target{Function: "f", Variable: "s"})
	if got != "<style>body { color: red }</style>" {
		t.Errorf("content = %q", got)
	}
}

// TestLocateBacktickInsideInterpolation verifies that a nested template
// literal inside ${...} never closes the outer literal.
func TestLocateBacktickInsideInterpolation(t *testing.T) {
	t.Parallel()
	source := "function f() {\n  const s = `A ${cond ? `mid` : other} Z`;\n}"
	got := locate(t, source, Target{Function: "f", Variable: "s"})
	if got != "A ${cond ? `mid` : other} Z" {
		t.Errorf("content = %q", got)
	}
}

// TestLocateNestedInterpolation exercises an interpolation whose nested
// literal carries its own ${...}; depth must not reset partway through.
func TestLocateNestedInterpolation(t *testing.T) {
	t.Parallel()
	source := "function f() {\n  const s = `A ${wrap(`x ${y} x`)} Z`;\n}"
	got := locate(t, source, Target{Function: "f", Variable: "s"})
	if got != "A ${wrap(`x ${y} x`)} Z" {
		t.Errorf("content = %q", got)
	}
}

func TestLocateFunctionNotFound(t *testing.T) {
	t.Parallel()
	_, err := Locate("function other() {}", Target{Function: "missing", Variable: "x"})
	if !errors.Is(err, ErrFunctionNotFound) {
		t.Errorf("err = %v, want ErrFunctionNotFound", err)
	}
}

func TestLocateAssignmentNotFound(t *testing.T) {
	t.Parallel()
	source := "function f() {\n  const other = `x`;\n}"
	_, err := Locate(source, Target{Function: "f", Variable: "htmlBody"})
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("err = %v, want ErrAssignmentNotFound", err)
	}
}

func TestLocateUnterminated(t *testing.T) {
	t.Parallel()
	source := "function f() {\n  const s = `never closed\n"
	_, err := Locate(source, Target{Function: "f", Variable: "s"})
	if !errors.Is(err, ErrUnterminatedLiteral) {
		t.Errorf("err = %v, want ErrUnterminatedLiteral", err)
	}
}

// TestLocateUnterminatedInterpolation: an interpolation that never closes
// before end of text leaves the literal unterminated.
func TestLocateUnterminatedInterpolation(t *testing.T) {
	t.Parallel()
	source := "function f() {\n  const s = `a ${b\n"
	_, err := Locate(source, Target{Function: "f", Variable: "s"})
	if !errors.Is(err, ErrUnterminatedLiteral) {
		t.Errorf("err = %v, want ErrUnterminatedLiteral", err)
	}
}

// TestLocateBoundedWindow verifies that a same-named variable in an earlier
// function is never matched when targeting a later one, and vice versa.
func TestLocateBoundedWindow(t *testing.T) {
	t.Parallel()
	source := strings.Join([]string{
		"function first() {",
		"  const htmlBody = `FIRST`;",
		"}",
		"function second() {",
		"  const htmlBody = `SECOND`;",
		"}",
	}, "\n")

	if got := locate(t, source, Target{Function: "second", Variable: "htmlBody"}); got != "SECOND" {
		t.Errorf("second: content = %q, want SECOND", got)
	}
	if got := locate(t, source, Target{Function: "first", Variable: "htmlBody"}); got != "FIRST" {
		t.Errorf("first: content = %q, want FIRST", got)
	}
}

// TestLocateWindowStopsAtDocComment: the window also ends at a /** comment
// opening the next declaration, so a matching variable after it is out of
// reach.
func TestLocateWindowStopsAtDocComment(t *testing.T) {
	t.Parallel()
	source := strings.Join([]string{
		"function f() {",
		"  const other = 1;",
		"}",
		"/**",
		" * Next one.",
		" */",
		"function g() {",
		"  const htmlBody = `LATE`;",
		"}",
	}, "\n")
	_, err := Locate(source, Target{Function: "f", Variable: "htmlBody"})
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("err = %v, want ErrAssignmentNotFound", err)
	}
}

func TestLocateDeclarationKeywords(t *testing.T) {
	t.Parallel()
	for _, decl := range []string{"const", "let", "var", ""} {
		source := "function f() {\n  " + decl + " htmlBody = `X`;\n}"
		if got := locate(t, source, Target{Function: "f", Variable: "htmlBody"}); got != "X" {
			t.Errorf("%q declaration: content = %q, want X", decl, got)
		}
	}
}

func TestLocateEmptyLiteral(t *testing.T) {
	t.Parallel()
	source := "function f() {\n  const s = ``;\n}"
	if got := locate(t, source, Target{Function: "f", Variable: "s"}); got != "" {
		t.Errorf("content = %q, want empty", got)
	}
}

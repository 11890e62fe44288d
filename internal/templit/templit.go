// Package templit locates backtick-delimited template literals inside
// JavaScript (Apps Script) source text.
//
// The locator is purely lexical: it finds the target function's header with
// a regular expression, bounds the search window at the next top-level
// function declaration, finds the assignment (or return) that opens the
// literal, then scans character by character for the closing backtick while
// tracking escape state and ${...} interpolation nesting. It never builds a
// syntax tree and never mutates the source.
package templit

import (
	"errors"
	"fmt"
	"regexp"
)

// Sentinel failures. Callers distinguish them with errors.Is; every error
// returned by Locate wraps exactly one of these.
var (
	ErrFunctionNotFound    = errors.New("function not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrUnterminatedLiteral = errors.New("unterminated template literal")
)

// Target identifies which template literal to locate.
type Target struct {
	Function string // name of the enclosing function declaration
	Variable string // variable the literal is assigned to; ignored when Return is set
	Return   bool   // literal is the function's return expression
}

// Region is a half-open span into the source the literal content occupies.
// Start is the offset just after the opening backtick; End is the offset of
// the closing backtick. source[Start:End] is the literal content. A Region
// is only meaningful against the exact source string it was computed from.
type Region struct {
	Start int
	End   int
}

// nextFunctionRe marks the start of the next top-level declaration: either
// another function header or a /** doc comment, each at the start of a line.
var nextFunctionRe = regexp.MustCompile(`\n(?:function\s+\w+|/\*\*)`)

// Locate finds the template literal described by target inside source.
// On failure it returns a zero Region and an error wrapping one of
// ErrFunctionNotFound, ErrAssignmentNotFound or ErrUnterminatedLiteral.
func Locate(source string, target Target) (Region, error) {
	headerRe := regexp.MustCompile(`function\s+` + regexp.QuoteMeta(target.Function) + `\s*\([^)]*\)\s*\{`)
	header := headerRe.FindStringIndex(source)
	if header == nil {
		return Region{}, fmt.Errorf("%w: function %s", ErrFunctionNotFound, target.Function)
	}

	// Bound the window to this function's body so a same-named variable in
	// a later function can never match.
	bodyStart := header[1]
	bodyEnd := len(source)
	if next := nextFunctionRe.FindStringIndex(source[bodyStart:]); next != nil {
		bodyEnd = bodyStart + next[0]
	}
	body := source[bodyStart:bodyEnd]

	var openRe *regexp.Regexp
	if target.Return {
		openRe = regexp.MustCompile("return\\s*`")
	} else {
		openRe = regexp.MustCompile(`(?:const|let|var)?\s*` + regexp.QuoteMeta(target.Variable) + "\\s*=\\s*`")
	}
	open := openRe.FindStringIndex(body)
	if open == nil {
		what := target.Variable
		if target.Return {
			what = "return"
		}
		return Region{}, fmt.Errorf("%w: no %s template in %s", ErrAssignmentNotFound, what, target.Function)
	}

	start := bodyStart + open[1]
	end, ok := scanLiteral(source, start)
	if !ok {
		return Region{}, fmt.Errorf("%w: in %s", ErrUnterminatedLiteral, target.Function)
	}
	return Region{Start: start, End: end}, nil
}

// scanLiteral scans source from pos (just past an opening backtick) and
// returns the offset of the closing backtick. A backslash consumes the next
// character. A backtick only terminates the literal outside interpolation;
// ${ opens an interpolation and each { / } inside adjusts the nesting depth,
// so brace runs and nested literals inside ${...} never end the scan early.
func scanLiteral(source string, pos int) (end int, ok bool) {
	inExpr := false
	exprDepth := 0

	for pos < len(source) {
		c := source[pos]

		if c == '\\' && pos+1 < len(source) {
			pos += 2
			continue
		}

		switch {
		case c == '`' && !inExpr:
			return pos, true
		case !inExpr && c == '$' && pos+1 < len(source) && source[pos+1] == '{':
			inExpr = true
			exprDepth = 1
			pos++ // consume the brace along with the dollar
		case inExpr && c == '{':
			exprDepth++
		case inExpr && c == '}':
			exprDepth--
			if exprDepth == 0 {
				inExpr = false
			}
		}

		pos++
	}
	return 0, false
}

// Package rewrite turns preview HTML into template literal content and
// splices it into the target script.
package rewrite

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/cartcure/sitetools/internal/manifest"
	"github.com/cartcure/sitetools/internal/templit"
)

// Substitute applies each placeholder pair to html with plain string
// replacement, longest literal first so a short sample value can never eat
// part of a longer one. Pairs of equal length keep their manifest order.
// Overlapping configured literals remain order-sensitive; length is a
// tie-break heuristic, not a guarantee.
func Substitute(html string, pairs []manifest.Placeholder) string {
	sorted := make([]manifest.Placeholder, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].From) > len(sorted[j].From)
	})

	out := html
	for _, p := range sorted {
		out = strings.ReplaceAll(out, p.From, p.To)
	}
	return out
}

var exprRe = regexp.MustCompile(`\$\{[^}]+\}`)

// Escape prepares content for embedding between backticks: bare backticks
// are escaped, while ${...} interpolations pass through untouched. The
// interpolations are parked behind markers during the escape so a backtick
// inside one is never touched.
func Escape(content string) string {
	var exprs []string
	masked := exprRe.ReplaceAllStringFunc(content, func(m string) string {
		exprs = append(exprs, m)
		return fmt.Sprintf("\x00EXPR%d\x00", len(exprs)-1)
	})

	masked = strings.ReplaceAll(masked, "`", "\\`")

	for i, e := range exprs {
		masked = strings.Replace(masked, fmt.Sprintf("\x00EXPR%d\x00", i), e, 1)
	}
	return masked
}

// Indent prefixes every non-empty line with four spaces. Blank lines stay
// empty so the literal carries no trailing whitespace.
func Indent(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = "    " + line
		} else {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

// Splice replaces the located region in source with content, framing it
// with a leading newline and the two-space indent that re-aligns the
// closing backtick with the assignment.
func Splice(source string, r templit.Region, content string) string {
	return source[:r.Start] + "\n" + content + "\n  " + source[r.End:]
}

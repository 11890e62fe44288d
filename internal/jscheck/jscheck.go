// Package jscheck parses a rewritten script with the tree-sitter JavaScript
// grammar to confirm the splice left it syntactically intact. It plays no
// part in locating templates; it only validates output.
package jscheck

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// Check parses source as JavaScript and returns an error describing the
// first syntax error found, or nil if the source parses cleanly.
func Check(source []byte) error {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}

	if bad := firstError(root); bad != nil {
		p := bad.StartPoint()
		return fmt.Errorf("syntax error at line %d, column %d", p.Row+1, p.Column+1)
	}
	return fmt.Errorf("syntax error")
}

// firstError returns the first ERROR or missing node in document order.
func firstError(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if !child.HasError() {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return nil
}

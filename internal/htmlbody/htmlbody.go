// Package htmlbody extracts the <body> inner content from a preview HTML
// document using tree-sitter, so attribute-laden or oddly formatted body
// tags don't trip the sync.
package htmlbody

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/html"
)

// Extract returns the markup strictly between the <body> start tag and the
// </body> end tag, trimmed. Documents without a body element (fragments,
// unparseable input) are returned unchanged.
func Extract(doc string) string {
	source := []byte(doc)

	parser := sitter.NewParser()
	parser.SetLanguage(html.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return doc
	}
	defer tree.Close()

	body := findElement(tree.RootNode(), source, "body")
	if body == nil {
		return doc
	}

	start, end, ok := innerSpan(body)
	if !ok {
		return doc
	}
	return strings.TrimSpace(string(source[start:end]))
}

// findElement walks the tree depth-first for the first element with the
// given tag name.
func findElement(node *sitter.Node, source []byte, tag string) *sitter.Node {
	if node.Type() == "element" && tagName(node, source) == tag {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := findElement(node.Child(i), source, tag); found != nil {
			return found
		}
	}
	return nil
}

// tagName returns the name from an element's start tag, or "".
func tagName(element *sitter.Node, source []byte) string {
	for i := 0; i < int(element.ChildCount()); i++ {
		child := element.Child(i)
		if child.Type() != "start_tag" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			if c := child.Child(j); c.Type() == "tag_name" {
				return string(source[c.StartByte():c.EndByte()])
			}
		}
	}
	return ""
}

// innerSpan returns the byte span between an element's start and end tags.
func innerSpan(element *sitter.Node) (start, end uint32, ok bool) {
	for i := 0; i < int(element.ChildCount()); i++ {
		child := element.Child(i)
		switch child.Type() {
		case "start_tag":
			start = child.EndByte()
			ok = true
		case "end_tag":
			end = child.StartByte()
		}
	}
	if !ok || end < start {
		return 0, 0, false
	}
	return start, end, true
}

// Package xmldom adapts github.com/antchfx/xmlquery trees to the dom
// backend interface and adds XPath selection on top.
package xmldom

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/TakenPilot/text-model/dom"
)

// Backend is the adapter for *xmlquery.Node trees. It is stateless; the
// zero value is ready to use.
type Backend struct{}

var _ dom.Backend[*xmlquery.Node] = Backend{}

func (Backend) Kind(n *xmlquery.Node) dom.NodeKind {
	if n == nil {
		return dom.None
	}
	switch n.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		return dom.Text
	case xmlquery.ElementNode:
		return dom.Element
	case xmlquery.DocumentNode:
		return dom.Fragment
	}
	return dom.None // declarations, comments, notations
}

func (Backend) Tag(n *xmlquery.Node) string {
	return n.Data
}

func (Backend) Text(n *xmlquery.Node) string {
	return n.Data
}

func (Backend) Attrs(n *xmlquery.Node) map[string]string {
	if len(n.Attr) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Name.Local] = a.Value
	}
	return attrs
}

func (Backend) Parent(n *xmlquery.Node) (*xmlquery.Node, bool) {
	return n.Parent, n.Parent != nil
}

func (Backend) FirstChild(n *xmlquery.Node) (*xmlquery.Node, bool) {
	return n.FirstChild, n.FirstChild != nil
}

func (Backend) NextSibling(n *xmlquery.Node) (*xmlquery.Node, bool) {
	return n.NextSibling, n.NextSibling != nil
}

func (Backend) SetText(n *xmlquery.Node, text string) {
	n.Data = text
}

func (Backend) Remove(n *xmlquery.Node) {
	xmlquery.RemoveFromTree(n)
}

// InsertBefore splices child into parent's child list. xmlquery has no
// insert-before of its own, so the sibling links are rewired by hand.
func (Backend) InsertBefore(parent, child, ref *xmlquery.Node) {
	if ref == nil {
		xmlquery.AddChild(parent, child)
		return
	}
	child.Parent = parent
	child.NextSibling = ref
	child.PrevSibling = ref.PrevSibling
	if ref.PrevSibling != nil {
		ref.PrevSibling.NextSibling = child
	} else {
		parent.FirstChild = child
	}
	ref.PrevSibling = child
}

func (Backend) NewElement(tag string, attrs map[string]string) *xmlquery.Node {
	n := &xmlquery.Node{Type: xmlquery.ElementNode, Data: tag}
	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		xmlquery.AddAttr(n, key, attrs[key])
	}
	return n
}

func (Backend) NewText(text string) *xmlquery.Node {
	return &xmlquery.Node{Type: xmlquery.TextNode, Data: text}
}

func (Backend) NewFragment() *xmlquery.Node {
	return &xmlquery.Node{Type: xmlquery.DocumentNode}
}

func (Backend) Fragmentize(nodes ...*xmlquery.Node) *xmlquery.Node {
	frag := &xmlquery.Node{Type: xmlquery.DocumentNode}
	for _, n := range nodes {
		xmlquery.AddChild(frag, n)
	}
	return frag
}

// Parse reads an XML document.
func Parse(r io.Reader) (*xmlquery.Node, error) {
	return xmlquery.Parse(r)
}

// ParseString reads an XML document from a string.
func ParseString(input string) (*xmlquery.Node, error) {
	return xmlquery.Parse(strings.NewReader(input))
}

// Select returns the nodes matching an XPath expression. The expression is
// compiled up front so a malformed expression is reported as such, not as a
// failed query.
func Select(root *xmlquery.Node, expr string) ([]*xmlquery.Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("xmldom: invalid xpath %q: %w", expr, err)
	}
	nodes, err := xmlquery.QueryAll(root, expr)
	if err != nil {
		return nil, fmt.Errorf("xmldom: xpath query failed: %w", err)
	}
	return nodes, nil
}

// RenderString serializes a node to XML. Fragments serialize as the
// concatenation of their children, any other node including itself.
func RenderString(n *xmlquery.Node) string {
	if n.Type == xmlquery.DocumentNode {
		return n.OutputXML(false)
	}
	return n.OutputXML(true)
}

// Package htmldom adapts golang.org/x/net/html parse trees to the dom
// backend interface.
package htmldom

import (
	"io"
	"maps"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/TakenPilot/text-model/dom"
)

// Backend is the adapter for *html.Node trees. It is stateless; the zero
// value is ready to use.
type Backend struct{}

var _ dom.Backend[*html.Node] = Backend{}

func (Backend) Kind(n *html.Node) dom.NodeKind {
	if n == nil {
		return dom.None
	}
	switch n.Type {
	case html.TextNode:
		return dom.Text
	case html.ElementNode:
		return dom.Element
	case html.DocumentNode:
		return dom.Fragment
	}
	return dom.None // comments, doctypes, raw nodes
}

func (Backend) Tag(n *html.Node) string {
	return n.Data
}

func (Backend) Text(n *html.Node) string {
	return n.Data
}

func (Backend) Attrs(n *html.Node) map[string]string {
	if len(n.Attr) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
	}
	return attrs
}

func (Backend) Parent(n *html.Node) (*html.Node, bool) {
	return n.Parent, n.Parent != nil
}

func (Backend) FirstChild(n *html.Node) (*html.Node, bool) {
	return n.FirstChild, n.FirstChild != nil
}

func (Backend) NextSibling(n *html.Node) (*html.Node, bool) {
	return n.NextSibling, n.NextSibling != nil
}

func (Backend) SetText(n *html.Node, text string) {
	n.Data = text
}

func (Backend) Remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func (Backend) InsertBefore(parent, child, ref *html.Node) {
	parent.InsertBefore(child, ref) // a nil ref appends
}

func (Backend) NewElement(tag string, attrs map[string]string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		n.Attr = append(n.Attr, html.Attribute{Key: key, Val: attrs[key]})
	}
	return n
}

func (Backend) NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

func (Backend) NewFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

func (Backend) Fragmentize(nodes ...*html.Node) *html.Node {
	frag := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		frag.AppendChild(n)
	}
	return frag
}

// ParseFragment parses markup the way browsers parse the content of a body
// element, and wraps the resulting sibling nodes in a fragment.
func ParseFragment(r io.Reader) (*html.Node, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(r, ctx)
	if err != nil {
		return nil, err
	}
	return Backend{}.Fragmentize(nodes...), nil
}

// ParseFragmentString parses markup from a string.
func ParseFragmentString(input string) (*html.Node, error) {
	return ParseFragment(strings.NewReader(input))
}

// RenderString serializes a node to HTML. Fragments serialize as the
// concatenation of their children.
func RenderString(n *html.Node) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

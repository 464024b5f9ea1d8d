package dom

// NodeKind discriminates the node types a backend distinguishes. Markup
// implementations know more node types (comments, processing instructions,
// doctypes); backends report those as None and model conversion ignores
// them.
type NodeKind int8

const (
	None NodeKind = iota
	Text
	Element
	Fragment
)

func (k NodeKind) String() string {
	switch k {
	case None:
		return "none"
	case Text:
		return "text"
	case Element:
		return "element"
	case Fragment:
		return "fragment"
	}
	return "<illegal node kind>"
}

// Backend adapts one concrete markup tree implementation. N is the
// implementation's node handle; the zero value of N stands for "no node".
//
// Backends are assumed to be stateless adapters. All state lives in the
// nodes themselves.
type Backend[N comparable] interface {
	// Kind discriminates n.
	Kind(n N) NodeKind
	// Tag returns the tag name of an element node.
	Tag(n N) string
	// Text returns the text of a text node.
	Text(n N) string
	// Attrs returns the attributes of an element node, possibly nil.
	Attrs(n N) map[string]string

	// Parent returns the parent of n, if any.
	Parent(n N) (N, bool)
	// FirstChild returns the first child of n, if any.
	FirstChild(n N) (N, bool)
	// NextSibling returns the sibling following n, if any.
	NextSibling(n N) (N, bool)

	// SetText replaces the text of a text node.
	SetText(n N, text string)
	// Remove detaches n from its parent.
	Remove(n N)
	// InsertBefore adds child to parent, in front of ref. A zero ref
	// appends. The child must be detached.
	InsertBefore(parent, child, ref N)

	// NewElement creates a detached element node. Attributes are applied
	// in sorted key order, so built trees serialize deterministically.
	NewElement(tag string, attrs map[string]string) N
	// NewText creates a detached text node.
	NewText(text string) N
	// NewFragment creates an empty anonymous container.
	NewFragment() N
	// Fragmentize wraps detached nodes into an anonymous container, in
	// order.
	Fragmentize(nodes ...N) N
}

// WalkStatus steers Walk.
type WalkStatus int8

const (
	// WalkContinue descends into the children of the visited node.
	WalkContinue WalkStatus = iota
	// WalkSkipChildren proceeds without visiting the node's subtree.
	WalkSkipChildren
	// WalkStop abandons the walk.
	WalkStop
)

// Walk visits n and its subtree in document order, steered by the visit
// callback.
func Walk[N comparable](be Backend[N], n N, visit func(N) WalkStatus) {
	walk(be, n, visit)
}

func walk[N comparable](be Backend[N], n N, visit func(N) WalkStatus) WalkStatus {
	switch visit(n) {
	case WalkStop:
		return WalkStop
	case WalkSkipChildren:
		return WalkContinue
	}
	for ch, ok := be.FirstChild(n); ok; ch, ok = be.NextSibling(ch) {
		if walk(be, ch, visit) == WalkStop {
			return WalkStop
		}
	}
	return WalkContinue
}

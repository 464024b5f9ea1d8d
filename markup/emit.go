package markup

import (
	"fmt"

	textmodel "github.com/TakenPilot/text-model"
	"github.com/TakenPilot/text-model/dom"
	"github.com/TakenPilot/text-model/tags"
)

// Emit materializes m as a markup fragment built through be.
//
// The model's text becomes a single text node, then the blocks are layered
// onto it: propertied kinds first, continuous kinds second, singled marks
// last. Each range is applied by splitting the text nodes it touches and
// wrapping the covered pieces in a fresh element of the kind's tag, so a
// range spanning an earlier element's boundary wraps one piece inside and
// one piece outside of it.
//
// Kind names the registry does not know are skipped with a trace message. A
// model block whose formatting kind contradicts the registry's declaration
// is an error (textmodel.ErrKindMismatch).
func Emit[N comparable](be dom.Backend[N], m textmodel.Model, reg *tags.Registry) (N, error) {
	var zero N
	if be == nil || reg == nil {
		return zero, textmodel.ErrIllegalArguments
	}
	var continuous, propertied, singled []string
	covered := make(map[string]bool)
	for _, name := range reg.KindNames() {
		blk, ok := m.Block(name)
		if !ok {
			continue
		}
		covered[name] = true
		kind, _ := reg.KindOf(name)
		if blk.Kind() != kind {
			return zero, fmt.Errorf("markup: block %q holds %s formatting but is declared %s: %w",
				name, blk.Kind(), kind, textmodel.ErrKindMismatch)
		}
		switch kind {
		case textmodel.Continuous:
			continuous = append(continuous, name)
		case textmodel.Propertied:
			propertied = append(propertied, name)
		case textmodel.Singled:
			singled = append(singled, name)
		}
	}
	for _, name := range m.KindNames() {
		if !covered[name] {
			tracer().Infof("markup emit skips unknown formatting kind %q", name)
		}
	}
	//
	frag := be.NewFragment()
	if m.Text() != "" {
		be.InsertBefore(frag, be.NewText(m.Text()), zero)
	}
	for _, name := range propertied {
		rs, _ := m.Ranges(name)
		tag, _ := reg.TagFor(name)
		for _, r := range rs {
			wrapSpan(be, frag, tag, r.Attrs, r.Start, r.End)
		}
	}
	for _, name := range orderContinuous(m, continuous) {
		sp, _ := m.Spans(name)
		tag, _ := reg.TagFor(name)
		for i := 0; i < sp.Count(); i++ {
			start, end := sp.At(i)
			wrapSpan(be, frag, tag, nil, start, end)
		}
	}
	for _, name := range singled {
		mk, _ := m.Marks(name)
		tag, _ := reg.TagFor(name)
		for _, p := range mk {
			insertMark(be, frag, tag, p)
		}
	}
	return frag, nil
}

// textPiece locates one text node of the fragment under construction in
// model offsets.
type textPiece[N comparable] struct {
	node       N
	start, end int
}

// textPieces snapshots the fragment's text nodes in document order together
// with the global offsets they cover. The snapshot stays valid while a
// single range is applied; every range starts from a fresh one.
func textPieces[N comparable](be dom.Backend[N], frag N) []textPiece[N] {
	var pieces []textPiece[N]
	offset := 0
	dom.Walk(be, frag, func(n N) dom.WalkStatus {
		if be.Kind(n) == dom.Text {
			end := offset + len(be.Text(n))
			pieces = append(pieces, textPiece[N]{node: n, start: offset, end: end})
			offset = end
		}
		return dom.WalkContinue
	})
	return pieces
}

// wrapSpan wraps the text covered by [start,end) in elements of the given
// tag, one per touched text node. Boundary nodes are split into before,
// covered and after pieces; empty pieces are never created.
func wrapSpan[N comparable](be dom.Backend[N], frag N, tag string, attrs map[string]string, start, end int) {
	var zero N
	for _, piece := range textPieces(be, frag) {
		if piece.end <= start || piece.start >= end {
			continue
		}
		a := max(start-piece.start, 0)
		b := min(end-piece.start, piece.end-piece.start)
		text := be.Text(piece.node)
		parent, ok := be.Parent(piece.node)
		assert(ok, "markup: fragment text node without parent")
		el := be.NewElement(tag, attrs)
		be.InsertBefore(parent, el, piece.node)
		if a > 0 {
			be.InsertBefore(parent, be.NewText(text[:a]), el)
		}
		be.InsertBefore(el, be.NewText(text[a:b]), zero)
		if b < len(text) {
			be.SetText(piece.node, text[b:])
		} else {
			be.Remove(piece.node)
		}
	}
}

// insertMark places an empty element of the given tag at a point position,
// splitting the text node covering it when the position is interior.
func insertMark[N comparable](be dom.Backend[N], frag N, tag string, at int) {
	var zero N
	pieces := textPieces(be, frag)
	if len(pieces) == 0 {
		be.InsertBefore(frag, be.NewElement(tag, nil), zero)
		return
	}
	for _, piece := range pieces {
		if at > piece.end {
			continue
		}
		inner := at - piece.start
		text := be.Text(piece.node)
		parent, ok := be.Parent(piece.node)
		assert(ok, "markup: fragment text node without parent")
		el := be.NewElement(tag, nil)
		switch {
		case inner <= 0:
			be.InsertBefore(parent, el, piece.node)
		case inner >= len(text):
			ref, ok := be.NextSibling(piece.node)
			if !ok {
				ref = zero
			}
			be.InsertBefore(parent, el, ref)
		default:
			ref, ok := be.NextSibling(piece.node)
			if !ok {
				ref = zero
			}
			be.SetText(piece.node, text[:inner])
			be.InsertBefore(parent, el, ref)
			be.InsertBefore(parent, be.NewText(text[inner:]), ref)
		}
		return
	}
}

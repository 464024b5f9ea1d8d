package textmodel

import (
	"maps"
	"slices"
	"sort"
)

// Kind enumerates the three kinds of formatting a model can carry.
type Kind int8

const (
	// Continuous formatting carries no payload and coalesces; adjacent or
	// overlapping ranges of the same name merge into one.
	Continuous Kind = iota + 1
	// Propertied formatting carries an attribute set and keeps its identity;
	// adjacent ranges never merge.
	Propertied
	// Singled formatting occupies no text; it marks zero-width points.
	Singled
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Propertied:
		return "propertied"
	case Singled:
		return "singled"
	}
	return "<illegal kind>"
}

// Block is one named formatting entry of a model. The concrete types are
// Spans (continuous), Ranges (propertied) and Marks (singled).
type Block interface {
	// Kind returns the kind of formatting the block holds.
	Kind() Kind
	// Count returns the number of ranges or marks in the block.
	Count() int

	split(at int) (Block, Block)
	shift(by int) Block
	clone() Block
	equal(Block) bool
	max() int
}

// --- Continuous blocks -----------------------------------------------------

// Spans holds the ranges of a continuous block as a flat list of [start,end)
// byte offsets: pairs in ascending order, never touching, never empty.
type Spans []int

// Kind returns Continuous.
func (sp Spans) Kind() Kind { return Continuous }

// Count returns the number of [start,end) pairs.
func (sp Spans) Count() int { return len(sp) / 2 }

// At returns the i'th pair.
func (sp Spans) At(i int) (start, end int) {
	return sp[2*i], sp[2*i+1]
}

// push appends a pair, merging it into the last pair whenever the new start
// does not lie beyond the last end. Empty pairs are dropped. Callers must
// push starts in non-decreasing order.
func (sp Spans) push(start, end int) Spans {
	if end <= start {
		return sp
	}
	if n := len(sp); n > 0 && start <= sp[n-1] {
		if end > sp[n-1] {
			sp[n-1] = end
		}
		return sp
	}
	return append(sp, start, end)
}

func (sp Spans) split(at int) (Block, Block) {
	inx := sort.SearchInts(sp, at)
	var before, after Spans
	if inx%2 == 1 { // at falls inside the pair ending at sp[inx]
		before = append(before, sp[:inx]...)
		before = append(before, at)
		if reopened := sp[inx] - at; reopened > 0 {
			after = append(after, 0, reopened)
		}
		after = appendShifted(after, sp[inx+1:], -at)
	} else { // at falls between pairs
		before = append(before, sp[:inx]...)
		after = appendShifted(after, sp[inx:], -at)
	}
	return before, after
}

func (sp Spans) shift(by int) Block {
	return Spans(appendShifted(nil, sp, by))
}

func (sp Spans) clone() Block {
	return Spans(slices.Clone(sp))
}

// Equal compares two span lists.
func (sp Spans) Equal(other Spans) bool {
	return slices.Equal(sp, other)
}

func (sp Spans) equal(other Block) bool {
	o, ok := other.(Spans)
	return ok && sp.Equal(o)
}

func (sp Spans) max() int {
	if len(sp) == 0 {
		return 0
	}
	return sp[len(sp)-1]
}

// join appends other to sp. A pair ending exactly at the seam fuses with a
// pair starting there; this is what makes continuous formatting coalesce
// across concatenation.
func (sp Spans) join(other Spans, seam int) Spans {
	out := make(Spans, 0, len(sp)+len(other))
	out = append(out, sp...)
	if len(sp) > 0 && len(other) > 0 && sp[len(sp)-1] == seam && other[0] == seam {
		out = out[:len(out)-1]
		return append(out, other[1:]...)
	}
	return append(out, other...)
}

func appendShifted(dst Spans, src []int, by int) Spans {
	for _, v := range src {
		dst = append(dst, v+by)
	}
	return dst
}

// --- Propertied blocks -----------------------------------------------------

// Range is one entry of a propertied block: a [Start,End) byte range plus
// the attributes of the markup element it came from.
type Range struct {
	Start int
	End   int
	Attrs map[string]string
}

// Attr returns the named attribute, or "" if the range does not carry it.
func (r Range) Attr(key string) string {
	return r.Attrs[key]
}

func (r Range) clone() Range {
	r.Attrs = maps.Clone(r.Attrs)
	return r
}

func (r Range) equal(other Range) bool {
	return r.Start == other.Start && r.End == other.End && maps.Equal(r.Attrs, other.Attrs)
}

// Ranges holds the entries of a propertied block, never empty ranges, never
// merged.
type Ranges []Range

// Kind returns Propertied.
func (rs Ranges) Kind() Kind { return Propertied }

// Count returns the number of range entries.
func (rs Ranges) Count() int { return len(rs) }

func (rs Ranges) split(at int) (Block, Block) {
	var before, after Ranges
	for _, r := range rs {
		switch {
		case r.End <= at:
			before = append(before, r.clone())
		case r.Start >= at:
			shifted := r.clone()
			shifted.Start -= at
			shifted.End -= at
			after = append(after, shifted)
		default: // straddles the split point: both sides keep the attributes
			left := r.clone()
			left.End = at
			right := r.clone()
			right.Start = 0
			right.End = r.End - at
			before = append(before, left)
			after = append(after, right)
		}
	}
	return before, after
}

func (rs Ranges) shift(by int) Block {
	out := make(Ranges, 0, len(rs))
	for _, r := range rs {
		shifted := r.clone()
		shifted.Start += by
		shifted.End += by
		out = append(out, shifted)
	}
	return out
}

func (rs Ranges) clone() Block {
	out := make(Ranges, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.clone())
	}
	return out
}

// Equal compares two range lists including their attributes.
func (rs Ranges) Equal(other Ranges) bool {
	if len(rs) != len(other) {
		return false
	}
	for i, r := range rs {
		if !r.equal(other[i]) {
			return false
		}
	}
	return true
}

func (rs Ranges) equal(other Block) bool {
	o, ok := other.(Ranges)
	return ok && rs.Equal(o)
}

func (rs Ranges) max() int {
	m := 0
	for _, r := range rs {
		if r.End > m {
			m = r.End
		}
	}
	return m
}

// --- Singled blocks --------------------------------------------------------

// Marks holds the point positions of a singled block.
type Marks []int

// Kind returns Singled.
func (mk Marks) Kind() Kind { return Singled }

// Count returns the number of point marks.
func (mk Marks) Count() int { return len(mk) }

func (mk Marks) split(at int) (Block, Block) {
	var before, after Marks
	for _, p := range mk {
		switch {
		case p < at:
			before = append(before, p)
		case p > at:
			after = append(after, p-at)
		}
		// a mark sitting exactly on the split point belongs to neither side
	}
	return before, after
}

func (mk Marks) shift(by int) Block {
	out := make(Marks, 0, len(mk))
	for _, p := range mk {
		out = append(out, p+by)
	}
	return out
}

func (mk Marks) clone() Block {
	return Marks(slices.Clone(mk))
}

// Equal compares two mark lists.
func (mk Marks) Equal(other Marks) bool {
	return slices.Equal(mk, other)
}

func (mk Marks) equal(other Block) bool {
	o, ok := other.(Marks)
	return ok && mk.Equal(o)
}

func (mk Marks) max() int {
	m := 0
	for _, p := range mk {
		if p > m {
			m = p
		}
	}
	return m
}

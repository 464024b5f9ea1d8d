package textmodel

import (
	"maps"
	"strings"
)

// Builder incrementally stages text and formatting and finalizes both into a
// Model.
//
// A markup walk appends text as it is discovered and records formatting as
// elements are classified. Formatting may reference text that has not been
// staged yet (a span is recorded when its element is visited, before the
// element's content is appended), so block offsets are validated against the
// text only on finalization.
//
// The empty instance is a valid builder, but clients may use NewBuilder.
type Builder struct {
	text   strings.Builder
	blocks map[string]Block

	done  bool
	dirty bool
	model Model
}

// NewBuilder creates a new and empty model builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Model returns the model built from all staged fragments.
//
// It is illegal to continue staging fragments after Model has been called,
// but Model may be called multiple times. Block offsets reaching beyond the
// staged text indicate a broken staging sequence and panic.
func (b *Builder) Model() Model {
	if b == nil {
		return Model{}
	}
	if b.dirty {
		b.model = b.buildModel()
		b.dirty = false
	}
	b.done = true
	if b.model.IsVoid() {
		tracer().Debugf("model builder: model is void")
	}
	return b.model
}

// Reset drops the staged build and prepares the builder for a fresh build.
func (b *Builder) Reset() {
	b.text.Reset()
	b.blocks = nil
	b.done = false
	b.dirty = false
	b.model = Model{}
}

// Len returns the length of the text staged so far, in bytes.
func (b *Builder) Len() int {
	if b == nil {
		return 0
	}
	return b.text.Len()
}

// AppendString appends text to the staged build.
func (b *Builder) AppendString(text string) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrModelCompleted
	}
	if text == "" {
		return nil
	}
	b.text.WriteString(text)
	b.dirty = true
	return nil
}

// MarkSpan records continuous formatting over [start,end) under the given
// kind name. Touching or overlapping spans of one name merge into one; empty
// spans are dropped. Spans must be recorded with non-decreasing starts, which
// is the order a markup walk produces them in.
func (b *Builder) MarkSpan(name string, start, end int) error {
	blk, err := b.staged(name, Continuous)
	if err != nil {
		return err
	}
	if start < 0 || end < start {
		return ErrIllegalArguments
	}
	sp, _ := blk.(Spans)
	b.put(name, sp.push(start, end))
	return nil
}

// MarkRange records propertied formatting over [start,end) under the given
// kind name, together with the attributes of the element it came from. Empty
// ranges are dropped; attrs are copied.
func (b *Builder) MarkRange(name string, start, end int, attrs map[string]string) error {
	blk, err := b.staged(name, Propertied)
	if err != nil {
		return err
	}
	if start < 0 || end < start {
		return ErrIllegalArguments
	}
	rs, _ := blk.(Ranges)
	if end > start {
		rs = append(rs, Range{Start: start, End: end, Attrs: maps.Clone(attrs)})
	}
	b.put(name, rs)
	return nil
}

// MarkPoint records singled formatting at position at under the given kind
// name. Point marks are zero-width and always recorded.
func (b *Builder) MarkPoint(name string, at int) error {
	blk, err := b.staged(name, Singled)
	if err != nil {
		return err
	}
	if at < 0 {
		return ErrIllegalArguments
	}
	mk, _ := blk.(Marks)
	b.put(name, append(mk, at))
	return nil
}

// staged fetches the block staged under name, verifying that the builder is
// still open and that name is not already bound to a different kind.
func (b *Builder) staged(name string, k Kind) (Block, error) {
	if b == nil || name == "" {
		return nil, ErrIllegalArguments
	}
	if b.done {
		return nil, ErrModelCompleted
	}
	blk, ok := b.blocks[name]
	if !ok {
		return nil, nil
	}
	if blk.Kind() != k {
		return nil, ErrKindMismatch
	}
	return blk, nil
}

func (b *Builder) put(name string, blk Block) {
	if b.blocks == nil {
		b.blocks = make(map[string]Block)
	}
	b.blocks[name] = blk
	b.dirty = true
}

func (b *Builder) buildModel() Model {
	m := Model{text: b.text.String()}
	for name, blk := range b.blocks {
		if blk.Count() == 0 { // names staged with only empty ranges are not kept
			continue
		}
		assert(blk.max() <= len(m.text), "model builder: block offsets reach beyond staged text")
		m.setBlock(name, blk)
	}
	return m
}

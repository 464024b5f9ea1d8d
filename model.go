package textmodel

import (
	"io"
	"iter"
	"sort"
	"strings"
)

// Model is formatted text in flat form: the complete visible text as one
// string, plus formatting blocks addressed by byte offsets into that string.
// Blocks are keyed by kind name ("bold", "link", …); every name is bound to
// exactly one kind of formatting.
//
// Model is a value type. The zero value is a valid, void model. Models are
// immutable: all operations return fresh models, and accessors hand out
// copies of internal state.
type Model struct {
	text   string
	blocks map[string]Block
}

// FromString creates a model holding text without any formatting.
func FromString(text string) Model {
	return Model{text: text}
}

// Text returns the model's complete text.
func (m Model) Text() string {
	return m.text
}

// Len returns the length of the model's text in bytes.
func (m Model) Len() int {
	return len(m.text)
}

// IsVoid returns true if the model carries neither text nor formatting.
func (m Model) IsVoid() bool {
	return len(m.text) == 0 && len(m.blocks) == 0
}

// String makes a model print like the text it decorates.
func (m Model) String() string {
	return m.text
}

// Reader returns a reader for the bytes of the model's text.
func (m Model) Reader() io.Reader {
	return strings.NewReader(m.text)
}

// KindNames returns the names of all formatting blocks present in the model,
// sorted alphabetically.
func (m Model) KindNames() []string {
	if len(m.blocks) == 0 {
		return nil
	}
	names := make([]string, 0, len(m.blocks))
	for name := range m.blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Block returns a copy of the named formatting block, or false if the model
// has no block of this name.
func (m Model) Block(name string) (Block, bool) {
	b, ok := m.blocks[name]
	if !ok {
		return nil, false
	}
	return b.clone(), true
}

// Spans returns the pairs of the named continuous block. It returns false if
// the model has no block of this name or the block is not continuous.
func (m Model) Spans(name string) (Spans, bool) {
	if sp, ok := m.blocks[name].(Spans); ok {
		return sp.clone().(Spans), true
	}
	return nil, false
}

// Ranges returns the entries of the named propertied block. It returns false
// if the model has no block of this name or the block is not propertied.
func (m Model) Ranges(name string) (Ranges, bool) {
	if rs, ok := m.blocks[name].(Ranges); ok {
		return rs.clone().(Ranges), true
	}
	return nil, false
}

// Marks returns the point positions of the named singled block. It returns
// false if the model has no block of this name or the block is not singled.
func (m Model) Marks(name string) (Marks, bool) {
	if mk, ok := m.blocks[name].(Marks); ok {
		return mk.clone().(Marks), true
	}
	return nil, false
}

// RangeBlocks provides an iterator over all formatting blocks of the model,
// in alphabetical order of kind names. The yielded blocks are copies.
func (m Model) RangeBlocks() iter.Seq2[string, Block] {
	return func(yield func(string, Block) bool) {
		for _, name := range m.KindNames() {
			if !yield(name, m.blocks[name].clone()) {
				return
			}
		}
	}
}

// Equal compares two models for equal text and equal formatting.
func (m Model) Equal(other Model) bool {
	if m.text != other.text || len(m.blocks) != len(other.blocks) {
		return false
	}
	for name, b := range m.blocks {
		o, ok := other.blocks[name]
		if !ok || !b.equal(o) {
			return false
		}
	}
	return true
}

// setBlock records b under name, allocating the block table lazily. It must
// only be called on freshly created models, never on models handed out.
func (m *Model) setBlock(name string, b Block) {
	if m.blocks == nil {
		m.blocks = make(map[string]Block)
	}
	m.blocks[name] = b
}

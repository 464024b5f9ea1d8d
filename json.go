package textmodel

import (
	"encoding/json"
	"fmt"
	"sort"
)

// KindResolver resolves a kind name to the kind of formatting the name is
// bound to. The tags package Registry satisfies this interface.
type KindResolver interface {
	KindOf(name string) (Kind, bool)
}

// wireModel is the JSON shape of a model: the text plus one entry per
// formatting block. Continuous blocks serialize as flat even-length arrays
// of offsets, singled blocks as arrays of positions, and propertied blocks
// as arrays of objects carrying "start", "end" and the attributes.
type wireModel struct {
	Text   string                     `json:"text"`
	Blocks map[string]json.RawMessage `json:"blocks"`
}

// MarshalJSON serializes a model. Block names and attribute keys are emitted
// in sorted order, which makes the output deterministic and fit for content
// hashing.
func (m Model) MarshalJSON() ([]byte, error) {
	wire := wireModel{
		Text:   m.text,
		Blocks: make(map[string]json.RawMessage, len(m.blocks)),
	}
	for name, blk := range m.blocks {
		raw, err := marshalBlock(blk)
		if err != nil {
			return nil, fmt.Errorf("textmodel: block %q: %w", name, err)
		}
		wire.Blocks[name] = raw
	}
	return json.Marshal(wire)
}

func marshalBlock(blk Block) (json.RawMessage, error) {
	switch b := blk.(type) {
	case Spans:
		return json.Marshal([]int(b))
	case Marks:
		return json.Marshal([]int(b))
	case Ranges:
		entries := make([]map[string]any, 0, len(b))
		for _, r := range b {
			entry := make(map[string]any, len(r.Attrs)+2)
			for k, v := range r.Attrs {
				entry[k] = v
			}
			entry["start"] = r.Start
			entry["end"] = r.End
			entries = append(entries, entry)
		}
		return json.Marshal(entries)
	}
	return nil, ErrUnknownKind
}

// UnmarshalModel deserializes a model from its JSON form.
//
// Flat integer arrays are ambiguous on the wire, holding either continuous
// spans or singled point marks, so decoding consults kinds for the kind
// bound to each block name; an integer payload under a name the resolver
// does not know is rejected with ErrUnknownKind. Object arrays always decode
// as propertied blocks.
//
// Input is normalized the way ingesting markup normalizes: empty ranges are
// dropped and touching continuous pairs merge. Structurally broken blocks,
// such as odd-length span lists, inverted pairs, spans out of order, or
// offsets outside the text, are rejected.
func UnmarshalModel(data []byte, kinds KindResolver) (Model, error) {
	if kinds == nil {
		return Model{}, ErrIllegalArguments
	}
	var wire wireModel
	if err := json.Unmarshal(data, &wire); err != nil {
		return Model{}, fmt.Errorf("textmodel: cannot decode model: %w", err)
	}
	m := Model{text: wire.Text}
	names := make([]string, 0, len(wire.Blocks))
	for name := range wire.Blocks {
		names = append(names, name)
	}
	sort.Strings(names) // report problems in deterministic order
	for _, name := range names {
		blk, err := unmarshalBlock(name, wire.Blocks[name], len(wire.Text), kinds)
		if err != nil {
			return Model{}, err
		}
		if blk != nil && blk.Count() > 0 {
			m.setBlock(name, blk)
		}
	}
	return m, nil
}

func unmarshalBlock(name string, raw json.RawMessage, textlen int, kinds KindResolver) (Block, error) {
	var ints []int
	if err := json.Unmarshal(raw, &ints); err == nil {
		if len(ints) == 0 {
			return nil, nil
		}
		k, ok := kinds.KindOf(name)
		if !ok {
			return nil, fmt.Errorf("textmodel: block %q: %w", name, ErrUnknownKind)
		}
		switch k {
		case Continuous:
			return spansFromWire(name, ints, textlen)
		case Singled:
			return marksFromWire(name, ints, textlen)
		}
		return nil, fmt.Errorf("textmodel: block %q holds bare offsets but is bound to %s formatting: %w",
			name, k, ErrKindMismatch)
	}
	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("textmodel: block %q: %w", name, err)
	}
	return rangesFromWire(name, entries, textlen)
}

func spansFromWire(name string, ints []int, textlen int) (Block, error) {
	if len(ints)%2 != 0 {
		return nil, fmt.Errorf("textmodel: block %q: span list of odd length: %w", name, ErrIllegalArguments)
	}
	var sp Spans
	prevStart := -1
	for i := 0; i+1 < len(ints); i += 2 {
		start, end := ints[i], ints[i+1]
		if start < 0 || end > textlen {
			return nil, fmt.Errorf("textmodel: block %q: %w", name, ErrIndexOutOfBounds)
		}
		if end < start {
			return nil, fmt.Errorf("textmodel: block %q: inverted span: %w", name, ErrIllegalArguments)
		}
		if start < prevStart {
			return nil, fmt.Errorf("textmodel: block %q: spans out of order: %w", name, ErrIllegalArguments)
		}
		sp = sp.push(start, end)
		prevStart = start
	}
	return sp, nil
}

func marksFromWire(name string, ints []int, textlen int) (Block, error) {
	mk := make(Marks, 0, len(ints))
	for _, p := range ints {
		if p < 0 || p > textlen {
			return nil, fmt.Errorf("textmodel: block %q: %w", name, ErrIndexOutOfBounds)
		}
		mk = append(mk, p)
	}
	return mk, nil
}

func rangesFromWire(name string, entries []map[string]any, textlen int) (Block, error) {
	var rs Ranges
	for _, entry := range entries {
		start, ok := wireOffset(entry["start"])
		if !ok {
			return nil, fmt.Errorf("textmodel: block %q: range without start offset: %w", name, ErrIllegalArguments)
		}
		end, ok := wireOffset(entry["end"])
		if !ok {
			return nil, fmt.Errorf("textmodel: block %q: range without end offset: %w", name, ErrIllegalArguments)
		}
		if start < 0 || end > textlen {
			return nil, fmt.Errorf("textmodel: block %q: %w", name, ErrIndexOutOfBounds)
		}
		if end < start {
			return nil, fmt.Errorf("textmodel: block %q: inverted range: %w", name, ErrIllegalArguments)
		}
		if end == start { // empty propertied ranges are never stored
			continue
		}
		var attrs map[string]string
		for k, v := range entry {
			if k == "start" || k == "end" {
				continue
			}
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("textmodel: block %q: attribute %q is not a string: %w",
					name, k, ErrIllegalArguments)
			}
			if attrs == nil {
				attrs = make(map[string]string)
			}
			attrs[k] = s
		}
		rs = append(rs, Range{Start: start, End: end, Attrs: attrs})
	}
	return rs, nil
}

// wireOffset converts a decoded JSON value to an integral offset.
func wireOffset(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

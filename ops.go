package textmodel

import "unicode/utf8"

// Insert inserts model sub into m at byte position at and returns the
// combined model.
//
// Insert is composed of Split and Concat and inherits their formatting
// semantics: continuous spans re-fuse across the seams, while point marks
// sitting exactly at the insertion position are dropped.
func Insert(m Model, sub Model, at int) (Model, error) {
	before, after, err := Split(m, at)
	if err != nil {
		return Model{}, err
	}
	return Concat(Concat(before, sub), after), nil
}

// Cut cuts out a substring [at…at+n) from a model. It returns a new model
// without the cut-out segment and the cut segment itself.
//
// Like Insert, Cut is composed of Split and Concat: formatting covering a
// cut edge is divided there, and point marks sitting exactly on an edge are
// dropped.
func Cut(m Model, at, n int) (Model, Model, error) {
	if n < 0 {
		return Model{}, Model{}, ErrIllegalArguments
	}
	before, rest, err := Split(m, at)
	if err != nil {
		return Model{}, Model{}, err
	}
	cut, after, err := Split(rest, n)
	if err != nil {
		return Model{}, Model{}, err
	}
	return Concat(before, after), cut, nil
}

// Substr creates a new model from a subset [at…at+n) of m, formatting
// included.
func Substr(m Model, at, n int) (Model, error) {
	_, sub, err := Cut(m, at, n)
	return sub, err
}

// Report outputs a substring of the model's text: Report(i,n) => the bytes
// bi,…,bi+n-1.
func (m Model) Report(i, n int) (string, error) {
	if n < 0 || i < 0 || i+n > len(m.text) {
		return "", ErrIndexOutOfBounds
	}
	return m.text[i : i+n], nil
}

// SplitRunes splits a model at rune-aware position p.
//
// Position p is validated for this model before splitting.
func SplitRunes(m Model, p int) (Model, Model, error) {
	b, err := m.ByteOffset(p)
	if err != nil {
		return Model{}, Model{}, err
	}
	return Split(m, b)
}

// ByteOffset returns the byte offset of the p'th rune of the model's text.
// p may equal the rune count of the text, addressing its very end.
func (m Model) ByteOffset(p int) (int, error) {
	if p < 0 {
		return 0, ErrIndexOutOfBounds
	}
	off := 0
	for i := 0; i < p; i++ {
		if off >= len(m.text) {
			return 0, ErrIndexOutOfBounds
		}
		_, w := utf8.DecodeRuneInString(m.text[off:])
		off += w
	}
	return off, nil
}

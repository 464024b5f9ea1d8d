package textmodel

// Split cuts a model into two self-consistent models immediately before byte
// position at. Positions range over [0,len]; both extremes are legal and
// yield one void side.
//
// Formatting is divided along with the text:
//
//   - A continuous span covering the split point is cut in two; each side
//     keeps its part.
//   - A propertied range covering the split point is cut in two as well, and
//     both parts retain the full attribute set.
//   - A point mark sitting exactly on the split point belongs to neither
//     side and is dropped. Re-concatenating the two halves therefore restores
//     the text and all continuous formatting, but not boundary marks.
//
// Offsets in the after model are rebased to its own text.
func Split(m Model, at int) (Model, Model, error) {
	if at < 0 || at > len(m.text) {
		return Model{}, Model{}, ErrIndexOutOfBounds
	}
	before := Model{text: m.text[:at]}
	after := Model{text: m.text[at:]}
	for name, blk := range m.blocks {
		left, right := blk.split(at)
		if left.Count() > 0 {
			before.setBlock(name, left)
		}
		if right.Count() > 0 {
			after.setBlock(name, right)
		}
	}
	return before, after, nil
}

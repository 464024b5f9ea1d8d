package textmodel

// Concat concatenates two models into a new model. Texts are joined, and the
// formatting of after is shifted by the length of before's text.
//
// Continuous spans meeting exactly at the seam fuse into one span, as if the
// text had carried the formatting in one piece all along. Propertied ranges
// never fuse, so two links stay two links even when they touch, and point
// marks are carried over unchanged.
//
// Both input models remain untouched.
func Concat(before, after Model) Model {
	seam := len(before.text)
	out := Model{text: before.text + after.text}
	for name, blk := range before.blocks {
		out.setBlock(name, blk.clone())
	}
	for name, blk := range after.blocks {
		shifted := blk.shift(seam)
		cur, ok := out.blocks[name]
		if !ok {
			out.setBlock(name, shifted)
			continue
		}
		assert(cur.Kind() == shifted.Kind(), "concat: one block name bound to two formatting kinds")
		out.setBlock(name, joinBlocks(cur, shifted, seam))
	}
	return out
}

// joinBlocks appends right to left, where right has already been shifted
// behind the seam. Only continuous blocks fuse at the seam.
func joinBlocks(left, right Block, seam int) Block {
	switch l := left.(type) {
	case Spans:
		return l.join(right.(Spans), seam)
	case Ranges:
		return append(l, right.(Ranges)...)
	case Marks:
		return append(l, right.(Marks)...)
	}
	assert(false, "concat: block of unknown type")
	return nil
}

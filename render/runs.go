package render

import (
	"sort"

	textmodel "github.com/TakenPilot/text-model"
)

// Run is a maximal stretch of a model's text with a uniform set of
// formatting kinds. Kinds lists the names of all continuous and propertied
// blocks covering the stretch, in alphabetical order. Point marks do not
// contribute to runs; they break lines instead (see Output).
type Run struct {
	Text  string
	Kinds []string
	Start int
	End   int
}

// Runs segments a model's text into runs. Segment boundaries are the
// endpoints of the model's spans and ranges; between two adjacent
// boundaries the set of covering kinds cannot change.
func Runs(m textmodel.Model) []Run {
	text := m.Text()
	if text == "" {
		return nil
	}
	type cover struct {
		name string
		blk  textmodel.Block
	}
	var covers []cover
	cuts := []int{0, len(text)}
	for name, blk := range m.RangeBlocks() {
		switch b := blk.(type) {
		case textmodel.Spans:
			for i := 0; i < b.Count(); i++ {
				start, end := b.At(i)
				cuts = append(cuts, start, end)
			}
		case textmodel.Ranges:
			for _, r := range b {
				cuts = append(cuts, r.Start, r.End)
			}
		default: // marks are zero width
			continue
		}
		covers = append(covers, cover{name, blk})
	}
	sort.Ints(cuts)
	runs := make([]Run, 0, len(cuts)-1)
	for i := 0; i+1 < len(cuts); i++ {
		a, b := cuts[i], cuts[i+1]
		if a >= b { // duplicate boundary
			continue
		}
		run := Run{Text: text[a:b], Start: a, End: b}
		for _, c := range covers { // covers preserves RangeBlocks order, i.e. alphabetical
			if coveredBy(c.blk, a, b) {
				run.Kinds = append(run.Kinds, c.name)
			}
		}
		runs = append(runs, run)
	}
	return runs
}

// coveredBy tests whether a block has a span or range enclosing [a,b).
func coveredBy(blk textmodel.Block, a, b int) bool {
	switch bb := blk.(type) {
	case textmodel.Spans:
		for i := 0; i < bb.Count(); i++ {
			start, end := bb.At(i)
			if start <= a && b <= end {
				return true
			}
		}
	case textmodel.Ranges:
		for _, r := range bb {
			if r.Start <= a && b <= r.End {
				return true
			}
		}
	}
	return false
}

// Iterator walks the runs of a model one by one.
//
//	runs := render.IterateRuns(model)
//	for runs.Next() {
//	    run := runs.Run()
//	    …
//	}
type Iterator struct {
	runs []Run
	inx  int
}

// IterateRuns creates an iterator over the runs of a model.
func IterateRuns(m textmodel.Model) *Iterator {
	return &Iterator{runs: Runs(m)}
}

// Next advances the iterator to the next run, returning false if the runs
// are exhausted.
func (it *Iterator) Next() bool {
	if it.inx >= len(it.runs) {
		return false
	}
	it.inx++
	return true
}

// Run returns the run at the current iterator position. Without a prior
// call to Next the run is empty.
func (it *Iterator) Run() Run {
	if it.inx == 0 {
		return Run{}
	}
	return it.runs[it.inx-1]
}

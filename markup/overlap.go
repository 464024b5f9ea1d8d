package markup

import (
	"sort"

	textmodel "github.com/TakenPilot/text-model"
)

// crossings counts the pairs of b that cross a boundary of a. A pair
// crosses when its two endpoints' insertion positions into a's flattened
// boundary list differ; a pair nested inside one of a's ranges, or lying
// completely outside all of them, contributes nothing.
func crossings(a, b textmodel.Spans) int {
	count := 0
	boundaries := []int(a)
	for i := 0; i < b.Count(); i++ {
		start, end := b.At(i)
		if sort.SearchInts(boundaries, start) != sort.SearchInts(boundaries, end) {
			count++
		}
	}
	return count
}

// orderContinuous returns the rendering order for continuous kinds. With
// exactly two kinds present, the kind crossed less often by the other one
// renders first and thereby ends up as the outer element wherever the two
// nest; ties keep the declaration order. Any other number of kinds renders
// in declaration order as given.
func orderContinuous(m textmodel.Model, names []string) []string {
	if len(names) != 2 {
		return names
	}
	a, _ := m.Spans(names[0])
	b, _ := m.Spans(names[1])
	if crossings(a, b) <= crossings(b, a) {
		return names
	}
	return []string{names[1], names[0]}
}

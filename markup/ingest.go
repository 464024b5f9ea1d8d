package markup

import (
	textmodel "github.com/TakenPilot/text-model"
	"github.com/TakenPilot/text-model/dom"
	"github.com/TakenPilot/text-model/tags"
)

// Ingest reads the tree under root through be and returns its text model.
//
// The walk appends every text leaf to the model's text, in document order.
// Formatting elements record a block entry bracketing the text of their
// subtree: continuous kinds a span, propertied kinds a range carrying the
// element's attributes, singled kinds a point mark. Containers descend
// without recording. Opaque and unknown subtrees are skipped entirely; their
// text never surfaces in the model.
//
// The root classifies like any other node, so ingesting a lone formatting
// element yields a model bracketing its whole text. Ingest never mutates the
// tree.
func Ingest[N comparable](be dom.Backend[N], root N, reg *tags.Registry) (textmodel.Model, error) {
	var zero N
	if be == nil || reg == nil || root == zero {
		return textmodel.Model{}, textmodel.ErrIllegalArguments
	}
	b := textmodel.NewBuilder()
	var walkErr error
	dom.Walk(be, root, func(n N) dom.WalkStatus {
		var err error
		switch be.Kind(n) {
		case dom.Text:
			err = b.AppendString(be.Text(n))
		case dom.Fragment:
			// anonymous container, descend
		case dom.Element:
			cls := reg.Classify(be.Tag(n))
			switch cls.Class {
			case tags.Container:
				// descend
			case tags.Opaque, tags.Unknown:
				tracer().Debugf("markup ingest skips %s subtree <%s>", cls.Class, be.Tag(n))
				return dom.WalkSkipChildren
			case tags.Format:
				err = record(be, n, cls, reg, b)
			}
		default:
			return dom.WalkSkipChildren // comments, declarations and the like
		}
		if err != nil {
			walkErr = err
			return dom.WalkStop
		}
		return dom.WalkContinue
	})
	if walkErr != nil {
		return textmodel.Model{}, walkErr
	}
	return b.Model(), nil
}

// record stages the block entry for a formatting element. The builder merges
// continuous spans in document order, so the entry is staged before the walk
// descends, with the subtree's text length computed up front.
func record[N comparable](be dom.Backend[N], n N, cls tags.Classification, reg *tags.Registry, b *textmodel.Builder) error {
	start := b.Len()
	switch cls.Kind {
	case textmodel.Continuous:
		return b.MarkSpan(cls.Name, start, start+contentLength(be, n, reg))
	case textmodel.Propertied:
		return b.MarkRange(cls.Name, start, start+contentLength(be, n, reg), be.Attrs(n))
	case textmodel.Singled:
		return b.MarkPoint(cls.Name, start)
	}
	return nil
}

// contentLength computes the text length the walk will accumulate below n:
// all text leaves except those inside opaque or unknown subtrees.
func contentLength[N comparable](be dom.Backend[N], n N, reg *tags.Registry) int {
	length := 0
	for ch, ok := be.FirstChild(n); ok; ch, ok = be.NextSibling(ch) {
		length += subtreeTextLength(be, ch, reg)
	}
	return length
}

func subtreeTextLength[N comparable](be dom.Backend[N], n N, reg *tags.Registry) int {
	switch be.Kind(n) {
	case dom.Text:
		return len(be.Text(n))
	case dom.Element:
		switch reg.Classify(be.Tag(n)).Class {
		case tags.Opaque, tags.Unknown:
			return 0
		}
	case dom.Fragment:
		// descend
	default:
		return 0
	}
	return contentLength(be, n, reg)
}

package textmodel

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestConcatSeamMerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textmodel")
	defer teardown()
	//
	before := buildModel(t, "abc", func(b *Builder) {
		mustMark(t, b.MarkSpan("bold", 0, 3))
	})
	after := buildModel(t, "def", func(b *Builder) {
		mustMark(t, b.MarkSpan("bold", 0, 3))
	})
	m := Concat(before, after)
	t.Logf("m = '%s'", m)
	if m.Text() != "abcdef" {
		t.Fatalf("expected concatenated text 'abcdef', got %q", m.Text())
	}
	sp, _ := m.Spans("bold")
	if !sp.equal(Spans{0, 6}) {
		t.Errorf("expected spans meeting at the seam to fuse into [0,6), got %v", sp)
	}
}

func TestConcatKeepsGap(t *testing.T) {
	before := buildModel(t, "abc", func(b *Builder) {
		mustMark(t, b.MarkSpan("bold", 0, 2))
	})
	after := buildModel(t, "def", func(b *Builder) {
		mustMark(t, b.MarkSpan("bold", 1, 3))
	})
	sp, _ := Concat(before, after).Spans("bold")
	if !sp.equal(Spans{0, 2, 4, 6}) {
		t.Errorf("expected spans [0,2,4,6], got %v", sp)
	}
}

func TestConcatPropertiedNeverMerges(t *testing.T) {
	attrs := map[string]string{"href": "x"}
	before := buildModel(t, "abc", func(b *Builder) {
		mustMark(t, b.MarkRange("link", 0, 3, attrs))
	})
	after := buildModel(t, "def", func(b *Builder) {
		mustMark(t, b.MarkRange("link", 0, 3, attrs))
	})
	rs, _ := Concat(before, after).Ranges("link")
	if len(rs) != 2 {
		t.Fatalf("expected two links after concatenation, got %d", len(rs))
	}
	if rs[0].Start != 0 || rs[0].End != 3 || rs[1].Start != 3 || rs[1].End != 6 {
		t.Errorf("expected links {0,3} and {3,6}, got %v", rs)
	}
}

func TestConcatShiftsMarks(t *testing.T) {
	before := buildModel(t, "ab", func(b *Builder) {
		mustMark(t, b.MarkPoint("break", 1))
	})
	after := buildModel(t, "cd", func(b *Builder) {
		mustMark(t, b.MarkPoint("break", 0))
		mustMark(t, b.MarkPoint("break", 2))
	})
	mk, _ := Concat(before, after).Marks("break")
	if !mk.equal(Marks{1, 2, 4}) {
		t.Errorf("expected marks [1,2,4], got %v", mk)
	}
}

func TestConcatDisjointKinds(t *testing.T) {
	before := buildModel(t, "abc", func(b *Builder) {
		mustMark(t, b.MarkSpan("bold", 0, 3))
	})
	after := buildModel(t, "def", func(b *Builder) {
		mustMark(t, b.MarkSpan("emphasis", 0, 3))
	})
	m := Concat(before, after)
	spb, _ := m.Spans("bold")
	spe, _ := m.Spans("emphasis")
	if !spb.equal(Spans{0, 3}) {
		t.Errorf("expected bold [0,3), got %v", spb)
	}
	if !spe.equal(Spans{3, 6}) {
		t.Errorf("expected emphasis shifted to [3,6), got %v", spe)
	}
}

func TestConcatVoid(t *testing.T) {
	m := buildModel(t, "abc", func(b *Builder) {
		mustMark(t, b.MarkSpan("bold", 1, 2))
	})
	if !Concat(m, Model{}).Equal(m) {
		t.Errorf("expected concatenation with a void tail to be a no-op")
	}
	if !Concat(Model{}, m).Equal(m) {
		t.Errorf("expected concatenation with a void head to be a no-op")
	}
}

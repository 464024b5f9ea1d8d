package textmodel

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestVoidModel(t *testing.T) {
	m := Model{}
	if !m.IsVoid() {
		t.Errorf("expected zero value model to be void, isn't")
	}
	if m.Len() != 0 || m.Text() != "" {
		t.Errorf("expected void model to have no text, has %q", m.Text())
	}
	if names := m.KindNames(); names != nil {
		t.Errorf("expected void model to have no blocks, has %v", names)
	}
}

func TestFromString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textmodel")
	defer teardown()
	//
	m := FromString("Hello World")
	t.Logf("m = '%s'", m)
	if m.String() != "Hello World" {
		t.Errorf("expected model.String() to be 'Hello World', is not")
	}
	if m.Len() != 11 {
		t.Errorf("expected model length 11, is %d", m.Len())
	}
	if _, ok := m.Block("bold"); ok {
		t.Errorf("expected plain model to have no bold block, has one")
	}
}

func TestModelEqual(t *testing.T) {
	m1 := buildModel(t, "abcdef", func(b *Builder) {
		mustMark(t, b.MarkSpan("bold", 0, 6))
		mustMark(t, b.MarkRange("link", 2, 4, map[string]string{"href": "x"}))
	})
	m2 := buildModel(t, "abcdef", func(b *Builder) {
		mustMark(t, b.MarkSpan("bold", 0, 6))
		mustMark(t, b.MarkRange("link", 2, 4, map[string]string{"href": "x"}))
	})
	if !m1.Equal(m2) {
		t.Errorf("expected identically built models to be equal, aren't")
	}
	m3 := buildModel(t, "abcdef", func(b *Builder) {
		mustMark(t, b.MarkSpan("bold", 0, 6))
		mustMark(t, b.MarkRange("link", 2, 4, map[string]string{"href": "y"}))
	})
	if m1.Equal(m3) {
		t.Errorf("expected models with different attributes to differ, don't")
	}
}

func TestModelReport(t *testing.T) {
	m := FromString("Hello World")
	s, err := m.Report(6, 5)
	if err != nil {
		t.Fatal(err.Error())
	}
	if s != "World" {
		t.Errorf("expected report of (6,5) to be 'World', is %q", s)
	}
	if _, err = m.Report(6, 6); err != ErrIndexOutOfBounds {
		t.Errorf("expected out-of-bounds report to fail, didn't")
	}
}

func TestModelAccessorsCopy(t *testing.T) {
	m := buildModel(t, "abcdef", func(b *Builder) {
		mustMark(t, b.MarkSpan("bold", 0, 4))
	})
	sp, ok := m.Spans("bold")
	if !ok {
		t.Fatalf("expected model to have a bold block, hasn't")
	}
	sp[1] = 99
	sp2, _ := m.Spans("bold")
	if sp2[1] != 4 {
		t.Errorf("expected model to be immune against mutation of handed-out spans")
	}
}

func TestModelRangeBlocks(t *testing.T) {
	m := buildModel(t, "abcdef", func(b *Builder) {
		mustMark(t, b.MarkPoint("break", 3))
		mustMark(t, b.MarkSpan("bold", 0, 2))
	})
	var names []string
	for name, blk := range m.RangeBlocks() {
		names = append(names, name)
		if blk.Count() != 1 {
			t.Errorf("expected block %q to have 1 entry, has %d", name, blk.Count())
		}
	}
	if len(names) != 2 || names[0] != "bold" || names[1] != "break" {
		t.Errorf("expected blocks in alphabetical order, got %v", names)
	}
}

// --- Helpers ---------------------------------------------------------------

func buildModel(t *testing.T, text string, stage func(b *Builder)) Model {
	t.Helper()
	b := NewBuilder()
	if err := b.AppendString(text); err != nil {
		t.Fatal(err.Error())
	}
	if stage != nil {
		stage(b)
	}
	return b.Model()
}

func mustMark(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err.Error())
	}
}

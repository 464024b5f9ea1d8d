package textmodel

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBuilderStagesModel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textmodel")
	defer teardown()
	//
	b := NewBuilder()
	if err := b.AppendString("abc"); err != nil {
		t.Fatal(err.Error())
	}
	if err := b.MarkSpan("bold", 0, 3); err != nil {
		t.Fatal(err.Error())
	}
	m := b.Model()
	t.Logf("m = '%s', blocks = %v", m, m.KindNames())
	sp, ok := m.Spans("bold")
	if !ok || sp.Count() != 1 {
		t.Fatalf("expected model to have one bold span, has %v", sp)
	}
	if s, e := sp.At(0); s != 0 || e != 3 {
		t.Errorf("expected bold span [0,3), is [%d,%d)", s, e)
	}
	if err := b.AppendString("def"); err != ErrModelCompleted {
		t.Errorf("expected appending to a completed builder to fail, didn't")
	}
	if !b.Model().Equal(m) {
		t.Errorf("expected repeated Model() calls to return the same model")
	}
	b.Reset()
	if err := b.AppendString("x"); err != nil {
		t.Errorf("expected reset builder to accept fragments again: %v", err)
	}
}

func TestBuilderMergesTouchingSpans(t *testing.T) {
	b := NewBuilder()
	_ = b.AppendString("abcd")
	_ = b.MarkSpan("bold", 0, 2)
	_ = b.MarkSpan("bold", 2, 4)
	sp, _ := b.Model().Spans("bold")
	if sp.Count() != 1 {
		t.Fatalf("expected touching spans to merge into one, got %v", sp)
	}
	if s, e := sp.At(0); s != 0 || e != 4 {
		t.Errorf("expected merged span [0,4), is [%d,%d)", s, e)
	}
}

func TestBuilderAbsorbsNestedSpans(t *testing.T) {
	// nested same-kind markup like <b>ab<b>cd</b>ef</b>
	b := NewBuilder()
	_ = b.AppendString("abcdef")
	_ = b.MarkSpan("bold", 0, 6)
	_ = b.MarkSpan("bold", 2, 4)
	sp, _ := b.Model().Spans("bold")
	if sp.Count() != 1 {
		t.Fatalf("expected nested span to be absorbed, got %v", sp)
	}
	if s, e := sp.At(0); s != 0 || e != 6 {
		t.Errorf("expected span [0,6), is [%d,%d)", s, e)
	}
}

func TestBuilderKeepsDisjointSpans(t *testing.T) {
	b := NewBuilder()
	_ = b.AppendString("abcdef")
	_ = b.MarkSpan("bold", 0, 2)
	_ = b.MarkSpan("bold", 4, 6)
	sp, _ := b.Model().Spans("bold")
	if sp.Count() != 2 {
		t.Fatalf("expected disjoint spans to stay apart, got %v", sp)
	}
}

func TestBuilderSpanMayPrecedeText(t *testing.T) {
	// a markup walk records a span when the element is visited, before the
	// element's content is staged
	b := NewBuilder()
	if err := b.MarkSpan("bold", 0, 6); err != nil {
		t.Fatal(err.Error())
	}
	if err := b.AppendString("abcdef"); err != nil {
		t.Fatal(err.Error())
	}
	sp, ok := b.Model().Spans("bold")
	if !ok || sp.max() != 6 {
		t.Errorf("expected span recorded ahead of its text to survive, got %v", sp)
	}
}

func TestBuilderKindMismatch(t *testing.T) {
	b := NewBuilder()
	_ = b.AppendString("abcdef")
	if err := b.MarkSpan("x", 0, 2); err != nil {
		t.Fatal(err.Error())
	}
	if err := b.MarkRange("x", 2, 4, nil); err != ErrKindMismatch {
		t.Errorf("expected re-binding a name to another kind to fail, got %v", err)
	}
	if err := b.MarkPoint("x", 3); err != ErrKindMismatch {
		t.Errorf("expected re-binding a name to another kind to fail, got %v", err)
	}
}

func TestBuilderDropsEmptyRanges(t *testing.T) {
	b := NewBuilder()
	_ = b.AppendString("abcd")
	_ = b.MarkSpan("bold", 2, 2)
	_ = b.MarkRange("link", 1, 1, map[string]string{"href": "x"})
	_ = b.MarkPoint("break", 2)
	m := b.Model()
	names := m.KindNames()
	if len(names) != 1 || names[0] != "break" {
		t.Errorf("expected only the zero-width point mark to survive, got %v", names)
	}
	mk, _ := m.Marks("break")
	if mk.Count() != 1 || mk[0] != 2 {
		t.Errorf("expected break mark at 2, got %v", mk)
	}
}

func TestBuilderValidatesArguments(t *testing.T) {
	b := NewBuilder()
	_ = b.AppendString("abcd")
	if err := b.MarkSpan("", 0, 1); err != ErrIllegalArguments {
		t.Errorf("expected empty kind name to be rejected, got %v", err)
	}
	if err := b.MarkSpan("bold", -1, 1); err != ErrIllegalArguments {
		t.Errorf("expected negative offset to be rejected, got %v", err)
	}
	if err := b.MarkRange("link", 3, 1, nil); err != ErrIllegalArguments {
		t.Errorf("expected inverted range to be rejected, got %v", err)
	}
	if err := b.MarkPoint("break", -2); err != ErrIllegalArguments {
		t.Errorf("expected negative mark to be rejected, got %v", err)
	}
}

package markup

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"

	textmodel "github.com/TakenPilot/text-model"
	"github.com/TakenPilot/text-model/dom/htmldom"
	"github.com/TakenPilot/text-model/dom/xmldom"
	"github.com/TakenPilot/text-model/tags"
)

func ingestHTML(t *testing.T, input string) textmodel.Model {
	t.Helper()
	frag, err := htmldom.ParseFragmentString(input)
	if err != nil {
		t.Fatal(err.Error())
	}
	m, err := Ingest(htmldom.Backend{}, frag, tags.Default())
	if err != nil {
		t.Fatal(err.Error())
	}
	return m
}

func TestIngestPlainText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textmodel")
	defer teardown()
	//
	m := ingestHTML(t, "Hello World")
	if m.Text() != "Hello World" {
		t.Errorf("expected text to survive unchanged, got %q", m.Text())
	}
	if len(m.KindNames()) != 0 {
		t.Errorf("expected no formatting, got %v", m.KindNames())
	}
}

func TestIngestNestedInline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textmodel")
	defer teardown()
	//
	m := ingestHTML(t, "<p><b>ab<i>cd</i>ef</b></p>")
	if m.Text() != "abcdef" {
		t.Fatalf("expected text abcdef, got %q", m.Text())
	}
	if sp, _ := m.Spans("bold"); !sp.Equal(textmodel.Spans{0, 6}) {
		t.Errorf("expected bold to bracket the whole text, got %v", sp)
	}
	if sp, _ := m.Spans("emphasis"); !sp.Equal(textmodel.Spans{2, 4}) {
		t.Errorf("expected emphasis [2,4), got %v", sp)
	}
}

func TestIngestSiblingSpansMerge(t *testing.T) {
	m := ingestHTML(t, "<b>ab</b><b>cd</b>")
	if sp, _ := m.Spans("bold"); !sp.Equal(textmodel.Spans{0, 4}) {
		t.Errorf("expected touching bold spans to merge into [0,4), got %v", sp)
	}
}

func TestIngestLinkAttributes(t *testing.T) {
	m := ingestHTML(t, `<p><a href="x" title="y">ab</a>cd</p>`)
	rs, ok := m.Ranges("link")
	if !ok || len(rs) != 1 {
		t.Fatalf("expected one link range, got %v", rs)
	}
	if rs[0].Start != 0 || rs[0].End != 2 {
		t.Errorf("expected link to cover [0,2), got [%d,%d)", rs[0].Start, rs[0].End)
	}
	if rs[0].Attr("href") != "x" || rs[0].Attr("title") != "y" {
		t.Errorf("expected link attributes to be captured, got %v", rs[0].Attrs)
	}
}

func TestIngestEmptyLinkDropped(t *testing.T) {
	m := ingestHTML(t, `<p><a href="x"></a>ab</p>`)
	if _, ok := m.Ranges("link"); ok {
		t.Errorf("expected the empty link to be dropped")
	}
}

func TestIngestBreaks(t *testing.T) {
	m := ingestHTML(t, "<p>ab<br>cd<br></p>")
	if m.Text() != "abcd" {
		t.Fatalf("expected breaks to contribute no text, got %q", m.Text())
	}
	if mk, _ := m.Marks("break"); !mk.Equal(textmodel.Marks{2, 4}) {
		t.Errorf("expected break marks at 2 and 4, got %v", mk)
	}
}

func TestIngestOpaqueSkipped(t *testing.T) {
	m := ingestHTML(t, "<p>ab<script>var x = 1;</script>cd</p>")
	if m.Text() != "abcd" {
		t.Errorf("expected script content to stay invisible, got %q", m.Text())
	}
}

func TestIngestUnknownSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textmodel")
	defer teardown()
	//
	m := ingestHTML(t, "<p>ab<video>xy</video>cd</p>")
	if m.Text() != "abcd" {
		t.Errorf("expected the unknown subtree to be skipped, got %q", m.Text())
	}
}

func TestIngestAlias(t *testing.T) {
	m := ingestHTML(t, "<p><u>ab</u>cd</p>")
	if sp, _ := m.Spans("emphasis"); !sp.Equal(textmodel.Spans{0, 2}) {
		t.Errorf("expected u to record as emphasis, got %v", sp)
	}
}

func TestIngestHeadingDescends(t *testing.T) {
	m := ingestHTML(t, "<h2>Title <em>two</em></h2>")
	if m.Text() != "Title two" {
		t.Fatalf("expected heading text, got %q", m.Text())
	}
	if sp, _ := m.Spans("emphasis"); !sp.Equal(textmodel.Spans{6, 9}) {
		t.Errorf("expected emphasis inside the heading, got %v", sp)
	}
}

func TestIngestFormattingRoot(t *testing.T) {
	frag, err := htmldom.ParseFragmentString("<b>abc</b>")
	if err != nil {
		t.Fatal(err.Error())
	}
	be := htmldom.Backend{}
	el, ok := be.FirstChild(frag)
	if !ok {
		t.Fatal("expected the parse to yield an element")
	}
	m, err := Ingest(be, el, tags.Default())
	if err != nil {
		t.Fatal(err.Error())
	}
	if sp, _ := m.Spans("bold"); !sp.Equal(textmodel.Spans{0, 3}) {
		t.Errorf("expected a formatting root to bracket its text, got %v", sp)
	}
}

func TestIngestXML(t *testing.T) {
	doc, err := xmldom.ParseString("<p>ab <b>cd</b></p>")
	if err != nil {
		t.Fatal(err.Error())
	}
	m, err := Ingest(xmldom.Backend{}, doc, tags.Default())
	if err != nil {
		t.Fatal(err.Error())
	}
	if m.Text() != "ab cd" {
		t.Fatalf("expected text from the xml tree, got %q", m.Text())
	}
	if sp, _ := m.Spans("bold"); !sp.Equal(textmodel.Spans{3, 5}) {
		t.Errorf("expected bold [3,5), got %v", sp)
	}
}

func TestIngestValidatesArguments(t *testing.T) {
	frag, err := htmldom.ParseFragmentString("ab")
	if err != nil {
		t.Fatal(err.Error())
	}
	if _, err := Ingest[*html.Node](nil, frag, tags.Default()); err != textmodel.ErrIllegalArguments {
		t.Errorf("expected a nil backend to be rejected, got %v", err)
	}
	if _, err := Ingest(htmldom.Backend{}, (*html.Node)(nil), tags.Default()); err != textmodel.ErrIllegalArguments {
		t.Errorf("expected a zero root to be rejected, got %v", err)
	}
	if _, err := Ingest(htmldom.Backend{}, frag, nil); err != textmodel.ErrIllegalArguments {
		t.Errorf("expected a nil registry to be rejected, got %v", err)
	}
}

package htmldom

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"

	"github.com/TakenPilot/text-model/dom"
)

func TestParseFragment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textmodel")
	defer teardown()
	//
	frag, err := ParseFragmentString("Hello <b>World</b>")
	if err != nil {
		t.Fatal(err.Error())
	}
	be := Backend{}
	if be.Kind(frag) != dom.Fragment {
		t.Fatalf("expected parse result to be a fragment, is %v", be.Kind(frag))
	}
	ch, ok := be.FirstChild(frag)
	if !ok || be.Kind(ch) != dom.Text || be.Text(ch) != "Hello " {
		t.Errorf("expected leading text node, got %v", be.Kind(ch))
	}
	ch, ok = be.NextSibling(ch)
	if !ok || be.Kind(ch) != dom.Element || be.Tag(ch) != "b" {
		t.Errorf("expected b element after the text, got %v", be.Kind(ch))
	}
}

func TestRenderFragment(t *testing.T) {
	input := "<p>ab <em>cd</em></p>"
	frag, err := ParseFragmentString(input)
	if err != nil {
		t.Fatal(err.Error())
	}
	out, err := RenderString(frag)
	if err != nil {
		t.Fatal(err.Error())
	}
	if out != input {
		t.Errorf("expected round-tripped fragment %q, got %q", input, out)
	}
}

func TestBuildAndMutate(t *testing.T) {
	be := Backend{}
	frag := be.NewFragment()
	p := be.NewElement("p", nil)
	be.InsertBefore(frag, p, nil)
	hello := be.NewText("Hello")
	be.InsertBefore(p, hello, nil)
	world := be.NewText(" World")
	be.InsertBefore(p, world, nil)
	a := be.NewElement("a", map[string]string{"href": "x", "class": "y"})
	be.InsertBefore(p, a, world)
	//
	out, err := RenderString(frag)
	if err != nil {
		t.Fatal(err.Error())
	}
	want := `<p>Hello<a class="y" href="x"></a> World</p>` // attributes in key order
	if out != want {
		t.Errorf("expected %s, got %s", want, out)
	}
	be.SetText(world, "!")
	be.Remove(a)
	if out, _ = RenderString(frag); out != "<p>Hello!</p>" {
		t.Errorf("expected mutations to yield <p>Hello!</p>, got %s", out)
	}
}

func TestWalkOrder(t *testing.T) {
	frag, err := ParseFragmentString("<p>a<b>c</b></p><div>skip</div>")
	if err != nil {
		t.Fatal(err.Error())
	}
	be := Backend{}
	var visited []string
	dom.Walk[*html.Node](be, frag, func(n *html.Node) dom.WalkStatus {
		switch be.Kind(n) {
		case dom.Text:
			visited = append(visited, be.Text(n))
		case dom.Element:
			if be.Tag(n) == "div" {
				return dom.WalkSkipChildren
			}
			visited = append(visited, "<"+be.Tag(n)+">")
		}
		return dom.WalkContinue
	})
	want := []string{"<p>", "a", "<b>", "c"}
	if len(visited) != len(want) {
		t.Fatalf("expected visits %v, got %v", want, visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("expected visit %d to be %q, is %q", i, want[i], visited[i])
		}
	}
}

func TestWalkStops(t *testing.T) {
	frag, err := ParseFragmentString("ab<b>cd</b>ef")
	if err != nil {
		t.Fatal(err.Error())
	}
	be := Backend{}
	count := 0
	dom.Walk[*html.Node](be, frag, func(n *html.Node) dom.WalkStatus {
		if be.Kind(n) == dom.Element {
			return dom.WalkStop
		}
		count++
		return dom.WalkContinue
	})
	if count != 2 { // the fragment and the leading text node
		t.Errorf("expected the walk to stop at the element, visited %d nodes", count)
	}
}

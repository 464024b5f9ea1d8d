package htmlfile

import (
	"fmt"
	"os"
	"sync"

	"github.com/guiguan/caster"
	"golang.org/x/net/html"

	textmodel "github.com/TakenPilot/text-model"
	"github.com/TakenPilot/text-model/dom"
	"github.com/TakenPilot/text-model/dom/htmldom"
	"github.com/TakenPilot/text-model/markup"
	"github.com/TakenPilot/text-model/tags"
)

// subCapacity is the channel buffer size handed to fragment subscribers.
const subCapacity = 8

// blockTags are the HTML elements treated as paragraph level blocks. The
// document is cut at these; a matched block is ingested as a whole, without
// descending into nested blocks.
var blockTags = map[string]bool{
	"p": true, "li": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// Fragment is one paragraph level block of an HTML document, ingested into
// a text model. Seq numbers fragments in document order, starting at 0.
type Fragment struct {
	Seq   int
	Tag   string
	Model textmodel.Model
}

// Document represents an HTML file in the process of being loaded.
type Document struct {
	path string
	info os.FileInfo
	cast *caster.Caster // broadcaster for async fragment loading
	done chan struct{}

	mx        sync.Mutex // guards fragments and lastError
	fragments []Fragment
	lastError error
}

// Load opens an HTML file and ingests its paragraph level blocks into text
// models, using reg to classify markup. Opening and parsing are done
// synchronously; ingestion of the blocks happens in the background. Clients
// consume the result through Wait or Subscribe.
func Load(name string, reg *tags.Registry) (*Document, error) {
	if reg == nil {
		return nil, textmodel.ErrIllegalArguments
	}
	doc, root, err := openDocument(name)
	if err != nil {
		return nil, err
	}
	go doc.ingestBlocks(root, reg)
	return doc, nil
}

// openDocument opens and parses an HTML file, checking for error
// conditions.
func openDocument(name string) (*Document, *html.Node, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("htmlfile: %s is not a regular file", name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	root, err := html.Parse(file)
	if err != nil {
		return nil, nil, fmt.Errorf("htmlfile: cannot parse %s: %w", name, err)
	}
	doc := &Document{
		path: name,
		info: fi,
		cast: caster.New(nil), // broadcasts fragments as they are ingested
		done: make(chan struct{}),
	}
	return doc, root, nil
}

// ingestBlocks walks the parse tree, ingests every block element and
// publishes the resulting fragments. Ingestion is best effort; a broken
// block is recorded in lastError and skipped.
func (doc *Document) ingestBlocks(root *html.Node, reg *tags.Registry) {
	defer close(doc.done)
	defer doc.cast.Close()
	be := htmldom.Backend{}
	seq := 0
	dom.Walk(be, root, func(n *html.Node) dom.WalkStatus {
		if be.Kind(n) != dom.Element || !blockTags[be.Tag(n)] {
			return dom.WalkContinue
		}
		m, err := markup.Ingest(be, n, reg)
		if err != nil {
			doc.setError(fmt.Errorf("htmlfile: block %d of %s: %w", seq, doc.path, err))
			return dom.WalkSkipChildren
		}
		frag := Fragment{Seq: seq, Tag: be.Tag(n), Model: m}
		seq++
		doc.mx.Lock()
		doc.fragments = append(doc.fragments, frag)
		doc.mx.Unlock()
		doc.cast.Pub(frag)
		return dom.WalkSkipChildren // blocks are cut at the outermost match
	})
	tracer().Infof("htmlfile: loaded %d blocks from %s", seq, doc.path)
}

func (doc *Document) setError(err error) {
	doc.mx.Lock()
	doc.lastError = err
	doc.mx.Unlock()
	tracer().Errorf(err.Error())
}

// Path returns the file path the document was loaded from.
func (doc *Document) Path() string {
	return doc.path
}

// Wait blocks until the document is completely loaded and returns all its
// fragments in document order.
func (doc *Document) Wait() []Fragment {
	<-doc.done
	doc.mx.Lock()
	defer doc.mx.Unlock()
	return doc.fragments
}

// LastError returns the last error encountered while ingesting blocks, or
// nil if all blocks loaded cleanly so far.
func (doc *Document) LastError() error {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	return doc.lastError
}

// Subscribe returns a channel delivering every fragment of the document,
// including fragments ingested before the call. The channel is closed once
// all fragments have been delivered. Subscribers should drain the channel,
// or loading may stall.
func (doc *Document) Subscribe() <-chan Fragment {
	out := make(chan Fragment, subCapacity)
	doc.mx.Lock()
	replay := append([]Fragment(nil), doc.fragments...)
	ch, ok := doc.cast.Sub(nil, subCapacity)
	doc.mx.Unlock()
	go func() {
		defer close(out)
		for _, frag := range replay {
			out <- frag
		}
		if !ok { // loading had already completed
			return
		}
		next := len(replay)
		for m := range ch {
			frag := m.(Fragment)
			if frag.Seq < next { // replayed already
				continue
			}
			out <- frag
		}
	}()
	return out
}

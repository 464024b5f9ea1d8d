// Command textmodel inspects, transforms and stores rich text models.
//
// A model is flat text plus named formatting blocks. The tool ingests HTML
// or XML markup into model documents, emits markup from models, splits and
// concatenates them, renders them to the console and keeps them in a SQLite
// store.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/antchfx/xmlquery"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"golang.org/x/net/html"

	textmodel "github.com/TakenPilot/text-model"
	"github.com/TakenPilot/text-model/dom/htmldom"
	"github.com/TakenPilot/text-model/dom/xmldom"
	"github.com/TakenPilot/text-model/htmlfile"
	"github.com/TakenPilot/text-model/markup"
	"github.com/TakenPilot/text-model/render"
	"github.com/TakenPilot/text-model/store"
	"github.com/TakenPilot/text-model/tags"
)

const version = "0.1.0"

// CLI defines the command line interface of textmodel.
var CLI struct {
	Verbose bool `short:"v" help:"Trace what the tool is doing."`

	Ingest  IngestCmd  `cmd:"" help:"Ingest a markup file into a model document."`
	Emit    EmitCmd    `cmd:"" help:"Emit markup from a model document."`
	Split   SplitCmd   `cmd:"" help:"Split a model document at a text position."`
	Concat  ConcatCmd  `cmd:"" help:"Concatenate two model documents."`
	Show    ShowCmd    `cmd:"" help:"Render a model document to the console."`
	Store   StoreGroup `cmd:"" help:"Keep model documents in a SQLite store."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

// IngestCmd ingests a markup file into a model document.
type IngestCmd struct {
	Path   string `arg:"" help:"Markup file to ingest ('-' for stdin)."`
	Format string `help:"Markup dialect of the input." enum:"html,xml" default:"html"`
	Select string `help:"XPath expression choosing the subtree to ingest (xml only)."`
}

func (c *IngestCmd) Run() error {
	data, err := readInput(c.Path)
	if err != nil {
		return err
	}
	var m textmodel.Model
	if c.Format == "xml" {
		m, err = ingestXML(string(data), c.Select)
	} else {
		if c.Select != "" {
			return fmt.Errorf("--select requires --format xml")
		}
		m, err = ingestHTML(string(data))
	}
	if err != nil {
		return err
	}
	return writeModel(m)
}

func ingestHTML(input string) (textmodel.Model, error) {
	frag, err := htmldom.ParseFragmentString(input)
	if err != nil {
		return textmodel.Model{}, err
	}
	return markup.Ingest(htmldom.Backend{}, frag, tags.Default())
}

func ingestXML(input, sel string) (textmodel.Model, error) {
	root, err := xmldom.ParseString(input)
	if err != nil {
		return textmodel.Model{}, err
	}
	node := root
	if sel != "" {
		nodes, err := xmldom.Select(root, sel)
		if err != nil {
			return textmodel.Model{}, err
		}
		if len(nodes) == 0 {
			return textmodel.Model{}, fmt.Errorf("no node matches %q", sel)
		}
		node = nodes[0]
	}
	return markup.Ingest(xmldom.Backend{}, node, tags.Default())
}

// EmitCmd emits markup from a model document.
type EmitCmd struct {
	Path   string `arg:"" help:"Model document ('-' for stdin)."`
	Format string `help:"Markup dialect to emit." enum:"html,xml" default:"html"`
}

func (c *EmitCmd) Run() error {
	m, err := readModel(c.Path)
	if err != nil {
		return err
	}
	reg := tags.Default()
	if c.Format == "xml" {
		frag, err := markup.Emit[*xmlquery.Node](xmldom.Backend{}, m, reg)
		if err != nil {
			return err
		}
		fmt.Println(xmldom.RenderString(frag))
		return nil
	}
	frag, err := markup.Emit[*html.Node](htmldom.Backend{}, m, reg)
	if err != nil {
		return err
	}
	out, err := htmldom.RenderString(frag)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// SplitCmd splits a model document at a text position.
type SplitCmd struct {
	Path  string `arg:"" help:"Model document ('-' for stdin)."`
	At    int    `required:"" help:"Position to split at, in bytes."`
	Runes bool   `help:"Address the position in runes instead of bytes."`
}

func (c *SplitCmd) Run() error {
	m, err := readModel(c.Path)
	if err != nil {
		return err
	}
	var before, after textmodel.Model
	if c.Runes {
		before, after, err = textmodel.SplitRunes(m, c.At)
	} else {
		before, after, err = textmodel.Split(m, c.At)
	}
	if err != nil {
		return err
	}
	if err := writeModel(before); err != nil {
		return err
	}
	return writeModel(after)
}

// ConcatCmd concatenates two model documents.
type ConcatCmd struct {
	First  string `arg:"" help:"Left model document."`
	Second string `arg:"" help:"Right model document."`
}

func (c *ConcatCmd) Run() error {
	first, err := readModel(c.First)
	if err != nil {
		return err
	}
	second, err := readModel(c.Second)
	if err != nil {
		return err
	}
	return writeModel(textmodel.Concat(first, second))
}

// ShowCmd renders a model document to the console.
type ShowCmd struct {
	Path  string `arg:"" help:"Model document ('-' for stdin)."`
	Width int    `help:"Line width in en units; 0 derives it from the terminal."`
	Dot   bool   `help:"Dump the model as a Graphviz digraph instead."`
}

func (c *ShowCmd) Run() error {
	m, err := readModel(c.Path)
	if err != nil {
		return err
	}
	if c.Dot {
		textmodel.ModelToDot(m, os.Stdout)
		return nil
	}
	var config *render.Config
	if c.Width > 0 {
		config = &render.Config{LineWidth: c.Width}
	}
	return render.NewConsoleFixedWidth(nil).Print(m, config)
}

// StoreGroup contains the model store operations.
type StoreGroup struct {
	DB string `help:"Path of the store database." default:"textmodel.db"`

	Put    StorePutCmd    `cmd:"" help:"Store a model document."`
	Get    StoreGetCmd    `cmd:"" help:"Print a stored model document."`
	List   StoreListCmd   `cmd:"" help:"List all stored models."`
	Delete StoreDeleteCmd `cmd:"" help:"Delete a stored model."`
	Load   StoreLoadCmd   `cmd:"" help:"Load an HTML file and store its blocks as models."`
	Export StoreExportCmd `cmd:"" help:"Export the store to an xz compressed dump."`
	Import StoreImportCmd `cmd:"" help:"Import a dump into the store."`
}

func openStore() (*store.Store, error) {
	return store.Open(CLI.Store.DB)
}

// StorePutCmd stores a model document.
type StorePutCmd struct {
	Path  string `arg:"" help:"Model document ('-' for stdin)."`
	Title string `help:"Title to store with the model."`
}

func (c *StorePutCmd) Run() error {
	m, err := readModel(c.Path)
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	e, err := s.Put(m, c.Title)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s\n", e.ID, e.Hash)
	return nil
}

// StoreGetCmd prints a stored model document.
type StoreGetCmd struct {
	ID string `arg:"" help:"Id of the stored model."`
}

func (c *StoreGetCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	e, err := s.Get(c.ID)
	if err != nil {
		return err
	}
	m, err := e.Model(tags.Default())
	if err != nil {
		return err
	}
	return writeModel(m)
}

// StoreListCmd lists all stored models.
type StoreListCmd struct{}

func (c *StoreListCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	entries, err := s.List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s  %s  %s  %s\n", e.ID, e.Hash[:12],
			e.Created.Format("2006-01-02 15:04:05"), title)
	}
	return nil
}

// StoreDeleteCmd deletes a stored model.
type StoreDeleteCmd struct {
	ID string `arg:"" help:"Id of the stored model."`
}

func (c *StoreDeleteCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Delete(c.ID)
}

// StoreLoadCmd loads an HTML file and stores its blocks as models.
type StoreLoadCmd struct {
	Path string `arg:"" help:"HTML file to load." type:"existingfile"`
}

func (c *StoreLoadCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	doc, err := htmlfile.Load(c.Path, tags.Default())
	if err != nil {
		return err
	}
	stored := 0
	for _, frag := range doc.Wait() {
		title := fmt.Sprintf("%s#%d <%s>", filepath.Base(c.Path), frag.Seq, frag.Tag)
		if _, err := s.Put(frag.Model, title); err != nil {
			return err
		}
		stored++
	}
	if err := doc.LastError(); err != nil {
		return err
	}
	fmt.Printf("stored %d blocks from %s\n", stored, c.Path)
	return nil
}

// StoreExportCmd exports the store to an xz compressed dump.
type StoreExportCmd struct {
	Out string `arg:"" help:"Dump file to write." type:"path"`
}

func (c *StoreExportCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.ExportFile(c.Out); err != nil {
		return err
	}
	fmt.Printf("exported store to %s\n", c.Out)
	return nil
}

// StoreImportCmd imports a dump into the store.
type StoreImportCmd struct {
	Path string `arg:"" help:"Dump file to read." type:"existingfile"`
}

func (c *StoreImportCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	n, err := s.ImportFile(c.Path, tags.Default())
	if err != nil {
		return err
	}
	fmt.Printf("imported %d models\n", n)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("textmodel %s\n", version)
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func readModel(path string) (textmodel.Model, error) {
	data, err := readInput(path)
	if err != nil {
		return textmodel.Model{}, err
	}
	m, err := textmodel.UnmarshalModel(data, tags.Default())
	if err != nil {
		return textmodel.Model{}, fmt.Errorf("%s does not hold a model document: %w", path, err)
	}
	return m, nil
}

func writeModel(m textmodel.Model) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func setupTracing(verbose bool) {
	gtrace.CoreTracer = gologadapter.New()
	if verbose {
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("textmodel"),
		kong.Description("Inspect, transform and store rich text models."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	setupTracing(CLI.Verbose)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

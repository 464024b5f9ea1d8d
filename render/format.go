package render

import (
	"bufio"
	"io"
	"sort"
	"strings"

	textmodel "github.com/TakenPilot/text-model"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/uax/uax14"
)

// Config represents a set of configuration parameters for formatting.
// LineWidth is given in en units, i.e. the width of a narrow character.
// Context reflects the typesetting context for resolving ambiguous
// East Asian character widths; a void context defaults to
// uax11.LatinContext.
type Config struct {
	LineWidth int
	Context   *uax11.Context
}

// Format is an interface for formatting drivers.
type Format interface {
	Preamble(w io.Writer)
	Postamble(w io.Writer)
	StyledText(s string, kinds []string, w io.Writer)
	Newline(w io.Writer)
}

// Output formats a model and writes it to an output writer. Lines are
// broken at the configured width; every point mark of the model forces a
// hard line break, with double marks yielding empty lines.
//
// config and format may not be void.
func Output(m textmodel.Model, out io.Writer, config *Config, format Format) error {
	if out == nil || config == nil || format == nil {
		return textmodel.ErrIllegalArguments
	}
	width := config.LineWidth
	if width <= 0 {
		width = 65
	}
	context := config.Context
	if context == nil {
		context = uax11.LatinContext
	}
	format.Preamble(out)
	rest := m
	consumed := 0
	for _, pos := range hardBreaks(m) {
		line, tail, err := textmodel.Split(rest, pos-consumed)
		if err != nil {
			return err
		}
		if err := writeLine(line, out, width, context, format); err != nil {
			return err
		}
		rest, consumed = tail, pos
	}
	if !rest.IsVoid() {
		if err := writeLine(rest, out, width, context, format); err != nil {
			return err
		}
	}
	format.Postamble(out)
	return nil
}

// hardBreaks collects the positions of all point marks of a model, in
// ascending order. Duplicates are kept; splitting at a position drops every
// mark sitting there, so the second of two stacked marks re-splits at
// offset 0 and produces an empty line.
func hardBreaks(m textmodel.Model) []int {
	var breaks []int
	for _, blk := range m.RangeBlocks() {
		if marks, ok := blk.(textmodel.Marks); ok {
			breaks = append(breaks, marks...)
		}
	}
	sort.Ints(breaks)
	return breaks
}

// writeLine breaks one line of text at the configured width and writes its
// runs. An empty line still yields its newline.
func writeLine(line textmodel.Model, out io.Writer, width int, context *uax11.Context, format Format) error {
	if line.IsVoid() {
		format.Newline(out)
		return nil
	}
	rest := line
	consumed := 0
	for _, pos := range firstFit(line.Text(), width, context) {
		row, tail, err := textmodel.Split(rest, pos-consumed)
		if err != nil {
			return err
		}
		for _, run := range Runs(row) {
			format.StyledText(run.Text, run.Kinds, out)
		}
		format.Newline(out)
		rest, consumed = tail, pos
	}
	return nil
}

// firstFit breaks text into lines, following a first-fit strategy:
/*
Wikipedia:

	1. |  SpaceLeft := LineWidth
	2. |  for each Word in Text
	3. |      if (Width(Word) + SpaceWidth) > SpaceLeft
	4. |           insert line break before Word in Text
	5. |           SpaceLeft := LineWidth - Width(Word)
	6. |      else
	7. |           SpaceLeft := SpaceLeft - (Width(Word) + SpaceWidth)

Fragments are cut at UAX#14 line wrap opportunities and measured on
grapheme clusters with their East Asian widths. Returned break positions
are byte offsets into text, the final one closing the trailing partial
line.
*/
func firstFit(text string, linewidth int, context *uax11.Context) []int {
	linewrap := uax14.NewLineWrap()
	segmenter := segment.NewSegmenter(linewrap)
	segmenter.Init(bufio.NewReader(strings.NewReader(text)))
	spaceleft := linewidth
	breaks := make([]int, 0, 20)
	prevpos := 0
	linestart := true
	for segmenter.Next() {
		frag := string(segmenter.Bytes())
		gstr := grapheme.StringFromString(frag)
		fraglen := uax11.StringWidth(gstr, context)
		if fraglen >= spaceleft {
			if linestart { // fragment alone overflows an empty line
				breaks = append(breaks, prevpos+len(frag))
				spaceleft = linewidth
			} else { // fragment moves to the next line
				breaks = append(breaks, prevpos)
				spaceleft = linewidth - fraglen
				linestart = false
			}
		} else {
			spaceleft -= fraglen
			linestart = false
		}
		prevpos += len(frag)
	}
	if spaceleft < linewidth { // trailing partial line
		breaks = append(breaks, len(text))
	}
	tracer().Debugf("render: first-fit breaks=%v", breaks)
	return breaks
}

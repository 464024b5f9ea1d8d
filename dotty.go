package textmodel

import (
	"fmt"
	"io"
	"strings"
)

// ModelToDot outputs the structure of a model in Graphviz DOT format
// (for debugging purposes).
//
// The text appears as a box node, every formatting block as a filled circle,
// and every range or mark of a block as a box hanging off its block.
func ModelToDot(m Model, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := "", ""
	nodelist += fmt.Sprintf("\"text\" [label=\"%d\\n“%s”\",shape=box,style=filled];\n",
		m.Len(), dotEscape(strstart(m.text)))
	id := 1
	for name, blk := range m.RangeBlocks() {
		blockID := id
		id++
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\",style=filled,color=black,fillcolor=\"#a3d7e4\",shape=circle];\n",
			blockID, dotEscape(name))
		edgelist += fmt.Sprintf("\"text\" -> \"%d\";\n", blockID)
		for _, label := range blockDotLabels(blk) {
			nodelist += fmt.Sprintf("\"%d\" [label=\"%s\",shape=box,style=filled];\n", id, label)
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", blockID, id)
			id++
		}
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

func blockDotLabels(blk Block) []string {
	var labels []string
	switch b := blk.(type) {
	case Spans:
		for i := 0; i < b.Count(); i++ {
			s, e := b.At(i)
			labels = append(labels, fmt.Sprintf("[%d,%d)", s, e))
		}
	case Ranges:
		for _, r := range b {
			labels = append(labels, fmt.Sprintf("[%d,%d) +%d", r.Start, r.End, len(r.Attrs)))
		}
	case Marks:
		for _, p := range b {
			labels = append(labels, fmt.Sprintf("@%d", p))
		}
	}
	return labels
}

// strstart returns a shortened prefix of text, fit for a node label.
func strstart(text string) string {
	const max = 12
	for i := range text {
		if i > max {
			return text[:i] + "…"
		}
	}
	return text
}

func dotEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

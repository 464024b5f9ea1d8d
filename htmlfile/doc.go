/*
Package htmlfile loads HTML files as sequences of text models.

An HTML document is cut at its paragraph level block elements (p, li,
blockquote and headings) and every block is ingested into a text model of
its own. Opening and parsing of the file happen synchronously, block
ingestion runs in the background. Clients either wait for the complete
document or subscribe to a feed of fragments as they become available.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2026, the text-model authors

Please refer to the LICENSE file for details.
*/
package htmlfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textmodel'
func tracer() tracing.Trace {
	return tracing.Select("textmodel")
}

/*
Package render formats text models for fixed width console output.

A model's text is broken into lines with a first-fit algorithm driven by
Unicode line wrap opportunities (UAX#14) and East Asian character widths
(UAX#11); every singled point mark of the model forces a hard line break.
Formatting kinds are visualized with console colors through a per-kind
palette.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2026, the text-model authors

Please refer to the LICENSE file for details.
*/
package render

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textmodel'
func tracer() tracing.Trace {
	return tracing.Select("textmodel")
}

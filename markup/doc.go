/*
Package markup converts between markup trees and text models.

Ingest reads a tree through a dom.Backend and accumulates the visible text
plus one formatting block per encountered kind. Emit is the reverse: it
materializes a model as a fresh markup fragment. Which tags stand for
formatting, open containers or hide opaque content is decided by an injected
tags.Registry; neither operation consults any global state.

Emit layers propertied blocks first, continuous blocks second and singled
marks last. When exactly two continuous kinds are present, the kind whose
boundaries are crossed less often by the other is rendered first; in every
other case the registry's declaration order decides. Formatting kinds the
registry does not know are skipped with a trace message.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2026, the text-model authors

Please refer to the LICENSE file for details.
*/
package markup

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textmodel'
func tracer() tracing.Trace {
	return tracing.Select("textmodel")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

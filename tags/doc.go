/*
Package tags maps markup tags to the formatting kinds of text models.

A Registry is an immutable classification table. For every markup tag it
decides whether the tag stands for formatting (and then for which model kind
under which canonical name), opens a container to descend into, hides opaque
content, or is unknown. Registries are built from a declarative Config and
handed to ingestion and emission explicitly; there is no process-wide table.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2026, the text-model authors

Please refer to the LICENSE file for details.
*/
package tags

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textmodel'
func tracer() tracing.Trace {
	return tracing.Select("textmodel")
}

/*
Package store persists text models in a SQLite database.

Models are stored as their canonical JSON documents under generated ids and
deduplicated by BLAKE3 content hash. A whole store can be exported to, and
re-imported from, an xz compressed dump holding one JSON record per model.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2026, the text-model authors

Please refer to the LICENSE file for details.
*/
package store

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textmodel'
func tracer() tracing.Trace {
	return tracing.Select("textmodel")
}

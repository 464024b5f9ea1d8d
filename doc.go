/*
Package textmodel represents rich text as plain text plus formatting ranges.

Markup trees (HTML, XML) interleave formatting with content, which makes even
simple text operations (splitting a paragraph at a caret position, joining
two paragraphs, diffing revisions) awkward tree surgery. This package keeps
the two concerns apart: a model holds the complete visible text as one flat
string, and formatting lives next to it as named blocks of integer offsets
into that string.

Blocks come in three kinds, chosen by what survives when text is edited:

Continuous formatting (bold, emphasis, …) carries no payload and coalesces:
two touching bold ranges are indistinguishable from one. Such a block is a
flat list of [start,end) pairs, and adjacent pairs merge.

Propertied formatting (links, …) carries attributes and must keep its
identity: two adjacent links to different targets never merge. Such a block
is a list of ranges, each with its own attribute set.

Singled formatting (line breaks, …) occupies no text at all. Such a block is
a list of zero-width point positions.

Offsets are byte offsets into the text. Models are immutable: operations like
Split, Concat, Insert and Cut return fresh models and leave their inputs
untouched. Conversion between markup trees and models lives in the markup
package; which tags map to which block kinds is decided by a tags.Registry.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2026, the text-model authors

Please refer to the LICENSE file for details.
*/
package textmodel

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textmodel'
func tracer() tracing.Trace {
	return tracing.Select("textmodel")
}

// ModelError is an error type for the textmodel module
type ModelError string

func (e ModelError) Error() string {
	return string(e)
}

// ErrModelCompleted signals that a builder has already completed a model and
// it's illegal to further stage fragments.
const ErrModelCompleted = ModelError("forbidden to add fragments; model has been completed")

// ErrIndexOutOfBounds is flagged whenever a text position is negative or
// greater than the length of the model's text.
const ErrIndexOutOfBounds = ModelError("index out of bounds")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = ModelError("illegal arguments")

// ErrKindMismatch signals that a block name already bound to one kind of
// formatting is used with a different kind.
const ErrKindMismatch = ModelError("formatting kind mismatch")

// ErrUnknownKind signals a block name that no kind resolver can account for.
const ErrUnknownKind = ModelError("unknown formatting kind")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

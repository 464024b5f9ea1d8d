/*
Package dom abstracts the markup tree a text model is read from or written
into.

The textmodel packages never commit to one DOM implementation. Everything
they need from a tree is collected in the Backend interface, generic over an
opaque node handle: discriminate node kinds, read tags, text and attributes,
walk parent/child/sibling links, and perform the few mutations emission
needs. Subpackages htmldom and xmldom adapt golang.org/x/net/html and
github.com/antchfx/xmlquery trees to this interface.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2026, the text-model authors

Please refer to the LICENSE file for details.
*/
package dom

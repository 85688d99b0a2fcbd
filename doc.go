// Package slotwire implements a zero-copy binary record format with a
// schema-known layout: a 4-byte header, a fixed-field region, an array of
// 16-byte slots for variable-length values (inline up to 14 bytes,
// otherwise a heap reference), an append-only heap region, and an optional
// intern table.
//
// Records are produced by a single-writer zrec.Builder and read back by a
// borrowing zrec.View with O(1), allocation-free field access. A finished
// buffer is an immutable value and can be read concurrently by any number
// of views.
//
// The root package holds what sits in front of the core: the format
// sniffer distinguishing this binary form from its sibling textual
// notation, the shared error taxonomy, and the logger used by the
// higher-level codecs. The textual notation itself is produced and
// consumed elsewhere; the only coupling point here is Detect.
package slotwire

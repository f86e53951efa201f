// Package scene defines the drawable element model emitted by the diagram
// pipeline: shapes, text, and arrows with absolute coordinates and fixed
// default styling.
//
// Elements are a closed tagged-variant type rather than open attribute
// bags: rendering surfaces only ever consume a fixed field set per kind,
// so every field an element can carry is declared on [Element] and gated
// by its [Type].
//
// Element identifiers come from an [IDSource] seeded by the caller
// (typically with a timestamp or counter). Seeding is injected rather
// than read from a global clock so that output is byte-for-byte
// reproducible in tests and across cache lookups.
package scene

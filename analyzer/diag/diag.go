// Package diag defines the diagnostic value types shared by the template
// parser and the checker.
//
// A Diagnostic starts life with a span relative to the text it was computed
// from (the raw template string, or a host Go file). Only the checker's
// engine attributes a diagnostic to an absolute file and translates its span
// into that file's coordinate space; the parser and resolver never do.
package diag

import (
	"encoding/json"
	"sort"
)

// Category classifies a diagnostic.
type Category int

const (
	// Error indicates a problem that makes the template invalid.
	Error Category = iota
	// Warning indicates a suspicious construct that is still accepted.
	Warning
)

// String returns the lowercase category name used in CLI output.
func (c Category) String() string {
	if c == Warning {
		return "warning"
	}
	return "error"
}

// MarshalJSON emits the category name rather than its numeric value.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Span is a half-open character range (offset, offset+length) into a single
// source text.
type Span struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// Shift returns the span moved by delta characters. Used when a diagnostic
// computed in template-local coordinates is re-homed into the host file.
func (s Span) Shift(delta int) Span {
	return Span{Offset: s.Offset + delta, Length: s.Length}
}

// Diagnostic is a single reported issue. Immutable by convention: helpers
// return copies instead of mutating.
type Diagnostic struct {
	Category Category `json:"category"`
	// File is the absolute identity of the originating file. Empty until the
	// engine attributes the diagnostic.
	File    string `json:"file"`
	Span    Span   `json:"span"`
	Message string `json:"message"`
}

// Attributed returns a copy of d attributed to file, with its span shifted
// by delta characters into that file's coordinate space.
func (d Diagnostic) Attributed(file string, delta int) Diagnostic {
	d.File = file
	d.Span = d.Span.Shift(delta)
	return d
}

// SortStable orders diagnostics by file, then span offset, then message.
// The checker emits diagnostics in pipeline order already; this is used by
// the CLI when aggregating results across files.
func SortStable(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].File != ds[j].File {
			return ds[i].File < ds[j].File
		}
		if ds[i].Span.Offset != ds[j].Span.Offset {
			return ds[i].Span.Offset < ds[j].Span.Offset
		}
		return ds[i].Message < ds[j].Message
	})
}

// Package checker is the core diagnostics pipeline: it locates component
// associations, runs the template parser and binding resolver over them, and
// attributes every diagnostic to the correct file and span.
//
// The host language and the file system are collaborators, reached only
// through the narrow HostIndex and Oracle interfaces. Tests drive the
// pipeline with canned implementations; the analyzer/host package provides
// the real ones backed by go/packages.
package checker

import "github.com/abiiranathan/go-component-lsp/analyzer/diag"

// TypeSym identifies a statically known type of the host program. The
// checker only ever needs its display name for diagnostics; every other
// question goes through the Oracle.
type TypeSym interface {
	TypeName() string
}

// anyType absorbs every lookup. It stands in for expression results whose
// type the checker cannot know statically (call results, index results,
// literals) so one unknown never cascades into spurious diagnostics.
type anyType struct{}

func (anyType) TypeName() string { return "any" }

// Any is the TypeSym for expressions with no statically known type.
var Any TypeSym = anyType{}

// Oracle is the host-language type checker, reduced to the two questions the
// template checker actually asks.
type Oracle interface {
	// Member resolves a member name on a receiver type, returning the
	// member's type. ok is false when the member does not exist.
	Member(recv TypeSym, name string) (TypeSym, bool)
	// Elem returns the element type of an iterable, used to type *for loop
	// variables. ok is false when coll is not iterable.
	Elem(coll TypeSym) (TypeSym, bool)
}

// ComponentDecl is a component declaration found in a host Go file. Spans
// are character offsets into the host file's text.
type ComponentDecl struct {
	// Class is the host class; template expressions resolve against it.
	Class TypeSym
	// HostFile is the Go file containing the declaration.
	HostFile string
	// DeclSpan covers the definition literal, used for diagnostics about the
	// declaration itself (missing template).
	DeclSpan diag.Span

	// HasTemplate is true when the inline Template field is set, even to the
	// empty string. An explicitly empty template is valid; an absent one is
	// a configuration error.
	HasTemplate bool
	// Template is the inline template text.
	Template string
	// TemplateSpan locates the inline template text within the host file.
	TemplateSpan diag.Span

	// TemplateURL is the relative path of an external template, empty when
	// the template is inline or missing.
	TemplateURL string
	// URLSpan locates the path literal text within the host file.
	URLSpan diag.Span
}

// HostIndex is the project and file-system collaborator: it supplies host
// declarations, resolves template paths, and reads file contents.
type HostIndex interface {
	// HostDeclarations returns the component declarations of a host file in
	// declaration order. Empty for files with no components.
	HostDeclarations(file string) []ComponentDecl
	// HostFiles returns every host file in the project that may declare
	// components.
	HostFiles() []string
	// ResolveTemplatePath resolves rel against the host file's location.
	ResolveTemplatePath(hostFile, rel string) (string, bool)
	// FileText returns the contents of a template file.
	FileText(path string) (string, bool)
}

// OriginKind discriminates where an association's template lives.
type OriginKind int

const (
	// OriginNone marks a component with no template at all.
	OriginNone OriginKind = iota
	// OriginInline marks a template embedded in the host file.
	OriginInline
	// OriginExternal marks a template in its own file.
	OriginExternal
	// OriginMissingFile marks a TemplateURL that did not resolve.
	OriginMissingFile
	// OriginUnreadable marks a resolved template file whose text could not
	// be read.
	OriginUnreadable
)

// Origin describes a template's source.
type Origin struct {
	Kind OriginKind
	// Text is the raw template text (Inline, External).
	Text string
	// Path is the resolved template file (External, Unreadable) or the
	// relative URL as written (MissingFile).
	Path string
	// Span is in host-file coordinates: the inline text (Inline), the
	// definition literal (None) or the path literal (MissingFile,
	// Unreadable).
	Span diag.Span
}

// Association binds a host class to its template. Associations are rebuilt
// on every request from the host index; they are never mutated in place.
type Association struct {
	Class    TypeSym
	HostFile string
	Origin   Origin
}

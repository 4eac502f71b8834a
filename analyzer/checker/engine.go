package checker

import (
	"fmt"

	"github.com/abiiranathan/go-component-lsp/analyzer/diag"
	"github.com/abiiranathan/go-component-lsp/analyzer/template"
)

// Engine is the diagnostic attributor and merger: the only public surface of
// the core pipeline. It owns the single coordinate-space conversion from
// template-local spans to file spans, so neither the parser nor the resolver
// ever deal in host-file offsets.
type Engine struct {
	locator  *Locator
	resolver *Resolver
	cache    *queryCache
}

// New assembles an Engine over the two collaborator interfaces.
func New(host HostIndex, oracle Oracle) *Engine {
	return &Engine{
		locator:  NewLocator(host),
		resolver: NewResolver(oracle),
		cache:    newQueryCache(),
	}
}

// DiagnosticsForFile returns every diagnostic belonging to file, in a stable
// order: associations in declaration order, and within each association
// parse diagnostics before resolve diagnostics, each internally in document
// order.
//
// File isolation is strict: a diagnostic whose origin is another file is
// never returned, so an external template's errors appear only when querying
// that template file and never on the host file, and vice versa. The call
// always returns a result; per-association failures surface as diagnostics,
// never as an aborted query.
func (e *Engine) DiagnosticsForFile(file string) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, as := range e.locator.AssociationsTouching(file) {
		for _, d := range e.associationDiagnostics(as) {
			if d.File == file {
				out = append(out, d)
			}
		}
	}
	return out
}

// Invalidate drops cached analysis keyed by file. Collaborators that watch
// the file system call this when a file's content changes; unrelated files'
// cache entries are untouched.
func (e *Engine) Invalidate(file string) {
	e.cache.invalidate(file)
}

// associationDiagnostics produces the fully attributed diagnostics of one
// association. Configuration errors (missing template, unresolvable path,
// unreadable file) short-circuit the parser and resolver for that
// association only.
func (e *Engine) associationDiagnostics(as Association) []diag.Diagnostic {
	switch as.Origin.Kind {
	case OriginNone:
		return []diag.Diagnostic{{
			Category: diag.Error,
			File:     as.HostFile,
			Span:     as.Origin.Span,
			Message:  "component is missing a template",
		}}

	case OriginMissingFile:
		return []diag.Diagnostic{{
			Category: diag.Error,
			File:     as.HostFile,
			Span:     as.Origin.Span,
			Message:  fmt.Sprintf("Template file %q could not be found", as.Origin.Path),
		}}

	case OriginUnreadable:
		return []diag.Diagnostic{{
			Category: diag.Error,
			File:     as.HostFile,
			Span:     as.Origin.Span,
			Message:  fmt.Sprintf("Template file %q could not be read", as.Origin.Path),
		}}
	}

	// Identity of the text the analysis runs over: the host file for inline
	// templates, the template file itself for external ones.
	identity := as.Origin.Path
	if as.Origin.Kind == OriginInline {
		identity = as.HostFile
	}
	fp := Fingerprint(as.Origin.Text)

	pr := e.cachedParse(identity, fp, as.Origin.Text)
	rds := e.cachedResolve(identity, fp, as, pr.doc)

	// Coordinate-space conversion, done exactly once: inline spans shift by
	// the literal's start offset in the host file; external spans are
	// already file-relative.
	target := identity
	delta := 0
	if as.Origin.Kind == OriginInline {
		target = as.HostFile
		delta = as.Origin.Span.Offset
	}

	out := make([]diag.Diagnostic, 0, len(pr.diags)+len(rds))
	for _, d := range pr.diags {
		out = append(out, d.Attributed(target, delta))
	}
	for _, d := range rds {
		out = append(out, d.Attributed(target, delta))
	}
	return out
}

func (e *Engine) cachedParse(identity, fp, text string) parseResult {
	key := cacheKey{kind: "parse", file: identity, fingerprint: fp}
	if v, ok := e.cache.get(key); ok {
		return v.(parseResult)
	}
	doc, diags := template.Parse(text)
	pr := parseResult{doc: doc, diags: diags}
	e.cache.set(key, pr)
	return pr
}

func (e *Engine) cachedResolve(identity, fp string, as Association, doc *template.Document) []diag.Diagnostic {
	key := cacheKey{
		kind:        "resolve",
		file:        identity,
		fingerprint: fp,
		class:       as.HostFile + ":" + as.Class.TypeName(),
	}
	if v, ok := e.cache.get(key); ok {
		return v.([]diag.Diagnostic)
	}
	rds := e.resolver.Resolve(doc, as.Class)
	e.cache.set(key, rds)
	return rds
}

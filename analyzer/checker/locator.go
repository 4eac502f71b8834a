package checker

import "sort"

// Locator discovers the component associations touching a file.
type Locator struct {
	host HostIndex
}

// NewLocator creates a Locator over the given host index.
func NewLocator(host HostIndex) *Locator {
	return &Locator{host: host}
}

// AssociationsTouching returns the associations relevant to file.
//
// For a host file the result has one association per component declared in
// it, in declaration order. For a template file it has one association per
// host declaration anywhere in the project whose TemplateURL resolves to
// that file; host files are visited in lexicographic order so the result is
// deterministic.
func (l *Locator) AssociationsTouching(file string) []Association {
	if decls := l.host.HostDeclarations(file); len(decls) > 0 {
		assocs := make([]Association, 0, len(decls))
		for _, d := range decls {
			assocs = append(assocs, l.build(d))
		}
		return assocs
	}

	// Not a host file: find host declarations referencing it as an external
	// template.
	hostFiles := append([]string(nil), l.host.HostFiles()...)
	sort.Strings(hostFiles)

	var assocs []Association
	for _, hf := range hostFiles {
		for _, d := range l.host.HostDeclarations(hf) {
			if d.TemplateURL == "" || d.HasTemplate {
				continue
			}
			resolved, ok := l.host.ResolveTemplatePath(hf, d.TemplateURL)
			if !ok || resolved != file {
				continue
			}
			assocs = append(assocs, l.build(d))
		}
	}
	return assocs
}

// build derives an Association from a declaration, reading external template
// text through the host index. A declaration with neither an inline template
// nor a URL yields OriginNone.
func (l *Locator) build(d ComponentDecl) Association {
	class := d.Class
	if class == nil {
		class = Any
	}
	as := Association{Class: class, HostFile: d.HostFile}

	switch {
	case d.HasTemplate:
		as.Origin = Origin{Kind: OriginInline, Text: d.Template, Span: d.TemplateSpan}

	case d.TemplateURL != "":
		resolved, ok := l.host.ResolveTemplatePath(d.HostFile, d.TemplateURL)
		if !ok {
			as.Origin = Origin{Kind: OriginMissingFile, Path: d.TemplateURL, Span: d.URLSpan}
			return as
		}
		text, ok := l.host.FileText(resolved)
		if !ok {
			as.Origin = Origin{Kind: OriginUnreadable, Path: resolved, Span: d.URLSpan}
			return as
		}
		as.Origin = Origin{Kind: OriginExternal, Text: text, Path: resolved}

	default:
		as.Origin = Origin{Kind: OriginNone, Span: d.DeclSpan}
	}
	return as
}

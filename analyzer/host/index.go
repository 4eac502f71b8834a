package host

import (
	"fmt"
	goast "go/ast"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"golang.org/x/tools/go/packages"

	"github.com/abiiranathan/go-component-lsp/analyzer/checker"
	"github.com/abiiranathan/go-component-lsp/analyzer/diag"
)

// Index is the project-wide component index. It implements checker.HostIndex
// over a loaded Go workspace: declarations come from scanning the syntax
// trees once at load time, template files are read from disk on demand.
type Index struct {
	decls map[string][]checker.ComponentDecl
	files []string
	errs  []string
}

// Load analyzes every package under dir and indexes its component
// declarations. Per-file declaration order is source order.
func Load(dir string, cfg Config) (*Index, error) {
	fset := token.NewFileSet()
	pkgs, errs, err := loadPackages(dir, fset)
	if err != nil {
		return nil, err
	}

	ix := &Index{
		decls: make(map[string][]checker.ComponentDecl),
		errs:  errs,
	}
	for _, pkg := range pkgs {
		if shouldSkipPackage(pkg.PkgPath) {
			continue
		}
		for _, f := range pkg.Syntax {
			ix.scanFile(fset, pkg, f, cfg)
		}
	}

	ix.files = make([]string, 0, len(ix.decls))
	for file := range ix.decls {
		ix.files = append(ix.files, file)
	}
	sort.Strings(ix.files)
	return ix, nil
}

// scanFile finds every registration call in f and records a declaration for
// each. goast.Inspect visits nodes in source order, so declarations land in
// the slice in declaration order.
func (ix *Index) scanFile(fset *token.FileSet, pkg *packages.Package, f *goast.File, cfg Config) {
	goast.Inspect(f, func(n goast.Node) bool {
		call, ok := n.(*goast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*goast.SelectorExpr)
		if !ok || sel.Sel.Name != cfg.DefineFunc {
			return true
		}
		pkgIdent, ok := sel.X.(*goast.Ident)
		if !ok || pkgIdent.Name != cfg.DefinePackage {
			return true
		}
		if len(call.Args) != 1 {
			return true
		}
		lit, ok := call.Args[0].(*goast.CompositeLit)
		if !ok {
			pos := fset.Position(call.Pos())
			ix.errs = append(ix.errs, fmt.Sprintf(
				"%s:%d: %s.%s argument must be a literal definition",
				pos.Filename, pos.Line, cfg.DefinePackage, cfg.DefineFunc))
			return true
		}

		decl := ix.extractDecl(fset, pkg, lit)
		ix.decls[decl.HostFile] = append(ix.decls[decl.HostFile], decl)
		return true
	})
}

// extractDecl turns one definition literal into a ComponentDecl. Spans are
// byte offsets into the host file.
func (ix *Index) extractDecl(fset *token.FileSet, pkg *packages.Package, lit *goast.CompositeLit) checker.ComponentDecl {
	start := fset.Position(lit.Pos())
	end := fset.Position(lit.End())

	decl := checker.ComponentDecl{
		HostFile: start.Filename,
		DeclSpan: diag.Span{Offset: start.Offset, Length: end.Offset - start.Offset},
	}

	for _, elt := range lit.Elts {
		kv, ok := elt.(*goast.KeyValueExpr)
		if !ok {
			continue
		}
		key, ok := kv.Key.(*goast.Ident)
		if !ok {
			continue
		}

		switch key.Name {
		case "Host":
			if tv, ok := pkg.TypesInfo.Types[kv.Value]; ok && tv.Type != nil {
				decl.Class = newSym(tv.Type)
			}

		case "Template":
			value, span, ok := stringLiteral(fset, kv.Value)
			if !ok {
				ix.fieldError(fset, kv.Value, "Template")
				continue
			}
			decl.HasTemplate = true
			decl.Template = value
			decl.TemplateSpan = span

		case "TemplateURL":
			value, span, ok := stringLiteral(fset, kv.Value)
			if !ok {
				ix.fieldError(fset, kv.Value, "TemplateURL")
				continue
			}
			decl.TemplateURL = value
			decl.URLSpan = span
		}
	}
	return decl
}

func (ix *Index) fieldError(fset *token.FileSet, expr goast.Expr, field string) {
	pos := fset.Position(expr.Pos())
	ix.errs = append(ix.errs, fmt.Sprintf(
		"%s:%d: %s must be a string literal", pos.Filename, pos.Line, field))
}

// stringLiteral extracts a string literal's value and the span of its
// content (the text between the quotes) in host-file byte offsets. Offsets
// within the content line up with offsets within the value only when the
// literal is raw or escape-free; template literals are expected to be
// written that way.
func stringLiteral(fset *token.FileSet, expr goast.Expr) (string, diag.Span, bool) {
	lit, ok := expr.(*goast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", diag.Span{}, false
	}
	value, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", diag.Span{}, false
	}
	start := fset.Position(lit.Pos()).Offset
	end := fset.Position(lit.End()).Offset
	return value, diag.Span{Offset: start + 1, Length: end - start - 2}, true
}

// HostDeclarations implements checker.HostIndex.
func (ix *Index) HostDeclarations(file string) []checker.ComponentDecl {
	return ix.decls[file]
}

// HostFiles implements checker.HostIndex.
func (ix *Index) HostFiles() []string {
	return ix.files
}

// ResolveTemplatePath resolves rel against the host file's directory. The
// path resolves only if the target exists as a regular file.
func (ix *Index) ResolveTemplatePath(hostFile, rel string) (string, bool) {
	path := filepath.Clean(filepath.Join(filepath.Dir(hostFile), rel))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// FileText reads a template file from disk.
func (ix *Index) FileText(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Errors returns the non-fatal problems encountered while indexing: filtered
// type errors from the load plus malformed definition literals.
func (ix *Index) Errors() []string {
	return ix.errs
}

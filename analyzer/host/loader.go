package host

import (
	"fmt"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"
)

// loadPackages loads and type-checks every package under dir. Load failures
// are fatal; per-package type errors are filtered and collected so that a
// project with unrelated compile errors can still be analyzed.
func loadPackages(dir string, fset *token.FileSet) ([]*packages.Package, []string, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports,
		Dir:   dir,
		Fset:  fset,
		Tests: false,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, nil, fmt.Errorf("load packages in %s: %w", dir, err)
	}

	var errs []string
	for _, pkg := range pkgs {
		if shouldSkipPackage(pkg.PkgPath) {
			continue
		}
		for _, e := range pkg.Errors {
			if !isImportRelatedError(e.Msg) {
				errs = append(errs, fmt.Sprintf("type error: %v", e.Msg))
			}
		}
	}
	return pkgs, errs, nil
}

// shouldSkipPackage filters vendor and generated code out of the analysis.
func shouldSkipPackage(pkgPath string) bool {
	lower := strings.ToLower(pkgPath)

	if strings.Contains(lower, "/vendor/") {
		return true
	}
	if strings.Contains(lower, "/generated/") {
		return true
	}
	if strings.HasSuffix(lower, "_generated") || strings.HasSuffix(lower, ".pb") {
		return true
	}
	return false
}

// isImportRelatedError checks if an error message is about import
// resolution. These are typically environmental noise rather than problems
// with the code under analysis.
func isImportRelatedError(msg string) bool {
	lower := strings.ToLower(msg)
	importPhrases := []string{
		"could not import",
		"can't find import",
		"cannot find package",
		"no required module provides",
	}

	for _, phrase := range importPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

package host

import (
	goparser "go/parser"
	"go/token"
	"testing"

	"github.com/abiiranathan/go-component-lsp/analyzer/diag"
)

// TestStringLiteral verifies value and content-span extraction for quoted
// and raw string literals.
func TestStringLiteral(t *testing.T) {
	tests := []struct {
		src   string
		value string
		span  diag.Span
		ok    bool
	}{
		{`"hello"`, "hello", diag.Span{Offset: 1, Length: 5}, true},
		{"`<div></div>`", "<div></div>", diag.Span{Offset: 1, Length: 11}, true},
		{`""`, "", diag.Span{Offset: 1, Length: 0}, true},
		{`42`, "", diag.Span{}, false},
		{`name`, "", diag.Span{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			fset := token.NewFileSet()
			expr, err := goparser.ParseExprFrom(fset, "lit.go", tt.src, 0)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			value, span, ok := stringLiteral(fset, expr)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if value != tt.value {
				t.Errorf("value = %q, want %q", value, tt.value)
			}
			if ok && span != tt.span {
				t.Errorf("span = %+v, want %+v", span, tt.span)
			}
		})
	}
}

// TestShouldSkipPackage covers the vendor and generated code filters.
func TestShouldSkipPackage(t *testing.T) {
	tests := []struct {
		pkgPath string
		skip    bool
	}{
		{"example.com/app/handlers", false},
		{"example.com/app/vendor/dep", true},
		{"example.com/app/generated/api", true},
		{"example.com/app/api_generated", true},
		{"example.com/app/proto.pb", true},
	}

	for _, tt := range tests {
		if got := shouldSkipPackage(tt.pkgPath); got != tt.skip {
			t.Errorf("shouldSkipPackage(%q) = %v, want %v", tt.pkgPath, got, tt.skip)
		}
	}
}

// TestIsImportRelatedError covers the error noise filter.
func TestIsImportRelatedError(t *testing.T) {
	if !isImportRelatedError(`could not import example.com/missing`) {
		t.Error("import error not recognized")
	}
	if isImportRelatedError(`undefined: someFunc`) {
		t.Error("type error misclassified as import noise")
	}
}

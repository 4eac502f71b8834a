package template

import (
	"testing"

	"github.com/abiiranathan/go-component-lsp/analyzer/diag"
)

// TestParseSimpleDocument verifies basic element, attribute and text
// structure for well-formed markup.
func TestParseSimpleDocument(t *testing.T) {
	doc, diags := Parse(`<div class="a"><span>hi</span></div>`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(doc.Children) != 1 {
		t.Fatalf("got %d root nodes, want 1", len(doc.Children))
	}

	div, ok := doc.Children[0].(*Element)
	if !ok || div.Name != "div" {
		t.Fatalf("expected div element, got %#v", doc.Children[0])
	}
	if len(div.Attrs) != 1 || div.Attrs[0].Kind != AttrPlain ||
		div.Attrs[0].Name != "class" || div.Attrs[0].Value != "a" {
		t.Errorf("unexpected attrs: %#v", div.Attrs)
	}

	span, ok := div.Children[0].(*Element)
	if !ok || span.Name != "span" {
		t.Fatalf("expected span child, got %#v", div.Children[0])
	}
	text, ok := span.Children[0].(*Text)
	if !ok || text.Value != "hi" {
		t.Errorf("expected text hi, got %#v", span.Children[0])
	}
}

// TestPropertyBinding verifies [name]="expr" parses into an expression.
func TestPropertyBinding(t *testing.T) {
	doc, diags := Parse(`<div [title]="user.Name"></div>`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	attr := doc.Children[0].(*Element).Attrs[0]
	if attr.Kind != AttrProperty || attr.Name != "title" {
		t.Fatalf("unexpected attribute: %#v", attr)
	}
	if _, ok := attr.Expr.(*Member); !ok {
		t.Errorf("expected Member expression, got %#v", attr.Expr)
	}
}

// TestInterpolationSpan verifies interpolation spans are relative to the
// template text, braces included.
func TestInterpolationSpan(t *testing.T) {
	doc, diags := Parse("Hello {{ name }}!")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	text := doc.Children[0].(*Text)
	if len(text.Interps) != 1 {
		t.Fatalf("got %d interpolations, want 1", len(text.Interps))
	}
	in := text.Interps[0]
	if in.Source != "{{ name }}" {
		t.Errorf("source = %q", in.Source)
	}
	want := diag.Span{Offset: 6, Length: 10}
	if in.Span() != want {
		t.Errorf("span = %+v, want %+v", in.Span(), want)
	}
}

// TestUnexpectedClosingTag verifies a stray close tag is reported and
// consumed.
func TestUnexpectedClosingTag(t *testing.T) {
	_, diags := Parse(`</div>`)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].Message != `Unexpected closing tag "div"` {
		t.Errorf("message = %q", diags[0].Message)
	}
	if diags[0].Span.Offset != 0 || diags[0].Span.Length != 6 {
		t.Errorf("span = %+v", diags[0].Span)
	}
}

// TestUnterminatedOpenTag verifies recovery: the broken element becomes a
// childless leaf and the following content still parses.
func TestUnterminatedOpenTag(t *testing.T) {
	doc, diags := Parse(`<div <span>ok</span>`)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].Message != `Opening tag "div" not terminated` {
		t.Errorf("message = %q", diags[0].Message)
	}

	if len(doc.Children) != 2 {
		t.Fatalf("got %d root nodes, want 2", len(doc.Children))
	}
	div := doc.Children[0].(*Element)
	if !div.Unterminated || len(div.Children) != 0 {
		t.Errorf("expected unterminated childless div, got %#v", div)
	}
	span := doc.Children[1].(*Element)
	if span.Name != "span" || len(span.Children) != 1 {
		t.Errorf("expected recovered span element, got %#v", span)
	}
}

// TestTagDiagnosticBeforeExpressionDiagnostic verifies that the diagnostic
// for a broken tag precedes the diagnostics of expressions inside that tag.
func TestTagDiagnosticBeforeExpressionDiagnostic(t *testing.T) {
	_, diags := Parse(`<div [title]="x = 1"`)
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", len(diags), diags)
	}
	if diags[0].Message != `Opening tag "div" not terminated` {
		t.Errorf("diags[0] = %q", diags[0].Message)
	}
	want := "Parser Error: Bindings cannot contain assignments at column 3 in [x = 1]"
	if diags[1].Message != want {
		t.Errorf("diags[1] = %q, want %q", diags[1].Message, want)
	}
}

// TestVoidElement verifies void elements take no children.
func TestVoidElement(t *testing.T) {
	doc, diags := Parse(`<br><p>t</p>`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(doc.Children) != 2 {
		t.Fatalf("got %d root nodes, want 2", len(doc.Children))
	}
	br := doc.Children[0].(*Element)
	if br.Name != "br" || len(br.Children) != 0 {
		t.Errorf("unexpected br node: %#v", br)
	}
}

// TestSelfClosingElement verifies <tag/> syntax.
func TestSelfClosingElement(t *testing.T) {
	doc, diags := Parse(`<img [src]="u"/>`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	img := doc.Children[0].(*Element)
	if !img.SelfClosing {
		t.Errorf("expected self-closing img, got %#v", img)
	}
}

// TestUnknownStructuralDirective verifies unknown *directives produce a
// warning, not an error.
func TestUnknownStructuralDirective(t *testing.T) {
	_, diags := Parse(`<div *show="x"></div>`)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].Category != diag.Warning {
		t.Errorf("category = %v, want warning", diags[0].Category)
	}
	if diags[0].Message != `Unknown structural directive "*show"` {
		t.Errorf("message = %q", diags[0].Message)
	}
}

// TestInvalidForExpression pins the malformed *for diagnostic.
func TestInvalidForExpression(t *testing.T) {
	_, diags := Parse(`<li *for="x in xs"></li>`)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	want := `Invalid *for expression: expected "let <name> of <expr>"`
	if diags[0].Message != want {
		t.Errorf("message = %q, want %q", diags[0].Message, want)
	}
}

// TestForDirective verifies loop variable and source expression extraction.
func TestForDirective(t *testing.T) {
	doc, diags := Parse(`<li *for="let item of Items">{{ item }}</li>`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	attr := doc.Children[0].(*Element).Attrs[0]
	if attr.Kind != AttrStructural || attr.Name != "for" {
		t.Fatalf("unexpected attribute: %#v", attr)
	}
	if attr.LoopVar != "item" {
		t.Errorf("loop var = %q, want item", attr.LoopVar)
	}
	src, ok := attr.Expr.(*Ident)
	if !ok || src.Name != "Items" {
		t.Fatalf("expected Ident Items, got %#v", attr.Expr)
	}
	// Expression spans stay relative to the directive value text.
	if src.ExprSpan().Offset != 12 || src.ExprSpan().Length != 5 {
		t.Errorf("source span = %+v", src.ExprSpan())
	}
}

// TestUnterminatedInterpolation verifies an unclosed {{ is reported.
func TestUnterminatedInterpolation(t *testing.T) {
	_, diags := Parse("a {{ b")
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].Message != "Unterminated interpolation" {
		t.Errorf("message = %q", diags[0].Message)
	}
	if diags[0].Span.Offset != 2 {
		t.Errorf("span = %+v", diags[0].Span)
	}
}

// TestCommentContentIgnored verifies comment content is never analyzed.
func TestCommentContentIgnored(t *testing.T) {
	doc, diags := Parse(`<!-- {{ bad = }} -->`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if _, ok := doc.Children[0].(*Comment); !ok {
		t.Errorf("expected comment node, got %#v", doc.Children[0])
	}
}

// TestImplicitClose verifies a close tag for an outer element implicitly
// closes the elements nested under it.
func TestImplicitClose(t *testing.T) {
	doc, diags := Parse(`<ul><li>one<li>two</ul>`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	ul := doc.Children[0].(*Element)
	if ul.Name != "ul" || len(ul.Children) != 1 {
		t.Fatalf("unexpected ul node: %#v", ul)
	}
}

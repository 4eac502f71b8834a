package checker

import (
	"testing"

	"github.com/abiiranathan/go-component-lsp/analyzer/diag"
	"github.com/abiiranathan/go-component-lsp/analyzer/template"
)

// fakeType is a canned TypeSym for tests.
type fakeType struct {
	name    string
	members map[string]TypeSym
	elem    TypeSym
}

func (t *fakeType) TypeName() string { return t.name }

// fakeOracle answers member and element queries from fakeType data.
type fakeOracle struct{}

func (fakeOracle) Member(recv TypeSym, name string) (TypeSym, bool) {
	ft, ok := recv.(*fakeType)
	if !ok {
		return nil, false
	}
	sym, ok := ft.members[name]
	return sym, ok
}

func (fakeOracle) Elem(coll TypeSym) (TypeSym, bool) {
	ft, ok := coll.(*fakeType)
	if !ok || ft.elem == nil {
		return nil, false
	}
	return ft.elem, true
}

// resolve parses tpl (which must be syntactically valid) and resolves it
// against class.
func resolve(t *testing.T, tpl string, class TypeSym) []diag.Diagnostic {
	t.Helper()
	doc, ds := template.Parse(tpl)
	if len(ds) != 0 {
		t.Fatalf("template has syntax errors: %v", ds)
	}
	return NewResolver(fakeOracle{}).Resolve(doc, class)
}

var stringType = &fakeType{name: "string"}

// TestUnknownRootProperty verifies the message format and span for an
// unresolved identifier.
func TestUnknownRootProperty(t *testing.T) {
	user := &fakeType{name: "User", members: map[string]TypeSym{"Name": stringType}}

	diags := resolve(t, "{{ Missing }}", user)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	want := "Property 'Missing' does not exist on type 'User'."
	if diags[0].Message != want {
		t.Errorf("message = %q, want %q", diags[0].Message, want)
	}
	if diags[0].Span.Offset != 3 || diags[0].Span.Length != 7 {
		t.Errorf("span = %+v, want offset 3 length 7", diags[0].Span)
	}
}

// TestDeepestSegmentOnly verifies an unresolved receiver does not cascade
// into diagnostics for the rest of the member chain.
func TestDeepestSegmentOnly(t *testing.T) {
	host := &fakeType{name: "Host", members: map[string]TypeSym{}}

	diags := resolve(t, "{{ a.b.c }}", host)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	want := "Property 'a' does not exist on type 'Host'."
	if diags[0].Message != want {
		t.Errorf("message = %q, want %q", diags[0].Message, want)
	}
}

// TestUnknownMemberMidChain verifies the diagnostic lands on the first
// member that fails, named after its receiver type.
func TestUnknownMemberMidChain(t *testing.T) {
	user := &fakeType{name: "User", members: map[string]TypeSym{"Name": stringType}}
	host := &fakeType{name: "Host", members: map[string]TypeSym{"User": user}}

	diags := resolve(t, "{{ User.Nope.Deeper }}", host)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	want := "Property 'Nope' does not exist on type 'User'."
	if diags[0].Message != want {
		t.Errorf("message = %q, want %q", diags[0].Message, want)
	}
}

// TestDynamicClassAbsorbsRootIdents verifies root identifiers on a class of
// unknown type resolve to the dynamic type rather than erroring.
func TestDynamicClassAbsorbsRootIdents(t *testing.T) {
	diags := resolve(t, "{{ Name }} {{ Age.Deeper }}", Any)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}

// TestCallResultAbsorbsLookups verifies members of a dynamically typed value
// (a call result) are never reported.
func TestCallResultAbsorbsLookups(t *testing.T) {
	host := &fakeType{name: "Host", members: map[string]TypeSym{"Fn": Any}}

	diags := resolve(t, "{{ Fn().whatever.deeper }}", host)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}

// TestForLoopVariableType verifies the loop variable takes the element type
// of the loop source.
func TestForLoopVariableType(t *testing.T) {
	item := &fakeType{name: "Item", members: map[string]TypeSym{"Name": stringType}}
	items := &fakeType{name: "[]Item", elem: item}
	host := &fakeType{name: "Host", members: map[string]TypeSym{"Items": items}}

	diags := resolve(t, `<li *for="let it of Items">{{ it.Name }}</li>`, host)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	diags = resolve(t, `<li *for="let it of Items">{{ it.Bad }}</li>`, host)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	want := "Property 'Bad' does not exist on type 'Item'."
	if diags[0].Message != want {
		t.Errorf("message = %q, want %q", diags[0].Message, want)
	}
}

// TestLoopVariableDoesNotLeak verifies a *for local is invisible to sibling
// subtrees.
func TestLoopVariableDoesNotLeak(t *testing.T) {
	item := &fakeType{name: "Item"}
	items := &fakeType{name: "[]Item", elem: item}
	host := &fakeType{name: "Host", members: map[string]TypeSym{"Items": items}}

	diags := resolve(t, `<li *for="let it of Items">{{ it }}</li><span>{{ it }}</span>`, host)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	want := "Property 'it' does not exist on type 'Host'."
	if diags[0].Message != want {
		t.Errorf("message = %q, want %q", diags[0].Message, want)
	}
}

// TestNestedForScopes verifies an inner loop source can reference the outer
// loop variable.
func TestNestedForScopes(t *testing.T) {
	kid := &fakeType{name: "Kid"}
	kids := &fakeType{name: "[]Kid", elem: kid}
	item := &fakeType{name: "Item", members: map[string]TypeSym{"Kids": kids}}
	items := &fakeType{name: "[]Item", elem: item}
	host := &fakeType{name: "Host", members: map[string]TypeSym{"Items": items}}

	tpl := `<ul *for="let it of Items"><li *for="let k of it.Kids">{{ k }}</li></ul>`
	diags := resolve(t, tpl, host)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}

// TestAssignmentSidesStillResolved verifies both sides of a rejected
// assignment get semantic checking.
func TestAssignmentSidesStillResolved(t *testing.T) {
	host := &fakeType{name: "Host", members: map[string]TypeSym{}}

	doc, parseDiags := template.Parse("{{ a = b }}")
	if len(parseDiags) != 1 {
		t.Fatalf("expected 1 parse diagnostic, got %v", parseDiags)
	}

	diags := NewResolver(fakeOracle{}).Resolve(doc, host)
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", len(diags), diags)
	}
}

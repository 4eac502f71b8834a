package checker

import (
	"fmt"

	"github.com/abiiranathan/go-component-lsp/analyzer/diag"
	"github.com/abiiranathan/go-component-lsp/analyzer/template"
)

// Resolver walks a parsed template and checks every binding expression
// against the host class's instance type.
type Resolver struct {
	oracle Oracle
}

// NewResolver creates a Resolver backed by the given oracle.
func NewResolver(oracle Oracle) *Resolver {
	return &Resolver{oracle: oracle}
}

// Resolve produces the semantic diagnostics for doc checked against class.
// Diagnostics come out in document order with spans relative to the raw
// template text. Resolution is pure: the tree is read-only and sibling
// expressions are checked independently.
func (r *Resolver) Resolve(doc *template.Document, class TypeSym) []diag.Diagnostic {
	w := &walker{oracle: r.oracle, class: class}
	w.nodes(doc.Children, nil)
	return w.diags
}

// scope is an immutable lexical scope chain. Entering a *for subtree links a
// child scope holding the loop variable; leaving the subtree simply drops
// back to the parent, so a local can never leak into sibling subtrees.
type scope struct {
	parent *scope
	name   string
	sym    TypeSym
}

func (s *scope) lookup(name string) (TypeSym, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.sym, true
		}
	}
	return nil, false
}

type walker struct {
	oracle Oracle
	class  TypeSym
	diags  []diag.Diagnostic
}

func (w *walker) nodes(nodes []template.Node, sc *scope) {
	for _, n := range nodes {
		switch node := n.(type) {
		case *template.Element:
			w.element(node, sc)
		case *template.Text:
			for _, in := range node.Interps {
				w.expr(in.Expr, sc, in.Span().Offset)
			}
		}
	}
}

// element checks an element's bindings and then its children. Attributes
// are visited in source order; a *for directive's source expression is
// evaluated in the enclosing scope, and its loop variable is in scope for
// the attributes that follow it and for the element's subtree.
func (w *walker) element(el *template.Element, sc *scope) {
	cur := sc

	for _, attr := range el.Attrs {
		if attr.Kind == template.AttrStructural && attr.Name == "for" {
			var coll TypeSym
			if attr.Expr != nil {
				coll = w.expr(attr.Expr, sc, attr.ValueSpan.Offset)
			}
			elem := Any
			if coll != nil && coll != Any {
				if e, ok := w.oracle.Elem(coll); ok {
					elem = e
				}
			}
			if attr.LoopVar != "" {
				cur = &scope{parent: cur, name: attr.LoopVar, sym: elem}
			}
			continue
		}

		if attr.Expr != nil {
			w.expr(attr.Expr, cur, attr.ValueSpan.Offset)
		}
		for _, in := range attr.Interps {
			w.expr(in.Expr, cur, in.Span().Offset)
		}
	}

	w.nodes(el.Children, cur)
}

// expr resolves an expression and returns its type. A nil result means the
// expression did not resolve and the failure has already been reported (or
// was caused by one that has): callers must not pile further diagnostics on
// top, so only the deepest unresolved segment of a member chain is reported.
// base shifts expression-relative spans into template coordinates.
func (w *walker) expr(e template.Expr, sc *scope, base int) TypeSym {
	switch node := e.(type) {
	case *template.Ident:
		if sym, ok := sc.lookup(node.Name); ok {
			return sym
		}
		// A class with no statically known type absorbs root lookups the
		// same way Any receivers do.
		if w.class == Any {
			return Any
		}
		if sym, ok := w.oracle.Member(w.class, node.Name); ok {
			return sym
		}
		w.unknownMember(node.Name, w.class, node.ExprSpan(), base)
		return nil

	case *template.Member:
		recv := w.expr(node.Recv, sc, base)
		if recv == nil {
			return nil
		}
		if recv == Any {
			return Any
		}
		if sym, ok := w.oracle.Member(recv, node.Name); ok {
			return sym
		}
		w.unknownMember(node.Name, recv, node.NameSpan, base)
		return nil

	case *template.Call:
		w.expr(node.Callee, sc, base)
		for _, arg := range node.Args {
			w.expr(arg, sc, base)
		}
		return Any

	case *template.Index:
		target := w.expr(node.Target, sc, base)
		w.expr(node.Key, sc, base)
		if target != nil && target != Any {
			if elem, ok := w.oracle.Elem(target); ok {
				return elem
			}
		}
		return Any

	case *template.Unary:
		w.expr(node.Operand, sc, base)
		return Any

	case *template.Binary:
		w.expr(node.Left, sc, base)
		w.expr(node.Right, sc, base)
		return Any

	case *template.Conditional:
		w.expr(node.Cond, sc, base)
		w.expr(node.Then, sc, base)
		w.expr(node.Else, sc, base)
		return Any

	case *template.Assign:
		// already flagged by the parser; still check both sides
		w.expr(node.Target, sc, base)
		w.expr(node.Value, sc, base)
		return Any

	default: // *template.Literal, *template.Bad
		return Any
	}
}

func (w *walker) unknownMember(name string, on TypeSym, span diag.Span, base int) {
	w.diags = append(w.diags, diag.Diagnostic{
		Category: diag.Error,
		Span:     span.Shift(base),
		Message:  fmt.Sprintf("Property '%s' does not exist on type '%s'.", name, on.TypeName()),
	})
}

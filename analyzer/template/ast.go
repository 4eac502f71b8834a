// Package template parses component template markup and the expression
// sub-language embedded in its bindings.
//
// Parsing is a pure function of the raw template text. Every node span is
// relative to that text; translation into host-file coordinates (for inline
// templates) is the checker engine's job, never this package's.
//
// The parser recovers from malformed input: an unterminated tag yields a
// partial tree plus a diagnostic, and parsing of subsequent content
// continues. All diagnostics detected in one template are collected.
package template

import "github.com/abiiranathan/go-component-lsp/analyzer/diag"

// Node is implemented by every markup node.
type Node interface {
	// Span is the node's character range relative to the raw template text.
	Span() diag.Span
}

// Document is the root of a parsed template.
type Document struct {
	Children []Node
}

// Span covers the whole template text.
func (d *Document) Span() diag.Span {
	if len(d.Children) == 0 {
		return diag.Span{}
	}
	first := d.Children[0].Span()
	last := d.Children[len(d.Children)-1].Span()
	return diag.Span{Offset: first.Offset, Length: last.Offset + last.Length - first.Offset}
}

// Element is a markup element with attributes and children.
type Element struct {
	Name string
	// Attrs are in source order. Structural directives (*if, *for) appear
	// here like any other attribute.
	Attrs    []*Attribute
	Children []Node
	// SelfClosing is true for <br/> style tags.
	SelfClosing bool
	// Unterminated marks an opening tag that never reached '>'. The element
	// is kept as a childless leaf so later content still parses.
	Unterminated bool

	span diag.Span
}

func (e *Element) Span() diag.Span { return e.span }

// AttrKind discriminates attribute forms.
type AttrKind int

const (
	// AttrPlain is a regular attribute; its value may contain interpolations.
	AttrPlain AttrKind = iota
	// AttrProperty is a [name]="expr" property binding.
	AttrProperty
	// AttrStructural is a *name="..." structural directive.
	AttrStructural
)

// Attribute is a single attribute of an element.
type Attribute struct {
	Kind AttrKind
	// Name is the attribute name with binding decoration ([...], *) removed.
	Name string
	// Value is the raw attribute value text (without quotes). Empty for
	// valueless attributes.
	Value string
	// ValueSpan locates Value within the template text.
	ValueSpan diag.Span
	// Expr is the parsed binding expression for AttrProperty and *if
	// directives, and the loop source expression for *for. Nil for plain
	// attributes and malformed bindings.
	Expr Expr
	// Interps are interpolations found in a plain attribute's value.
	Interps []*Interpolation
	// LoopVar is the local introduced by a *for directive ("let LoopVar of
	// expr"). Empty unless Kind is AttrStructural and Name is "for".
	LoopVar string

	span diag.Span
}

func (a *Attribute) Span() diag.Span { return a.span }

// Text is a run of literal text between tags. Interpolations embedded in the
// run are carried separately in document order.
type Text struct {
	Value   string
	Interps []*Interpolation

	span diag.Span
}

func (t *Text) Span() diag.Span { return t.span }

// Comment is a <!-- --> comment. Its content is never analyzed.
type Comment struct {
	Value string

	span diag.Span
}

func (c *Comment) Span() diag.Span { return c.span }

// Interpolation is a {{ expr }} embedded in text or an attribute value.
type Interpolation struct {
	// Source is the verbatim substring including the braces; expression
	// diagnostics echo it.
	Source string
	Expr   Expr

	span diag.Span
}

func (i *Interpolation) Span() diag.Span { return i.span }

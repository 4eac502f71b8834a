package template

import "github.com/abiiranathan/go-component-lsp/analyzer/diag"

// Expr is implemented by every expression node. Expression spans are
// relative to the start of the binding source substring the expression was
// parsed from, not to the template text.
type Expr interface {
	ExprSpan() diag.Span
}

// Ident is a bare identifier, resolved against the innermost scope and then
// the host class's instance type.
type Ident struct {
	Name string
	span diag.Span
}

func (e *Ident) ExprSpan() diag.Span { return e.span }

// Member is a member access expr.Name.
type Member struct {
	Recv Expr
	Name string
	// NameSpan locates just the member name, for precise diagnostics.
	NameSpan diag.Span
	span     diag.Span
}

func (e *Member) ExprSpan() diag.Span { return e.span }

// Call is a call expression callee(args...).
type Call struct {
	Callee Expr
	Args   []Expr
	span   diag.Span
}

func (e *Call) ExprSpan() diag.Span { return e.span }

// Index is an index expression target[key].
type Index struct {
	Target Expr
	Key    Expr
	span   diag.Span
}

func (e *Index) ExprSpan() diag.Span { return e.span }

// LitKind classifies literal expressions.
type LitKind int

const (
	LitNumber LitKind = iota
	LitString
	LitBool
	LitNull
)

// Literal is a number, string, boolean or null literal.
type Literal struct {
	Kind LitKind
	Text string
	span diag.Span
}

func (e *Literal) ExprSpan() diag.Span { return e.span }

// Unary is a prefix expression.
type Unary struct {
	Op      string
	Operand Expr
	span    diag.Span
}

func (e *Unary) ExprSpan() diag.Span { return e.span }

// Binary is an infix expression.
type Binary struct {
	Op          string
	Left, Right Expr
	span        diag.Span
}

func (e *Binary) ExprSpan() diag.Span { return e.span }

// Conditional is cond ? then : else.
type Conditional struct {
	Cond, Then, Else Expr
	span             diag.Span
}

func (e *Conditional) ExprSpan() diag.Span { return e.span }

// Assign records an assignment that appeared where only a read expression is
// permitted. It always comes paired with a parse diagnostic; the resolver
// still resolves both sides so valid segments get checked.
type Assign struct {
	Target, Value Expr
	span          diag.Span
}

func (e *Assign) ExprSpan() diag.Span { return e.span }

// Bad is a placeholder for source that could not be parsed.
type Bad struct {
	span diag.Span
}

func (e *Bad) ExprSpan() diag.Span { return e.span }

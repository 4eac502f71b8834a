package template

import (
	"fmt"

	"github.com/abiiranathan/go-component-lsp/analyzer/diag"
)

// ParseExpression parses the binding expression embedded in source.
//
// start and end delimit the expression text within source; the surrounding
// characters (the braces of an interpolation) are echoed in diagnostics but
// never parsed. Returned diagnostic spans are relative to source, matching
// the coordinate space of the returned AST.
//
// Parsing never fails outright: malformed input yields a best-effort tree
// (with Bad or Assign placeholders) plus one diagnostic per detected
// violation, each of the exact form
//
//	Parser Error: <rule> at column <c> in [<source>]
//
// where <c> is the offending token's character offset within source plus
// one, or the location reads "at the end of the expression".
func ParseExpression(source string, start, end int) (Expr, []diag.Diagnostic) {
	tokens, lexErr := lexExpression(source, start, end)
	if lexErr != nil {
		d := diag.Diagnostic{
			Category: diag.Error,
			Span:     diag.Span{Offset: lexErr.index, Length: 1},
			Message: fmt.Sprintf("Parser Error: %s at column %d in [%s]",
				lexErr.rule, lexErr.index+1, source),
		}
		return &Bad{span: diag.Span{Offset: start, Length: end - start}}, []diag.Diagnostic{d}
	}

	p := &exprParser{src: source, tokens: tokens}
	expr := p.parseChain()

	// Anything left over after a complete expression is a violation.
	if tok := p.peek(); tok.Kind != tokEOF {
		p.errorAt(fmt.Sprintf("Unexpected token '%s'", tok.Text), tok)
	}

	return expr, p.diags
}

type exprParser struct {
	src    string
	tokens []exprToken
	pos    int
	diags  []diag.Diagnostic
}

func (p *exprParser) peek() exprToken { return p.tokens[p.pos] }

func (p *exprParser) advance() exprToken {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// peekOp reports whether the next token is the given operator.
func (p *exprParser) peekOp(op string) bool {
	tok := p.peek()
	return tok.Kind == tokOperator && tok.Text == op
}

func (p *exprParser) errorAt(rule string, tok exprToken) {
	loc := "at the end of the expression"
	if tok.Kind != tokEOF {
		loc = fmt.Sprintf("at column %d", tok.Index+1)
	}
	p.diags = append(p.diags, diag.Diagnostic{
		Category: diag.Error,
		Span:     diag.Span{Offset: tok.Index, Length: tok.length()},
		Message:  fmt.Sprintf("Parser Error: %s %s in [%s]", rule, loc, p.src),
	})
}

// parseChain parses a full binding. Bindings are read-only, so an '=' at
// this level violates the grammar; the assignment is still represented in
// the tree so both sides get resolved.
func (p *exprParser) parseChain() Expr {
	expr := p.parseConditional()

	for p.peekOp("=") {
		tok := p.peek()
		p.errorAt("Bindings cannot contain assignments", tok)
		p.advance()
		value := p.parseConditional()
		expr = &Assign{Target: expr, Value: value, span: spanJoin(expr.ExprSpan(), value.ExprSpan())}
	}

	return expr
}

func (p *exprParser) parseConditional() Expr {
	cond := p.parseBinary(0)
	if !p.peekOp("?") {
		return cond
	}
	p.advance()
	then := p.parseConditional()
	if !p.peekOp(":") {
		p.errorAt("Missing expected :", p.peek())
		return &Conditional{Cond: cond, Then: then, Else: &Bad{span: then.ExprSpan()},
			span: spanJoin(cond.ExprSpan(), then.ExprSpan())}
	}
	p.advance()
	els := p.parseConditional()
	return &Conditional{Cond: cond, Then: then, Else: els,
		span: spanJoin(cond.ExprSpan(), els.ExprSpan())}
}

// binaryLevels orders operator sets from loosest to tightest binding.
var binaryLevels = [][]string{
	{"||"},
	{"&&"},
	{"==", "!="},
	{"<", ">", "<=", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

func (p *exprParser) parseBinary(level int) Expr {
	if level >= len(binaryLevels) {
		return p.parseUnary()
	}

	left := p.parseBinary(level + 1)
	for {
		tok := p.peek()
		if tok.Kind != tokOperator || !contains(binaryLevels[level], tok.Text) {
			return left
		}
		p.advance()
		right := p.parseBinary(level + 1)
		left = &Binary{Op: tok.Text, Left: left, Right: right,
			span: spanJoin(left.ExprSpan(), right.ExprSpan())}
	}
}

func (p *exprParser) parseUnary() Expr {
	if p.peekOp("!") || p.peekOp("-") {
		tok := p.advance()
		operand := p.parseUnary()
		return &Unary{Op: tok.Text, Operand: operand,
			span: spanJoin(diag.Span{Offset: tok.Index, Length: tok.length()}, operand.ExprSpan())}
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by member access, calls and index
// operations, left to right.
func (p *exprParser) parsePostfix() Expr {
	expr := p.parsePrimary()

	for {
		switch {
		case p.peekOp("."):
			p.advance()
			tok := p.peek()
			if tok.Kind != tokIdent {
				if tok.Kind == tokEOF {
					p.errorAt("Unexpected end of expression", tok)
				} else {
					p.errorAt(fmt.Sprintf("Unexpected token '%s'", tok.Text), tok)
					p.advance()
				}
				return expr
			}
			p.advance()
			nameSpan := diag.Span{Offset: tok.Index, Length: tok.length()}
			expr = &Member{Recv: expr, Name: tok.Text, NameSpan: nameSpan,
				span: spanJoin(expr.ExprSpan(), nameSpan)}

		case p.peekOp("("):
			p.advance()
			var args []Expr
			if !p.peekOp(")") {
				for {
					args = append(args, p.parseConditional())
					if !p.peekOp(",") {
						break
					}
					p.advance()
				}
			}
			closeSpan := expr.ExprSpan()
			if p.peekOp(")") {
				tok := p.advance()
				closeSpan = diag.Span{Offset: tok.Index, Length: tok.length()}
			} else {
				p.errorAt("Missing expected )", p.peek())
			}
			expr = &Call{Callee: expr, Args: args, span: spanJoin(expr.ExprSpan(), closeSpan)}

		case p.peekOp("["):
			p.advance()
			key := p.parseConditional()
			closeSpan := key.ExprSpan()
			if p.peekOp("]") {
				tok := p.advance()
				closeSpan = diag.Span{Offset: tok.Index, Length: tok.length()}
			} else {
				p.errorAt("Missing expected ]", p.peek())
			}
			expr = &Index{Target: expr, Key: key, span: spanJoin(expr.ExprSpan(), closeSpan)}

		default:
			return expr
		}
	}
}

func (p *exprParser) parsePrimary() Expr {
	tok := p.peek()
	span := diag.Span{Offset: tok.Index, Length: tok.length()}

	switch tok.Kind {
	case tokNumber:
		p.advance()
		return &Literal{Kind: LitNumber, Text: tok.Text, span: span}

	case tokString:
		p.advance()
		return &Literal{Kind: LitString, Text: tok.Text, span: span}

	case tokKeyword:
		p.advance()
		kind := LitBool
		if tok.Text == "null" {
			kind = LitNull
		}
		return &Literal{Kind: kind, Text: tok.Text, span: span}

	case tokIdent:
		p.advance()
		return &Ident{Name: tok.Text, span: span}

	case tokOperator:
		if tok.Text == "(" {
			p.advance()
			inner := p.parseConditional()
			if p.peekOp(")") {
				p.advance()
			} else {
				p.errorAt("Missing expected )", p.peek())
			}
			return inner
		}
		p.errorAt(fmt.Sprintf("Unexpected token '%s'", tok.Text), tok)
		p.advance()
		return &Bad{span: span}

	default: // tokEOF
		p.errorAt("Unexpected end of expression", tok)
		return &Bad{span: span}
	}
}

func spanJoin(a, b diag.Span) diag.Span {
	start := a.Offset
	if b.Offset < start {
		start = b.Offset
	}
	end := a.Offset + a.Length
	if b.Offset+b.Length > end {
		end = b.Offset + b.Length
	}
	return diag.Span{Offset: start, Length: end - start}
}

func contains(ops []string, op string) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

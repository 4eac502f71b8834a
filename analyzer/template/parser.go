package template

import (
	"fmt"
	"strings"

	"github.com/abiiranathan/go-component-lsp/analyzer/diag"
)

// voidElements never have children; a bare '>' closes them.
var voidElements = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "meta": true, "link": true,
}

// Parse parses raw template text into a Document plus the syntax diagnostics
// detected along the way. It is a pure function of the text and never fails:
// malformed markup yields a partial tree and parsing continues past every
// error.
//
// Diagnostic order is deterministic: markup diagnostics in document order,
// each followed by the diagnostics of expressions nested within that markup
// node, also in document order. All spans are relative to raw.
func Parse(raw string) (*Document, []diag.Diagnostic) {
	p := &parser{src: raw}
	doc := &Document{Children: p.parseNodes(nil)}
	return doc, p.diags
}

type parser struct {
	src   string
	pos   int
	diags []diag.Diagnostic
}

func (p *parser) addError(span diag.Span, format string, args ...any) {
	p.diags = append(p.diags, diag.Diagnostic{
		Category: diag.Error,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (p *parser) addWarning(span diag.Span, format string, args ...any) {
	p.diags = append(p.diags, diag.Diagnostic{
		Category: diag.Warning,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
	})
}

// parseNodes parses sibling content until end of input or until the close
// tag of an ancestor element. ancestors holds the open element names,
// outermost first.
func (p *parser) parseNodes(ancestors []string) []Node {
	var nodes []Node

	for p.pos < len(p.src) {
		rest := p.src[p.pos:]

		switch {
		case strings.HasPrefix(rest, "<!--"):
			nodes = append(nodes, p.parseComment())

		case strings.HasPrefix(rest, "</"):
			save := p.pos
			name, ok := p.scanCloseTag()
			if !ok {
				continue
			}
			if len(ancestors) > 0 && name == ancestors[len(ancestors)-1] {
				// our own close tag, consumed
				return nodes
			}
			if containsStr(ancestors, name) {
				// closes an outer element: back off and let that level
				// consume it, implicitly closing this one
				p.pos = save
				return nodes
			}
			p.addError(diag.Span{Offset: save, Length: p.pos - save},
				"Unexpected closing tag %q", name)

		case strings.HasPrefix(rest, "<") && len(rest) > 1 && isNameStart(rest[1]):
			nodes = append(nodes, p.parseElement(ancestors))

		default:
			nodes = append(nodes, p.parseText())
		}
	}

	return nodes
}

// parseComment consumes a <!-- --> comment. An unclosed comment swallows the
// remainder of the input; that is tolerated without a diagnostic.
func (p *parser) parseComment() *Comment {
	start := p.pos
	p.pos += len("<!--")
	end := strings.Index(p.src[p.pos:], "-->")
	if end < 0 {
		value := p.src[p.pos:]
		p.pos = len(p.src)
		return &Comment{Value: value, span: diag.Span{Offset: start, Length: p.pos - start}}
	}
	value := p.src[p.pos : p.pos+end]
	p.pos += end + len("-->")
	return &Comment{Value: value, span: diag.Span{Offset: start, Length: p.pos - start}}
}

// scanCloseTag consumes "</name ... >" and returns the tag name. ok is false
// for junk like "</ >", which is consumed with a diagnostic.
func (p *parser) scanCloseTag() (name string, ok bool) {
	start := p.pos
	p.pos += len("</")
	name = p.scanName()
	// tolerate whitespace before '>'
	for p.pos < len(p.src) && isSpaceByte(p.src[p.pos]) {
		p.pos++
	}
	if p.pos < len(p.src) && p.src[p.pos] == '>' {
		p.pos++
	}
	if name == "" {
		p.addError(diag.Span{Offset: start, Length: p.pos - start}, "Malformed closing tag")
		return "", false
	}
	return name, true
}

// parseElement consumes an element starting at '<'. Attribute expression
// diagnostics are buffered so a tag-level diagnostic (unterminated tag) is
// reported before the expression diagnostics nested in the same tag.
func (p *parser) parseElement(ancestors []string) *Element {
	start := p.pos
	p.pos++ // '<'
	name := p.scanName()
	el := &Element{Name: name}

	var attrDiags []diag.Diagnostic

	for {
		p.skipSpace()

		if p.pos >= len(p.src) || p.src[p.pos] == '<' {
			// never reached '>': unterminated open tag; keep the element as
			// a childless leaf and continue with whatever follows
			el.Unterminated = true
			el.span = diag.Span{Offset: start, Length: p.pos - start}
			p.addError(el.span, "Opening tag %q not terminated", name)
			p.diags = append(p.diags, attrDiags...)
			return el
		}

		if strings.HasPrefix(p.src[p.pos:], "/>") {
			p.pos += 2
			el.SelfClosing = true
			el.span = diag.Span{Offset: start, Length: p.pos - start}
			p.diags = append(p.diags, attrDiags...)
			return el
		}

		if p.src[p.pos] == '>' {
			p.pos++
			p.diags = append(p.diags, attrDiags...)
			if voidElements[name] {
				el.span = diag.Span{Offset: start, Length: p.pos - start}
				return el
			}
			el.Children = p.parseNodes(append(ancestors, name))
			el.span = diag.Span{Offset: start, Length: p.pos - start}
			return el
		}

		attr, ds := p.parseAttribute()
		el.Attrs = append(el.Attrs, attr)
		attrDiags = append(attrDiags, ds...)
	}
}

// parseAttribute consumes one attribute and returns it along with the
// diagnostics of any expressions embedded in its value. The caller decides
// when those diagnostics join the parser's list.
func (p *parser) parseAttribute() (*Attribute, []diag.Diagnostic) {
	start := p.pos

	// raw name token, including any [] or * decoration
	nameStart := p.pos
	for p.pos < len(p.src) && !isSpaceByte(p.src[p.pos]) &&
		p.src[p.pos] != '=' && p.src[p.pos] != '>' && p.src[p.pos] != '<' &&
		!strings.HasPrefix(p.src[p.pos:], "/>") {
		p.pos++
	}
	rawName := p.src[nameStart:p.pos]
	if rawName == "" {
		// stray byte (e.g. a '/' that is not part of "/>"): consume it so the
		// attribute loop always makes progress
		p.pos++
		return &Attribute{Kind: AttrPlain, span: diag.Span{Offset: start, Length: 1}}, nil
	}

	attr := &Attribute{Kind: AttrPlain, Name: rawName}
	switch {
	case strings.HasPrefix(rawName, "[") && strings.HasSuffix(rawName, "]") && len(rawName) > 2:
		attr.Kind = AttrProperty
		attr.Name = rawName[1 : len(rawName)-1]
	case strings.HasPrefix(rawName, "*") && len(rawName) > 1:
		attr.Kind = AttrStructural
		attr.Name = rawName[1:]
	}

	// optional ="value"
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '=' {
		p.pos++
		p.skipSpace()
		attr.Value, attr.ValueSpan = p.scanAttrValue()
	}

	attr.span = diag.Span{Offset: start, Length: p.pos - start}
	return attr, p.analyzeAttrValue(attr)
}

// scanAttrValue consumes a quoted or bare attribute value and returns the
// text plus its span in the template.
func (p *parser) scanAttrValue() (string, diag.Span) {
	if p.pos < len(p.src) && (p.src[p.pos] == '"' || p.src[p.pos] == '\'') {
		quote := p.src[p.pos]
		p.pos++
		valueStart := p.pos
		end := strings.IndexByte(p.src[p.pos:], quote)
		if end < 0 {
			// unterminated quote: take the rest; the enclosing tag scan will
			// flag the tag as unterminated
			value := p.src[p.pos:]
			p.pos = len(p.src)
			return value, diag.Span{Offset: valueStart, Length: len(value)}
		}
		value := p.src[p.pos : p.pos+end]
		p.pos += end + 1
		return value, diag.Span{Offset: valueStart, Length: len(value)}
	}

	valueStart := p.pos
	for p.pos < len(p.src) && !isSpaceByte(p.src[p.pos]) && p.src[p.pos] != '>' &&
		!strings.HasPrefix(p.src[p.pos:], "/>") {
		p.pos++
	}
	value := p.src[valueStart:p.pos]
	return value, diag.Span{Offset: valueStart, Length: len(value)}
}

// analyzeAttrValue parses the binding content of an attribute value
// according to the attribute kind.
func (p *parser) analyzeAttrValue(attr *Attribute) []diag.Diagnostic {
	switch attr.Kind {
	case AttrProperty:
		expr, ds := ParseExpression(attr.Value, 0, len(attr.Value))
		attr.Expr = expr
		return shiftAll(ds, attr.ValueSpan.Offset)

	case AttrStructural:
		switch attr.Name {
		case "if":
			expr, ds := ParseExpression(attr.Value, 0, len(attr.Value))
			attr.Expr = expr
			return shiftAll(ds, attr.ValueSpan.Offset)

		case "for":
			loopVar, exprStart, ok := parseForValue(attr.Value)
			if !ok {
				span := attr.ValueSpan
				if span.Length == 0 {
					span = attr.span
				}
				return []diag.Diagnostic{{
					Category: diag.Error,
					Span:     span,
					Message:  `Invalid *for expression: expected "let <name> of <expr>"`,
				}}
			}
			attr.LoopVar = loopVar
			expr, ds := ParseExpression(attr.Value, exprStart, len(attr.Value))
			attr.Expr = expr
			return shiftAll(ds, attr.ValueSpan.Offset)

		default:
			return []diag.Diagnostic{{
				Category: diag.Warning,
				Span:     attr.span,
				Message:  fmt.Sprintf("Unknown structural directive %q", "*"+attr.Name),
			}}
		}

	default:
		var ds []diag.Diagnostic
		attr.Interps, ds = p.scanInterpolations(attr.Value, attr.ValueSpan.Offset)
		return ds
	}
}

// parseText consumes a run of literal text up to the next tag start,
// collecting any interpolations embedded in the run.
func (p *parser) parseText() *Text {
	start := p.pos
	for p.pos < len(p.src) {
		if p.src[p.pos] == '<' {
			rest := p.src[p.pos:]
			if strings.HasPrefix(rest, "</") || strings.HasPrefix(rest, "<!--") ||
				(len(rest) > 1 && isNameStart(rest[1])) {
				break
			}
		}
		p.pos++
	}

	value := p.src[start:p.pos]
	t := &Text{Value: value, span: diag.Span{Offset: start, Length: len(value)}}

	var ds []diag.Diagnostic
	t.Interps, ds = p.scanInterpolations(value, start)
	p.diags = append(p.diags, ds...)
	return t
}

// scanInterpolations finds {{ expr }} occurrences in text. base is the
// offset of text within the template, so interpolation spans and expression
// diagnostics come out in template coordinates.
func (p *parser) scanInterpolations(text string, base int) ([]*Interpolation, []diag.Diagnostic) {
	var interps []*Interpolation
	var ds []diag.Diagnostic

	i := 0
	for {
		open := strings.Index(text[i:], "{{")
		if open < 0 {
			return interps, ds
		}
		open += i

		close := strings.Index(text[open+2:], "}}")
		if close < 0 {
			ds = append(ds, diag.Diagnostic{
				Category: diag.Error,
				Span:     diag.Span{Offset: base + open, Length: 2},
				Message:  "Unterminated interpolation",
			})
			return interps, ds
		}
		end := open + 2 + close + 2

		source := text[open:end]
		expr, eds := ParseExpression(source, 2, len(source)-2)
		interps = append(interps, &Interpolation{
			Source: source,
			Expr:   expr,
			span:   diag.Span{Offset: base + open, Length: len(source)},
		})
		ds = append(ds, shiftAll(eds, base+open)...)

		i = end
	}
}

func (p *parser) scanName() string {
	start := p.pos
	for p.pos < len(p.src) && isNameByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpaceByte(p.src[p.pos]) {
		p.pos++
	}
}

func shiftAll(ds []diag.Diagnostic, delta int) []diag.Diagnostic {
	for i := range ds {
		ds[i].Span = ds[i].Span.Shift(delta)
	}
	return ds
}

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameByte(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9') || b == '-' || b == ':'
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func containsStr(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

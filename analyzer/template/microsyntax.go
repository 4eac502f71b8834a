package template

import (
	"github.com/a-h/parse"
)

// forParts is the decomposed value of a *for directive: "let <Var> of <expr>".
type forParts struct {
	// Var is the loop variable name.
	Var string
	// ExprStart is the offset of the source expression within the directive
	// value text.
	ExprStart int
}

// forMicrosyntax parses the "let x of expr" microsyntax. The source
// expression itself is handed to the expression parser by the caller; this
// parser only locates it.
var forMicrosyntax = parse.Func(func(pi *parse.Input) (m forParts, ok bool, err error) {
	if _, ok, err = parse.String("let").Parse(pi); err != nil || !ok {
		return
	}
	if _, ok, err = parse.Whitespace.Parse(pi); err != nil || !ok {
		return
	}

	name := takeIdentifier(pi)
	if name == "" {
		return m, false, nil
	}

	if _, ok, err = parse.Whitespace.Parse(pi); err != nil || !ok {
		return
	}
	if _, ok, err = parse.String("of").Parse(pi); err != nil || !ok {
		return
	}
	if _, ok, err = parse.Whitespace.Parse(pi); err != nil || !ok {
		return
	}

	m.Var = name
	m.ExprStart = pi.Position().Index
	return m, true, nil
})

// takeIdentifier consumes an identifier from the input, returning "" if the
// input does not start with one.
func takeIdentifier(pi *parse.Input) string {
	var name []byte
	for {
		c, ok := pi.Peek(1)
		if !ok {
			break
		}
		b := c[0]
		isStart := b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
		isPart := isStart || (b >= '0' && b <= '9')
		if len(name) == 0 && !isStart {
			break
		}
		if len(name) > 0 && !isPart {
			break
		}
		pi.Take(1)
		name = append(name, b)
	}
	return string(name)
}

// parseForValue decomposes a *for directive value. ok is false when the
// value does not match the microsyntax.
func parseForValue(value string) (loopVar string, exprStart int, ok bool) {
	pi := parse.NewInput(value)
	m, ok, err := forMicrosyntax.Parse(pi)
	if err != nil || !ok || m.ExprStart >= len(value) {
		return "", 0, false
	}
	return m.Var, m.ExprStart, true
}

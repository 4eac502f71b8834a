package template

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// exprToken kinds.
type exprTokenKind int

const (
	tokEOF exprTokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokKeyword
	tokOperator
)

// exprToken is a single lexed token. Index is the token's character offset
// within the binding source substring (braces included for interpolations),
// so reported columns line up with the echoed source.
type exprToken struct {
	Kind exprTokenKind
	// Index is the offset of the first character of the token.
	Index int
	Text  string
}

// length returns the character length of the token's source text.
func (t exprToken) length() int {
	if t.Kind == tokString {
		return len(t.Text) + 2 // quotes are not part of Text
	}
	return len(t.Text)
}

// multi-character operators, longest first so the lexer is greedy.
var exprOperators = []string{
	"==", "!=", "<=", ">=", "&&", "||",
	"(", ")", "[", "]", ",", ".", "?", ":",
	"+", "-", "*", "/", "%", "!", "<", ">", "=",
}

var exprKeywords = map[string]bool{
	"true":  true,
	"false": true,
	"null":  true,
}

// lexExprError is raised for input the lexer cannot tokenize.
type lexExprError struct {
	// rule is the violated rule text, e.g. "Unterminated quote".
	rule string
	// index is the character offset of the offense within the source.
	index int
}

// lexExpression tokenizes src[start:end]. Token indexes are relative to the
// start of src itself. On a lexical error the tokens produced so far are
// returned along with the error; the trailing EOF token is always present.
func lexExpression(src string, start, end int) ([]exprToken, *lexExprError) {
	var tokens []exprToken
	i := start

	for i < end {
		r, size := utf8.DecodeRuneInString(src[i:])

		switch {
		case unicode.IsSpace(r):
			i += size

		case r == '\'' || r == '"':
			quote := byte(r)
			rel := strings.IndexByte(src[i+1:end], quote)
			if rel < 0 {
				tokens = append(tokens, exprToken{Kind: tokEOF, Index: end})
				return tokens, &lexExprError{rule: "Unterminated quote", index: i}
			}
			tokens = append(tokens, exprToken{Kind: tokString, Index: i, Text: src[i+1 : i+1+rel]})
			i += rel + 2

		case unicode.IsDigit(r):
			j := i
			for j < end && (isDigitByte(src[j]) || src[j] == '.') {
				// a trailing '.' belongs to member access, not the number
				if src[j] == '.' && (j+1 >= end || !isDigitByte(src[j+1])) {
					break
				}
				j++
			}
			tokens = append(tokens, exprToken{Kind: tokNumber, Index: i, Text: src[i:j]})
			i = j

		case unicode.IsLetter(r) || r == '_' || r == '$':
			j := i + size
			for j < end {
				r2, size2 := utf8.DecodeRuneInString(src[j:])
				if !unicode.IsLetter(r2) && !unicode.IsDigit(r2) && r2 != '_' && r2 != '$' {
					break
				}
				j += size2
			}
			word := src[i:j]
			kind := tokIdent
			if exprKeywords[word] {
				kind = tokKeyword
			}
			tokens = append(tokens, exprToken{Kind: kind, Index: i, Text: word})
			i = j

		default:
			op := matchOperator(src[i:end])
			if op == "" {
				tokens = append(tokens, exprToken{Kind: tokEOF, Index: end})
				return tokens, &lexExprError{rule: "Unexpected character '" + string(r) + "'", index: i}
			}
			tokens = append(tokens, exprToken{Kind: tokOperator, Index: i, Text: op})
			i += len(op)
		}
	}

	tokens = append(tokens, exprToken{Kind: tokEOF, Index: end})
	return tokens, nil
}

func matchOperator(s string) string {
	for _, op := range exprOperators {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

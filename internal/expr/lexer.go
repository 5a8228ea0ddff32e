package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenVariable
	tokenConstant
	tokenFunction
	tokenOperator
	tokenLeftParen
	tokenRightParen
	tokenComma
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of expression"
	case tokenNumber:
		return "number"
	case tokenVariable:
		return "variable"
	case tokenConstant:
		return "constant"
	case tokenFunction:
		return "function"
	case tokenOperator:
		return "operator"
	case tokenLeftParen:
		return "'('"
	case tokenRightParen:
		return "')'"
	case tokenComma:
		return "','"
	default:
		return "token"
	}
}

type token struct {
	kind  tokenKind
	text  string
	pos   int
	value float64
}

// variableName is the only free variable an expression may reference.
const variableName = "x"

// lexer splits a trimmed source into tokens. It is the whitelist gate:
// any byte or identifier outside the math namespace stops compilation.
type lexer struct {
	src    string
	pos    int
	tokens []token
}

func tokenize(src string) ([]token, error) {
	l := &lexer{src: src}
	return l.run()
}

func (l *lexer) run() ([]token, error) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case isSpace(c):
			l.pos++
		case isDigit(c), c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]):
			if err := l.number(); err != nil {
				return nil, err
			}
		case c == '.':
			return nil, syntaxErrorf(l.src, l.pos, "dangling '.' at position %d", l.pos)
		case isLetter(c):
			if err := l.identifier(); err != nil {
				return nil, err
			}
		case c == '*' && l.peek(1) == '*':
			l.emit(tokenOperator, "^", 2)
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '^':
			l.emit(tokenOperator, string(c), 1)
		case c == '(':
			l.emit(tokenLeftParen, "(", 1)
		case c == ')':
			l.emit(tokenRightParen, ")", 1)
		case c == ',':
			l.emit(tokenComma, ",", 1)
		default:
			r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
			return nil, &CompileError{
				Source: l.src,
				Reason: ReasonDisallowedCharacters,
				Detail: fmt.Sprintf("unexpected character %q at position %d", r, l.pos),
				Pos:    l.pos,
			}
		}
	}

	l.tokens = append(l.tokens, token{kind: tokenEOF, pos: len(l.src)})
	return l.tokens, nil
}

func (l *lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) emit(kind tokenKind, text string, width int) {
	l.tokens = append(l.tokens, token{kind: kind, text: text, pos: l.pos})
	l.pos += width
}

// number scans digits, an optional fraction and an optional exponent. The
// exponent marker is only consumed when digits follow, so "2e" lexes as the
// number 2 followed by the constant E.
func (l *lexer) number() error {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if c := l.peek(0); c == 'e' || c == 'E' {
		next := 1
		if s := l.peek(1); s == '+' || s == '-' {
			next = 2
		}
		if isDigit(l.peek(next)) {
			l.pos += next
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		}
	}

	text := l.src[start:l.pos]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return syntaxErrorf(l.src, start, "malformed number %q", text)
	}
	l.tokens = append(l.tokens, token{kind: tokenNumber, text: text, pos: start, value: v})
	return nil
}

// identifier resolves a run of letters against the variable, the constant
// table and the function table. Function and constant names match without
// regard to case; the variable must be a lowercase x.
func (l *lexer) identifier() error {
	start := l.pos
	for l.pos < len(l.src) && isLetter(l.src[l.pos]) {
		l.pos++
	}
	word := l.src[start:l.pos]

	if word == variableName {
		l.tokens = append(l.tokens, token{kind: tokenVariable, text: word, pos: start})
		return nil
	}

	name := strings.ToLower(word)
	if c, ok := constants[name]; ok {
		l.tokens = append(l.tokens, token{kind: tokenConstant, text: c.name, pos: start, value: c.value})
		return nil
	}
	if _, ok := functions[name]; ok {
		l.tokens = append(l.tokens, token{kind: tokenFunction, text: name, pos: start})
		return nil
	}

	return &CompileError{
		Source: l.src,
		Reason: ReasonDisallowedCharacters,
		Detail: fmt.Sprintf("unknown identifier %q at position %d", word, start),
		Pos:    start,
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

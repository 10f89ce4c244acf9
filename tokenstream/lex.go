package tokenstream

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lex errors.
var (
	ErrUnbalanced      = errors.New("unbalanced delimiter")
	ErrUnterminated    = errors.New("unterminated string literal")
	ErrUnexpectedRune  = errors.New("unexpected character")
	ErrTrailingContent = errors.New("trailing content after closing delimiter")
)

// Parse lexes source text into a Stream. It recognizes identifiers, integer
// and float literals, double-quoted string literals with backslash escapes,
// the three delimiter pairs, and single-character punctuation. Adjacent
// punctuation characters are marked Joint so operators like "==" and "->"
// round-trip through String.
func Parse(src string) (Stream, error) {
	l := &lexer{src: src}
	s, err := l.stream(0)
	if err != nil {
		return nil, err
	}
	if l.pos < len(l.src) {
		return nil, fmt.Errorf("%w at offset %d", ErrTrailingContent, l.pos)
	}
	return s, nil
}

type lexer struct {
	src string
	pos int
}

// stream lexes until the closing delimiter (or end of input when close is 0).
func (l *lexer) stream(close byte) (Stream, error) {
	var out Stream
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			if close != 0 {
				return nil, fmt.Errorf("%w: missing %q", ErrUnbalanced, string(close))
			}
			return out, nil
		}
		c := l.src[l.pos]
		if c == close {
			l.pos++
			return out, nil
		}
		switch {
		case c == ')' || c == ']' || c == '}':
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrUnbalanced, string(c), l.pos)
		case c == '(' || c == '[' || c == '{':
			l.pos++
			body, err := l.stream(matching(c))
			if err != nil {
				return nil, err
			}
			out = append(out, Group{Delim: delimFor(c), Body: body})
		case c == '"':
			lit, err := l.stringLit()
			if err != nil {
				return nil, err
			}
			out = append(out, Literal{Text: lit})
		case isIdentStart(rune(c)):
			out = append(out, Ident{Name: l.ident()})
		case c >= '0' && c <= '9':
			out = append(out, Literal{Text: l.number()})
		default:
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if !unicode.IsGraphic(r) {
				return nil, fmt.Errorf("%w %q at offset %d", ErrUnexpectedRune, r, l.pos)
			}
			l.pos += size
			sp := Alone
			if l.pos < len(l.src) && isPunct(l.src[l.pos]) {
				sp = Joint
			}
			out = append(out, Punct{Ch: r, Spacing: sp})
		}
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return
		}
		l.pos++
	}
}

func (l *lexer) ident() string {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(rune(l.src[l.pos])) {
		l.pos++
	}
	return l.src[start:l.pos]
}

func (l *lexer) number() string {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == '_' ||
			(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') || c == 'x' || c == 'X' {
			l.pos++
			continue
		}
		break
	}
	return l.src[start:l.pos]
}

func (l *lexer) stringLit() (string, error) {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
		case '"':
			l.pos++
			return l.src[start:l.pos], nil
		default:
			l.pos++
		}
	}
	return "", fmt.Errorf("%w at offset %d", ErrUnterminated, start)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isPunct reports whether c would lex as a Punct (used for Joint spacing).
func isPunct(c byte) bool {
	if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '"' {
		return false
	}
	if c == '(' || c == ')' || c == '[' || c == ']' || c == '{' || c == '}' {
		return false
	}
	if isIdentStart(rune(c)) || (c >= '0' && c <= '9') {
		return false
	}
	return strings.IndexByte("!#$%&'*+,-./:;<=>?@^`|~\\", c) >= 0
}

func matching(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	}
	return '}'
}

func delimFor(open byte) Delimiter {
	switch open {
	case '(':
		return DelimParen
	case '[':
		return DelimBracket
	}
	return DelimBrace
}

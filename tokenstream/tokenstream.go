// Package tokenstream defines the tree-shaped token representation passed
// into and returned from every macro invocation.
//
// A Stream is an ordered sequence of token trees: atoms (identifiers,
// literals, punctuation) and groups (a delimiter pair wrapping a nested
// Stream). Streams are immutable by convention: transformations build a new
// Stream rather than mutating in place, and the bridge replaces values
// wholesale when a macro returns.
package tokenstream

import "strings"

// Stream is an ordered sequence of token trees.
type Stream []Tree

// Tree is a single node of a token stream: Ident, Literal, Punct or Group.
type Tree interface {
	tree()
	writeTo(sb *strings.Builder)
}

// Delimiter identifies the bracket pair wrapping a Group.
type Delimiter byte

const (
	// DelimNone marks an invisible delimiter (a transparent group).
	DelimNone Delimiter = iota
	// DelimParen is ( ... ).
	DelimParen
	// DelimBracket is [ ... ].
	DelimBracket
	// DelimBrace is { ... }.
	DelimBrace
)

// Spacing records whether a Punct is immediately followed by another Punct,
// allowing multi-character operators to survive printing and re-lexing.
type Spacing byte

const (
	// Alone means the next token is not part of this operator.
	Alone Spacing = iota
	// Joint means this punct glues to the following one (e.g. the '=' in "==").
	Joint
)

// Ident is an identifier or keyword token.
type Ident struct {
	Name string
}

// Literal is a numeric, string or character literal, kept as written.
type Literal struct {
	Text string
}

// Punct is a single punctuation character.
type Punct struct {
	Ch      rune
	Spacing Spacing
}

// Group wraps a nested stream in a delimiter pair.
type Group struct {
	Delim Delimiter
	Body  Stream
}

func (Ident) tree()   {}
func (Literal) tree() {}
func (Punct) tree()   {}
func (Group) tree()   {}

// Equal reports whether two streams are structurally equal.
func Equal(a, b Stream) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !treeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func treeEqual(a, b Tree) bool {
	switch ta := a.(type) {
	case Ident:
		tb, ok := b.(Ident)
		return ok && ta == tb
	case Literal:
		tb, ok := b.(Literal)
		return ok && ta == tb
	case Punct:
		tb, ok := b.(Punct)
		return ok && ta == tb
	case Group:
		tb, ok := b.(Group)
		return ok && ta.Delim == tb.Delim && Equal(ta.Body, tb.Body)
	}
	return false
}

func (s Stream) String() string {
	var sb strings.Builder
	s.writeTo(&sb)
	return sb.String()
}

func (s Stream) writeTo(sb *strings.Builder) {
	prevJoint := true // suppress the leading space
	for _, t := range s {
		if !prevJoint {
			sb.WriteByte(' ')
		}
		t.writeTo(sb)
		p, ok := t.(Punct)
		prevJoint = ok && p.Spacing == Joint
	}
}

func (t Ident) writeTo(sb *strings.Builder)   { sb.WriteString(t.Name) }
func (t Literal) writeTo(sb *strings.Builder) { sb.WriteString(t.Text) }
func (t Punct) writeTo(sb *strings.Builder)   { sb.WriteRune(t.Ch) }

func (t Group) writeTo(sb *strings.Builder) {
	open, close := delimChars(t.Delim)
	if open != 0 {
		sb.WriteByte(open)
	}
	t.Body.writeTo(sb)
	if close != 0 {
		sb.WriteByte(close)
	}
}

func delimChars(d Delimiter) (open, close byte) {
	switch d {
	case DelimParen:
		return '(', ')'
	case DelimBracket:
		return '[', ']'
	case DelimBrace:
		return '{', '}'
	}
	return 0, 0
}

// Package token classifies raw lexer spans into typed DQL tokens.
//
// Classification is a full-string decision over an ordered rule table; the
// first rule that matches the whole normalized text wins, and Mismatch is
// the catch-all. Classify never fails.
package token

import "fmt"

// Kind categorizes a token. The order of the constants is the order in
// which the classifier tries them.
type Kind int

const (
	Keyword Kind = iota
	Identifier
	Operator
	Literal
	Number
	Delimiter
	Asterisk
	Mismatch
)

var kindNames = [...]string{
	Keyword:    "Keyword",
	Identifier: "Identifier",
	Operator:   "Operator",
	Literal:    "Literal",
	Number:     "Number",
	Delimiter:  "Delimiter",
	Asterisk:   "Asterisk",
	Mismatch:   "Mismatch",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return Mismatch, fmt.Errorf("unknown token kind %q", s)
}

// Token is a classified, whitespace-free lexical unit. It owns its text.
type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// Is reports whether t has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsKeyword reports whether t is the reserved word kw.
func (t Token) IsKeyword(kw string) bool {
	return t.Is(Keyword, kw)
}

// IsDelimiter reports whether t is the delimiter d.
func (t Token) IsDelimiter(d string) bool {
	return t.Is(Delimiter, d)
}

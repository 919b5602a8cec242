package lexer

import (
	"golang.org/x/text/unicode/norm"
)

// Source is an immutable rune buffer holding one query.
// Text is NFC normalized on construction, so composed and decomposed
// spellings of the same identifier produce identical spans.
type Source struct {
	runes []rune
}

// NewSource normalizes text and copies it into a rune buffer.
func NewSource(text string) *Source {
	return &Source{runes: []rune(norm.NFC.String(text))}
}

// Len returns the buffer length in runes.
func (s *Source) Len() int {
	return len(s.runes)
}

// Text returns the characters covered by span.
func (s *Source) Text(span Span) string {
	return string(s.runes[span.Start:span.End()])
}

// String returns the whole normalized buffer.
func (s *Source) String() string {
	return string(s.runes)
}

// Span is a raw token: a contiguous range of runes in a Source.
type Span struct {
	Start int // rune offset of the first character
	Len   int // number of runes
}

// End returns the offset one past the last rune of the span.
func (s Span) End() int {
	return s.Start + s.Len
}

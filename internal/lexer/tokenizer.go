package lexer

import (
	"iter"
	"unicode"
)

// Tokenizer produces raw token spans from a Source, one per call to Next.
// It owns its cursor exclusively and must not be shared between goroutines.
type Tokenizer struct {
	src *Source
	pos int
}

// New creates a Tokenizer positioned at the start of src.
func New(src *Source) *Tokenizer {
	return &Tokenizer{src: src}
}

// Next returns the next raw token. The boolean is false once the buffer is
// exhausted; every later call keeps returning false.
func (t *Tokenizer) Next() (Span, bool) {
	t.skipWhitespace()

	if t.pos >= t.src.Len() {
		return Span{}, false
	}

	c := t.src.runes[t.pos]
	switch {
	case unicode.IsDigit(c):
		return t.chopWhile(unicode.IsDigit), true
	case unicode.IsLetter(c):
		return t.chopWhile(isWordChar), true
	case c == '\'':
		return t.chopQuoted(), true
	case isSelfDelimiting(c):
		return t.chop(1), true
	default:
		return t.chopWhile(isSymbolChar), true
	}
}

// All returns a single-use sequence over the remaining spans.
func (t *Tokenizer) All() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for {
			span, ok := t.Next()
			if !ok || !yield(span) {
				return
			}
		}
	}
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < t.src.Len() && unicode.IsSpace(t.src.runes[t.pos]) {
		t.pos++
	}
}

// chop consumes n runes starting at the cursor.
func (t *Tokenizer) chop(n int) Span {
	span := Span{Start: t.pos, Len: n}
	t.pos += n
	return span
}

// chopWhile consumes the maximal run of runes matching pred.
func (t *Tokenizer) chopWhile(pred func(rune) bool) Span {
	n := 0
	for t.pos+n < t.src.Len() && pred(t.src.runes[t.pos+n]) {
		n++
	}
	return t.chop(n)
}

// chopQuoted consumes a quote through its closing quote, or to the end of
// the buffer when the literal is unterminated.
func (t *Tokenizer) chopQuoted() Span {
	n := 1
	for t.pos+n < t.src.Len() {
		n++
		if t.src.runes[t.pos+n-1] == '\'' {
			break
		}
	}
	return t.chop(n)
}

func isWordChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

func isAlphanumeric(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c)
}

func isSelfDelimiting(c rune) bool {
	switch c {
	case ';', ',', '(', ')', '*':
		return true
	}
	return false
}

// isSymbolChar reports whether c may continue a symbol run.
func isSymbolChar(c rune) bool {
	if c == '\'' || isSelfDelimiting(c) {
		return false
	}
	return !isAlphanumeric(c) || unicode.IsSpace(c)
}

// Tokens scans text and returns the raw text of every span.
func Tokens(text string) []string {
	src := NewSource(text)
	var out []string
	for span := range New(src).All() {
		out = append(out, src.Text(span))
	}
	return out
}

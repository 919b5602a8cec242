package token

import "github.com/roach88/dql/internal/lexer"

// Stream classifies raw spans on demand as they are pulled from a Tokenizer.
// Like the Tokenizer it wraps, a Stream is single-use.
type Stream struct {
	src *lexer.Source
	tok *lexer.Tokenizer
}

// NewStream creates a Stream over src.
func NewStream(src *lexer.Source) *Stream {
	return &Stream{src: src, tok: lexer.New(src)}
}

// Next classifies the next raw token. It returns false at end of input.
func (s *Stream) Next() (Token, bool) {
	span, ok := s.tok.Next()
	if !ok {
		return Token{}, false
	}
	return Classify(s.src.Text(span)), true
}

// Lex tokenizes and classifies a whole query.
func Lex(query string) []Token {
	s := NewStream(lexer.NewSource(query))
	var toks []Token
	for {
		t, ok := s.Next()
		if !ok {
			return toks
		}
		toks = append(toks, t)
	}
}

// Texts returns the text of each token.
func Texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

package parser

import (
	"github.com/roach88/dql/internal/ast"
	"github.com/roach88/dql/internal/lexer"
	"github.com/roach88/dql/internal/token"
)

// TokenSource yields classified tokens one at a time.
// *token.Stream satisfies it.
type TokenSource interface {
	Next() (token.Token, bool)
}

type sliceSource struct {
	toks []token.Token
	i    int
}

func (s *sliceSource) Next() (token.Token, bool) {
	if s.i >= len(s.toks) {
		return token.Token{}, false
	}
	t := s.toks[s.i]
	s.i++
	return t, true
}

// FromSlice adapts an already classified token slice.
func FromSlice(toks []token.Token) TokenSource {
	return &sliceSource{toks: toks}
}

// ParseString lexes, classifies and parses one query.
func ParseString(query string, opts Options) (ast.Node, error) {
	return New(token.NewStream(lexer.NewSource(query)), opts).Parse()
}

// ParseTokens parses an already classified statement.
func ParseTokens(toks []token.Token, opts Options) (ast.Node, error) {
	return New(FromSlice(toks), opts).Parse()
}

package parser

import (
	"fmt"

	"github.com/roach88/dql/internal/token"
)

// SyntaxError reports the first point at which a token stream stopped
// matching the grammar.
type SyntaxError struct {
	Position int          // index of the offending token; token count at end of input
	Expected string       // what the parser needed, e.g. "expected FROM after SELECT column list"
	Found    *token.Token // nil when input ended early
}

func (e *SyntaxError) Error() string {
	if e.Found == nil {
		return fmt.Sprintf("syntax error at token %d: %s, found end of input", e.Position, e.Expected)
	}
	return fmt.Sprintf("syntax error at token %d: %s, found %s", e.Position, e.Expected, e.Found)
}

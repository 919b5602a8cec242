// Package validate accepts or rejects a parsed DQL statement.
//
// The parser already guarantees a well-formed tree; validators here check
// the tree invariants once more (Structural) and apply domain rules such as
// table and column existence against a catalog (CatalogRules). Validators
// never mutate the tree they inspect.
//
// Interpreter is the front door: it takes the classified tokens of one
// statement, builds the tree and runs the configured validators, reporting
// every failure as a *DQLError.
package validate

import (
	"errors"
	"fmt"

	"github.com/roach88/dql/internal/parser"
)

// Error codes (E200-E399).
const (
	// Syntax errors (E200-E299)
	ErrSyntax    = "E200" // statement does not match the grammar
	ErrStructure = "E201" // tree breaks a structural invariant

	// Semantic errors (E300-E399)
	ErrUnknownTable  = "E300" // FROM/JOIN names an unknown table
	ErrUnknownColumn = "E301" // selected column not found in any source table
)

// DQLError is the single error type validators return.
type DQLError struct {
	Code    string
	Message string
	Err     error // underlying error, e.g. *parser.SyntaxError
}

func (e *DQLError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DQLError) Unwrap() error {
	return e.Err
}

// Syntax wraps a parser error. Errors that are not syntax errors are
// wrapped under ErrStructure.
func Syntax(err error) *DQLError {
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) {
		return &DQLError{Code: ErrSyntax, Message: synErr.Error(), Err: synErr}
	}
	return &DQLError{Code: ErrStructure, Message: err.Error(), Err: err}
}

func newError(code, format string, args ...any) *DQLError {
	return &DQLError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Code extracts the error code from err, or "" when err is not a DQLError.
func Code(err error) string {
	var dqlErr *DQLError
	if errors.As(err, &dqlErr) {
		return dqlErr.Code
	}
	return ""
}

package validate

import "github.com/roach88/dql/internal/ast"

// Validator inspects a finished tree and returns nil or a *DQLError.
type Validator interface {
	Validate(root ast.Node) error
}

// Func adapts a plain function to Validator.
type Func func(root ast.Node) error

// Validate calls f.
func (f Func) Validate(root ast.Node) error {
	return f(root)
}

type chain []Validator

func (c chain) Validate(root ast.Node) error {
	for _, v := range c {
		if err := v.Validate(root); err != nil {
			return err
		}
	}
	return nil
}

// Chain runs validators in order and returns the first failure.
func Chain(validators ...Validator) Validator {
	return chain(validators)
}

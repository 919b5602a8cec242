package validate

import (
	"github.com/roach88/dql/internal/ast"
	"github.com/roach88/dql/internal/catalog"
	"github.com/roach88/dql/internal/parser"
	"github.com/roach88/dql/internal/token"
)

// Interpreter validates one statement given as classified tokens.
// It borrows the token slice and never modifies it.
type Interpreter struct {
	tokens     []token.Token
	parserOpts parser.Options
	validators []Validator
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithParserOptions sets the options used to build the tree.
func WithParserOptions(opts parser.Options) Option {
	return func(i *Interpreter) { i.parserOpts = opts }
}

// WithCatalog adds CatalogRules for cat.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(i *Interpreter) { i.validators = append(i.validators, CatalogRules{Catalog: cat}) }
}

// WithValidators appends extra validators, run after the built-in ones.
func WithValidators(vs ...Validator) Option {
	return func(i *Interpreter) { i.validators = append(i.validators, vs...) }
}

// NewInterpreter creates an Interpreter over tokens. Structural and token
// order checks always run first.
func NewInterpreter(tokens []token.Token, opts ...Option) *Interpreter {
	i := &Interpreter{
		tokens:     tokens,
		validators: []Validator{Structural{}, TokenOrder{Tokens: tokens}},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Validate returns nil when the statement is accepted.
func (i *Interpreter) Validate() error {
	_, err := i.Check()
	return err
}

// Check builds the tree and validates it. The tree is returned only when
// validation passes.
func (i *Interpreter) Check() (ast.Node, error) {
	root, err := parser.ParseTokens(i.tokens, i.parserOpts)
	if err != nil {
		return nil, Syntax(err)
	}
	if err := Chain(i.validators...).Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}

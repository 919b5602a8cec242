package harness

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/dql/internal/ast"
	"github.com/roach88/dql/internal/catalog"
	"github.com/roach88/dql/internal/parser"
	"github.com/roach88/dql/internal/testutil"
	"github.com/roach88/dql/internal/token"
	"github.com/roach88/dql/internal/validate"
)

// Harness is the scenario execution engine.
type Harness struct {
	logger *slog.Logger
}

// New creates a Harness. A nil logger discards output.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = testutil.DiscardLogger()
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with a silent logger.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Classify the query into tokens
// 2. Build and validate the tree (catalog rules when a catalog is given)
// 3. Record the tree or the rejection
// 4. Evaluate the scenario's expectations against the result
//
// The returned error is non-nil only when the scenario itself is unusable;
// failed expectations land in Result.Errors.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	result := NewResult()

	toks := token.Lex(scenario.Query)
	for _, t := range toks {
		result.Tokens = append(result.Tokens, formatToken(t))
	}

	opts := []validate.Option{
		validate.WithParserOptions(parser.Options{MaxDepth: scenario.MaxDepth, Logger: h.logger}),
	}
	if len(scenario.Catalog) > 0 {
		cat := catalog.New()
		for table, columns := range scenario.Catalog {
			cat.AddTable(table, columns...)
		}
		opts = append(opts, validate.WithCatalog(cat))
	}

	root, err := validate.NewInterpreter(toks, opts...).Check()
	if err != nil {
		result.Failure = newFailure(err)
		h.logger.Debug("scenario query rejected",
			"scenario", scenario.Name,
			"code", result.Failure.Code,
			"error", err)
	} else {
		result.Tree = ast.Format(root)
		ast.Walk(root, func(n ast.Node) bool {
			result.Nodes[ast.TypeName(n)]++
			return true
		})
		h.logger.Debug("scenario query accepted", "scenario", scenario.Name, "nodes", len(result.Nodes))
	}

	for _, msg := range EvaluateAssertions(result, scenario) {
		result.AddError(msg)
	}

	return result, nil
}

func newFailure(err error) *Failure {
	f := &Failure{Code: validate.Code(err), Message: err.Error()}
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) {
		pos := synErr.Position
		f.Position = &pos
	}
	return f
}

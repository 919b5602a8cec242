package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/dql/internal/ast"
	"github.com/roach88/dql/internal/lexer"
	"github.com/roach88/dql/internal/parser"
	"github.com/roach88/dql/internal/token"
	"github.com/roach88/dql/internal/validate"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	Input InputOptions
}

// ParseResult is the JSON payload of the parse command.
type ParseResult struct {
	Tree map[string]any `json:"tree"`
}

// SyntaxDetails locates a syntax error in JSON output.
type SyntaxDetails struct {
	Position int    `json:"position"`
	Expected string `json:"expected"`
	Found    string `json:"found,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse [query]",
		Short: "Print the syntax tree of a query",
		Long: `Parse a query and print its syntax tree.

Text output is an indented outline, one node per line. JSON output is the
tree as nested objects, each with a "type" key.

Exit codes:
  0 - Query parsed
  1 - Syntax error
  2 - Command error (unreadable input, etc.)

Examples:
  dql parse "WITH CTE AS (SELECT A FROM T) SELECT A FROM CTE"
  dql parse -f query.dql --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args, cmd)
		},
	}

	addInputFlags(cmd, &opts.Input)

	return cmd
}

func runParse(opts *ParseOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	query, err := loadQuery(cmd, args, opts.Input)
	if err != nil {
		return failLoad(formatter, err)
	}

	src := &countingSource{src: token.NewStream(lexer.NewSource(query))}
	root, err := parser.New(src, opts.parserOptions()).Parse()
	formatter.VerboseLog("Classified %d token(s)", src.n)
	if err != nil {
		return outputRejected(formatter, validate.Syntax(err))
	}

	if opts.Format == "json" {
		return formatter.Success(ParseResult{Tree: ast.ToMap(root)})
	}

	fmt.Fprint(formatter.Writer, ast.Format(root))
	return nil
}

// outputRejected reports a rejected query and returns exit code 1.
func outputRejected(formatter *OutputFormatter, err error) error {
	code, message := ErrCodeGeneric, err.Error()
	var dqlErr *validate.DQLError
	if errors.As(err, &dqlErr) {
		code, message = dqlErr.Code, dqlErr.Message
	}

	var details any
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) {
		d := SyntaxDetails{Position: synErr.Position, Expected: synErr.Expected}
		if synErr.Found != nil {
			d.Found = synErr.Found.Text
		}
		details = d
	}

	_ = formatter.Error(code, message, details)
	return NewExitError(ExitFailure, fmt.Sprintf("query rejected: %s: %s", code, message))
}

// countingSource counts the tokens the parser pulls.
type countingSource struct {
	src parser.TokenSource
	n   int
}

func (c *countingSource) Next() (token.Token, bool) {
	t, ok := c.src.Next()
	if ok {
		c.n++
	}
	return t, ok
}

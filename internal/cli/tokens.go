package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/dql/internal/token"
)

// TokensOptions holds flags for the tokens command.
type TokensOptions struct {
	*RootOptions
	Input InputOptions
}

// TokenOutput is one classified token in JSON output.
type TokenOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// TokensResult is the JSON payload of the tokens command.
type TokensResult struct {
	Tokens     []TokenOutput `json:"tokens"`
	Mismatches int           `json:"mismatches"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokensOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tokens [query]",
		Short: "Print the classified token stream of a query",
		Long: `Split a query into tokens and classify each one.

Classification never fails: text matching no token class is reported
with kind Mismatch and left for the parser to reject.

Examples:
  dql tokens "SELECT A, B FROM T WHERE A >= 42;"
  dql tokens -f query.dql --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(opts, args, cmd)
		},
	}

	addInputFlags(cmd, &opts.Input)

	return cmd
}

func runTokens(opts *TokensOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	query, err := loadQuery(cmd, args, opts.Input)
	if err != nil {
		return failLoad(formatter, err)
	}

	toks := token.Lex(query)
	formatter.VerboseLog("Classified %d token(s)", len(toks))

	result := TokensResult{Tokens: make([]TokenOutput, 0, len(toks))}
	for _, t := range toks {
		result.Tokens = append(result.Tokens, TokenOutput{Kind: t.Kind.String(), Text: t.Text})
		if t.Kind == token.Mismatch {
			result.Mismatches++
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	for _, t := range result.Tokens {
		fmt.Fprintf(formatter.Writer, "%-10s %s\n", t.Kind, t.Text)
	}
	return nil
}

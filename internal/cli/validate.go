package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/dql/internal/token"
	"github.com/roach88/dql/internal/validate"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Input   InputOptions
	Catalog CatalogOptions
}

// ValidationResult is the JSON payload of a successful validation.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Tables []string `json:"tables,omitempty"` // catalog tables checked against
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate [query]",
		Short: "Accept or reject a query",
		Long: `Parse a query and run the validators over its tree.

Structural checks always run. With --catalog (a directory of CUE files) or
--sqlite (an existing database), FROM and JOIN tables and selected columns
are checked against the catalog too; both may be given and are merged.

Exit codes:
  0 - Query accepted
  1 - Query rejected (E200 syntax, E201 structure, E300 table, E301 column)
  2 - Command error (unreadable input, catalog not found, etc.)

Examples:
  dql validate "SELECT ID FROM USERS"
  dql validate --catalog ./catalog -f query.dql
  dql validate --sqlite app.db "SELECT NAME FROM USERS" --format json`,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	addInputFlags(cmd, &opts.Input)
	cmd.Flags().StringVar(&opts.Catalog.CUEDir, "catalog", "", "directory of CUE files declaring tables")
	cmd.Flags().StringVar(&opts.Catalog.SQLitePath, "sqlite", "", "SQLite database whose tables form the catalog")

	return cmd
}

func runValidate(opts *ValidateOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	query, err := loadQuery(cmd, args, opts.Input)
	if err != nil {
		return failLoad(formatter, err)
	}

	cat, err := loadCatalog(cmd.Context(), opts.Catalog)
	if err != nil {
		return failLoad(formatter, err)
	}

	interpOpts := []validate.Option{validate.WithParserOptions(opts.parserOptions())}
	result := ValidationResult{Valid: true}
	if cat != nil {
		formatter.VerboseLog("Loaded catalog with %d table(s)", cat.Len())
		interpOpts = append(interpOpts, validate.WithCatalog(cat))
		result.Tables = cat.Tables()
	}

	toks := token.Lex(query)
	formatter.VerboseLog("Classified %d token(s)", len(toks))

	if err := validate.NewInterpreter(toks, interpOpts...).Validate(); err != nil {
		opts.logger().Debug("query rejected", "code", validate.Code(err), "error", err)
		return outputRejected(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, "✓ Query valid")
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dql/internal/catalog"
)

// InputOptions selects where the query text comes from.
type InputOptions struct {
	File string // path to a query file, "-" for stdin
}

// CatalogOptions selects where table and column names come from.
type CatalogOptions struct {
	CUEDir     string // directory holding a CUE catalog
	SQLitePath string // SQLite database to introspect
}

// LoadError is a command-level failure to obtain input.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func addInputFlags(cmd *cobra.Command, opts *InputOptions) {
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", `read the query from a file ("-" for stdin)`)
}

// loadQuery returns the query from the arguments (joined by spaces) or
// from --file. Exactly one of the two must be given.
func loadQuery(cmd *cobra.Command, args []string, opts InputOptions) (string, error) {
	switch {
	case opts.File != "" && len(args) > 0:
		return "", &LoadError{Code: ErrCodeUsage, Message: "give the query as arguments or with --file, not both"}
	case opts.File == "" && len(args) == 0:
		return "", &LoadError{Code: ErrCodeUsage, Message: "no query given"}
	case opts.File == "":
		return strings.Join(args, " "), nil
	}

	var (
		data []byte
		err  error
	)
	if opts.File == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(opts.File)
	}
	if errors.Is(err, os.ErrNotExist) {
		return "", &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("query file not found: %s", opts.File)}
	}
	if err != nil {
		return "", &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading query: %v", err)}
	}
	return string(data), nil
}

// loadCatalog loads the catalog named by opts, or returns nil when none is
// configured. A CUE catalog and a SQLite catalog are merged, CUE first.
func loadCatalog(ctx context.Context, opts CatalogOptions) (*catalog.Catalog, error) {
	if opts.CUEDir == "" && opts.SQLitePath == "" {
		return nil, nil
	}

	merged := catalog.New()
	if opts.CUEDir != "" {
		cat, err := catalog.LoadCUE(opts.CUEDir)
		if err != nil {
			return nil, err
		}
		merged.Merge(cat)
	}
	if opts.SQLitePath != "" {
		cat, err := catalog.LoadSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		merged.Merge(cat)
	}
	return merged, nil
}

// failLoad reports a load failure and returns the matching exit error.
func failLoad(formatter *OutputFormatter, err error) error {
	code, message := ErrCodeGeneric, err.Error()

	var loadErr *LoadError
	var catErr *catalog.LoadError
	switch {
	case errors.As(err, &loadErr):
		code, message = loadErr.Code, loadErr.Message
	case errors.As(err, &catErr):
		code, message = catErr.Code, catErr.Message
	}

	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

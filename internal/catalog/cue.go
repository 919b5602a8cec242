package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// Load error codes, shared with the CLI's JSON error output.
const (
	ErrCodeNotFound    = "E005" // directory or file missing
	ErrCodeNoFiles     = "E003" // directory holds no CUE files
	ErrCodeLoadFailed  = "E006" // CUE instance could not be loaded
	ErrCodeBuildFailed = "E007" // CUE value failed to build
	ErrCodeSchema      = "E008" // catalog shape is wrong
)

// LoadError reports a problem loading a catalog.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadCUE builds a catalog from the CUE package in dir. Tables are declared
// as:
//
//	table: USERS: columns: ["ID", "NAME"]
func LoadCUE(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog directory not found: %s", dir)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.cue"))
	if err != nil || len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	if inst := instances[0]; inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := cuecontext.New().BuildInstance(instances[0])
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}
	return FromCUE(value)
}

// FromCUE reads table declarations from an already built CUE value.
func FromCUE(value cue.Value) (*Catalog, error) {
	cat := New()

	tablesVal := value.LookupPath(cue.ParsePath("table"))
	if !tablesVal.Exists() {
		return cat, nil
	}

	iter, err := tablesVal.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("table must be a struct: %v", err), Pos: tablesVal.Pos()}
	}
	for iter.Next() {
		name := iter.Label()
		tableVal := iter.Value()

		colsVal := tableVal.LookupPath(cue.ParsePath("columns"))
		if !colsVal.Exists() {
			return nil, &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("table %s: columns are required", name), Pos: tableVal.Pos()}
		}
		list, err := colsVal.List()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("table %s: columns must be a list", name), Pos: colsVal.Pos()}
		}

		var cols []string
		for list.Next() {
			col, err := list.Value().String()
			if err != nil {
				return nil, &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("table %s: column names must be strings", name), Pos: list.Value().Pos()}
			}
			if strings.TrimSpace(col) == "" {
				return nil, &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("table %s: empty column name", name), Pos: list.Value().Pos()}
			}
			cols = append(cols, col)
		}
		cat.AddTable(name, cols...)
	}
	return cat, nil
}

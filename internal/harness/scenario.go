package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/dql/internal/token"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Query is the DQL source under test.
	Query string `yaml:"query"`

	// MaxDepth overrides the parser nesting limit. Zero means the default.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// Catalog, when present, enables table and column checks.
	// Keys are table names, values their columns.
	Catalog map[string][]string `yaml:"catalog,omitempty"`

	// Tokens is the expected classified stream, each entry "Kind:text".
	Tokens []string `yaml:"tokens,omitempty"`

	// Error expects the query to be rejected. Nil expects acceptance.
	Error *ExpectError `yaml:"error,omitempty"`

	// Nodes are expected node counts by type name (exact match per entry).
	Nodes map[string]int `yaml:"nodes,omitempty"`

	// Golden compares the rendered tree against golden/<name>.golden.
	Golden bool `yaml:"golden,omitempty"`
}

// ExpectError specifies the expected rejection.
type ExpectError struct {
	// Code is the DQLError code (E200, E300...). Empty matches any code.
	Code string `yaml:"code,omitempty"`

	// Position is the expected syntax error token index.
	Position *int `yaml:"position,omitempty"`

	// Contains is a substring the error message must contain.
	Contains string `yaml:"contains,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "token:" vs "tokens:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadDir loads every *.yaml scenario in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%s: duplicate scenario name %q (also in %s)", filepath.Base(path), s.Name, prev)
		}
		seen[s.Name] = filepath.Base(path)
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if strings.TrimSpace(s.Query) == "" {
		return fmt.Errorf("query is required")
	}

	if s.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative")
	}

	if len(s.Tokens) == 0 && s.Error == nil && len(s.Nodes) == 0 && !s.Golden {
		return fmt.Errorf("scenario asserts nothing: set tokens, error, nodes or golden")
	}

	if s.Error != nil && s.Golden {
		return fmt.Errorf("golden requires an accepted query, but error is set")
	}

	for i, tok := range s.Tokens {
		if _, _, err := splitToken(tok); err != nil {
			return fmt.Errorf("tokens[%d]: %w", i, err)
		}
	}

	for name, count := range s.Nodes {
		if count < 0 {
			return fmt.Errorf("nodes[%s]: count must be non-negative", name)
		}
	}

	return nil
}

// splitToken parses a "Kind:text" expectation.
func splitToken(s string) (token.Kind, string, error) {
	kindName, text, ok := strings.Cut(s, ":")
	if !ok {
		return token.Mismatch, "", fmt.Errorf("%q is not Kind:text", s)
	}
	kind, err := token.ParseKind(kindName)
	if err != nil {
		return token.Mismatch, "", err
	}
	return kind, text, nil
}

// formatToken renders t the way scenarios spell it.
func formatToken(t token.Token) string {
	return t.Kind.String() + ":" + t.Text
}

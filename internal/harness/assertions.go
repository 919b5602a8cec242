package harness

import (
	"fmt"
	"sort"
	"strings"
)

// AssertionError is returned when an expectation fails.
// It carries enough context to debug the failure without re-running.
type AssertionError struct {
	Type     string // "tokens", "error", "nodes"
	Expected string
	Actual   string
	Tokens   []string // classified stream for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Tokens) > 0 {
		fmt.Fprintf(&buf, "\nTokens:\n")
		for i, tok := range e.Tokens {
			fmt.Fprintf(&buf, "  [%d] %s\n", i, tok)
		}
	}

	return buf.String()
}

// assertTokens checks the classified stream element by element.
func assertTokens(result *Result, expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for i := range max(len(expected), len(result.Tokens)) {
		var want, got string
		if i < len(expected) {
			want = expected[i]
		}
		if i < len(result.Tokens) {
			got = result.Tokens[i]
		}
		if want != got {
			return &AssertionError{
				Type:     "tokens",
				Expected: fmt.Sprintf("token %d = %s (%d tokens)", i, orNothing(want), len(expected)),
				Actual:   fmt.Sprintf("token %d = %s (%d tokens)", i, orNothing(got), len(result.Tokens)),
				Tokens:   result.Tokens,
			}
		}
	}
	return nil
}

// assertError checks acceptance, or the code, position and message of a
// rejection.
func assertError(result *Result, expected *ExpectError) error {
	if expected == nil {
		if result.Failure != nil {
			return &AssertionError{
				Type:     "error",
				Expected: "query accepted",
				Actual:   result.Failure.Message,
				Tokens:   result.Tokens,
			}
		}
		return nil
	}

	if result.Failure == nil {
		return &AssertionError{
			Type:     "error",
			Expected: describeExpectedError(expected),
			Actual:   "query accepted",
			Tokens:   result.Tokens,
		}
	}

	f := result.Failure
	switch {
	case expected.Code != "" && expected.Code != f.Code:
		return &AssertionError{
			Type:     "error",
			Expected: "code " + expected.Code,
			Actual:   fmt.Sprintf("code %s: %s", f.Code, f.Message),
			Tokens:   result.Tokens,
		}
	case expected.Position != nil && (f.Position == nil || *f.Position != *expected.Position):
		actual := "no position"
		if f.Position != nil {
			actual = fmt.Sprintf("position %d", *f.Position)
		}
		return &AssertionError{
			Type:     "error",
			Expected: fmt.Sprintf("position %d", *expected.Position),
			Actual:   fmt.Sprintf("%s: %s", actual, f.Message),
			Tokens:   result.Tokens,
		}
	case expected.Contains != "" && !strings.Contains(f.Message, expected.Contains):
		return &AssertionError{
			Type:     "error",
			Expected: fmt.Sprintf("message containing %q", expected.Contains),
			Actual:   f.Message,
			Tokens:   result.Tokens,
		}
	}
	return nil
}

// assertNodes checks node counts. Types not listed are not checked; a
// listed type with count 0 must be absent.
func assertNodes(result *Result, expected map[string]int) error {
	if len(expected) == 0 {
		return nil
	}
	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if got := result.Nodes[name]; got != expected[name] {
			return &AssertionError{
				Type:     "nodes",
				Expected: fmt.Sprintf("%d %s node(s)", expected[name], name),
				Actual:   fmt.Sprintf("%d %s node(s)", got, name),
			}
		}
	}
	return nil
}

// EvaluateAssertions evaluates the scenario's expectations against result.
// Returns a slice of error messages for failed expectations.
func EvaluateAssertions(result *Result, scenario *Scenario) []string {
	var errors []string

	checks := []error{
		assertTokens(result, scenario.Tokens),
		assertError(result, scenario.Error),
		assertNodes(result, scenario.Nodes),
	}
	for _, err := range checks {
		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

func describeExpectedError(e *ExpectError) string {
	parts := []string{"query rejected"}
	if e.Code != "" {
		parts = append(parts, "code "+e.Code)
	}
	if e.Position != nil {
		parts = append(parts, fmt.Sprintf("position %d", *e.Position))
	}
	if e.Contains != "" {
		parts = append(parts, fmt.Sprintf("message containing %q", e.Contains))
	}
	return strings.Join(parts, ", ")
}

func orNothing(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

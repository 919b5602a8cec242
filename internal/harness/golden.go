package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenSuffix is the file extension of golden tree files.
const GoldenSuffix = ".golden"

// ErrGoldenMissing is returned by CompareGolden when no golden file exists.
var ErrGoldenMissing = errors.New("golden file missing")

// RunWithGolden executes a scenario and compares the rendered tree against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if the scenario cannot be executed. Expectation failures and
// golden mismatches fail t.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already computed result's tree against a golden
// file without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	if result.Failure != nil {
		return fmt.Errorf("scenario %s: no tree to compare, query rejected: %s", scenarioName, result.Failure.Message)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(GoldenSuffix),
	)
	g.Assert(t, scenarioName, []byte(result.Tree))

	return nil
}

// GoldenPath returns the golden file path for name under dir.
func GoldenPath(dir, name string) string {
	return filepath.Join(dir, name+GoldenSuffix)
}

// CompareGolden compares data with the golden file for name in dir.
// Outside of tests there is no *testing.T, so this reads the file directly.
func CompareGolden(dir, name string, data []byte) error {
	want, err := os.ReadFile(GoldenPath(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrGoldenMissing, GoldenPath(dir, name))
	}
	if err != nil {
		return fmt.Errorf("failed to read golden file: %w", err)
	}
	if !bytes.Equal(want, data) {
		return fmt.Errorf("golden mismatch for %s:\n--- expected\n%s--- actual\n%s", name, want, data)
	}
	return nil
}

// WriteGolden creates or replaces the golden file for name in dir.
func WriteGolden(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(GoldenPath(dir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

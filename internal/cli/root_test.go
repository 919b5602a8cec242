package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dql/internal/testutil"
)

// execute runs the full command tree with a fixed trace id.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return executeWith(t, testutil.NewFixedTraceGenerator("trace-test"), args...)
}

// executeWith runs the full command tree, drawing trace ids from ids.
func executeWith(t *testing.T, ids TraceIDGenerator, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCommand(&RootOptions{TraceIDs: ids})
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "dql", cmd.Use)
	assert.Contains(t, cmd.Long, "UNION [ALL]")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"tokens", "parse", "validate", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	depthFlag := cmd.PersistentFlags().Lookup("max-depth")
	require.NotNil(t, depthFlag)
	assert.Equal(t, "100", depthFlag.DefValue)
}

func TestInputFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"tokens", "parse", "validate"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)

		fileFlag := sub.Flags().Lookup("file")
		require.NotNil(t, fileFlag, name)
		assert.Equal(t, "f", fileFlag.Shorthand)
	}
}

func TestValidateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	validateCmd, _, err := cmd.Find([]string{"validate"})
	require.NoError(t, err)

	assert.NotNil(t, validateCmd.Flags().Lookup("catalog"))
	assert.NotNil(t, validateCmd.Flags().Lookup("sqlite"))
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	updateFlag := testCmd.Flags().Lookup("update")
	require.NotNil(t, updateFlag)
	assert.Equal(t, "false", updateFlag.DefValue)

	assert.NotNil(t, testCmd.Flags().Lookup("filter"))
	assert.NotNil(t, testCmd.Flags().Lookup("golden"))
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", "tokens", "SELECT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestInvalidMaxDepth(t *testing.T) {
	_, _, err := execute(t, "--max-depth", "0", "parse", "SELECT A FROM T")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid max-depth 0")
}

func TestVerboseLogsToStderr(t *testing.T) {
	stdout, stderr, err := execute(t, "-v", "parse", "SELECT A FROM (SELECT A FROM T)")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Query")
	assert.Contains(t, stderr, "Classified 9 token(s)")
	assert.Contains(t, stderr, "entering nested query")
	assert.NotContains(t, stdout, "level=DEBUG")
}

func TestQuietByDefault(t *testing.T) {
	_, stderr, err := execute(t, "parse", "SELECT A FROM (SELECT A FROM T)")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestTraceIDPerResponse(t *testing.T) {
	ids := testutil.NewSequenceTraceGenerator("run")
	runs := [][]string{
		{"--format", "json", "tokens", "SELECT A FROM T"},
		{"--format", "json", "parse", "SELECT A FROM T"},
		{"--format", "json", "validate", "SELECT FROM T"},
	}

	var got []string
	for _, args := range runs {
		stdout, _, _ := executeWith(t, ids, args...)
		var resp struct {
			TraceID string `json:"trace_id"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &resp), stdout)
		got = append(got, resp.TraceID)
	}

	assert.Equal(t, []string{"run-1", "run-2", "run-3"}, got)
	assert.Equal(t, int64(3), ids.Current())

	ids.Reset()
	stdout, _, err := executeWith(t, ids, "--format", "json", "tokens", "SELECT")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"trace_id": "run-1"`)
}

package parser

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dql/internal/ast"
	"github.com/roach88/dql/internal/token"
)

func quietOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func mustParse(t *testing.T, query string) ast.Node {
	t.Helper()
	root, err := ParseString(query, quietOptions())
	require.NoError(t, err)
	require.NotNil(t, root)
	return root
}

func mustFail(t *testing.T, query string) *SyntaxError {
	t.Helper()
	root, err := ParseString(query, quietOptions())
	require.Error(t, err)
	assert.Nil(t, root, "a failed parse must not return a partial tree")

	var synErr *SyntaxError
	require.True(t, errors.As(err, &synErr), "expected *SyntaxError, got %T", err)
	return synErr
}

func TestParse_SelectStar(t *testing.T) {
	root := mustParse(t, "SELECT * FROM TABLE_NAME;")

	q, ok := root.(*ast.Query)
	require.True(t, ok)
	assert.Equal(t, []string{"*"}, token.Texts(q.Select.Columns))
	require.NotNil(t, q.From.Source.Table)
	assert.Equal(t, "TABLE_NAME", q.From.Source.Table.Text)
	assert.Nil(t, q.Where)
}

func TestParse_NoTerminator(t *testing.T) {
	root := mustParse(t, "SELECT A, B FROM T")
	q := root.(*ast.Query)
	assert.Equal(t, []string{"A", "B"}, token.Texts(q.Select.Columns))
}

func TestParse_CTE(t *testing.T) {
	root := mustParse(t, "WITH CTE AS (SELECT A,B,C FROM T) SELECT A,B FROM CTE WHERE A >= 42;")

	with, ok := root.(*ast.With)
	require.True(t, ok, "expected *ast.With, got %T", root)
	require.Len(t, with.Bindings, 1)
	assert.Equal(t, "CTE", with.Bindings[0].Name.Text)

	inner := with.Bindings[0].Body.(*ast.Query)
	assert.Equal(t, []string{"A", "B", "C"}, token.Texts(inner.Select.Columns))
	assert.Equal(t, "T", inner.From.Source.Table.Text)

	outer := with.Body.(*ast.Query)
	assert.Equal(t, []string{"A", "B"}, token.Texts(outer.Select.Columns))
	assert.Equal(t, "CTE", outer.From.Source.Table.Text)
	assert.Equal(t, []string{"A", ">=", "42"}, token.Texts(outer.Where.Predicate.Tokens))
}

func TestParse_MultipleCTEs(t *testing.T) {
	root := mustParse(t, "WITH X AS (SELECT A FROM T), Y AS (SELECT A FROM X) SELECT A FROM Y")
	with := root.(*ast.With)
	require.Len(t, with.Bindings, 2)
	assert.Equal(t, "X", with.Bindings[0].Name.Text)
	assert.Equal(t, "Y", with.Bindings[1].Name.Text)
}

func TestParse_SubqueryWhereDoesNotLeak(t *testing.T) {
	root := mustParse(t, `
		SELECT COLUMN_A, COLUMN_B
		FROM (
			SELECT COLUMN_A, COLUMN_B, COLUMN_C
			FROM TABLE_NAME
			WHERE COLUMN_B <= 42
		)
		WHERE COLUMN_A > = 42;
	`)

	outer := root.(*ast.Query)
	require.True(t, outer.From.Source.IsSubquery())
	inner := outer.From.Source.Subquery.(*ast.Query)

	assert.Equal(t, []string{"COLUMN_B", "<=", "42"}, token.Texts(inner.Where.Predicate.Tokens))
	assert.Equal(t, []string{"COLUMN_A", ">=", "42"}, token.Texts(outer.Where.Predicate.Tokens))
}

func TestParse_PredicateWithNestedSubquery(t *testing.T) {
	root := mustParse(t, "SELECT A FROM T WHERE A IN (SELECT B FROM U WHERE C = 1 GROUP BY B) GROUP BY A")

	q := root.(*ast.Query)
	assert.Equal(t,
		[]string{"A", "IN", "(", "SELECT", "B", "FROM", "U", "WHERE", "C", "=", "1", "GROUP", "BY", "B", ")"},
		token.Texts(q.Where.Predicate.Tokens))
	require.NotNil(t, q.GroupBy)
	assert.Equal(t, []string{"A"}, token.Texts(q.GroupBy.Columns))
}

func TestParse_Joins(t *testing.T) {
	root := mustParse(t, "SELECT A FROM T JOIN U ON T_ID = U_ID LEFT OUTER JOIN V ON X = Y INNER JOIN (SELECT Z FROM W) ON Z = 1 WHERE A = 2")

	q := root.(*ast.Query)
	require.Len(t, q.Joins, 3)

	assert.Equal(t, ast.JoinPlain, q.Joins[0].Kind)
	assert.Equal(t, "U", q.Joins[0].Source.Table.Text)
	assert.Equal(t, []string{"T_ID", "=", "U_ID"}, token.Texts(q.Joins[0].On.Tokens))

	assert.Equal(t, ast.JoinLeft, q.Joins[1].Kind)
	assert.True(t, q.Joins[1].Outer)
	assert.Equal(t, []string{"X", "=", "Y"}, token.Texts(q.Joins[1].On.Tokens))

	assert.Equal(t, ast.JoinInner, q.Joins[2].Kind)
	assert.True(t, q.Joins[2].Source.IsSubquery())
	assert.Equal(t, []string{"Z", "=", "1"}, token.Texts(q.Joins[2].On.Tokens))

	assert.Equal(t, []string{"A", "=", "2"}, token.Texts(q.Where.Predicate.Tokens))
}

func TestParse_GroupByHaving(t *testing.T) {
	root := mustParse(t, "SELECT A FROM T WHERE B > 1 GROUP BY A, C HAVING A > 2;")

	q := root.(*ast.Query)
	assert.Equal(t, []string{"B", ">", "1"}, token.Texts(q.Where.Predicate.Tokens))
	assert.Equal(t, []string{"A", "C"}, token.Texts(q.GroupBy.Columns))
	assert.Equal(t, []string{"A", ">", "2"}, token.Texts(q.Having.Predicate.Tokens))
}

func TestParse_OrderByLimit(t *testing.T) {
	root := mustParse(t, "SELECT DISTINCT A FROM T ORDER BY A DESC LIMIT 10")

	q := root.(*ast.Query)
	assert.True(t, q.Select.Distinct)
	assert.Equal(t, []string{"A"}, token.Texts(q.OrderBy.Columns))
	assert.True(t, q.OrderBy.Desc)
	assert.Equal(t, "10", q.Limit.Count.Text)
}

func TestParse_Unions(t *testing.T) {
	t.Run("same operator shares a node", func(t *testing.T) {
		root := mustParse(t, "SELECT A FROM T UNION SELECT A FROM U UNION SELECT A FROM V")
		u, ok := root.(*ast.Union)
		require.True(t, ok)
		assert.Len(t, u.Branches, 3)
	})

	t.Run("union all", func(t *testing.T) {
		root := mustParse(t, "SELECT A FROM T UNION ALL SELECT A FROM U;")
		u, ok := root.(*ast.UnionAll)
		require.True(t, ok)
		assert.Len(t, u.Branches, 2)
	})

	t.Run("switching operator nests left", func(t *testing.T) {
		root := mustParse(t, "SELECT A FROM T UNION SELECT A FROM U UNION ALL SELECT A FROM V")
		all, ok := root.(*ast.UnionAll)
		require.True(t, ok)
		require.Len(t, all.Branches, 2)
		inner, ok := all.Branches[0].(*ast.Union)
		require.True(t, ok)
		assert.Len(t, inner.Branches, 2)
	})

	t.Run("where stops at union", func(t *testing.T) {
		root := mustParse(t, "SELECT A FROM T WHERE A = 1 UNION SELECT A FROM U WHERE A = 2")
		u := root.(*ast.Union)
		first := u.Branches[0].(*ast.Query)
		assert.Equal(t, []string{"A", "=", "1"}, token.Texts(first.Where.Predicate.Tokens))
	})

	t.Run("union inside subquery", func(t *testing.T) {
		root := mustParse(t, "SELECT A FROM (SELECT A FROM T UNION SELECT A FROM U)")
		q := root.(*ast.Query)
		_, ok := q.From.Source.Subquery.(*ast.Union)
		assert.True(t, ok)
	})
}

func TestParse_TokensAreContiguousAndOrdered(t *testing.T) {
	query := "WITH C AS (SELECT A FROM T WHERE A = 1) SELECT A FROM C JOIN D ON A = B WHERE A > 1 GROUP BY A HAVING A < 9"
	root := mustParse(t, query)

	all := token.Lex(query)
	held := ast.Tokens(root)

	// Every held token appears in the stream, in the same relative order.
	i := 0
	for _, h := range held {
		for i < len(all) && all[i] != h {
			i++
		}
		require.Less(t, i, len(all), "token %s out of order or missing", h)
		i++
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		position int
		contains string
	}{
		{"missing column list", "SELECT FROM;", 1, "expected column list after SELECT"},
		{"empty input", "", 0, "expected SELECT"},
		{"missing FROM", "SELECT A T", 2, "expected FROM after SELECT column list"},
		{"dangling comma", "SELECT A, FROM T", 3, "expected column after ','"},
		{"missing source", "SELECT A FROM;", 3, "expected table name or '(' subquery after FROM"},
		{"trailing tokens", "SELECT A FROM T X", 4, "trailing tokens"},
		{"tokens after semicolon", "SELECT A FROM T; SELECT", 5, "trailing tokens"},
		{"unclosed subquery", "SELECT A FROM (SELECT A FROM T", 8, "expected ')' to close subquery"},
		{"extra close paren", "SELECT A FROM T)", 4, "unbalanced ')'"},
		{"unbalanced predicate", "SELECT A FROM T WHERE (A = 1", 9, "unbalanced parenthesis"},
		{"empty where", "SELECT A FROM T WHERE;", 5, "expected predicate after WHERE"},
		{"empty having", "SELECT A FROM T GROUP BY A HAVING", 8, "expected predicate after HAVING"},
		{"join without on", "SELECT A FROM T JOIN U WHERE A = 1", 6, "expected ON after JOIN source"},
		{"left without join", "SELECT A FROM T LEFT U ON A = B", 5, "expected JOIN after LEFT"},
		{"group without by", "SELECT A FROM T GROUP A", 5, "expected BY after GROUP"},
		{"limit without count", "SELECT A FROM T LIMIT A", 5, "expected row count after LIMIT"},
		{"cte without name", "WITH AS (SELECT A FROM T) SELECT A FROM T", 1, "expected CTE name after WITH"},
		{"cte without as", "WITH C (SELECT A FROM T) SELECT A FROM C", 2, "expected AS after CTE name"},
		{"cte without body", "WITH C AS SELECT A FROM T", 3, "expected '(' to open CTE body"},
		{"cte without final query", "WITH C AS (SELECT A FROM T)", 9, "expected SELECT"},
		{"mismatch in predicate", "SELECT A FROM T WHERE A != 1", 6, "expected a valid token in WHERE predicate"},
		{"mismatch in column list", "SELECT @ FROM T", 1, "expected column list after SELECT"},
		{"union without select", "SELECT A FROM T UNION", 5, "expected SELECT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mustFail(t, tt.query)
			assert.Equal(t, tt.position, err.Position)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestSyntaxError_Found(t *testing.T) {
	err := mustFail(t, "SELECT A FROM T WHERE A != 1")
	require.NotNil(t, err.Found)
	assert.Equal(t, token.Token{Kind: token.Mismatch, Text: "!="}, *err.Found)
	assert.Equal(t, `syntax error at token 6: expected a valid token in WHERE predicate, found Mismatch("!=")`, err.Error())

	eof := mustFail(t, "SELECT A FROM")
	assert.Nil(t, eof.Found)
	assert.Equal(t, 3, eof.Position)
	assert.True(t, strings.HasSuffix(eof.Error(), "found end of input"))
}

func nestedSubqueries(depth int) string {
	return "SELECT A FROM " + strings.Repeat("(SELECT A FROM ", depth) + "T" + strings.Repeat(")", depth)
}

func TestParse_NestingDepth(t *testing.T) {
	_, err := ParseString(nestedSubqueries(DefaultMaxDepth), quietOptions())
	require.NoError(t, err)

	_, err = ParseString(nestedSubqueries(DefaultMaxDepth+1), quietOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting too deep")

	opts := quietOptions()
	opts.MaxDepth = 2
	_, err = ParseString(nestedSubqueries(3), opts)
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	// SELECT A FROM ( SELECT A FROM ( SELECT A FROM ( -> third '(' consumed at index 11
	assert.Equal(t, 12, synErr.Position)
}

func TestParse_CTENestingCounts(t *testing.T) {
	opts := quietOptions()
	opts.MaxDepth = 1
	_, err := ParseString("WITH C AS (SELECT A FROM (SELECT A FROM T)) SELECT A FROM C", opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting too deep")
}

func TestParseTokens_MatchesParseString(t *testing.T) {
	query := "SELECT A FROM T WHERE A = 'x y'"
	fromString := mustParse(t, query)
	fromTokens, err := ParseTokens(token.Lex(query), quietOptions())
	require.NoError(t, err)
	assert.Equal(t, ast.Format(fromString), ast.Format(fromTokens))
}

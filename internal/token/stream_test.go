package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLex_SelectStar(t *testing.T) {
	assert.Equal(t, []Token{
		{Keyword, "SELECT"},
		{Asterisk, "*"},
		{Keyword, "FROM"},
		{Identifier, "TABLE_NAME"},
		{Delimiter, ";"},
	}, Lex("SELECT * FROM TABLE_NAME;"))
}

func TestLex_OperatorReassembly(t *testing.T) {
	want := []Token{{Identifier, "COLUMN_A"}, {Operator, ">="}, {Number, "42"}}

	assert.Equal(t, want, Lex("COLUMN_A > = 42"))
	assert.Equal(t, want, Lex("COLUMN_A >= 42"))
}

func TestLex_SpacedWhere(t *testing.T) {
	assert.Equal(t, []Token{
		{Keyword, "SELECT"},
		{Identifier, "COLUMN_A"},
		{Delimiter, ","},
		{Identifier, "COLUMN_B"},
		{Keyword, "FROM"},
		{Identifier, "TABLE_NAME"},
		{Keyword, "WHERE"},
		{Identifier, "COLUMN_A"},
		{Operator, ">="},
		{Number, "42"},
		{Delimiter, ";"},
	}, Lex("SELECT COLUMN_A, COLUMN_B FROM TABLE_NAME WHERE COLUMN_A > = 42;"))
}

func TestLex_Subquery(t *testing.T) {
	query := `
		SELECT COLUMN_A, COLUMN_B
		FROM (
			SELECT COLUMN_A, COLUMN_B, COLUMN_C
			FROM TABLE_NAME
			WHERE COLUMN_B <= 42
		)
		WHERE COLUMN_A > = 42;
	`
	assert.Equal(t, []string{
		"SELECT", "COLUMN_A", ",", "COLUMN_B", "FROM",
		"(", "SELECT", "COLUMN_A", ",", "COLUMN_B", ",", "COLUMN_C", "FROM", "TABLE_NAME", "WHERE", "COLUMN_B", "<=", "42", ")",
		"WHERE", "COLUMN_A", ">=", "42", ";",
	}, Texts(Lex(query)))
}

func TestLex_MismatchIsKept(t *testing.T) {
	toks := Lex("SELECT A FROM T WHERE A != 1")
	assert.Equal(t, Token{Mismatch, "!="}, toks[6])
	assert.Len(t, toks, 8)
}

func TestStream_Empty(t *testing.T) {
	assert.Empty(t, Lex("   "))
}

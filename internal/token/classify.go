package token

import (
	"strings"
	"unicode"
)

// keywords is the reserved-word set. Matching is case-sensitive.
var keywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "JOIN": true, "ON": true,
	"WITH": true, "AS": true, "UNION": true, "GROUP": true, "BY": true,
	"HAVING": true, "ORDER": true, "DESC": true, "ASC": true, "DISTINCT": true,
	"LIKE": true, "BETWEEN": true, "IN": true, "IS": true, "NULL": true,
	"AND": true, "OR": true, "NOT": true, "LIMIT": true, "TOP": true,
	"ALL": true, "ANY": true, "EXISTS": true, "INNER": true, "LEFT": true,
	"RIGHT": true, "FULL": true, "OUTER": true,
}

// operators are listed two-character forms first.
var operators = []string{"<=", ">=", "<>", "=", "<", ">"}

type rule struct {
	kind  Kind
	match func(string) bool
}

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{Keyword, isKeyword},
	{Identifier, isIdentifier},
	{Operator, isOperator},
	{Literal, isLiteral},
	{Number, isNumber},
	{Delimiter, isDelimiter},
	{Asterisk, func(s string) bool { return s == "*" }},
}

// Classify strips all whitespace from raw and assigns the first matching kind.
// The interior of a quoted literal is kept as written.
func Classify(raw string) Token {
	text := normalize(raw)
	for _, r := range rules {
		if r.match(text) {
			return Token{Kind: r.kind, Text: text}
		}
	}
	return Token{Kind: Mismatch, Text: text}
}

// IsReserved reports whether word is a DQL keyword.
func IsReserved(word string) bool {
	return keywords[word]
}

func normalize(raw string) string {
	if trimmed := strings.TrimSpace(raw); strings.HasPrefix(trimmed, "'") {
		return trimmed
	}
	return stripSpace(raw)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isKeyword(s string) bool {
	return keywords[s]
}

// isIdentifier matches [A-Za-z_][A-Za-z0-9_]*.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func isOperator(s string) bool {
	for _, op := range operators {
		if s == op {
			return true
		}
	}
	return false
}

// isLiteral matches a single-quoted string with no embedded quote.
func isLiteral(s string) bool {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return false
	}
	return !strings.Contains(s[1:len(s)-1], "'")
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isDelimiter(s string) bool {
	switch s {
	case ";", ",", "(", ")":
		return true
	}
	return false
}

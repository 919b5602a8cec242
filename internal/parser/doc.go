// Package parser builds a DQL syntax tree from a classified token stream.
//
// The Builder is a recursive-descent parser with one token of lookahead.
// It pulls tokens on demand from a TokenSource, never backtracks, and fails
// fast: the first structural problem aborts the parse with a *SyntaxError
// carrying the 0-based token index and what was expected there.
//
// GRAMMAR:
//
//	statement   := [with_clause] select_stmt [';']
//	with_clause := WITH binding (',' binding)*
//	binding     := ident AS '(' select_stmt ')'
//	select_stmt := query (UNION [ALL] query)*
//	query       := SELECT [DISTINCT] column_list FROM source
//	               join* [WHERE pred] [GROUP BY cols] [HAVING pred]
//	               [ORDER BY cols [ASC|DESC]] [LIMIT number]
//	column_list := '*' | column (',' column)*
//	source      := ident | '(' select_stmt ')'
//	join        := [INNER | (LEFT|RIGHT|FULL) [OUTER]] JOIN source ON pred
//
// Predicates are captured as raw token runs. A run ends at the next clause
// keyword, a ';', or a ')' that closes an enclosing subquery; parentheses
// inside the run are depth-tracked so nested subqueries do not end it early.
//
// Subquery and CTE nesting is capped by Options.MaxDepth.
package parser

// Package ast defines the DQL abstract syntax tree.
//
// Node is a sealed interface: only types in this package implement it,
// which keeps type switches in the parser, validators and renderers
// exhaustive.
//
// A statement is a tree, never a DAG. Every child is owned by exactly one
// parent, and every token run held by a node is a contiguous slice of the
// classified token stream, in source order, never duplicated.
//
// Shape of a parsed statement:
//
//	With                      (only when the statement starts with WITH)
//	├── Binding name → Query | Union | UnionAll
//	└── body: Query | Union | UnionAll
//
//	Query
//	├── Select   columns
//	├── From     table token | subquery
//	├── Join*    kind, source, ON predicate
//	├── Where    predicate tokens
//	├── GroupBy  columns
//	├── Having   predicate tokens
//	├── OrderBy  columns, direction
//	└── Limit    count
//
// Predicates are kept as unparsed token runs; expression-level parsing is
// left to later stages.
package ast

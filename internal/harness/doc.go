// Package harness runs DQL conformance scenarios.
//
// A scenario is a YAML file naming one query and what must hold for it:
// the classified token stream, the error the query is rejected with, node
// counts in the tree, and whether the rendered tree matches a golden file.
//
//	name: cte_basic
//	description: "CTE feeding the final query"
//	query: "WITH CTE AS (SELECT A FROM T) SELECT A FROM CTE;"
//	nodes:
//	  With: 1
//	  Query: 2
//	golden: true
//
// Each scenario runs through the same pipeline the CLI uses (lexer, token
// classifier, parser, validate.Interpreter), so a scenario directory doubles
// as an executable description of the language.
package harness

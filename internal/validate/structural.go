package validate

import (
	"github.com/roach88/dql/internal/ast"
	"github.com/roach88/dql/internal/token"
)

// Structural checks the tree invariants the parser promises: every clause
// is complete, a lone '*' is the only use of Asterisk, set operations have
// at least two branches, and no node has two parents.
type Structural struct{}

// Validate walks root and reports the first broken invariant.
func (Structural) Validate(root ast.Node) error {
	s := &structural{seen: make(map[ast.Node]bool)}
	if root == nil {
		return newError(ErrStructure, "empty tree")
	}
	switch root.(type) {
	case *ast.With, *ast.Query, *ast.Union, *ast.UnionAll:
	default:
		return newError(ErrStructure, "root must be a statement, got %T", root)
	}
	ast.Walk(root, s.visit)
	if s.err != nil {
		return s.err
	}
	return nil
}

type structural struct {
	seen map[ast.Node]bool
	err  *DQLError
}

func (s *structural) fail(format string, args ...any) bool {
	if s.err == nil {
		s.err = newError(ErrStructure, format, args...)
	}
	return false
}

func (s *structural) visit(n ast.Node) bool {
	if s.err != nil {
		return false
	}
	if s.seen[n] {
		return s.fail("%T is shared by two parents", n)
	}
	s.seen[n] = true

	switch node := n.(type) {
	case *ast.Query:
		if node.Select == nil {
			return s.fail("query without SELECT")
		}
		if node.From == nil {
			return s.fail("query without FROM")
		}
	case *ast.Select:
		if len(node.Columns) == 0 {
			return s.fail("empty column list")
		}
		for _, col := range node.Columns {
			if col.Kind == token.Asterisk && len(node.Columns) > 1 {
				return s.fail("'*' mixed with other columns")
			}
			if col.Kind == token.Mismatch {
				return s.fail("unrecognized column %q", col.Text)
			}
		}
	case *ast.From:
		if node.Source == nil {
			return s.fail("FROM without source")
		}
	case *ast.Join:
		if node.Source == nil {
			return s.fail("JOIN without source")
		}
		if node.On == nil {
			return s.fail("JOIN without ON predicate")
		}
	case *ast.Source:
		if (node.Table == nil) == (node.Subquery == nil) {
			return s.fail("source must be exactly one of table or subquery")
		}
	case *ast.Where:
		if node.Predicate == nil {
			return s.fail("WHERE without predicate")
		}
	case *ast.Having:
		if node.Predicate == nil {
			return s.fail("HAVING without predicate")
		}
	case *ast.Predicate:
		if len(node.Tokens) == 0 {
			return s.fail("empty predicate")
		}
	case *ast.GroupBy:
		if len(node.Columns) == 0 {
			return s.fail("empty GROUP BY list")
		}
	case *ast.OrderBy:
		if len(node.Columns) == 0 {
			return s.fail("empty ORDER BY list")
		}
	case *ast.Union:
		if len(node.Branches) < 2 {
			return s.fail("UNION needs at least two branches")
		}
	case *ast.UnionAll:
		if len(node.Branches) < 2 {
			return s.fail("UNION ALL needs at least two branches")
		}
	case *ast.With:
		if len(node.Bindings) == 0 {
			return s.fail("WITH without bindings")
		}
		if node.Body == nil {
			return s.fail("WITH without final query")
		}
	case *ast.Binding:
		if node.Body == nil {
			return s.fail("CTE %s without body", node.Name.Text)
		}
	}
	return true
}

// TokenOrder checks that the tree holds tokens of the statement in their
// original order, with none reordered or used twice. Keywords the parser
// consumes are skipped, so the held tokens form a subsequence of Tokens.
type TokenOrder struct {
	Tokens []token.Token
}

// Validate reports the first held token that breaks the order.
func (v TokenOrder) Validate(root ast.Node) error {
	i := 0
	for _, held := range ast.Tokens(root) {
		for i < len(v.Tokens) && v.Tokens[i] != held {
			i++
		}
		if i == len(v.Tokens) {
			return newError(ErrStructure, "token %s is out of order or not in the statement", held)
		}
		i++
	}
	return nil
}

package validate

import (
	"maps"

	"github.com/roach88/dql/internal/ast"
	"github.com/roach88/dql/internal/catalog"
	"github.com/roach88/dql/internal/token"
)

// CatalogRules checks names against a catalog:
//   - every FROM/JOIN table is a catalog table or a CTE in scope
//   - when every source of a query is a catalog table, each selected
//     identifier is a column of at least one of them
//
// A CTE is in scope for the bindings after it and for the final query.
type CatalogRules struct {
	Catalog *catalog.Catalog
}

// Validate reports the first unknown table or column.
func (r CatalogRules) Validate(root ast.Node) error {
	if r.Catalog == nil {
		return nil
	}
	if err := r.check(root, map[string]bool{}); err != nil {
		return err
	}
	return nil
}

func (r CatalogRules) check(n ast.Node, ctes map[string]bool) *DQLError {
	switch node := n.(type) {
	case *ast.With:
		scope := maps.Clone(ctes)
		for _, b := range node.Bindings {
			if err := r.check(b.Body, scope); err != nil {
				return err
			}
			scope[b.Name.Text] = true
		}
		return r.check(node.Body, scope)
	case *ast.Union:
		return r.checkAll(node.Branches, ctes)
	case *ast.UnionAll:
		return r.checkAll(node.Branches, ctes)
	case *ast.Query:
		return r.checkQuery(node, ctes)
	}
	return nil
}

func (r CatalogRules) checkAll(branches []ast.Node, ctes map[string]bool) *DQLError {
	for _, b := range branches {
		if err := r.check(b, ctes); err != nil {
			return err
		}
	}
	return nil
}

func (r CatalogRules) checkQuery(q *ast.Query, ctes map[string]bool) *DQLError {
	sources := []*ast.Source{q.From.Source}
	for _, j := range q.Joins {
		sources = append(sources, j.Source)
	}

	var tables []string
	allCatalog := true
	for _, src := range sources {
		if src.IsSubquery() {
			allCatalog = false
			if err := r.check(src.Subquery, ctes); err != nil {
				return err
			}
			continue
		}
		name := src.Table.Text
		switch {
		case ctes[name]:
			allCatalog = false
		case r.Catalog.HasTable(name):
			tables = append(tables, name)
		default:
			return newError(ErrUnknownTable, "unknown table %s", name)
		}
	}

	if !allCatalog {
		return nil
	}
	for _, col := range q.Select.Columns {
		if col.Kind != token.Identifier {
			continue
		}
		if !r.anyHasColumn(tables, col.Text) {
			return newError(ErrUnknownColumn, "unknown column %s in %v", col.Text, tables)
		}
	}
	return nil
}

func (r CatalogRules) anyHasColumn(tables []string, column string) bool {
	for _, t := range tables {
		if r.Catalog.HasColumn(t, column) {
			return true
		}
	}
	return false
}

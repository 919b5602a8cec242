// Package catalog describes the tables and columns a DQL query may refer to.
//
// A Catalog is loaded from CUE files (LoadCUE) or introspected from an
// existing SQLite database (LoadSQLite). It is read-only once built and safe
// for concurrent readers.
package catalog

import (
	"slices"
	"sort"
)

// Catalog maps table names to their column names. Names are case-sensitive,
// matching the case-sensitive keyword rules of the lexer.
type Catalog struct {
	tables map[string][]string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{tables: make(map[string][]string)}
}

// AddTable registers a table, replacing any previous definition.
func (c *Catalog) AddTable(name string, columns ...string) {
	c.tables[name] = slices.Clone(columns)
}

// HasTable reports whether name is a known table.
func (c *Catalog) HasTable(name string) bool {
	_, ok := c.tables[name]
	return ok
}

// Columns returns the columns of a table in declaration order.
func (c *Catalog) Columns(table string) ([]string, bool) {
	cols, ok := c.tables[table]
	return slices.Clone(cols), ok
}

// HasColumn reports whether table declares column.
func (c *Catalog) HasColumn(table, column string) bool {
	return slices.Contains(c.tables[table], column)
}

// Tables returns all table names, sorted.
func (c *Catalog) Tables() []string {
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of tables.
func (c *Catalog) Len() int {
	return len(c.tables)
}

// Merge copies other's tables into c. A table present in both keeps its
// columns in c's order, followed by any columns only other declares.
func (c *Catalog) Merge(other *Catalog) {
	for name, cols := range other.tables {
		existing, ok := c.tables[name]
		if !ok {
			c.tables[name] = slices.Clone(cols)
			continue
		}
		for _, col := range cols {
			if !slices.Contains(existing, col) {
				existing = append(existing, col)
			}
		}
		c.tables[name] = existing
	}
}

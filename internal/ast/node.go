package ast

import "github.com/roach88/dql/internal/token"

// Node is any element of a DQL syntax tree.
type Node interface {
	astNode() // Marker method - seals interface to this package
}

// Query is one select_stmt: SELECT ... FROM ... with its optional clauses.
type Query struct {
	Select  *Select
	From    *From
	Joins   []*Join
	Where   *Where
	GroupBy *GroupBy
	Having  *Having
	OrderBy *OrderBy
	Limit   *Limit
}

func (Query) astNode() {}

// Select holds the column list. A lone Asterisk token means all columns.
// Separating commas are not kept.
type Select struct {
	Distinct bool
	Columns  []token.Token
}

func (Select) astNode() {}

// Source is what FROM and JOIN read from: a table name or a parenthesized
// subquery. Exactly one of Table and Subquery is set.
type Source struct {
	Table    *token.Token
	Subquery Node
}

func (Source) astNode() {}

// IsSubquery reports whether the source is a nested statement.
func (s *Source) IsSubquery() bool {
	return s.Subquery != nil
}

// From is the primary source of a Query.
type From struct {
	Source *Source
}

func (From) astNode() {}

// JoinKind is the flavor of a JOIN.
type JoinKind int

const (
	JoinPlain JoinKind = iota // bare JOIN
	JoinInner
	JoinLeft
	JoinRight
	JoinFull
)

func (k JoinKind) String() string {
	switch k {
	case JoinInner:
		return "INNER"
	case JoinLeft:
		return "LEFT"
	case JoinRight:
		return "RIGHT"
	case JoinFull:
		return "FULL"
	default:
		return ""
	}
}

// Join combines another source into the Query.
type Join struct {
	Kind   JoinKind
	Outer  bool
	Source *Source
	On     *Predicate
}

func (Join) astNode() {}

// Predicate is an unparsed run of tokens, parentheses included.
type Predicate struct {
	Tokens []token.Token
}

func (Predicate) astNode() {}

// Where filters rows of a Query.
type Where struct {
	Predicate *Predicate
}

func (Where) astNode() {}

// GroupBy lists grouping columns.
type GroupBy struct {
	Columns []token.Token
}

func (GroupBy) astNode() {}

// Having filters groups.
type Having struct {
	Predicate *Predicate
}

func (Having) astNode() {}

// OrderBy lists sort columns. Desc is set by a trailing DESC.
type OrderBy struct {
	Columns []token.Token
	Desc    bool
}

func (OrderBy) astNode() {}

// Limit caps the number of result rows.
type Limit struct {
	Count token.Token
}

func (Limit) astNode() {}

// Union combines branches with UNION (duplicates removed).
type Union struct {
	Branches []Node
}

func (Union) astNode() {}

// UnionAll combines branches with UNION ALL.
type UnionAll struct {
	Branches []Node
}

func (UnionAll) astNode() {}

// Binding names one common table expression.
type Binding struct {
	Name token.Token
	Body Node
}

func (Binding) astNode() {}

// With feeds one or more CTE bindings into a final statement.
type With struct {
	Bindings []*Binding
	Body     Node
}

func (With) astNode() {}

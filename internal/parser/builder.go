package parser

import (
	"fmt"
	"log/slog"

	"github.com/roach88/dql/internal/ast"
	"github.com/roach88/dql/internal/token"
)

// DefaultMaxDepth bounds subquery and CTE nesting.
const DefaultMaxDepth = 100

// Options configures a Builder. The zero value is ready to use.
type Options struct {
	MaxDepth int          // <= 0 means DefaultMaxDepth
	Logger   *slog.Logger // nil means slog.Default()
}

// Builder turns one statement's tokens into a tree. It is single-use and
// not safe for concurrent use.
type Builder struct {
	src      TokenSource
	look     token.Token
	hasLook  bool
	eof      bool
	pos      int // index of the lookahead token
	depth    int
	maxDepth int
	logger   *slog.Logger
}

// New creates a Builder reading from src.
func New(src TokenSource, opts Options) *Builder {
	b := &Builder{
		src:      src,
		maxDepth: opts.MaxDepth,
		logger:   opts.Logger,
	}
	if b.maxDepth <= 0 {
		b.maxDepth = DefaultMaxDepth
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Parse consumes the whole token stream and returns the root node:
// a *ast.With, *ast.Union, *ast.UnionAll or *ast.Query.
func (b *Builder) Parse() (ast.Node, error) {
	root, err := b.parseStatement()
	if err != nil {
		return nil, err
	}

	b.tryDelimiter(";")
	if t, ok := b.peek(); ok {
		if t.IsDelimiter(")") {
			return nil, b.fail("expected end of statement, unbalanced ')'")
		}
		return nil, b.fail("expected end of statement (trailing tokens)")
	}

	b.logger.Debug("statement parsed", "tokens", b.pos)
	return root, nil
}

// ---- token helpers ----

func (b *Builder) peek() (token.Token, bool) {
	if !b.hasLook && !b.eof {
		t, ok := b.src.Next()
		if ok {
			b.look, b.hasLook = t, true
		} else {
			b.eof = true
		}
	}
	return b.look, b.hasLook
}

func (b *Builder) advance() token.Token {
	t, _ := b.peek()
	b.hasLook = false
	b.pos++
	return t
}

func (b *Builder) peekIs(kind token.Kind, text string) bool {
	t, ok := b.peek()
	return ok && t.Is(kind, text)
}

func (b *Builder) peekKeyword(kws ...string) bool {
	t, ok := b.peek()
	if !ok || t.Kind != token.Keyword {
		return false
	}
	for _, kw := range kws {
		if t.Text == kw {
			return true
		}
	}
	return false
}

func (b *Builder) tryKeyword(kw string) bool {
	if b.peekIs(token.Keyword, kw) {
		b.advance()
		return true
	}
	return false
}

func (b *Builder) tryDelimiter(d string) bool {
	if b.peekIs(token.Delimiter, d) {
		b.advance()
		return true
	}
	return false
}

func (b *Builder) expectKeyword(kw, expected string) error {
	if !b.tryKeyword(kw) {
		return b.fail(expected)
	}
	return nil
}

func (b *Builder) expectDelimiter(d, expected string) error {
	if !b.tryDelimiter(d) {
		return b.fail(expected)
	}
	return nil
}

// fail reports a SyntaxError at the lookahead token.
func (b *Builder) fail(expected string) *SyntaxError {
	err := &SyntaxError{Position: b.pos, Expected: expected}
	if t, ok := b.peek(); ok {
		err.Found = &t
	}
	return err
}

func (b *Builder) enter(what string) error {
	b.depth++
	if b.depth > b.maxDepth {
		return b.fail(fmt.Sprintf("nesting too deep: more than %d nested queries", b.maxDepth))
	}
	b.logger.Debug("entering nested query", "kind", what, "depth", b.depth, "position", b.pos)
	return nil
}

func (b *Builder) leave() {
	b.depth--
}

// ---- statements ----

func (b *Builder) parseStatement() (ast.Node, error) {
	if b.peekKeyword("WITH") {
		return b.parseWith()
	}
	return b.parseSelectStmt()
}

func (b *Builder) parseWith() (*ast.With, error) {
	b.advance() // WITH
	with := &ast.With{}

	for {
		name, ok := b.peek()
		if !ok || name.Kind != token.Identifier {
			return nil, b.fail("expected CTE name after WITH")
		}
		b.advance()

		if err := b.expectKeyword("AS", "expected AS after CTE name"); err != nil {
			return nil, err
		}
		if err := b.expectDelimiter("(", "expected '(' to open CTE body"); err != nil {
			return nil, err
		}
		if err := b.enter("cte"); err != nil {
			return nil, err
		}
		body, err := b.parseSelectStmt()
		if err != nil {
			return nil, err
		}
		b.leave()
		if err := b.expectDelimiter(")", "expected ')' to close CTE body"); err != nil {
			return nil, err
		}

		with.Bindings = append(with.Bindings, &ast.Binding{Name: name, Body: body})
		if !b.tryDelimiter(",") {
			break
		}
	}

	body, err := b.parseSelectStmt()
	if err != nil {
		return nil, err
	}
	with.Body = body
	return with, nil
}

// parseSelectStmt parses one query and any UNION [ALL] chain after it.
// Runs of the same operator share one node; switching operator nests the
// result so far as the first branch of the new node.
func (b *Builder) parseSelectStmt() (ast.Node, error) {
	first, err := b.parseQuery()
	if err != nil {
		return nil, err
	}

	var result ast.Node = first
	for b.tryKeyword("UNION") {
		all := b.tryKeyword("ALL")
		next, err := b.parseQuery()
		if err != nil {
			return nil, err
		}
		result = combine(result, next, all)
	}
	return result, nil
}

func combine(left, right ast.Node, all bool) ast.Node {
	if all {
		if u, ok := left.(*ast.UnionAll); ok {
			u.Branches = append(u.Branches, right)
			return u
		}
		return &ast.UnionAll{Branches: []ast.Node{left, right}}
	}
	if u, ok := left.(*ast.Union); ok {
		u.Branches = append(u.Branches, right)
		return u
	}
	return &ast.Union{Branches: []ast.Node{left, right}}
}

func (b *Builder) parseQuery() (*ast.Query, error) {
	if err := b.expectKeyword("SELECT", "expected SELECT"); err != nil {
		return nil, err
	}

	q := &ast.Query{}
	sel, err := b.parseSelectList()
	if err != nil {
		return nil, err
	}
	q.Select = sel

	if err := b.expectKeyword("FROM", "expected FROM after SELECT column list"); err != nil {
		return nil, err
	}
	src, err := b.parseSource("FROM")
	if err != nil {
		return nil, err
	}
	q.From = &ast.From{Source: src}

	for b.peekKeyword(joinStarters...) {
		join, err := b.parseJoin()
		if err != nil {
			return nil, err
		}
		q.Joins = append(q.Joins, join)
	}

	if b.tryKeyword("WHERE") {
		pred, err := b.scanPredicate("WHERE", whereStops)
		if err != nil {
			return nil, err
		}
		q.Where = &ast.Where{Predicate: pred}
	}

	if b.tryKeyword("GROUP") {
		if err := b.expectKeyword("BY", "expected BY after GROUP"); err != nil {
			return nil, err
		}
		cols, err := b.parseColumns("GROUP BY")
		if err != nil {
			return nil, err
		}
		q.GroupBy = &ast.GroupBy{Columns: cols}
	}

	if b.tryKeyword("HAVING") {
		pred, err := b.scanPredicate("HAVING", havingStops)
		if err != nil {
			return nil, err
		}
		q.Having = &ast.Having{Predicate: pred}
	}

	if b.tryKeyword("ORDER") {
		if err := b.expectKeyword("BY", "expected BY after ORDER"); err != nil {
			return nil, err
		}
		cols, err := b.parseColumns("ORDER BY")
		if err != nil {
			return nil, err
		}
		q.OrderBy = &ast.OrderBy{Columns: cols}
		if b.tryKeyword("DESC") {
			q.OrderBy.Desc = true
		} else {
			b.tryKeyword("ASC")
		}
	}

	if b.tryKeyword("LIMIT") {
		t, ok := b.peek()
		if !ok || t.Kind != token.Number {
			return nil, b.fail("expected row count after LIMIT")
		}
		q.Limit = &ast.Limit{Count: b.advance()}
	}

	return q, nil
}

func (b *Builder) parseSelectList() (*ast.Select, error) {
	sel := &ast.Select{Distinct: b.tryKeyword("DISTINCT")}

	if t, ok := b.peek(); ok && t.Kind == token.Asterisk {
		sel.Columns = []token.Token{b.advance()}
		return sel, nil
	}

	cols, err := b.parseColumns("SELECT")
	if err != nil {
		return nil, err
	}
	sel.Columns = cols
	return sel, nil
}

// parseColumns reads column (',' column)* where a column is a single
// identifier, number or literal.
func (b *Builder) parseColumns(clause string) ([]token.Token, error) {
	var cols []token.Token
	for {
		t, ok := b.peek()
		if !ok || !isColumn(t) {
			if len(cols) == 0 {
				return nil, b.fail(fmt.Sprintf("expected column list after %s", clause))
			}
			return nil, b.fail(fmt.Sprintf("expected column after ',' in %s list", clause))
		}
		cols = append(cols, b.advance())

		if !b.tryDelimiter(",") {
			return cols, nil
		}
	}
}

func isColumn(t token.Token) bool {
	switch t.Kind {
	case token.Identifier, token.Number, token.Literal:
		return true
	}
	return false
}

func (b *Builder) parseSource(clause string) (*ast.Source, error) {
	t, ok := b.peek()
	switch {
	case ok && t.Kind == token.Identifier:
		tbl := b.advance()
		return &ast.Source{Table: &tbl}, nil
	case ok && t.IsDelimiter("("):
		b.advance()
		if err := b.enter("subquery"); err != nil {
			return nil, err
		}
		sub, err := b.parseSelectStmt()
		if err != nil {
			return nil, err
		}
		b.leave()
		if err := b.expectDelimiter(")", "expected ')' to close subquery"); err != nil {
			return nil, err
		}
		return &ast.Source{Subquery: sub}, nil
	default:
		return nil, b.fail(fmt.Sprintf("expected table name or '(' subquery after %s", clause))
	}
}

var joinStarters = []string{"JOIN", "INNER", "LEFT", "RIGHT", "FULL"}

func (b *Builder) parseJoin() (*ast.Join, error) {
	join := &ast.Join{}

	t := b.advance()
	switch t.Text {
	case "INNER":
		join.Kind = ast.JoinInner
	case "LEFT":
		join.Kind = ast.JoinLeft
	case "RIGHT":
		join.Kind = ast.JoinRight
	case "FULL":
		join.Kind = ast.JoinFull
	}
	if join.Kind >= ast.JoinLeft {
		join.Outer = b.tryKeyword("OUTER")
	}
	if t.Text != "JOIN" {
		if err := b.expectKeyword("JOIN", fmt.Sprintf("expected JOIN after %s", t.Text)); err != nil {
			return nil, err
		}
	}

	src, err := b.parseSource("JOIN")
	if err != nil {
		return nil, err
	}
	join.Source = src

	if err := b.expectKeyword("ON", "expected ON after JOIN source"); err != nil {
		return nil, err
	}
	pred, err := b.scanPredicate("ON", onStops)
	if err != nil {
		return nil, err
	}
	join.On = pred
	return join, nil
}

var (
	whereStops  = []string{"GROUP", "HAVING", "UNION", "ORDER", "LIMIT"}
	havingStops = []string{"UNION", "ORDER", "LIMIT"}
	onStops     = []string{"JOIN", "INNER", "LEFT", "RIGHT", "FULL", "WHERE", "GROUP", "HAVING", "UNION", "ORDER", "LIMIT"}
)

// scanPredicate collects tokens up to the next stop keyword, ';', or the
// ')' closing an enclosing subquery, all at parenthesis depth zero.
func (b *Builder) scanPredicate(clause string, stops []string) (*ast.Predicate, error) {
	pred := &ast.Predicate{}
	depth := 0

	for {
		t, ok := b.peek()
		if !ok || t.IsDelimiter(";") {
			break
		}
		if t.Kind == token.Mismatch {
			return nil, b.fail(fmt.Sprintf("expected a valid token in %s predicate", clause))
		}
		if depth == 0 && (t.IsDelimiter(")") || b.peekKeyword(stops...)) {
			break
		}

		switch {
		case t.IsDelimiter("("):
			depth++
		case t.IsDelimiter(")"):
			depth--
		}
		pred.Tokens = append(pred.Tokens, b.advance())
	}

	if depth > 0 {
		return nil, b.fail(fmt.Sprintf("expected ')' to close '(' in %s predicate (unbalanced parenthesis)", clause))
	}
	if len(pred.Tokens) == 0 {
		return nil, b.fail(fmt.Sprintf("expected predicate after %s", clause))
	}
	return pred, nil
}

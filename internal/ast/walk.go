package ast

import (
	"fmt"
	"strings"

	"github.com/roach88/dql/internal/token"
)

// Children returns the direct children of n in source order.
// Trees built by the parser use pointer nodes; nil clauses are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node, ok bool) {
		if ok {
			out = append(out, c)
		}
	}

	switch node := n.(type) {
	case *Query:
		add(node.Select, node.Select != nil)
		add(node.From, node.From != nil)
		for _, j := range node.Joins {
			add(j, j != nil)
		}
		add(node.Where, node.Where != nil)
		add(node.GroupBy, node.GroupBy != nil)
		add(node.Having, node.Having != nil)
		add(node.OrderBy, node.OrderBy != nil)
		add(node.Limit, node.Limit != nil)
	case *From:
		add(node.Source, node.Source != nil)
	case *Source:
		add(node.Subquery, node.Subquery != nil)
	case *Join:
		add(node.Source, node.Source != nil)
		add(node.On, node.On != nil)
	case *Where:
		add(node.Predicate, node.Predicate != nil)
	case *Having:
		add(node.Predicate, node.Predicate != nil)
	case *Union:
		for _, b := range node.Branches {
			add(b, b != nil)
		}
	case *UnionAll:
		for _, b := range node.Branches {
			add(b, b != nil)
		}
	case *With:
		for _, b := range node.Bindings {
			add(b, b != nil)
		}
		add(node.Body, node.Body != nil)
	case *Binding:
		add(node.Body, node.Body != nil)
	}
	return out
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the node just visited.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Tokens returns every token held by the tree, in source order.
func Tokens(n Node) []token.Token {
	var out []token.Token
	Walk(n, func(n Node) bool {
		switch node := n.(type) {
		case *Select:
			out = append(out, node.Columns...)
		case *Source:
			if node.Table != nil {
				out = append(out, *node.Table)
			}
		case *Predicate:
			out = append(out, node.Tokens...)
		case *GroupBy:
			out = append(out, node.Columns...)
		case *OrderBy:
			out = append(out, node.Columns...)
		case *Limit:
			out = append(out, node.Count)
		case *Binding:
			out = append(out, node.Name)
		}
		return true
	})
	return out
}

// TypeName returns the bare type name of n, e.g. "Query" or "Join".
func TypeName(n Node) string {
	name := fmt.Sprintf("%T", n)
	return name[strings.LastIndexByte(name, '.')+1:]
}

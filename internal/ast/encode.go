package ast

import "github.com/roach88/dql/internal/token"

// ToMap converts n into plain maps and slices suitable for encoding/json.
// Every map carries a "type" key naming the node.
func ToMap(n Node) map[string]any {
	switch node := n.(type) {
	case *Query:
		m := map[string]any{"type": "Query"}
		if node.Select != nil {
			m["select"] = ToMap(node.Select)
		}
		if node.From != nil {
			m["from"] = ToMap(node.From)
		}
		if len(node.Joins) > 0 {
			joins := make([]any, len(node.Joins))
			for i, j := range node.Joins {
				joins[i] = ToMap(j)
			}
			m["joins"] = joins
		}
		if node.Where != nil {
			m["where"] = ToMap(node.Where)
		}
		if node.GroupBy != nil {
			m["group_by"] = ToMap(node.GroupBy)
		}
		if node.Having != nil {
			m["having"] = ToMap(node.Having)
		}
		if node.OrderBy != nil {
			m["order_by"] = ToMap(node.OrderBy)
		}
		if node.Limit != nil {
			m["limit"] = ToMap(node.Limit)
		}
		return m
	case *Select:
		return map[string]any{"type": "Select", "distinct": node.Distinct, "columns": tokenList(node.Columns)}
	case *From:
		return map[string]any{"type": "From", "source": ToMap(node.Source)}
	case *Source:
		if node.Table != nil {
			return map[string]any{"type": "Source", "table": node.Table.Text}
		}
		return map[string]any{"type": "Source", "subquery": ToMap(node.Subquery)}
	case *Join:
		m := map[string]any{"type": "Join", "kind": node.Kind.String(), "outer": node.Outer, "source": ToMap(node.Source)}
		if node.On != nil {
			m["on"] = ToMap(node.On)
		}
		return m
	case *Predicate:
		return map[string]any{"type": "Predicate", "tokens": tokenList(node.Tokens)}
	case *Where:
		return map[string]any{"type": "Where", "predicate": ToMap(node.Predicate)}
	case *Having:
		return map[string]any{"type": "Having", "predicate": ToMap(node.Predicate)}
	case *GroupBy:
		return map[string]any{"type": "GroupBy", "columns": tokenList(node.Columns)}
	case *OrderBy:
		return map[string]any{"type": "OrderBy", "columns": tokenList(node.Columns), "desc": node.Desc}
	case *Limit:
		return map[string]any{"type": "Limit", "count": tokenMap(node.Count)}
	case *Union:
		return map[string]any{"type": "Union", "branches": nodeList(node.Branches)}
	case *UnionAll:
		return map[string]any{"type": "UnionAll", "branches": nodeList(node.Branches)}
	case *Binding:
		return map[string]any{"type": "Binding", "name": node.Name.Text, "body": ToMap(node.Body)}
	case *With:
		bindings := make([]any, len(node.Bindings))
		for i, b := range node.Bindings {
			bindings[i] = ToMap(b)
		}
		return map[string]any{"type": "With", "bindings": bindings, "body": ToMap(node.Body)}
	default:
		return map[string]any{"type": "Unknown"}
	}
}

func nodeList(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = ToMap(n)
	}
	return out
}

func tokenMap(t token.Token) map[string]any {
	return map[string]any{"kind": t.Kind.String(), "text": t.Text}
}

func tokenList(toks []token.Token) []any {
	out := make([]any, len(toks))
	for i, t := range toks {
		out[i] = tokenMap(t)
	}
	return out
}

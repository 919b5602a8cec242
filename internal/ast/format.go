package ast

import (
	"fmt"
	"strings"

	"github.com/roach88/dql/internal/token"
)

// Format renders n as an indented outline, one node per line, two spaces
// per level. The output is stable and is what golden files record.
func Format(n Node) string {
	var b strings.Builder
	format(&b, n, 0)
	return b.String()
}

func format(b *strings.Builder, n Node, depth int) {
	line := func(format string, args ...any) {
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(b, format, args...)
		b.WriteByte('\n')
	}

	switch node := n.(type) {
	case *Query:
		line("Query")
		for _, c := range Children(node) {
			format(b, c, depth+1)
		}
	case *Select:
		if node.Distinct {
			line("Select DISTINCT %s", joinTexts(node.Columns, ", "))
		} else {
			line("Select %s", joinTexts(node.Columns, ", "))
		}
	case *From:
		formatSource(b, "From", node.Source, depth)
	case *Join:
		formatSource(b, joinLabel(node), node.Source, depth)
		if node.On != nil {
			b.WriteString(strings.Repeat("  ", depth+1))
			fmt.Fprintf(b, "On %s\n", joinTexts(node.On.Tokens, " "))
		}
	case *Where:
		line("%s", predicateLine("Where", node.Predicate))
	case *GroupBy:
		line("GroupBy %s", joinTexts(node.Columns, ", "))
	case *Having:
		line("%s", predicateLine("Having", node.Predicate))
	case *OrderBy:
		if node.Desc {
			line("OrderBy %s DESC", joinTexts(node.Columns, ", "))
		} else {
			line("OrderBy %s", joinTexts(node.Columns, ", "))
		}
	case *Limit:
		line("Limit %s", node.Count.Text)
	case *Union:
		line("Union")
		for _, c := range node.Branches {
			format(b, c, depth+1)
		}
	case *UnionAll:
		line("UnionAll")
		for _, c := range node.Branches {
			format(b, c, depth+1)
		}
	case *With:
		line("With")
		for _, c := range Children(node) {
			format(b, c, depth+1)
		}
	case *Binding:
		line("Binding %s", node.Name.Text)
		format(b, node.Body, depth+1)
	case *Predicate:
		line("Predicate %s", joinTexts(node.Tokens, " "))
	case *Source:
		formatSource(b, "Source", node, depth)
	default:
		line("%T", n)
	}
}

// formatSource writes "label TABLE" or "label" followed by the subquery.
func formatSource(b *strings.Builder, label string, src *Source, depth int) {
	indent := strings.Repeat("  ", depth)
	if src == nil {
		fmt.Fprintf(b, "%s%s\n", indent, label)
		return
	}
	if src.Table != nil {
		fmt.Fprintf(b, "%s%s %s\n", indent, label, src.Table.Text)
		return
	}
	fmt.Fprintf(b, "%s%s\n", indent, label)
	format(b, src.Subquery, depth+1)
}

func joinLabel(j *Join) string {
	parts := []string{"Join"}
	if kind := j.Kind.String(); kind != "" {
		parts = append(parts, kind)
	}
	if j.Outer {
		parts = append(parts, "OUTER")
	}
	return strings.Join(parts, " ")
}

func joinTexts(toks []token.Token, sep string) string {
	texts := make([]string, len(toks))
	for i, t := range toks {
		texts[i] = t.Text
	}
	return strings.Join(texts, sep)
}

func predicateLine(label string, p *Predicate) string {
	if p == nil || len(p.Tokens) == 0 {
		return label
	}
	return label + " " + joinTexts(p.Tokens, " ")
}

package main

import (
	"fmt"
	"strings"

	"github.com/strager/foldbench/sexy"
)

// ParseProgram reads a program literal:
//
//	(program (arguments a b ...) (statements s t ...))
//
// Either section may be left out, in which case it is empty. Each element
// is kept as its canonical s-expression text, so (call  f 1) and (call f 1)
// are the same element.
func ParseProgram(src string) (Program[string], error) {
	node, err := sexy.Parse(src)
	if err != nil {
		return Program[string]{}, err
	}
	return programFromNode(node)
}

func programFromNode(node *sexy.Node) (Program[string], error) {
	p := Program[string]{Arguments: []string{}, Statements: []string{}}
	if node.Head() != "program" {
		return p, fmt.Errorf("expected (program ...) but got %s", node)
	}

	seen := map[string]bool{}
	for _, section := range node.Items[1:] {
		head := section.Head()
		var dst *[]string
		switch head {
		case "arguments":
			dst = &p.Arguments
		case "statements":
			dst = &p.Statements
		default:
			return p, fmt.Errorf("unknown program section %s", section)
		}
		if seen[head] {
			return p, fmt.Errorf("duplicate %s section", head)
		}
		seen[head] = true

		for _, item := range section.Items[1:] {
			if containsEllipsis(item) {
				return p, fmt.Errorf("'...' is only allowed in patterns")
			}
			*dst = append(*dst, item.String())
		}
	}
	return p, nil
}

func containsEllipsis(n *sexy.Node) bool {
	if n.Type == sexy.NodeEllipsis {
		return true
	}
	for _, item := range n.Items {
		if containsEllipsis(item) {
			return true
		}
	}
	return false
}

// ProgramToSExpr prints p as a program literal. Both sections are always
// printed.
func ProgramToSExpr(p Program[string]) string {
	var sb strings.Builder
	sb.WriteString("(program (arguments")
	for _, a := range p.Arguments {
		sb.WriteString(" " + a)
	}
	sb.WriteString(") (statements")
	for _, s := range p.Statements {
		sb.WriteString(" " + s)
	}
	sb.WriteString("))")
	return sb.String()
}

package sexy

// Match reports whether node matches pattern. Atoms match atoms of the same
// type and text. Inside a list, an ellipsis matches any run of zero or more
// items. An ellipsis on its own matches anything.
func Match(pattern, node *Node) bool {
	if pattern.Type == NodeEllipsis {
		return true
	}
	if pattern.Type != node.Type {
		return false
	}
	if pattern.Type != NodeList {
		return pattern.Text == node.Text
	}
	return matchItems(pattern.Items, node.Items)
}

func matchItems(patterns, nodes []*Node) bool {
	for len(patterns) > 0 {
		if patterns[0].Type == NodeEllipsis {
			rest := patterns[1:]
			for skip := 0; skip <= len(nodes); skip++ {
				if matchItems(rest, nodes[skip:]) {
					return true
				}
			}
			return false
		}
		if len(nodes) == 0 || !Match(patterns[0], nodes[0]) {
			return false
		}
		patterns, nodes = patterns[1:], nodes[1:]
	}
	return len(nodes) == 0
}

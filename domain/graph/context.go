// Package graph builds textual context from a project's node graph for
// prompting. Nodes are identified by opaque IDs; edges are directed from
// parent to child.
package graph

import "strings"

// Node is the minimal node view the context builders need.
type Node struct {
	ID    string
	Label string
}

// Edge is a directed edge from Source to Target.
type Edge struct {
	Source string
	Target string
}

// FullContext renders the whole graph as an indented outline. Roots are
// nodes with no incoming edge, traversed depth-first in insertion order.
// Each node renders as "- <label>" indented two spaces per depth level.
func FullContext(nodes []Node, edges []Edge) string {
	nodeMap := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		nodeMap[n.ID] = n
	}

	children := make(map[string][]string)
	hasParent := make(map[string]bool)
	for _, e := range edges {
		children[e.Source] = append(children[e.Source], e.Target)
		hasParent[e.Target] = true
	}

	var sb strings.Builder
	visited := make(map[string]bool)

	var traverse func(id string, depth int)
	traverse = func(id string, depth int) {
		if visited[id] {
			return
		}
		visited[id] = true

		node, ok := nodeMap[id]
		if !ok {
			return
		}

		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("- ")
		sb.WriteString(node.Label)
		sb.WriteString("\n")

		for _, child := range children[id] {
			traverse(child, depth+1)
		}
	}

	for _, n := range nodes {
		if !hasParent[n.ID] {
			traverse(n.ID, 0)
		}
	}

	return sb.String()
}

// PathContext renders the ancestor chain of startID from the root down to
// the start node itself, one line per node with increasing indentation.
// When multiple edges target the same node the last one wins. An unknown
// startID yields an empty string.
func PathContext(nodes []Node, edges []Edge, startID string) string {
	nodeMap := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		nodeMap[n.ID] = n
	}

	parent := make(map[string]string, len(edges))
	for _, e := range edges {
		parent[e.Target] = e.Source
	}

	var path []Node
	visited := make(map[string]bool)
	current := startID
	for current != "" && !visited[current] {
		visited[current] = true
		if node, ok := nodeMap[current]; ok {
			path = append([]Node{node}, path...)
		}
		current = parent[current]
	}

	lines := make([]string, len(path))
	for i, node := range path {
		lines[i] = strings.Repeat("  ", i) + "- " + node.Label
	}
	return strings.Join(lines, "\n")
}

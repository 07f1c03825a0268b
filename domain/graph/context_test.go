package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullContext(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		edges []Edge
		want  string
	}{
		{
			name:  "empty graph",
			nodes: nil,
			edges: nil,
			want:  "",
		},
		{
			name:  "single node",
			nodes: []Node{{ID: "a", Label: "Root idea"}},
			want:  "- Root idea\n",
		},
		{
			name: "linear chain indents by depth",
			nodes: []Node{
				{ID: "a", Label: "Idea"},
				{ID: "b", Label: "Market"},
				{ID: "c", Label: "Pricing"},
			},
			edges: []Edge{
				{Source: "a", Target: "b"},
				{Source: "b", Target: "c"},
			},
			want: "- Idea\n  - Market\n    - Pricing\n",
		},
		{
			name: "siblings share depth",
			nodes: []Node{
				{ID: "a", Label: "Idea"},
				{ID: "b", Label: "Left"},
				{ID: "c", Label: "Right"},
			},
			edges: []Edge{
				{Source: "a", Target: "b"},
				{Source: "a", Target: "c"},
			},
			want: "- Idea\n  - Left\n  - Right\n",
		},
		{
			name: "multiple roots in node order",
			nodes: []Node{
				{ID: "a", Label: "First"},
				{ID: "b", Label: "Second"},
			},
			want: "- First\n- Second\n",
		},
		{
			name: "edge to unknown node is skipped",
			nodes: []Node{
				{ID: "a", Label: "Idea"},
			},
			edges: []Edge{
				{Source: "a", Target: "ghost"},
			},
			want: "- Idea\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FullContext(tt.nodes, tt.edges))
		})
	}
}

func TestFullContextCycleTerminates(t *testing.T) {
	nodes := []Node{
		{ID: "a", Label: "A"},
		{ID: "b", Label: "B"},
		{ID: "c", Label: "C"},
	}
	// a -> b -> c -> b forms a cycle below the root.
	edges := []Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
		{Source: "c", Target: "b"},
	}

	got := FullContext(nodes, edges)
	assert.Equal(t, "- A\n  - B\n    - C\n", got)
}

func TestFullContextEveryNodeOnce(t *testing.T) {
	nodes := []Node{
		{ID: "a", Label: "A"},
		{ID: "b", Label: "B"},
		{ID: "c", Label: "C"},
		{ID: "d", Label: "D"},
	}
	edges := []Edge{
		{Source: "a", Target: "b"},
		{Source: "a", Target: "c"},
		{Source: "c", Target: "d"},
	}

	got := FullContext(nodes, edges)
	assert.Equal(t, len(nodes), strings.Count(got, "- "))
}

func TestPathContext(t *testing.T) {
	nodes := []Node{
		{ID: "a", Label: "Idea"},
		{ID: "b", Label: "Market"},
		{ID: "c", Label: "Pricing"},
		{ID: "d", Label: "Unrelated"},
	}
	edges := []Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
	}

	tests := []struct {
		name    string
		startID string
		want    string
	}{
		{
			name:    "leaf renders full ancestor chain root first",
			startID: "c",
			want:    "- Idea\n  - Market\n    - Pricing",
		},
		{
			name:    "mid node stops at itself",
			startID: "b",
			want:    "- Idea\n  - Market",
		},
		{
			name:    "root is a single line",
			startID: "a",
			want:    "- Idea",
		},
		{
			name:    "node with no edges",
			startID: "d",
			want:    "- Unrelated",
		},
		{
			name:    "unknown node yields empty context",
			startID: "nope",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PathContext(nodes, edges, tt.startID))
		})
	}
}

func TestPathContextLastEdgeWins(t *testing.T) {
	nodes := []Node{
		{ID: "a", Label: "A"},
		{ID: "b", Label: "B"},
		{ID: "c", Label: "C"},
	}
	// Two edges target c; the later one decides its parent.
	edges := []Edge{
		{Source: "a", Target: "c"},
		{Source: "b", Target: "c"},
	}

	assert.Equal(t, "- B\n  - C", PathContext(nodes, edges, "c"))
}

func TestPathContextCycleTerminates(t *testing.T) {
	nodes := []Node{
		{ID: "a", Label: "A"},
		{ID: "b", Label: "B"},
	}
	edges := []Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "a"},
	}

	got := PathContext(nodes, edges, "b")
	assert.Equal(t, "- A\n  - B", got)
}

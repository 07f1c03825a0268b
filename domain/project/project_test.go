package project

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProject() *Project {
	return New("user-1", "Test Research", []Node{
		{ID: "root", Data: NodeData{Label: "An app for dog walkers"}},
		{ID: "child", Data: NodeData{Label: "Subscription pricing"}},
	}, []Edge{
		{ID: "edge_root-child", Source: "root", Target: "child"},
	})
}

func TestNewDefaultsName(t *testing.T) {
	p := New("user-1", "", nil, nil)

	assert.Equal(t, "Untitled Research", p.Name)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, int64(0), p.Version)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestAppendConversation(t *testing.T) {
	p := seedProject()

	node, edge := p.AppendConversation("root", "What about cats?", "Cat expansion", "Cats are a market too.", Position{X: 10, Y: 20})

	assert.True(t, strings.HasPrefix(node.ID, "node_"))
	assert.Equal(t, "What about cats?", node.Data.Prompt)
	assert.Equal(t, "Cats are a market too.", node.Data.Label)
	assert.Equal(t, "Cat expansion", node.Title)
	assert.Equal(t, Position{X: 10, Y: 20}, node.Position)

	assert.Equal(t, "edge_root-"+node.ID, edge.ID)
	assert.Equal(t, "root", edge.Source)
	assert.Equal(t, node.ID, edge.Target)

	assert.Len(t, p.Nodes, 3)
	assert.Len(t, p.Edges, 2)
}

func TestFindNode(t *testing.T) {
	p := seedProject()

	node, ok := p.FindNode("child")
	require.True(t, ok)
	assert.Equal(t, "Subscription pricing", node.Data.Label)

	_, ok = p.FindNode("missing")
	assert.False(t, ok)
}

func TestParentOf(t *testing.T) {
	p := seedProject()

	parent, ok := p.ParentOf("child")
	require.True(t, ok)
	assert.Equal(t, "root", parent)

	_, ok = p.ParentOf("root")
	assert.False(t, ok, "root has no incoming edge")
}

func TestParentOfFirstEdgeWins(t *testing.T) {
	p := seedProject()
	p.Edges = append(p.Edges, Edge{ID: "edge_x", Source: "other", Target: "child"})

	parent, ok := p.ParentOf("child")
	require.True(t, ok)
	assert.Equal(t, "root", parent)
}

func TestRewriteNode(t *testing.T) {
	p := seedProject()

	node, ok := p.RewriteNode("child", "Try freemium instead", "Freemium works better here.")
	require.True(t, ok)
	assert.Equal(t, "Freemium works better here.", node.Data.Label)
	assert.Equal(t, "Try freemium instead", node.Data.Prompt)

	// The change lands on the stored node, not a copy.
	stored, _ := p.FindNode("child")
	assert.Equal(t, "Freemium works better here.", stored.Data.Label)

	_, ok = p.RewriteNode("missing", "x", "y")
	assert.False(t, ok)
}

func TestRemoveNodePrunesEdges(t *testing.T) {
	p := seedProject()
	p.AppendConversation("child", "deeper", "Deeper", "More detail.", Position{})
	require.Len(t, p.Edges, 2)

	ok := p.RemoveNode("child")
	require.True(t, ok)

	assert.Len(t, p.Nodes, 2)
	for _, e := range p.Edges {
		assert.NotEqual(t, "child", e.Source)
		assert.NotEqual(t, "child", e.Target)
	}
	assert.Empty(t, p.Edges)
}

func TestRemoveNodeMissing(t *testing.T) {
	p := seedProject()

	ok := p.RemoveNode("missing")
	assert.False(t, ok)
	assert.Len(t, p.Nodes, 2)
	assert.Len(t, p.Edges, 1)
}

func TestUpdatePositions(t *testing.T) {
	p := seedProject()

	moved := p.UpdatePositions(map[string]Position{
		"root":    {X: 1, Y: 2},
		"child":   {X: 3, Y: 4},
		"unknown": {X: 9, Y: 9},
	})

	assert.Equal(t, 2, moved)
	root, _ := p.FindNode("root")
	assert.Equal(t, Position{X: 1, Y: 2}, root.Position)
	child, _ := p.FindNode("child")
	assert.Equal(t, Position{X: 3, Y: 4}, child.Position)
}

func TestGraphView(t *testing.T) {
	p := seedProject()

	nodes, edges := p.GraphView()
	require.Len(t, nodes, 2)
	require.Len(t, edges, 1)
	assert.Equal(t, "An app for dog walkers", nodes[0].Label)
	assert.Equal(t, "root", edges[0].Source)
	assert.Equal(t, "child", edges[0].Target)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, New("u", "n", nil, nil).IsEmpty())
	assert.False(t, seedProject().IsEmpty())
}

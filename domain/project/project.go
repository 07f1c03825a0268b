// Package project holds the research project aggregate: a named graph of
// idea nodes owned by a single user, plus the AI-derived categorization
// and rating attached to it.
package project

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"ideagraph-backend/domain/graph"
)

// Position is a node's placement on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData carries the node's generated content and the prompt that
// produced it.
type NodeData struct {
	Label  string `json:"label"`
	Prompt string `json:"prompt,omitempty"`
}

// Node is a single idea node in the research graph.
type Node struct {
	ID       string   `json:"id"`
	Data     NodeData `json:"data"`
	Position Position `json:"position"`
	Title    string   `json:"title,omitempty"`
}

// Edge is a directed connection between two nodes.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Categorization is the market snapshot generated when a project is created.
type Categorization struct {
	Type            string `json:"type"`
	Market          string `json:"market"`
	Target          string `json:"target"`
	MainCompetitors string `json:"main_competitors"`
	TrendAnalysis   string `json:"trendAnalysis"`
}

// Rating is the VC-style score card generated on demand.
type Rating struct {
	Opportunity int    `json:"opportunity"`
	Problem     int    `json:"problem"`
	Feasibility int    `json:"feasibility"`
	WhyNow      int    `json:"why_now"`
	Feedback    string `json:"feedback,omitempty"`
}

// Project is the aggregate root. Version backs optimistic concurrency:
// every persisted write checks and increments it.
type Project struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user"`
	Name           string          `json:"name"`
	Nodes          []Node          `json:"nodes"`
	Edges          []Edge          `json:"edges"`
	Categorization *Categorization `json:"categorization,omitempty"`
	Rating         *Rating         `json:"projectRating,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Version        int64           `json:"version"`
}

// New creates a project for a user. Nodes and edges may be empty; the
// frontend seeds new projects with a single root node.
func New(userID, name string, nodes []Node, edges []Edge) *Project {
	now := time.Now()
	if name == "" {
		name = "Untitled Research"
	}
	return &Project{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Nodes:     nodes,
		Edges:     edges,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   0,
	}
}

// FindNode returns the node with the given ID.
func (p *Project) FindNode(nodeID string) (*Node, bool) {
	for i := range p.Nodes {
		if p.Nodes[i].ID == nodeID {
			return &p.Nodes[i], true
		}
	}
	return nil, false
}

// ParentOf returns the source of the first edge targeting nodeID. Root
// nodes have no parent.
func (p *Project) ParentOf(nodeID string) (string, bool) {
	for _, e := range p.Edges {
		if e.Target == nodeID {
			return e.Source, true
		}
	}
	return "", false
}

// AppendConversation adds a generated answer node under parentID and the
// edge linking them. Node IDs follow the frontend convention of a
// millisecond timestamp so new nodes sort chronologically.
func (p *Project) AppendConversation(parentID, prompt, title, content string, pos Position) (Node, Edge) {
	node := Node{
		ID:       fmt.Sprintf("node_%d", time.Now().UnixMilli()),
		Data:     NodeData{Label: content, Prompt: prompt},
		Position: pos,
		Title:    title,
	}
	edge := Edge{
		ID:     fmt.Sprintf("edge_%s-%s", parentID, node.ID),
		Source: parentID,
		Target: node.ID,
	}
	p.Nodes = append(p.Nodes, node)
	p.Edges = append(p.Edges, edge)
	p.touch()
	return node, edge
}

// RewriteNode replaces a node's content and prompt after regeneration.
func (p *Project) RewriteNode(nodeID, prompt, content string) (*Node, bool) {
	node, ok := p.FindNode(nodeID)
	if !ok {
		return nil, false
	}
	node.Data.Label = content
	node.Data.Prompt = prompt
	p.touch()
	return node, true
}

// RemoveNode deletes a node and every edge touching it. It reports
// whether the node existed.
func (p *Project) RemoveNode(nodeID string) bool {
	found := false
	nodes := p.Nodes[:0]
	for _, n := range p.Nodes {
		if n.ID == nodeID {
			found = true
			continue
		}
		nodes = append(nodes, n)
	}
	if !found {
		return false
	}
	p.Nodes = nodes

	edges := p.Edges[:0]
	for _, e := range p.Edges {
		if e.Source == nodeID || e.Target == nodeID {
			continue
		}
		edges = append(edges, e)
	}
	p.Edges = edges
	p.touch()
	return true
}

// UpdatePositions moves the listed nodes. IDs that no longer exist are
// ignored so a stale canvas save cannot fail the whole request.
func (p *Project) UpdatePositions(positions map[string]Position) int {
	moved := 0
	for i := range p.Nodes {
		if pos, ok := positions[p.Nodes[i].ID]; ok {
			p.Nodes[i].Position = pos
			moved++
		}
	}
	p.touch()
	return moved
}

// GraphView projects the aggregate onto the minimal node/edge shape the
// context builders consume.
func (p *Project) GraphView() ([]graph.Node, []graph.Edge) {
	nodes := make([]graph.Node, len(p.Nodes))
	for i, n := range p.Nodes {
		nodes[i] = graph.Node{ID: n.ID, Label: n.Data.Label}
	}
	edges := make([]graph.Edge, len(p.Edges))
	for i, e := range p.Edges {
		edges[i] = graph.Edge{Source: e.Source, Target: e.Target}
	}
	return nodes, edges
}

// IsEmpty reports whether the project has no nodes to reason about.
func (p *Project) IsEmpty() bool {
	return len(p.Nodes) == 0
}

func (p *Project) touch() {
	p.UpdatedAt = time.Now()
}

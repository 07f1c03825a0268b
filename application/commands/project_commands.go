package commands

import (
	"errors"

	"ideagraph-backend/domain/project"
)

// CreateProjectCommand creates a research project from the initial graph
// seeded by the canvas.
type CreateProjectCommand struct {
	UserID string
	Name   string
	Nodes  []project.Node
	Edges  []project.Edge
}

// Validate validates the command
func (c CreateProjectCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.Name == "" {
		return errors.New("project name is required")
	}
	if c.Nodes == nil {
		return errors.New("nodes are required")
	}
	if c.Edges == nil {
		return errors.New("edges are required")
	}
	return nil
}

// ConverseCommand asks a question under a parent node and appends the
// generated answer as a new node.
type ConverseCommand struct {
	UserID       string
	ProjectID    string
	ParentNodeID string
	Prompt       string
	Position     project.Position
	UseRAG       bool
}

// Validate validates the command
func (c ConverseCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.ProjectID == "" {
		return errors.New("project ID is required")
	}
	if c.ParentNodeID == "" {
		return errors.New("a parentNodeId is required")
	}
	if c.Prompt == "" {
		return errors.New("a prompt is required")
	}
	return nil
}

// RegenerateNodeCommand rewrites a node's content from a new prompt,
// using its parent chain as conversation history.
type RegenerateNodeCommand struct {
	UserID    string
	ProjectID string
	NodeID    string
	NewPrompt string
}

// Validate validates the command
func (c RegenerateNodeCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.ProjectID == "" {
		return errors.New("project ID is required")
	}
	if c.NodeID == "" {
		return errors.New("node ID is required")
	}
	if c.NewPrompt == "" {
		return errors.New("a new prompt is required")
	}
	return nil
}

// DeleteNodeCommand removes a node and its incident edges
type DeleteNodeCommand struct {
	UserID    string
	ProjectID string
	NodeID    string
}

// Validate validates the command
func (c DeleteNodeCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.ProjectID == "" {
		return errors.New("project ID is required")
	}
	if c.NodeID == "" {
		return errors.New("node ID is required")
	}
	return nil
}

// UpdatePositionsCommand persists canvas layout changes
type UpdatePositionsCommand struct {
	UserID    string
	ProjectID string
	Positions map[string]project.Position
}

// Validate validates the command
func (c UpdatePositionsCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.ProjectID == "" {
		return errors.New("project ID is required")
	}
	if len(c.Positions) == 0 {
		return errors.New("at least one node position is required")
	}
	return nil
}

// RateProjectCommand generates a fresh VC-style rating and stores it on
// the project.
type RateProjectCommand struct {
	UserID    string
	ProjectID string
}

// Validate validates the command
func (c RateProjectCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.ProjectID == "" {
		return errors.New("project ID is required")
	}
	return nil
}

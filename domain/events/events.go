// Package events defines the domain events published to the event bus
// after state changes commit.
package events

import "time"

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

func newBase(aggregateID, eventType string) BaseEvent {
	return BaseEvent{
		AggregateID: aggregateID,
		EventType:   eventType,
		Timestamp:   time.Now(),
	}
}

// Project events

// ProjectCreated is raised when a new research project is created
type ProjectCreated struct {
	BaseEvent
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
}

// NewProjectCreated creates a ProjectCreated event
func NewProjectCreated(projectID, userID, name string) ProjectCreated {
	return ProjectCreated{
		BaseEvent: newBase(projectID, "project.created"),
		ProjectID: projectID,
		UserID:    userID,
		Name:      name,
	}
}

// NodeAdded is raised when a conversation appends a node to the graph
type NodeAdded struct {
	BaseEvent
	ProjectID string `json:"project_id"`
	NodeID    string `json:"node_id"`
	ParentID  string `json:"parent_id"`
	UserID    string `json:"user_id"`
}

// NewNodeAdded creates a NodeAdded event
func NewNodeAdded(projectID, nodeID, parentID, userID string) NodeAdded {
	return NodeAdded{
		BaseEvent: newBase(projectID, "project.node_added"),
		ProjectID: projectID,
		NodeID:    nodeID,
		ParentID:  parentID,
		UserID:    userID,
	}
}

// NodeRemoved is raised when a node and its edges are deleted
type NodeRemoved struct {
	BaseEvent
	ProjectID string `json:"project_id"`
	NodeID    string `json:"node_id"`
	UserID    string `json:"user_id"`
}

// NewNodeRemoved creates a NodeRemoved event
func NewNodeRemoved(projectID, nodeID, userID string) NodeRemoved {
	return NodeRemoved{
		BaseEvent: newBase(projectID, "project.node_removed"),
		ProjectID: projectID,
		NodeID:    nodeID,
		UserID:    userID,
	}
}

// Pitch events

// PitchCreated is raised when a stealth pitch is published to the feed
type PitchCreated struct {
	BaseEvent
	PitchID string `json:"pitch_id"`
	UserID  string `json:"user_id"`
}

// NewPitchCreated creates a PitchCreated event
func NewPitchCreated(pitchID, userID string) PitchCreated {
	return PitchCreated{
		BaseEvent: newBase(pitchID, "pitch.created"),
		PitchID:   pitchID,
		UserID:    userID,
	}
}

// PitchVoted is raised when a user votes on a pitch
type PitchVoted struct {
	BaseEvent
	PitchID string `json:"pitch_id"`
	UserID  string `json:"user_id"`
	Vote    string `json:"vote"`
}

// NewPitchVoted creates a PitchVoted event
func NewPitchVoted(pitchID, userID, vote string) PitchVoted {
	return PitchVoted{
		BaseEvent: newBase(pitchID, "pitch.voted"),
		PitchID:   pitchID,
		UserID:    userID,
		Vote:      vote,
	}
}

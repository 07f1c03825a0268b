package ports

import (
	"context"

	"ideagraph-backend/domain/events"
	"ideagraph-backend/domain/pitch"
	"ideagraph-backend/domain/project"
)

// ProjectRepository defines the interface for project persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type ProjectRepository interface {
	// Save persists a project (create or update). Updates are conditional
	// on the project's current Version; a mismatch yields a conflict error.
	Save(ctx context.Context, p *project.Project) error

	// FindByID retrieves a project owned by userID. Projects belonging to
	// other users are reported as not found.
	FindByID(ctx context.Context, userID, projectID string) (*project.Project, error)

	// FindByUser retrieves all projects owned by a user, newest first
	FindByUser(ctx context.Context, userID string) ([]*project.Project, error)
}

// PitchRepository defines the interface for stealth pitch persistence
type PitchRepository interface {
	// Save persists a pitch (create or update) with a version check
	Save(ctx context.Context, p *pitch.StealthPitch) error

	// FindByID retrieves a pitch regardless of owner; the feed is public
	FindByID(ctx context.Context, pitchID string) (*pitch.StealthPitch, error)

	// FindAll retrieves every pitch in the feed, newest first
	FindAll(ctx context.Context) ([]*pitch.StealthPitch, error)

	// Delete removes a pitch
	Delete(ctx context.Context, pitchID string) error
}

// EventBus publishes domain events after state changes commit
type EventBus interface {
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

package handlers

import (
	"context"

	"go.uber.org/zap"

	"ideagraph-backend/application/commands"
	"ideagraph-backend/application/commands/bus"
	"ideagraph-backend/application/ports"
	"ideagraph-backend/domain/events"
	"ideagraph-backend/domain/pitch"
	appErrors "ideagraph-backend/pkg/errors"
)

// CreatePitchHandler handles CreatePitchCommand
type CreatePitchHandler struct {
	pitches  ports.PitchRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewCreatePitchHandler creates a new handler instance
func NewCreatePitchHandler(pitches ports.PitchRepository, eventBus ports.EventBus, logger *zap.Logger) *CreatePitchHandler {
	return &CreatePitchHandler{pitches: pitches, eventBus: eventBus, logger: logger}
}

// Handle publishes a new pitch to the feed
func (h *CreatePitchHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.CreatePitchCommand)
	if !ok {
		return nil, appErrors.NewInternalError("invalid command type")
	}

	p := pitch.New(c.UserID, c.Title, c.Pitch, c.Amount)

	if err := h.pitches.Save(ctx, p); err != nil {
		return nil, err
	}

	publishEvents(ctx, h.eventBus, h.logger, events.NewPitchCreated(p.ID, p.UserID))
	return p, nil
}

// VotePitchHandler handles VotePitchCommand
type VotePitchHandler struct {
	pitches  ports.PitchRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewVotePitchHandler creates a new handler instance
func NewVotePitchHandler(pitches ports.PitchRepository, eventBus ports.EventBus, logger *zap.Logger) *VotePitchHandler {
	return &VotePitchHandler{pitches: pitches, eventBus: eventBus, logger: logger}
}

// Handle records a vote. Votes are idempotent and each pair
// (like/dislike, approve/reject) is mutually exclusive.
func (h *VotePitchHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.VotePitchCommand)
	if !ok {
		return nil, appErrors.NewInternalError("invalid command type")
	}

	p, err := h.pitches.FindByID(ctx, c.PitchID)
	if err != nil {
		return nil, err
	}

	switch c.Vote {
	case commands.VoteLike:
		p.Like(c.UserID)
	case commands.VoteDislike:
		p.Dislike(c.UserID)
	case commands.VoteApprove:
		p.Approve(c.UserID)
	case commands.VoteReject:
		p.Reject(c.UserID)
	}

	if err := h.pitches.Save(ctx, p); err != nil {
		return nil, err
	}

	publishEvents(ctx, h.eventBus, h.logger, events.NewPitchVoted(p.ID, c.UserID, c.Vote))
	return p, nil
}

// EditPitchHandler handles EditPitchCommand
type EditPitchHandler struct {
	pitches ports.PitchRepository
	logger  *zap.Logger
}

// NewEditPitchHandler creates a new handler instance
func NewEditPitchHandler(pitches ports.PitchRepository, logger *zap.Logger) *EditPitchHandler {
	return &EditPitchHandler{pitches: pitches, logger: logger}
}

// Handle updates a pitch's title and content, owner only
func (h *EditPitchHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.EditPitchCommand)
	if !ok {
		return nil, appErrors.NewInternalError("invalid command type")
	}

	p, err := h.pitches.FindByID(ctx, c.PitchID)
	if err != nil {
		return nil, err
	}

	if !p.IsOwner(c.UserID) {
		return nil, appErrors.NewUnauthorizedError("you can only edit your own pitch")
	}

	p.Edit(c.Title, c.Pitch)

	if err := h.pitches.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePitchHandler handles DeletePitchCommand
type DeletePitchHandler struct {
	pitches ports.PitchRepository
	logger  *zap.Logger
}

// NewDeletePitchHandler creates a new handler instance
func NewDeletePitchHandler(pitches ports.PitchRepository, logger *zap.Logger) *DeletePitchHandler {
	return &DeletePitchHandler{pitches: pitches, logger: logger}
}

// Handle removes a pitch from the feed, owner only
func (h *DeletePitchHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.DeletePitchCommand)
	if !ok {
		return nil, appErrors.NewInternalError("invalid command type")
	}

	p, err := h.pitches.FindByID(ctx, c.PitchID)
	if err != nil {
		return nil, err
	}

	if !p.IsOwner(c.UserID) {
		return nil, appErrors.NewUnauthorizedError("you can only delete your own pitch")
	}

	if err := h.pitches.Delete(ctx, c.PitchID); err != nil {
		return nil, err
	}
	return nil, nil
}

// AddCommentHandler handles AddCommentCommand
type AddCommentHandler struct {
	pitches ports.PitchRepository
	logger  *zap.Logger
}

// NewAddCommentHandler creates a new handler instance
func NewAddCommentHandler(pitches ports.PitchRepository, logger *zap.Logger) *AddCommentHandler {
	return &AddCommentHandler{pitches: pitches, logger: logger}
}

// Handle appends a comment to a pitch and returns the full comment
// list, so the caller can render the whole thread from the response.
func (h *AddCommentHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.AddCommentCommand)
	if !ok {
		return nil, appErrors.NewInternalError("invalid command type")
	}

	p, err := h.pitches.FindByID(ctx, c.PitchID)
	if err != nil {
		return nil, err
	}

	p.AddComment(c.UserID, c.Text)

	if err := h.pitches.Save(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// DeleteCommentHandler handles DeleteCommentCommand
type DeleteCommentHandler struct {
	pitches ports.PitchRepository
	logger  *zap.Logger
}

// NewDeleteCommentHandler creates a new handler instance
func NewDeleteCommentHandler(pitches ports.PitchRepository, logger *zap.Logger) *DeleteCommentHandler {
	return &DeleteCommentHandler{pitches: pitches, logger: logger}
}

// Handle removes a comment, author only
func (h *DeleteCommentHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.DeleteCommentCommand)
	if !ok {
		return nil, appErrors.NewInternalError("invalid command type")
	}

	p, err := h.pitches.FindByID(ctx, c.PitchID)
	if err != nil {
		return nil, err
	}

	found, owned := p.DeleteComment(c.CommentID, c.UserID)
	if !found {
		return nil, appErrors.NewNotFoundError("comment")
	}
	if !owned {
		return nil, appErrors.NewUnauthorizedError("you can only delete your own comment")
	}

	if err := h.pitches.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

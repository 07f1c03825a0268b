package handlers

import (
	"context"

	"go.uber.org/zap"

	"ideagraph-backend/application/ports"
	"ideagraph-backend/application/queries"
	"ideagraph-backend/application/queries/bus"
	appErrors "ideagraph-backend/pkg/errors"
)

// ListPitchesHandler handles ListPitchesQuery
type ListPitchesHandler struct {
	pitches ports.PitchRepository
	logger  *zap.Logger
}

// NewListPitchesHandler creates a new handler instance
func NewListPitchesHandler(pitches ports.PitchRepository, logger *zap.Logger) *ListPitchesHandler {
	return &ListPitchesHandler{pitches: pitches, logger: logger}
}

// Handle returns the public feed, newest first
func (h *ListPitchesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(queries.ListPitchesQuery); !ok {
		return nil, appErrors.NewInternalError("invalid query type")
	}
	return h.pitches.FindAll(ctx)
}

// GetPitchHandler handles GetPitchQuery
type GetPitchHandler struct {
	pitches ports.PitchRepository
	logger  *zap.Logger
}

// NewGetPitchHandler creates a new handler instance
func NewGetPitchHandler(pitches ports.PitchRepository, logger *zap.Logger) *GetPitchHandler {
	return &GetPitchHandler{pitches: pitches, logger: logger}
}

// Handle returns a single pitch
func (h *GetPitchHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetPitchQuery)
	if !ok {
		return nil, appErrors.NewInternalError("invalid query type")
	}
	return h.pitches.FindByID(ctx, q.PitchID)
}

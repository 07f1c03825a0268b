package handlers

import (
	"context"

	"go.uber.org/zap"

	"ideagraph-backend/application/ai"
	"ideagraph-backend/application/ports"
	"ideagraph-backend/application/queries"
	"ideagraph-backend/application/queries/bus"
	"ideagraph-backend/domain/graph"
	appErrors "ideagraph-backend/pkg/errors"
)

// GetProjectHandler handles GetProjectQuery
type GetProjectHandler struct {
	projects ports.ProjectRepository
	logger   *zap.Logger
}

// NewGetProjectHandler creates a new handler instance
func NewGetProjectHandler(projects ports.ProjectRepository, logger *zap.Logger) *GetProjectHandler {
	return &GetProjectHandler{projects: projects, logger: logger}
}

// Handle fetches a single project owned by the caller
func (h *GetProjectHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetProjectQuery)
	if !ok {
		return nil, appErrors.NewInternalError("invalid query type")
	}
	return h.projects.FindByID(ctx, q.UserID, q.ProjectID)
}

// ListProjectsHandler handles ListProjectsQuery
type ListProjectsHandler struct {
	projects ports.ProjectRepository
	logger   *zap.Logger
}

// NewListProjectsHandler creates a new handler instance
func NewListProjectsHandler(projects ports.ProjectRepository, logger *zap.Logger) *ListProjectsHandler {
	return &ListProjectsHandler{projects: projects, logger: logger}
}

// Handle lists the caller's projects, newest first
func (h *ListProjectsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListProjectsQuery)
	if !ok {
		return nil, appErrors.NewInternalError("invalid query type")
	}
	return h.projects.FindByUser(ctx, q.UserID)
}

// SynthesizeProjectHandler handles SynthesizeProjectQuery
type SynthesizeProjectHandler struct {
	projects ports.ProjectRepository
	chat     ports.ChatModel
	logger   *zap.Logger
}

// NewSynthesizeProjectHandler creates a new handler instance
func NewSynthesizeProjectHandler(projects ports.ProjectRepository, chat ports.ChatModel, logger *zap.Logger) *SynthesizeProjectHandler {
	return &SynthesizeProjectHandler{projects: projects, chat: chat, logger: logger}
}

// Handle renders the full graph into a Markdown report
func (h *SynthesizeProjectHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.SynthesizeProjectQuery)
	if !ok {
		return nil, appErrors.NewInternalError("invalid query type")
	}

	p, err := h.projects.FindByID(ctx, q.UserID, q.ProjectID)
	if err != nil {
		return nil, err
	}

	notes := graph.FullContext(p.GraphView())
	if notes == "" {
		return nil, appErrors.NewValidationError("cannot synthesize an empty project")
	}

	report, err := h.chat.GenerateText(ctx, "", ai.SynthesisPrompt(notes))
	if err != nil {
		return nil, err
	}

	return &queries.SynthesizeProjectResult{Document: report}, nil
}

// GeneratePitchHandler handles GeneratePitchQuery
type GeneratePitchHandler struct {
	projects ports.ProjectRepository
	chat     ports.ChatModel
	logger   *zap.Logger
}

// NewGeneratePitchHandler creates a new handler instance
func NewGeneratePitchHandler(projects ports.ProjectRepository, chat ports.ChatModel, logger *zap.Logger) *GeneratePitchHandler {
	return &GeneratePitchHandler{projects: projects, chat: chat, logger: logger}
}

// Handle writes a stealth validation pitch from the research notes
func (h *GeneratePitchHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GeneratePitchQuery)
	if !ok {
		return nil, appErrors.NewInternalError("invalid query type")
	}

	p, err := h.projects.FindByID(ctx, q.UserID, q.ProjectID)
	if err != nil {
		return nil, err
	}

	summary := graph.FullContext(p.GraphView())
	if summary == "" {
		return nil, appErrors.NewValidationError("cannot summarize an empty project")
	}

	text, err := h.chat.GenerateText(ctx, "", ai.StealthPitchPrompt(summary, q.ValidationMetric))
	if err != nil {
		return nil, err
	}

	return &queries.GeneratePitchResult{Pitch: text}, nil
}

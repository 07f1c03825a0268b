package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ideagraph-backend/application/commands"
	"ideagraph-backend/application/commands/bus"
	"ideagraph-backend/application/queries"
	querybus "ideagraph-backend/application/queries/bus"
	"ideagraph-backend/domain/project"
	"ideagraph-backend/pkg/auth"
	"ideagraph-backend/pkg/utils"
)

// ProjectHandler handles research project HTTP requests
type ProjectHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Name  string         `json:"name" validate:"required,min=1,max=200"`
	Nodes []project.Node `json:"nodes" validate:"required"`
	Edges []project.Edge `json:"edges" validate:"required"`
}

// ConverseRequest represents the request body for a conversation turn
type ConverseRequest struct {
	ParentNodeID string           `json:"parentNodeId" validate:"required"`
	Prompt       string           `json:"prompt" validate:"required"`
	Position     project.Position `json:"position"`
	UseRAG       bool             `json:"useRAG"`
}

// RegenerateRequest represents the request body for regenerating a node
type RegenerateRequest struct {
	NewPrompt string `json:"newPrompt" validate:"required"`
}

// UpdatePositionsRequest represents the request body for a layout update
type UpdatePositionsRequest struct {
	Positions map[string]project.Position `json:"positions" validate:"required,min=1"`
}

// GeneratePitchRequest represents the request body for pitch generation
type GeneratePitchRequest struct {
	ValidationMetric string `json:"validationMetric" validate:"required"`
}

// CreateProject handles POST /api/project
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateProjectCommand{
		UserID: userCtx.UserID,
		Name:   req.Name,
		Nodes:  req.Nodes,
		Edges:  req.Edges,
	})
	if err != nil {
		h.logger.Error("Failed to create project",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// ListProjects handles GET /api/project
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListProjectsQuery{
		UserID: userCtx.UserID,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetProject handles GET /api/project/{projectId}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetProjectQuery{
		UserID:    userCtx.UserID,
		ProjectID: chi.URLParam(r, "projectId"),
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Converse handles POST /api/project/{projectId}/converse
func (h *ProjectHandler) Converse(w http.ResponseWriter, r *http.Request) {
	var req ConverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.ConverseCommand{
		UserID:       userCtx.UserID,
		ProjectID:    chi.URLParam(r, "projectId"),
		ParentNodeID: req.ParentNodeID,
		Prompt:       req.Prompt,
		Position:     req.Position,
		UseRAG:       req.UseRAG,
	})
	if err != nil {
		h.logger.Error("Conversation turn failed",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// RegenerateNode handles PUT /api/project/{projectId}/node/{nodeId}/regenerate
func (h *ProjectHandler) RegenerateNode(w http.ResponseWriter, r *http.Request) {
	var req RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.RegenerateNodeCommand{
		UserID:    userCtx.UserID,
		ProjectID: chi.URLParam(r, "projectId"),
		NodeID:    chi.URLParam(r, "nodeId"),
		NewPrompt: req.NewPrompt,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// DeleteNode handles DELETE /api/project/{projectId}/node/{nodeId}
func (h *ProjectHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.DeleteNodeCommand{
		UserID:    userCtx.UserID,
		ProjectID: chi.URLParam(r, "projectId"),
		NodeID:    chi.URLParam(r, "nodeId"),
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// UpdatePositions handles PATCH /api/project/{projectId}/nodes/positions
func (h *ProjectHandler) UpdatePositions(w http.ResponseWriter, r *http.Request) {
	var req UpdatePositionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdatePositionsCommand{
		UserID:    userCtx.UserID,
		ProjectID: chi.URLParam(r, "projectId"),
		Positions: req.Positions,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// RateProject handles POST /api/project/{projectId}/rate
func (h *ProjectHandler) RateProject(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.RateProjectCommand{
		UserID:    userCtx.UserID,
		ProjectID: chi.URLParam(r, "projectId"),
	})
	if err != nil {
		h.logger.Error("Failed to rate project",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Synthesize handles POST /api/project/{projectId}/synthesize
func (h *ProjectHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.SynthesizeProjectQuery{
		UserID:    userCtx.UserID,
		ProjectID: chi.URLParam(r, "projectId"),
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GeneratePitch handles POST /api/project/{projectId}/generate-pitch
func (h *ProjectHandler) GeneratePitch(w http.ResponseWriter, r *http.Request) {
	var req GeneratePitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GeneratePitchQuery{
		UserID:           userCtx.UserID,
		ProjectID:        chi.URLParam(r, "projectId"),
		ValidationMetric: req.ValidationMetric,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

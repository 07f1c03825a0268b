package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"ideagraph-backend/application/queries"
	querybus "ideagraph-backend/application/queries/bus"
	"ideagraph-backend/pkg/auth"
	"ideagraph-backend/pkg/utils"
)

// IdeaHandler handles one-shot idea analysis requests
type IdeaHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewIdeaHandler creates a new idea handler
func NewIdeaHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *IdeaHandler {
	return &IdeaHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// AnalyzeIdeaRequest represents the request body for idea analysis
type AnalyzeIdeaRequest struct {
	Idea string `json:"idea" validate:"required,min=1,max=5000"`
}

// Analyze handles POST /api/idea/analyze
func (h *IdeaHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeIdeaRequest
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

	result, err := h.queryBus.Ask(r.Context(), queries.AnalyzeIdeaQuery{
		UserID: userCtx.UserID,
		Idea:   req.Idea,
	})
	if err != nil {
		h.logger.Error("Idea analysis failed",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

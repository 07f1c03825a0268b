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
	"ideagraph-backend/pkg/auth"
	"ideagraph-backend/pkg/utils"
)

// PitchHandler handles stealth pitch feed HTTP requests
type PitchHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewPitchHandler creates a new pitch handler
func NewPitchHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *PitchHandler {
	return &PitchHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreatePitchRequest represents the request body for publishing a pitch
type CreatePitchRequest struct {
	Title  string  `json:"title" validate:"omitempty,max=200"`
	Pitch  string  `json:"pitch" validate:"required"`
	Amount float64 `json:"amount" validate:"omitempty,gte=0"`
}

// EditPitchRequest represents the request body for editing a pitch
type EditPitchRequest struct {
	Title string `json:"title" validate:"omitempty,max=200"`
	Pitch string `json:"pitch"`
}

// AddCommentRequest represents the request body for commenting on a pitch
type AddCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

// ListPitches handles GET /api/stealth. The feed is public.
func (h *PitchHandler) ListPitches(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListPitchesQuery{})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetPitch handles GET /api/stealth/{pitchId}
func (h *PitchHandler) GetPitch(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetPitchQuery{
		PitchID: chi.URLParam(r, "pitchId"),
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CreatePitch handles POST /api/stealth
func (h *PitchHandler) CreatePitch(w http.ResponseWriter, r *http.Request) {
	var req CreatePitchRequest
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

	result, err := h.commandBus.Send(r.Context(), commands.CreatePitchCommand{
		UserID: userCtx.UserID,
		Title:  req.Title,
		Pitch:  req.Pitch,
		Amount: req.Amount,
	})
	if err != nil {
		h.logger.Error("Failed to create pitch",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// Vote handles PATCH /api/stealth/{pitchId}/{like|dislike|approve|reject}.
// The vote kind is bound at route registration.
func (h *PitchHandler) Vote(vote string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userCtx, err := auth.GetUserFromContext(r.Context())
		if err != nil {
			respondMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		result, err := h.commandBus.Send(r.Context(), commands.VotePitchCommand{
			UserID:  userCtx.UserID,
			PitchID: chi.URLParam(r, "pitchId"),
			Vote:    vote,
		})
		if err != nil {
			respondError(w, h.logger, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// EditPitch handles PATCH /api/stealth/{pitchId}
func (h *PitchHandler) EditPitch(w http.ResponseWriter, r *http.Request) {
	var req EditPitchRequest
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

	result, err := h.commandBus.Send(r.Context(), commands.EditPitchCommand{
		UserID:  userCtx.UserID,
		PitchID: chi.URLParam(r, "pitchId"),
		Title:   req.Title,
		Pitch:   req.Pitch,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// DeletePitch handles DELETE /api/stealth/{pitchId}
func (h *PitchHandler) DeletePitch(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if _, err := h.commandBus.Send(r.Context(), commands.DeletePitchCommand{
		UserID:  userCtx.UserID,
		PitchID: chi.URLParam(r, "pitchId"),
	}); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message":   "Pitch deleted",
		"deletedAt": utils.NowRFC3339(),
	})
}

// AddComment handles POST /api/stealth/{pitchId}/comment
func (h *PitchHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req AddCommentRequest
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

	result, err := h.commandBus.Send(r.Context(), commands.AddCommentCommand{
		UserID:  userCtx.UserID,
		PitchID: chi.URLParam(r, "pitchId"),
		Text:    req.Text,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// DeleteComment handles DELETE /api/stealth/{pitchId}/comment/{commentId}
func (h *PitchHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.DeleteCommentCommand{
		UserID:    userCtx.UserID,
		PitchID:   chi.URLParam(r, "pitchId"),
		CommentID: chi.URLParam(r, "commentId"),
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

package handlers

import (
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"ideagraph-backend/application/commands"
	"ideagraph-backend/application/commands/bus"
	"ideagraph-backend/pkg/auth"
)

// maxUploadBytes bounds document uploads; files are buffered in memory
// before extraction.
const maxUploadBytes = 10 << 20 // 10 MB

// DocumentHandler handles document upload and indexing requests
type DocumentHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(commandBus *bus.CommandBus, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		commandBus: commandBus,
		logger:     logger,
	}
}

// Upload handles POST /api/documents/upload. Expects a multipart form
// with a single "file" field containing a PDF.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "A file is required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		respondMessage(w, http.StatusBadRequest, "Only PDF uploads are supported")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.IndexDocumentCommand{
		UserID:   userCtx.UserID,
		FileName: header.Filename,
		Data:     data,
	})
	if err != nil {
		h.logger.Error("Document indexing failed",
			zap.String("userID", userCtx.UserID),
			zap.String("fileName", header.Filename),
			zap.Error(err),
		)
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

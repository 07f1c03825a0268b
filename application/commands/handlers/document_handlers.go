package handlers

import (
	"context"

	"go.uber.org/zap"

	"ideagraph-backend/application/commands"
	"ideagraph-backend/application/commands/bus"
	"ideagraph-backend/application/ports"
	appErrors "ideagraph-backend/pkg/errors"
	"ideagraph-backend/pkg/textsplit"
)

// IndexDocumentResult reports what the ingestion run produced
type IndexDocumentResult struct {
	FileName string `json:"fileName"`
	Chunks   int    `json:"chunks"`
}

// IndexDocumentHandler handles IndexDocumentCommand
type IndexDocumentHandler struct {
	extractor ports.DocumentExtractor
	vectors   ports.VectorStore
	splitter  *textsplit.Splitter
	logger    *zap.Logger
}

// NewIndexDocumentHandler creates a new handler instance
func NewIndexDocumentHandler(extractor ports.DocumentExtractor, vectors ports.VectorStore, logger *zap.Logger) *IndexDocumentHandler {
	return &IndexDocumentHandler{
		extractor: extractor,
		vectors:   vectors,
		splitter:  textsplit.NewSplitter(textsplit.DefaultChunkSize, textsplit.DefaultChunkOverlap),
		logger:    logger,
	}
}

// Handle extracts the document text, chunks it and indexes the chunks
// in the caller's vector namespace.
func (h *IndexDocumentHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.IndexDocumentCommand)
	if !ok {
		return nil, appErrors.NewInternalError("invalid command type")
	}

	text, err := h.extractor.Extract(ctx, c.Data)
	if err != nil {
		return nil, appErrors.NewValidationError("could not extract text from the uploaded file").WithCause(err)
	}

	chunks := h.splitter.Split(text)
	if len(chunks) == 0 {
		return nil, appErrors.NewValidationError("the uploaded file contains no extractable text")
	}

	metadata := map[string]string{"fileName": c.FileName}
	if err := h.vectors.UpsertChunks(ctx, c.UserID, chunks, metadata); err != nil {
		return nil, err
	}

	h.logger.Info("document indexed",
		zap.String("user_id", c.UserID),
		zap.String("file", c.FileName),
		zap.Int("chunks", len(chunks)))

	return &IndexDocumentResult{FileName: c.FileName, Chunks: len(chunks)}, nil
}

package handlers

import (
	"context"

	"go.uber.org/zap"

	"ideagraph-backend/application/ai"
	"ideagraph-backend/application/ports"
	"ideagraph-backend/application/queries"
	"ideagraph-backend/application/queries/bus"
	appErrors "ideagraph-backend/pkg/errors"
	"ideagraph-backend/pkg/jsonx"
)

// AnalyzeIdeaHandler handles AnalyzeIdeaQuery
type AnalyzeIdeaHandler struct {
	chat   ports.ChatModel
	logger *zap.Logger
}

// NewAnalyzeIdeaHandler creates a new handler instance
func NewAnalyzeIdeaHandler(chat ports.ChatModel, logger *zap.Logger) *AnalyzeIdeaHandler {
	return &AnalyzeIdeaHandler{chat: chat, logger: logger}
}

// Handle critiques the idea and proposes five variations. Structured
// output is attempted first; the brace extractor catches providers that
// wrap the JSON in prose anyway.
func (h *AnalyzeIdeaHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.AnalyzeIdeaQuery)
	if !ok {
		return nil, appErrors.NewInternalError("invalid query type")
	}

	prompt := ai.IdeaAnalysisPrompt(q.Idea)

	raw, err := h.chat.GenerateJSON(ctx, "", prompt, ai.IdeaAnalysisSchema())
	if err == nil {
		result := &queries.AnalyzeIdeaResult{}
		if analysis, ok := raw["analysis"].(string); ok {
			result.Analysis = analysis
		}
		if variations, ok := raw["variations"].([]interface{}); ok {
			for _, v := range variations {
				if s, ok := v.(string); ok {
					result.Variations = append(result.Variations, s)
				}
			}
		}
		if result.Analysis != "" {
			return result, nil
		}
	}

	// Fall back to a free-form completion and extract the object by hand.
	text, err := h.chat.GenerateText(ctx, "", prompt)
	if err != nil {
		return nil, err
	}

	result := &queries.AnalyzeIdeaResult{}
	if err := jsonx.ExtractObject(text, result); err != nil {
		h.logger.Warn("idea analysis returned malformed JSON", zap.Error(err))
		return nil, appErrors.NewExternalError("ai", err)
	}
	return result, nil
}

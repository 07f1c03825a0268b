package handlers

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"ideagraph-backend/application/ai"
	"ideagraph-backend/application/commands"
	"ideagraph-backend/application/commands/bus"
	"ideagraph-backend/application/ports"
	"ideagraph-backend/domain/events"
	"ideagraph-backend/domain/graph"
	"ideagraph-backend/domain/project"
	appErrors "ideagraph-backend/pkg/errors"
)

// ragTopK is how many passages retrieval contributes to a conversation turn.
const ragTopK = 4

// ConverseResult is returned to the caller so the canvas can append the
// new node without refetching the project.
type ConverseResult struct {
	NewNode project.Node `json:"newNode"`
	NewEdge project.Edge `json:"newEdge"`
}

// CreateProjectHandler handles CreateProjectCommand
type CreateProjectHandler struct {
	projects ports.ProjectRepository
	chat     ports.ChatModel
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewCreateProjectHandler creates a new handler instance
func NewCreateProjectHandler(projects ports.ProjectRepository, chat ports.ChatModel, eventBus ports.EventBus, logger *zap.Logger) *CreateProjectHandler {
	return &CreateProjectHandler{projects: projects, chat: chat, eventBus: eventBus, logger: logger}
}

// Handle creates the project and attaches the AI market categorization
func (h *CreateProjectHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.CreateProjectCommand)
	if !ok {
		return nil, appErrors.NewInternalError("invalid command type")
	}

	p := project.New(c.UserID, c.Name, c.Nodes, c.Edges)

	initialContext := graph.FullContext(p.GraphView())
	if initialContext != "" {
		raw, err := h.chat.GenerateJSON(ctx, "", ai.CategorizationPrompt(initialContext), ai.CategorizationSchema())
		if err != nil {
			return nil, err
		}
		p.Categorization = &project.Categorization{
			Type:            stringField(raw, "type"),
			Market:          stringField(raw, "market"),
			Target:          stringField(raw, "target"),
			MainCompetitors: stringField(raw, "main_competitors"),
			TrendAnalysis:   stringField(raw, "trendAnalysis"),
		}
	}

	if err := h.projects.Save(ctx, p); err != nil {
		return nil, err
	}

	h.publish(ctx, events.NewProjectCreated(p.ID, p.UserID, p.Name))
	return p, nil
}

func (h *CreateProjectHandler) publish(ctx context.Context, evts ...events.DomainEvent) {
	publishEvents(ctx, h.eventBus, h.logger, evts...)
}

// ConverseHandler handles ConverseCommand
type ConverseHandler struct {
	projects ports.ProjectRepository
	chat     ports.ChatModel
	vectors  ports.VectorStore
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewConverseHandler creates a new handler instance
func NewConverseHandler(projects ports.ProjectRepository, chat ports.ChatModel, vectors ports.VectorStore, eventBus ports.EventBus, logger *zap.Logger) *ConverseHandler {
	return &ConverseHandler{projects: projects, chat: chat, vectors: vectors, eventBus: eventBus, logger: logger}
}

// Handle answers the prompt in the parent node's context and appends the
// result to the graph.
func (h *ConverseHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.ConverseCommand)
	if !ok {
		return nil, appErrors.NewInternalError("invalid command type")
	}

	p, err := h.projects.FindByID(ctx, c.UserID, c.ProjectID)
	if err != nil {
		return nil, err
	}

	nodes, edges := p.GraphView()
	history := graph.PathContext(nodes, edges, c.ParentNodeID)

	documents := ai.NoDocumentsSentinel
	if c.UseRAG {
		passages, err := h.vectors.Query(ctx, c.UserID, c.Prompt, ragTopK)
		if err != nil {
			return nil, err
		}
		texts := make([]string, len(passages))
		for i, passage := range passages {
			texts[i] = passage.Text
		}
		documents = strings.Join(texts, ai.PassageSeparator)
	}

	raw, err := h.chat.GenerateJSON(ctx, "", ai.ConversationPrompt(history, c.Prompt, documents), ai.ConversationSchema())
	if err != nil {
		return nil, err
	}

	node, edge := p.AppendConversation(c.ParentNodeID, c.Prompt, stringField(raw, "title"), stringField(raw, "content"), c.Position)

	if err := h.projects.Save(ctx, p); err != nil {
		return nil, err
	}

	publishEvents(ctx, h.eventBus, h.logger, events.NewNodeAdded(p.ID, node.ID, c.ParentNodeID, c.UserID))
	return &ConverseResult{NewNode: node, NewEdge: edge}, nil
}

// RegenerateNodeHandler handles RegenerateNodeCommand
type RegenerateNodeHandler struct {
	projects ports.ProjectRepository
	chat     ports.ChatModel
	logger   *zap.Logger
}

// NewRegenerateNodeHandler creates a new handler instance
func NewRegenerateNodeHandler(projects ports.ProjectRepository, chat ports.ChatModel, logger *zap.Logger) *RegenerateNodeHandler {
	return &RegenerateNodeHandler{projects: projects, chat: chat, logger: logger}
}

// Handle rewrites a non-root node's content from the new prompt
func (h *RegenerateNodeHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.RegenerateNodeCommand)
	if !ok {
		return nil, appErrors.NewInternalError("invalid command type")
	}

	p, err := h.projects.FindByID(ctx, c.UserID, c.ProjectID)
	if err != nil {
		return nil, err
	}

	if _, ok := p.FindNode(c.NodeID); !ok {
		return nil, appErrors.NewNotFoundError("node")
	}

	parentID, ok := p.ParentOf(c.NodeID)
	if !ok {
		return nil, appErrors.NewValidationError("cannot regenerate a root node this way")
	}

	nodes, edges := p.GraphView()
	history := graph.PathContext(nodes, edges, parentID)

	content, err := h.chat.GenerateText(ctx, "", ai.RegenerationPrompt(history, c.NewPrompt))
	if err != nil {
		return nil, err
	}

	node, _ := p.RewriteNode(c.NodeID, c.NewPrompt, content)

	if err := h.projects.Save(ctx, p); err != nil {
		return nil, err
	}

	updated := *node
	return &updated, nil
}

// DeleteNodeHandler handles DeleteNodeCommand
type DeleteNodeHandler struct {
	projects ports.ProjectRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewDeleteNodeHandler creates a new handler instance
func NewDeleteNodeHandler(projects ports.ProjectRepository, eventBus ports.EventBus, logger *zap.Logger) *DeleteNodeHandler {
	return &DeleteNodeHandler{projects: projects, eventBus: eventBus, logger: logger}
}

// Handle removes the node and every edge touching it
func (h *DeleteNodeHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.DeleteNodeCommand)
	if !ok {
		return nil, appErrors.NewInternalError("invalid command type")
	}

	p, err := h.projects.FindByID(ctx, c.UserID, c.ProjectID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveNode(c.NodeID) {
		return nil, appErrors.NewNotFoundError("node")
	}

	if err := h.projects.Save(ctx, p); err != nil {
		return nil, err
	}

	publishEvents(ctx, h.eventBus, h.logger, events.NewNodeRemoved(p.ID, c.NodeID, c.UserID))
	return p, nil
}

// UpdatePositionsHandler handles UpdatePositionsCommand
type UpdatePositionsHandler struct {
	projects ports.ProjectRepository
	logger   *zap.Logger
}

// NewUpdatePositionsHandler creates a new handler instance
func NewUpdatePositionsHandler(projects ports.ProjectRepository, logger *zap.Logger) *UpdatePositionsHandler {
	return &UpdatePositionsHandler{projects: projects, logger: logger}
}

// Handle moves nodes on the canvas. Stale node IDs are skipped.
func (h *UpdatePositionsHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.UpdatePositionsCommand)
	if !ok {
		return nil, appErrors.NewInternalError("invalid command type")
	}

	p, err := h.projects.FindByID(ctx, c.UserID, c.ProjectID)
	if err != nil {
		return nil, err
	}

	p.UpdatePositions(c.Positions)

	if err := h.projects.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RateProjectHandler handles RateProjectCommand
type RateProjectHandler struct {
	projects ports.ProjectRepository
	chat     ports.ChatModel
	logger   *zap.Logger
}

// NewRateProjectHandler creates a new handler instance
func NewRateProjectHandler(projects ports.ProjectRepository, chat ports.ChatModel, logger *zap.Logger) *RateProjectHandler {
	return &RateProjectHandler{projects: projects, chat: chat, logger: logger}
}

// Handle generates a fresh VC score card and stores it on the project
func (h *RateProjectHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.RateProjectCommand)
	if !ok {
		return nil, appErrors.NewInternalError("invalid command type")
	}

	p, err := h.projects.FindByID(ctx, c.UserID, c.ProjectID)
	if err != nil {
		return nil, err
	}

	notes := graph.FullContext(p.GraphView())

	raw, err := h.chat.GenerateJSON(ctx, "", ai.RatingPrompt(notes), ai.RatingSchema())
	if err != nil {
		return nil, err
	}

	p.Rating = &project.Rating{
		Opportunity: intField(raw, "opportunity"),
		Problem:     intField(raw, "problem"),
		Feasibility: intField(raw, "feasibility"),
		WhyNow:      intField(raw, "why_now"),
		Feedback:    stringField(raw, "feedback"),
	}

	if err := h.projects.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// publishEvents publishes best-effort: a failed publish is logged, never
// surfaced, since the state change already committed.
func publishEvents(ctx context.Context, eventBus ports.EventBus, logger *zap.Logger, evts ...events.DomainEvent) {
	if eventBus == nil || len(evts) == 0 {
		return
	}
	if err := eventBus.Publish(ctx, evts...); err != nil && logger != nil {
		logger.Warn("failed to publish domain events",
			zap.Int("count", len(evts)),
			zap.Error(err))
	}
}

// stringField reads a string value out of a decoded JSON object
func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// intField reads a numeric value out of a decoded JSON object. JSON
// numbers decode as float64.
func intField(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ideagraph-backend/application/ai"
	"ideagraph-backend/application/commands"
	"ideagraph-backend/application/ports"
	"ideagraph-backend/domain/project"
	appErrors "ideagraph-backend/pkg/errors"
)

func seedGraphProject(userID string) *project.Project {
	return project.New(userID, "Research", []project.Node{
		{ID: "root", Data: project.NodeData{Label: "An app for dog walkers"}},
		{ID: "child", Data: project.NodeData{Label: "Subscription pricing"}},
	}, []project.Edge{
		{ID: "edge_root-child", Source: "root", Target: "child"},
	})
}

func TestCreateProjectHandler(t *testing.T) {
	repo := newFakeProjectRepo()
	chat := &fakeChat{jsonResp: map[string]interface{}{
		"type":             "SaaS",
		"market":           "pet care",
		"target":           "dog owners",
		"main_competitors": "Rover",
		"trendAnalysis":    "growing",
	}}
	eventBus := &fakeEventBus{}
	h := NewCreateProjectHandler(repo, chat, eventBus, zap.NewNop())

	result, err := h.Handle(context.Background(), commands.CreateProjectCommand{
		UserID: "user-1",
		Name:   "Dog walking",
		Nodes:  []project.Node{{ID: "root", Data: project.NodeData{Label: "Uber for dogs"}}},
		Edges:  []project.Edge{},
	})
	require.NoError(t, err)

	p, ok := result.(*project.Project)
	require.True(t, ok)
	assert.Equal(t, "user-1", p.UserID)
	require.NotNil(t, p.Categorization)
	assert.Equal(t, "SaaS", p.Categorization.Type)
	assert.Equal(t, "Rover", p.Categorization.MainCompetitors)

	assert.Contains(t, chat.lastPrompt, "Uber for dogs")
	assert.Equal(t, 1, repo.saves)
	require.Len(t, eventBus.published, 1)
	assert.Equal(t, "project.created", eventBus.published[0].GetEventType())
}

func TestCreateProjectHandlerEmptyGraphSkipsCategorization(t *testing.T) {
	repo := newFakeProjectRepo()
	chat := &fakeChat{}
	h := NewCreateProjectHandler(repo, chat, &fakeEventBus{}, zap.NewNop())

	result, err := h.Handle(context.Background(), commands.CreateProjectCommand{
		UserID: "user-1",
		Name:   "Blank",
		Nodes:  []project.Node{},
		Edges:  []project.Edge{},
	})
	require.NoError(t, err)

	p := result.(*project.Project)
	assert.Nil(t, p.Categorization)
	assert.Empty(t, chat.lastPrompt)
}

func TestConverseHandlerAppendsNode(t *testing.T) {
	p := seedGraphProject("user-1")
	repo := newFakeProjectRepo(p)
	chat := &fakeChat{jsonResp: map[string]interface{}{
		"title":   "Cat expansion",
		"content": "Cats are a market too.",
	}}
	eventBus := &fakeEventBus{}
	h := NewConverseHandler(repo, chat, &fakeVectors{}, eventBus, zap.NewNop())

	result, err := h.Handle(context.Background(), commands.ConverseCommand{
		UserID:       "user-1",
		ProjectID:    p.ID,
		ParentNodeID: "child",
		Prompt:       "What about cats?",
		Position:     project.Position{X: 5, Y: 6},
	})
	require.NoError(t, err)

	res, ok := result.(*ConverseResult)
	require.True(t, ok)
	assert.Equal(t, "Cat expansion", res.NewNode.Title)
	assert.Equal(t, "Cats are a market too.", res.NewNode.Data.Label)
	assert.Equal(t, "What about cats?", res.NewNode.Data.Prompt)
	assert.Equal(t, "child", res.NewEdge.Source)
	assert.Equal(t, res.NewNode.ID, res.NewEdge.Target)

	// Without RAG the prompt carries the sentinel, not retrieved text.
	assert.Contains(t, chat.lastPrompt, ai.NoDocumentsSentinel)
	// The ancestor chain of the parent is in the prompt.
	assert.Contains(t, chat.lastPrompt, "An app for dog walkers")
	assert.Contains(t, chat.lastPrompt, "Subscription pricing")

	assert.Len(t, p.Nodes, 3)
	assert.Equal(t, 1, repo.saves)
	require.Len(t, eventBus.published, 1)
	assert.Equal(t, "project.node_added", eventBus.published[0].GetEventType())
}

func TestConverseHandlerWithRAG(t *testing.T) {
	p := seedGraphProject("user-1")
	repo := newFakeProjectRepo(p)
	chat := &fakeChat{jsonResp: map[string]interface{}{"title": "T", "content": "C"}}
	vectors := &fakeVectors{passages: []ports.ScoredPassage{
		{Text: "passage one", Score: 0.9},
		{Text: "passage two", Score: 0.8},
	}}
	h := NewConverseHandler(repo, chat, vectors, &fakeEventBus{}, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.ConverseCommand{
		UserID:       "user-1",
		ProjectID:    p.ID,
		ParentNodeID: "root",
		Prompt:       "How big is the market?",
		UseRAG:       true,
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", vectors.lastUser)
	assert.Equal(t, "How big is the market?", vectors.lastQuery)
	assert.Contains(t, chat.lastPrompt, "passage one"+ai.PassageSeparator+"passage two")
	assert.NotContains(t, chat.lastPrompt, ai.NoDocumentsSentinel)
}

func TestConverseHandlerProjectNotFound(t *testing.T) {
	h := NewConverseHandler(newFakeProjectRepo(), &fakeChat{}, &fakeVectors{}, &fakeEventBus{}, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.ConverseCommand{
		UserID:       "user-1",
		ProjectID:    "missing",
		ParentNodeID: "root",
		Prompt:       "hello",
	})
	assert.True(t, appErrors.IsNotFound(err))
}

func TestConverseHandlerOwnershipIsolation(t *testing.T) {
	p := seedGraphProject("owner")
	repo := newFakeProjectRepo(p)
	h := NewConverseHandler(repo, &fakeChat{}, &fakeVectors{}, &fakeEventBus{}, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.ConverseCommand{
		UserID:       "intruder",
		ProjectID:    p.ID,
		ParentNodeID: "root",
		Prompt:       "hello",
	})
	assert.True(t, appErrors.IsNotFound(err), "foreign projects must look like they do not exist")
}

func TestRegenerateNodeHandler(t *testing.T) {
	p := seedGraphProject("user-1")
	repo := newFakeProjectRepo(p)
	chat := &fakeChat{textResp: "Fresh content."}
	h := NewRegenerateNodeHandler(repo, chat, zap.NewNop())

	result, err := h.Handle(context.Background(), commands.RegenerateNodeCommand{
		UserID:    "user-1",
		ProjectID: p.ID,
		NodeID:    "child",
		NewPrompt: "Try again with freemium",
	})
	require.NoError(t, err)

	node, ok := result.(*project.Node)
	require.True(t, ok)
	assert.Equal(t, "Fresh content.", node.Data.Label)
	assert.Equal(t, "Try again with freemium", node.Data.Prompt)

	// History is built from the parent, not the node being rewritten.
	assert.Contains(t, chat.lastPrompt, "An app for dog walkers")
	assert.Contains(t, chat.lastPrompt, "Try again with freemium")

	stored, _ := p.FindNode("child")
	assert.Equal(t, "Fresh content.", stored.Data.Label)
	assert.Equal(t, 1, repo.saves)
}

func TestRegenerateNodeHandlerRootRejected(t *testing.T) {
	p := seedGraphProject("user-1")
	h := NewRegenerateNodeHandler(newFakeProjectRepo(p), &fakeChat{}, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.RegenerateNodeCommand{
		UserID:    "user-1",
		ProjectID: p.ID,
		NodeID:    "root",
		NewPrompt: "rewrite",
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))
}

func TestRegenerateNodeHandlerMissingNode(t *testing.T) {
	p := seedGraphProject("user-1")
	h := NewRegenerateNodeHandler(newFakeProjectRepo(p), &fakeChat{}, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.RegenerateNodeCommand{
		UserID:    "user-1",
		ProjectID: p.ID,
		NodeID:    "ghost",
		NewPrompt: "rewrite",
	})
	assert.True(t, appErrors.IsNotFound(err))
}

func TestDeleteNodeHandler(t *testing.T) {
	p := seedGraphProject("user-1")
	repo := newFakeProjectRepo(p)
	eventBus := &fakeEventBus{}
	h := NewDeleteNodeHandler(repo, eventBus, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.DeleteNodeCommand{
		UserID:    "user-1",
		ProjectID: p.ID,
		NodeID:    "child",
	})
	require.NoError(t, err)

	_, found := p.FindNode("child")
	assert.False(t, found)
	assert.Empty(t, p.Edges)
	require.Len(t, eventBus.published, 1)
	assert.Equal(t, "project.node_removed", eventBus.published[0].GetEventType())
}

func TestDeleteNodeHandlerMissing(t *testing.T) {
	p := seedGraphProject("user-1")
	repo := newFakeProjectRepo(p)
	h := NewDeleteNodeHandler(repo, &fakeEventBus{}, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.DeleteNodeCommand{
		UserID:    "user-1",
		ProjectID: p.ID,
		NodeID:    "ghost",
	})
	assert.True(t, appErrors.IsNotFound(err))
	assert.Equal(t, 0, repo.saves)
}

func TestUpdatePositionsHandler(t *testing.T) {
	p := seedGraphProject("user-1")
	repo := newFakeProjectRepo(p)
	h := NewUpdatePositionsHandler(repo, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.UpdatePositionsCommand{
		UserID:    "user-1",
		ProjectID: p.ID,
		Positions: map[string]project.Position{
			"root":  {X: 100, Y: 200},
			"ghost": {X: 1, Y: 1},
		},
	})
	require.NoError(t, err)

	root, _ := p.FindNode("root")
	assert.Equal(t, project.Position{X: 100, Y: 200}, root.Position)
	assert.Equal(t, 1, repo.saves)
}

func TestUpdatePositionsHandlerAllUnknownStillSaves(t *testing.T) {
	p := seedGraphProject("user-1")
	repo := newFakeProjectRepo(p)
	h := NewUpdatePositionsHandler(repo, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.UpdatePositionsCommand{
		UserID:    "user-1",
		ProjectID: p.ID,
		Positions: map[string]project.Position{"ghost": {X: 1, Y: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.saves)

	root, _ := p.FindNode("root")
	assert.Equal(t, project.Position{}, root.Position)
}

func TestRateProjectHandler(t *testing.T) {
	p := seedGraphProject("user-1")
	repo := newFakeProjectRepo(p)
	chat := &fakeChat{jsonResp: map[string]interface{}{
		"opportunity": float64(7),
		"problem":     float64(6),
		"feasibility": float64(8),
		"why_now":     float64(5),
		"feedback":    "Pro: a\nPro: b\nPro: c\nCon: d\nCon: e\nCon: f",
	}}
	h := NewRateProjectHandler(repo, chat, zap.NewNop())

	result, err := h.Handle(context.Background(), commands.RateProjectCommand{
		UserID:    "user-1",
		ProjectID: p.ID,
	})
	require.NoError(t, err)

	rated := result.(*project.Project)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 7, rated.Rating.Opportunity)
	assert.Equal(t, 5, rated.Rating.WhyNow)
	assert.Contains(t, rated.Rating.Feedback, "Pro: a")
	assert.Equal(t, 1, repo.saves)
}

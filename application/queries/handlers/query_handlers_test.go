package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ideagraph-backend/application/queries"
	"ideagraph-backend/domain/pitch"
	"ideagraph-backend/domain/project"
	appErrors "ideagraph-backend/pkg/errors"
)

type fakeProjectRepo struct {
	stored map[string]*project.Project
}

func newFakeProjectRepo(projects ...*project.Project) *fakeProjectRepo {
	repo := &fakeProjectRepo{stored: make(map[string]*project.Project)}
	for _, p := range projects {
		repo.stored[p.ID] = p
	}
	return repo
}

func (f *fakeProjectRepo) Save(ctx context.Context, p *project.Project) error {
	f.stored[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) FindByID(ctx context.Context, userID, projectID string) (*project.Project, error) {
	p, ok := f.stored[projectID]
	if !ok || p.UserID != userID {
		return nil, appErrors.NewNotFoundError("project")
	}
	return p, nil
}

func (f *fakeProjectRepo) FindByUser(ctx context.Context, userID string) ([]*project.Project, error) {
	var out []*project.Project
	for _, p := range f.stored {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakePitchRepo struct {
	stored map[string]*pitch.StealthPitch
}

func newFakePitchRepo(pitches ...*pitch.StealthPitch) *fakePitchRepo {
	repo := &fakePitchRepo{stored: make(map[string]*pitch.StealthPitch)}
	for _, p := range pitches {
		repo.stored[p.ID] = p
	}
	return repo
}

func (f *fakePitchRepo) Save(ctx context.Context, p *pitch.StealthPitch) error {
	f.stored[p.ID] = p
	return nil
}

func (f *fakePitchRepo) FindByID(ctx context.Context, pitchID string) (*pitch.StealthPitch, error) {
	p, ok := f.stored[pitchID]
	if !ok {
		return nil, appErrors.NewNotFoundError("pitch")
	}
	return p, nil
}

func (f *fakePitchRepo) FindAll(ctx context.Context) ([]*pitch.StealthPitch, error) {
	var out []*pitch.StealthPitch
	for _, p := range f.stored {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePitchRepo) Delete(ctx context.Context, pitchID string) error {
	delete(f.stored, pitchID)
	return nil
}

type fakeChat struct {
	jsonResp   map[string]interface{}
	jsonErr    error
	textResp   string
	textErr    error
	lastPrompt string
}

func (f *fakeChat) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastPrompt = userPrompt
	return f.textResp, f.textErr
}

func (f *fakeChat) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema map[string]interface{}) (map[string]interface{}, error) {
	f.lastPrompt = userPrompt
	if f.jsonErr != nil {
		return nil, f.jsonErr
	}
	return f.jsonResp, nil
}

func researchProject(userID string) *project.Project {
	return project.New(userID, "Research", []project.Node{
		{ID: "root", Data: project.NodeData{Label: "An app for dog walkers"}},
		{ID: "child", Data: project.NodeData{Label: "Subscription pricing"}},
	}, []project.Edge{
		{ID: "e1", Source: "root", Target: "child"},
	})
}

func TestGetProjectHandler(t *testing.T) {
	p := researchProject("user-1")
	h := NewGetProjectHandler(newFakeProjectRepo(p), zap.NewNop())

	result, err := h.Handle(context.Background(), queries.GetProjectQuery{UserID: "user-1", ProjectID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, p, result)

	_, err = h.Handle(context.Background(), queries.GetProjectQuery{UserID: "other", ProjectID: p.ID})
	assert.True(t, appErrors.IsNotFound(err))
}

func TestListProjectsHandler(t *testing.T) {
	mine := researchProject("user-1")
	theirs := researchProject("user-2")
	h := NewListProjectsHandler(newFakeProjectRepo(mine, theirs), zap.NewNop())

	result, err := h.Handle(context.Background(), queries.ListProjectsQuery{UserID: "user-1"})
	require.NoError(t, err)

	list := result.([]*project.Project)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)
}

func TestSynthesizeProjectHandler(t *testing.T) {
	p := researchProject("user-1")
	chat := &fakeChat{textResp: "# Report\n\nBody."}
	h := NewSynthesizeProjectHandler(newFakeProjectRepo(p), chat, zap.NewNop())

	result, err := h.Handle(context.Background(), queries.SynthesizeProjectQuery{UserID: "user-1", ProjectID: p.ID})
	require.NoError(t, err)

	res := result.(*queries.SynthesizeProjectResult)
	assert.Equal(t, "# Report\n\nBody.", res.Document)
	assert.Contains(t, chat.lastPrompt, "An app for dog walkers")
	assert.Contains(t, chat.lastPrompt, "  - Subscription pricing")
}

func TestSynthesizeProjectHandlerEmptyProject(t *testing.T) {
	p := project.New("user-1", "Blank", nil, nil)
	chat := &fakeChat{textResp: "should not be called"}
	h := NewSynthesizeProjectHandler(newFakeProjectRepo(p), chat, zap.NewNop())

	_, err := h.Handle(context.Background(), queries.SynthesizeProjectQuery{UserID: "user-1", ProjectID: p.ID})
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))
	assert.Empty(t, chat.lastPrompt, "empty projects must be rejected before calling the model")
}

func TestGeneratePitchHandler(t *testing.T) {
	p := researchProject("user-1")
	chat := &fakeChat{textResp: "Has anyone tried walking dogs for a living?"}
	h := NewGeneratePitchHandler(newFakeProjectRepo(p), chat, zap.NewNop())

	result, err := h.Handle(context.Background(), queries.GeneratePitchQuery{
		UserID:           "user-1",
		ProjectID:        p.ID,
		ValidationMetric: "willingness to pay",
	})
	require.NoError(t, err)

	res := result.(*queries.GeneratePitchResult)
	assert.NotEmpty(t, res.Pitch)
	assert.Contains(t, chat.lastPrompt, "willingness to pay")
}

func TestGeneratePitchHandlerEmptyProject(t *testing.T) {
	p := project.New("user-1", "Blank", nil, nil)
	h := NewGeneratePitchHandler(newFakeProjectRepo(p), &fakeChat{}, zap.NewNop())

	_, err := h.Handle(context.Background(), queries.GeneratePitchQuery{
		UserID:           "user-1",
		ProjectID:        p.ID,
		ValidationMetric: "signups",
	})
	assert.True(t, appErrors.IsValidation(err))
}

func TestAnalyzeIdeaHandlerStructured(t *testing.T) {
	chat := &fakeChat{jsonResp: map[string]interface{}{
		"analysis":   "### Critical Analysis\n\nSolid.",
		"variations": []interface{}{"A: one", "B: two", "C: three", "D: four", "E: five"},
	}}
	h := NewAnalyzeIdeaHandler(chat, zap.NewNop())

	result, err := h.Handle(context.Background(), queries.AnalyzeIdeaQuery{UserID: "u", Idea: "fridge dating"})
	require.NoError(t, err)

	res := result.(*queries.AnalyzeIdeaResult)
	assert.Contains(t, res.Analysis, "Critical Analysis")
	assert.Len(t, res.Variations, 5)
	assert.Contains(t, chat.lastPrompt, "fridge dating")
}

func TestAnalyzeIdeaHandlerFallsBackToExtraction(t *testing.T) {
	chat := &fakeChat{
		jsonErr:  assert.AnError,
		textResp: "Sure! Here you go: {\"analysis\": \"ok\", \"variations\": [\"X: y\"]} Cheers.",
	}
	h := NewAnalyzeIdeaHandler(chat, zap.NewNop())

	result, err := h.Handle(context.Background(), queries.AnalyzeIdeaQuery{UserID: "u", Idea: "idea"})
	require.NoError(t, err)

	res := result.(*queries.AnalyzeIdeaResult)
	assert.Equal(t, "ok", res.Analysis)
	assert.Equal(t, []string{"X: y"}, res.Variations)
}

func TestAnalyzeIdeaHandlerMalformedFallback(t *testing.T) {
	chat := &fakeChat{
		jsonErr:  assert.AnError,
		textResp: "the model refused",
	}
	h := NewAnalyzeIdeaHandler(chat, zap.NewNop())

	_, err := h.Handle(context.Background(), queries.AnalyzeIdeaQuery{UserID: "u", Idea: "idea"})
	require.Error(t, err)
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeExternal))
}

func TestListPitchesHandler(t *testing.T) {
	a := pitch.New("u1", "A", "text a", 0)
	b := pitch.New("u2", "B", "text b", 0)
	h := NewListPitchesHandler(newFakePitchRepo(a, b), zap.NewNop())

	result, err := h.Handle(context.Background(), queries.ListPitchesQuery{})
	require.NoError(t, err)
	assert.Len(t, result.([]*pitch.StealthPitch), 2)
}

func TestGetPitchHandler(t *testing.T) {
	a := pitch.New("u1", "A", "text a", 0)
	h := NewGetPitchHandler(newFakePitchRepo(a), zap.NewNop())

	result, err := h.Handle(context.Background(), queries.GetPitchQuery{PitchID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, a, result)

	_, err = h.Handle(context.Background(), queries.GetPitchQuery{PitchID: "missing"})
	assert.True(t, appErrors.IsNotFound(err))
}

package handlers

import (
	"context"

	"ideagraph-backend/application/ports"
	"ideagraph-backend/domain/events"
	"ideagraph-backend/domain/pitch"
	"ideagraph-backend/domain/project"
	appErrors "ideagraph-backend/pkg/errors"
)

type fakeProjectRepo struct {
	stored  map[string]*project.Project
	saveErr error
	saves   int
}

func newFakeProjectRepo(projects ...*project.Project) *fakeProjectRepo {
	repo := &fakeProjectRepo{stored: make(map[string]*project.Project)}
	for _, p := range projects {
		repo.stored[p.ID] = p
	}
	return repo
}

func (f *fakeProjectRepo) Save(ctx context.Context, p *project.Project) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
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
	stored  map[string]*pitch.StealthPitch
	deleted []string
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
	f.deleted = append(f.deleted, pitchID)
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

type fakeVectors struct {
	passages  []ports.ScoredPassage
	queryErr  error
	lastQuery string
	upserts   [][]string
	lastUser  string
}

func (f *fakeVectors) UpsertChunks(ctx context.Context, userID string, chunks []string, metadata map[string]string) error {
	f.lastUser = userID
	f.upserts = append(f.upserts, chunks)
	return nil
}

func (f *fakeVectors) Query(ctx context.Context, userID, query string, topK int) ([]ports.ScoredPassage, error) {
	f.lastUser = userID
	f.lastQuery = query
	return f.passages, f.queryErr
}

type fakeEventBus struct {
	published []events.DomainEvent
	err       error
}

func (f *fakeEventBus) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, evts...)
	return nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	return f.text, f.err
}

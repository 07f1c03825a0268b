package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ideagraph-backend/application/commands"
	"ideagraph-backend/domain/pitch"
	appErrors "ideagraph-backend/pkg/errors"
)

func TestCreatePitchHandler(t *testing.T) {
	repo := newFakePitchRepo()
	eventBus := &fakeEventBus{}
	h := NewCreatePitchHandler(repo, eventBus, zap.NewNop())

	result, err := h.Handle(context.Background(), commands.CreatePitchCommand{
		UserID: "founder",
		Title:  "Big thing",
		Pitch:  "We are building something big.",
		Amount: 50000,
	})
	require.NoError(t, err)

	p := result.(*pitch.StealthPitch)
	assert.Equal(t, "founder", p.UserID)
	assert.Equal(t, "Big thing", p.Title)
	assert.Contains(t, repo.stored, p.ID)
	require.Len(t, eventBus.published, 1)
	assert.Equal(t, "pitch.created", eventBus.published[0].GetEventType())
}

func TestVotePitchHandler(t *testing.T) {
	tests := []struct {
		name  string
		votes []string
		check func(t *testing.T, p *pitch.StealthPitch)
	}{
		{
			name:  "like",
			votes: []string{commands.VoteLike},
			check: func(t *testing.T, p *pitch.StealthPitch) {
				assert.Equal(t, []string{"voter"}, p.Likes)
			},
		},
		{
			name:  "like then dislike switches sides",
			votes: []string{commands.VoteLike, commands.VoteDislike},
			check: func(t *testing.T, p *pitch.StealthPitch) {
				assert.Empty(t, p.Likes)
				assert.Equal(t, []string{"voter"}, p.Dislikes)
			},
		},
		{
			name:  "repeated approve stays single",
			votes: []string{commands.VoteApprove, commands.VoteApprove},
			check: func(t *testing.T, p *pitch.StealthPitch) {
				assert.Equal(t, []string{"voter"}, p.Approves)
			},
		},
		{
			name:  "reject clears approve",
			votes: []string{commands.VoteApprove, commands.VoteReject},
			check: func(t *testing.T, p *pitch.StealthPitch) {
				assert.Empty(t, p.Approves)
				assert.Equal(t, []string{"voter"}, p.Rejects)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pitch.New("owner", "Pitch", "text", 0)
			repo := newFakePitchRepo(p)
			h := NewVotePitchHandler(repo, &fakeEventBus{}, zap.NewNop())

			for _, vote := range tt.votes {
				_, err := h.Handle(context.Background(), commands.VotePitchCommand{
					UserID:  "voter",
					PitchID: p.ID,
					Vote:    vote,
				})
				require.NoError(t, err)
			}
			tt.check(t, repo.stored[p.ID])
		})
	}
}

func TestVotePitchHandlerNotFound(t *testing.T) {
	h := NewVotePitchHandler(newFakePitchRepo(), &fakeEventBus{}, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.VotePitchCommand{
		UserID:  "voter",
		PitchID: "missing",
		Vote:    commands.VoteLike,
	})
	assert.True(t, appErrors.IsNotFound(err))
}

func TestEditPitchHandlerOwnerOnly(t *testing.T) {
	p := pitch.New("owner", "Old", "old text", 0)
	repo := newFakePitchRepo(p)
	h := NewEditPitchHandler(repo, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.EditPitchCommand{
		UserID:  "stranger",
		PitchID: p.ID,
		Title:   "Hijacked",
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeUnauthorized))
	assert.Equal(t, "Old", repo.stored[p.ID].Title)

	result, err := h.Handle(context.Background(), commands.EditPitchCommand{
		UserID:  "owner",
		PitchID: p.ID,
		Title:   "New",
		Pitch:   "new text",
	})
	require.NoError(t, err)
	edited := result.(*pitch.StealthPitch)
	assert.Equal(t, "New", edited.Title)
	assert.Equal(t, "new text", edited.Pitch)
}

func TestDeletePitchHandlerOwnerOnly(t *testing.T) {
	p := pitch.New("owner", "Pitch", "text", 0)
	repo := newFakePitchRepo(p)
	h := NewDeletePitchHandler(repo, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.DeletePitchCommand{
		UserID:  "stranger",
		PitchID: p.ID,
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeUnauthorized))
	assert.Contains(t, repo.stored, p.ID)

	_, err = h.Handle(context.Background(), commands.DeletePitchCommand{
		UserID:  "owner",
		PitchID: p.ID,
	})
	require.NoError(t, err)
	assert.NotContains(t, repo.stored, p.ID)
}

func TestAddCommentHandlerReturnsFullThread(t *testing.T) {
	p := pitch.New("owner", "Pitch", "text", 0)
	p.AddComment("alice", "first!")
	repo := newFakePitchRepo(p)
	h := NewAddCommentHandler(repo, zap.NewNop())

	result, err := h.Handle(context.Background(), commands.AddCommentCommand{
		UserID:  "commenter",
		PitchID: p.ID,
		Text:    "love it",
	})
	require.NoError(t, err)

	comments := result.([]pitch.Comment)
	require.Len(t, comments, 2)
	assert.Equal(t, "alice", comments[0].UserID)
	assert.Equal(t, "commenter", comments[1].UserID)
	assert.Equal(t, "love it", comments[1].Text)
	require.Len(t, repo.stored[p.ID].Comments, 2)
}

func TestDeleteCommentHandler(t *testing.T) {
	p := pitch.New("owner", "Pitch", "text", 0)
	c := p.AddComment("alice", "mine")
	repo := newFakePitchRepo(p)
	h := NewDeleteCommentHandler(repo, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.DeleteCommentCommand{
		UserID:    "bob",
		PitchID:   p.ID,
		CommentID: c.ID,
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeUnauthorized))

	_, err = h.Handle(context.Background(), commands.DeleteCommentCommand{
		UserID:    "alice",
		PitchID:   p.ID,
		CommentID: c.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, repo.stored[p.ID].Comments)

	_, err = h.Handle(context.Background(), commands.DeleteCommentCommand{
		UserID:    "alice",
		PitchID:   p.ID,
		CommentID: "missing",
	})
	assert.True(t, appErrors.IsNotFound(err))
}

func TestIndexDocumentHandler(t *testing.T) {
	extractor := &fakeExtractor{text: "Some extracted document text that is long enough to index."}
	vectors := &fakeVectors{}
	h := NewIndexDocumentHandler(extractor, vectors, zap.NewNop())

	result, err := h.Handle(context.Background(), commands.IndexDocumentCommand{
		UserID:   "user-1",
		FileName: "pitchdeck.pdf",
		Data:     []byte("%PDF-1.4 ..."),
	})
	require.NoError(t, err)

	res := result.(*IndexDocumentResult)
	assert.Equal(t, "pitchdeck.pdf", res.FileName)
	assert.Equal(t, 1, res.Chunks)
	assert.Equal(t, "user-1", vectors.lastUser)
	require.Len(t, vectors.upserts, 1)
}

func TestIndexDocumentHandlerEmptyText(t *testing.T) {
	h := NewIndexDocumentHandler(&fakeExtractor{text: "   "}, &fakeVectors{}, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.IndexDocumentCommand{
		UserID:   "user-1",
		FileName: "empty.pdf",
		Data:     []byte("x"),
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))
}

func TestIndexDocumentHandlerExtractFailure(t *testing.T) {
	h := NewIndexDocumentHandler(&fakeExtractor{err: assert.AnError}, &fakeVectors{}, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.IndexDocumentCommand{
		UserID:   "user-1",
		FileName: "broken.pdf",
		Data:     []byte("x"),
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))
}

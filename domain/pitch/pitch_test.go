package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	p := New("user-1", "", "we are building something big", 50000)

	assert.Equal(t, "Untitled Stealth Pitch", p.Title)
	assert.Equal(t, "user-1", p.UserID)
	assert.NotEmpty(t, p.ID)
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Comments)
	assert.Equal(t, int64(0), p.Version)
}

func TestLikeDislikeExclusive(t *testing.T) {
	p := New("owner", "Pitch", "text", 0)

	p.Like("voter")
	assert.Equal(t, []string{"voter"}, p.Likes)
	assert.Empty(t, p.Dislikes)

	// Switching sides clears the previous vote.
	p.Dislike("voter")
	assert.Empty(t, p.Likes)
	assert.Equal(t, []string{"voter"}, p.Dislikes)

	p.Like("voter")
	assert.Equal(t, []string{"voter"}, p.Likes)
	assert.Empty(t, p.Dislikes)
}

func TestLikeIdempotent(t *testing.T) {
	p := New("owner", "Pitch", "text", 0)

	p.Like("voter")
	p.Like("voter")
	p.Like("voter")

	assert.Equal(t, []string{"voter"}, p.Likes)
}

func TestApproveRejectExclusive(t *testing.T) {
	p := New("owner", "Pitch", "text", 0)

	p.Approve("vc")
	p.Reject("vc")
	assert.Empty(t, p.Approves)
	assert.Equal(t, []string{"vc"}, p.Rejects)

	p.Approve("vc")
	p.Approve("vc")
	assert.Equal(t, []string{"vc"}, p.Approves)
	assert.Empty(t, p.Rejects)
}

func TestVotePairsIndependent(t *testing.T) {
	p := New("owner", "Pitch", "text", 0)

	// Liking and approving are separate axes.
	p.Like("voter")
	p.Approve("voter")

	assert.Equal(t, []string{"voter"}, p.Likes)
	assert.Equal(t, []string{"voter"}, p.Approves)
}

func TestMultipleVoters(t *testing.T) {
	p := New("owner", "Pitch", "text", 0)

	p.Like("a")
	p.Like("b")
	p.Dislike("c")

	assert.ElementsMatch(t, []string{"a", "b"}, p.Likes)
	assert.Equal(t, []string{"c"}, p.Dislikes)
}

func TestAddComment(t *testing.T) {
	p := New("owner", "Pitch", "text", 0)

	c := p.AddComment("commenter", "interesting idea")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "commenter", c.UserID)
	assert.Equal(t, "interesting idea", c.Text)
	assert.False(t, c.CreatedAt.IsZero())
	require.Len(t, p.Comments, 1)
	assert.Equal(t, c, p.Comments[0])
}

func TestDeleteComment(t *testing.T) {
	p := New("owner", "Pitch", "text", 0)
	c1 := p.AddComment("alice", "first")
	c2 := p.AddComment("bob", "second")

	// Only the author may delete.
	found, owned := p.DeleteComment(c1.ID, "bob")
	assert.True(t, found)
	assert.False(t, owned)
	assert.Len(t, p.Comments, 2)

	found, owned = p.DeleteComment(c1.ID, "alice")
	assert.True(t, found)
	assert.True(t, owned)
	require.Len(t, p.Comments, 1)
	assert.Equal(t, c2.ID, p.Comments[0].ID)

	found, _ = p.DeleteComment("missing", "alice")
	assert.False(t, found)
}

func TestEdit(t *testing.T) {
	p := New("owner", "Old Title", "old text", 0)

	p.Edit("New Title", "new text")
	assert.Equal(t, "New Title", p.Title)
	assert.Equal(t, "new text", p.Pitch)

	// Empty fields leave the current value alone.
	p.Edit("", "")
	assert.Equal(t, "New Title", p.Title)
	assert.Equal(t, "new text", p.Pitch)
}

func TestIsOwner(t *testing.T) {
	p := New("owner", "Pitch", "text", 0)

	assert.True(t, p.IsOwner("owner"))
	assert.False(t, p.IsOwner("stranger"))
}

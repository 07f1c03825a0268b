// Package pitch holds the stealth pitch aggregate: an anonymized project
// pitch published to the community feed, with vote sets and comments.
package pitch

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a single community comment on a pitch.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// StealthPitch is the aggregate root. The four vote slices behave as
// sets of user IDs; likes/dislikes and approves/rejects are mutually
// exclusive pairs.
type StealthPitch struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Pitch     string    `json:"pitch"`
	Amount    float64   `json:"amount,omitempty"`
	Likes     []string  `json:"likes"`
	Dislikes  []string  `json:"dislikes"`
	Approves  []string  `json:"approves"`
	Rejects   []string  `json:"rejects"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Version   int64     `json:"version"`
}

// New creates a pitch owned by userID.
func New(userID, title, text string, amount float64) *StealthPitch {
	now := time.Now()
	if title == "" {
		title = "Untitled Stealth Pitch"
	}
	return &StealthPitch{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Pitch:     text,
		Amount:    amount,
		Likes:     []string{},
		Dislikes:  []string{},
		Approves:  []string{},
		Rejects:   []string{},
		Comments:  []Comment{},
		CreatedAt: now,
		UpdatedAt: now,
		Version:   0,
	}
}

// IsOwner reports whether userID created the pitch.
func (p *StealthPitch) IsOwner(userID string) bool {
	return p.UserID == userID
}

// Edit replaces the pitch title and text.
func (p *StealthPitch) Edit(title, text string) {
	if title != "" {
		p.Title = title
	}
	if text != "" {
		p.Pitch = text
	}
	p.touch()
}

// Like records a like from userID and clears any dislike. Repeated likes
// are idempotent.
func (p *StealthPitch) Like(userID string) {
	p.Dislikes = remove(p.Dislikes, userID)
	p.Likes = addToSet(p.Likes, userID)
	p.touch()
}

// Dislike records a dislike from userID and clears any like.
func (p *StealthPitch) Dislike(userID string) {
	p.Likes = remove(p.Likes, userID)
	p.Dislikes = addToSet(p.Dislikes, userID)
	p.touch()
}

// Approve records an approval from userID and clears any rejection.
func (p *StealthPitch) Approve(userID string) {
	p.Rejects = remove(p.Rejects, userID)
	p.Approves = addToSet(p.Approves, userID)
	p.touch()
}

// Reject records a rejection from userID and clears any approval.
func (p *StealthPitch) Reject(userID string) {
	p.Approves = remove(p.Approves, userID)
	p.Rejects = addToSet(p.Rejects, userID)
	p.touch()
}

// AddComment appends a comment from userID and returns it.
func (p *StealthPitch) AddComment(userID, text string) Comment {
	comment := Comment{
		ID:        uuid.New().String(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	p.Comments = append(p.Comments, comment)
	p.touch()
	return comment
}

// DeleteComment removes a comment if it exists and userID is its author.
// The second return distinguishes a missing comment from someone else's.
func (p *StealthPitch) DeleteComment(commentID, userID string) (found, owned bool) {
	for i, c := range p.Comments {
		if c.ID != commentID {
			continue
		}
		if c.UserID != userID {
			return true, false
		}
		p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
		p.touch()
		return true, true
	}
	return false, false
}

func (p *StealthPitch) touch() {
	p.UpdatedAt = time.Now()
}

func addToSet(set []string, id string) []string {
	for _, existing := range set {
		if existing == id {
			return set
		}
	}
	return append(set, id)
}

func remove(set []string, id string) []string {
	for i, existing := range set {
		if existing == id {
			return append(set[:i], set[i+1:]...)
		}
	}
	return set
}

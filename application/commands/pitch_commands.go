package commands

import "errors"

// Vote kinds accepted by VotePitchCommand.
const (
	VoteLike    = "like"
	VoteDislike = "dislike"
	VoteApprove = "approve"
	VoteReject  = "reject"
)

// CreatePitchCommand publishes a stealth pitch to the community feed
type CreatePitchCommand struct {
	UserID string
	Title  string
	Pitch  string
	Amount float64
}

// Validate validates the command
func (c CreatePitchCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.Pitch == "" {
		return errors.New("pitch content is required")
	}
	return nil
}

// VotePitchCommand records a vote on a pitch. Like/dislike and
// approve/reject are mutually exclusive pairs.
type VotePitchCommand struct {
	UserID  string
	PitchID string
	Vote    string
}

// Validate validates the command
func (c VotePitchCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.PitchID == "" {
		return errors.New("pitch ID is required")
	}
	switch c.Vote {
	case VoteLike, VoteDislike, VoteApprove, VoteReject:
		return nil
	default:
		return errors.New("vote must be one of: like, dislike, approve, reject")
	}
}

// EditPitchCommand updates a pitch's title and content. Owner only.
type EditPitchCommand struct {
	UserID  string
	PitchID string
	Title   string
	Pitch   string
}

// Validate validates the command
func (c EditPitchCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.PitchID == "" {
		return errors.New("pitch ID is required")
	}
	if c.Title == "" && c.Pitch == "" {
		return errors.New("nothing to update")
	}
	return nil
}

// DeletePitchCommand removes a pitch from the feed. Owner only.
type DeletePitchCommand struct {
	UserID  string
	PitchID string
}

// Validate validates the command
func (c DeletePitchCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.PitchID == "" {
		return errors.New("pitch ID is required")
	}
	return nil
}

// AddCommentCommand adds a comment to a pitch
type AddCommentCommand struct {
	UserID  string
	PitchID string
	Text    string
}

// Validate validates the command
func (c AddCommentCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.PitchID == "" {
		return errors.New("pitch ID is required")
	}
	if c.Text == "" {
		return errors.New("comment text is required")
	}
	return nil
}

// DeleteCommentCommand removes a comment. Author only.
type DeleteCommentCommand struct {
	UserID    string
	PitchID   string
	CommentID string
}

// Validate validates the command
func (c DeleteCommentCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.PitchID == "" {
		return errors.New("pitch ID is required")
	}
	if c.CommentID == "" {
		return errors.New("comment ID is required")
	}
	return nil
}

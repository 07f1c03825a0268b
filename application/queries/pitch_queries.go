package queries

import "errors"

// ListPitchesQuery fetches the public stealth pitch feed, newest first.
// No user scoping; the feed is readable without authentication.
type ListPitchesQuery struct{}

// Validate validates the ListPitchesQuery
func (q ListPitchesQuery) Validate() error {
	return nil
}

// GetPitchQuery fetches a single pitch by ID
type GetPitchQuery struct {
	PitchID string
}

// Validate validates the GetPitchQuery
func (q GetPitchQuery) Validate() error {
	if q.PitchID == "" {
		return errors.New("pitch ID is required")
	}
	return nil
}

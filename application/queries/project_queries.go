package queries

import "errors"

// GetProjectQuery fetches a single project owned by the caller
type GetProjectQuery struct {
	UserID    string
	ProjectID string
}

// Validate validates the GetProjectQuery
func (q GetProjectQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.ProjectID == "" {
		return errors.New("project ID is required")
	}
	return nil
}

// ListProjectsQuery fetches all of the caller's projects, newest first
type ListProjectsQuery struct {
	UserID string
}

// Validate validates the ListProjectsQuery
func (q ListProjectsQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// SynthesizeProjectQuery renders the whole research graph into a
// Markdown report. Read-only; the report is not persisted.
type SynthesizeProjectQuery struct {
	UserID    string
	ProjectID string
}

// Validate validates the SynthesizeProjectQuery
func (q SynthesizeProjectQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.ProjectID == "" {
		return errors.New("project ID is required")
	}
	return nil
}

// SynthesizeProjectResult carries the generated report
type SynthesizeProjectResult struct {
	Document string `json:"document"`
}

// GeneratePitchQuery writes a stealth validation pitch for the project
// targeting a chosen validation metric.
type GeneratePitchQuery struct {
	UserID           string
	ProjectID        string
	ValidationMetric string
}

// Validate validates the GeneratePitchQuery
func (q GeneratePitchQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.ProjectID == "" {
		return errors.New("project ID is required")
	}
	if q.ValidationMetric == "" {
		return errors.New("a validation metric is required")
	}
	return nil
}

// GeneratePitchResult carries the generated pitch text
type GeneratePitchResult struct {
	Pitch string `json:"pitch"`
}

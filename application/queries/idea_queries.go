package queries

import "errors"

// AnalyzeIdeaQuery critiques a raw idea and proposes five variations.
// Stateless; nothing is persisted.
type AnalyzeIdeaQuery struct {
	UserID string
	Idea   string
}

// Validate validates the AnalyzeIdeaQuery
func (q AnalyzeIdeaQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.Idea == "" {
		return errors.New("idea text is required")
	}
	return nil
}

// AnalyzeIdeaResult is the parsed model response
type AnalyzeIdeaResult struct {
	Analysis   string   `json:"analysis"`
	Variations []string `json:"variations"`
}

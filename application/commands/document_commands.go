package commands

import "errors"

// IndexDocumentCommand extracts text from an uploaded document, chunks
// it and stores the chunks in the caller's vector namespace for RAG.
type IndexDocumentCommand struct {
	UserID   string
	FileName string
	Data     []byte
}

// Validate validates the command
func (c IndexDocumentCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.FileName == "" {
		return errors.New("file name is required")
	}
	if len(c.Data) == 0 {
		return errors.New("file content is required")
	}
	return nil
}

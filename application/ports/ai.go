package ports

import "context"

// ChatModel abstracts the LLM used for conversation, synthesis, rating
// and pitch generation.
type ChatModel interface {
	// GenerateText returns a plain text completion for the prompt
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// GenerateJSON returns a completion constrained to the given JSON
	// schema, decoded into a generic map. schema is a JSON Schema
	// document in the provider's dialect.
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema map[string]interface{}) (map[string]interface{}, error)
}

// Embedder turns text into embedding vectors
type Embedder interface {
	// Embed returns one vector per input text
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// ScoredPassage is a retrieved document chunk with its similarity score
type ScoredPassage struct {
	Text  string
	Score float32
}

// VectorStore indexes document chunks per user and retrieves the most
// relevant passages for a query.
type VectorStore interface {
	// UpsertChunks embeds and stores text chunks in the user's namespace
	UpsertChunks(ctx context.Context, userID string, chunks []string, metadata map[string]string) error

	// Query retrieves the topK most relevant passages for the query text
	// from the user's namespace.
	Query(ctx context.Context, userID, query string, topK int) ([]ScoredPassage, error)
}

// DocumentExtractor pulls plain text out of an uploaded document
type DocumentExtractor interface {
	// Extract returns the document's text content
	Extract(ctx context.Context, data []byte) (string, error)
}

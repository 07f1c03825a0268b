package pinecone

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ideagraph-backend/application/ports"
	appErrors "ideagraph-backend/pkg/errors"
)

// textMetadataKey stores the chunk text alongside its vector so queries
// can return passages without a second lookup.
const textMetadataKey = "text"

// StoreConfig holds vector store configuration
type StoreConfig struct {
	IndexName string
	IndexHost string
	NSPrefix  string
}

// VectorStore implements ports.VectorStore on a Pinecone index, one
// namespace per user.
type VectorStore struct {
	pc        Client
	embedder  ports.Embedder
	indexName string
	indexHost string
	nsPrefix  string
	logger    *zap.Logger
}

// NewVectorStore creates the store. When IndexHost is empty it is
// resolved once via describe_index; set it explicitly in production.
func NewVectorStore(pc Client, embedder ports.Embedder, cfg StoreConfig, logger *zap.Logger) (*VectorStore, error) {
	if pc == nil {
		return nil, fmt.Errorf("pinecone client required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if strings.TrimSpace(cfg.IndexName) == "" {
		return nil, fmt.Errorf("pinecone index name required")
	}
	if cfg.NSPrefix == "" {
		cfg.NSPrefix = "ig"
	}

	host := strings.TrimSpace(cfg.IndexHost)
	if host == "" {
		desc, err := pc.DescribeIndex(context.Background(), cfg.IndexName)
		if err != nil {
			return nil, fmt.Errorf("pinecone describe_index failed: %w", err)
		}
		host = desc.Host
		logger.Warn("pinecone index host not set; resolved via describe_index",
			zap.String("index_name", cfg.IndexName),
			zap.String("index_host", host))
	}

	return &VectorStore{
		pc:        pc,
		embedder:  embedder,
		indexName: cfg.IndexName,
		indexHost: host,
		nsPrefix:  cfg.NSPrefix,
		logger:    logger,
	}, nil
}

// UpsertChunks embeds and stores text chunks in the user's namespace
func (s *VectorStore) UpsertChunks(ctx context.Context, userID string, chunks []string, metadata map[string]string) error {
	if len(chunks) == 0 {
		return nil
	}

	embeddings, err := s.embedder.Embed(ctx, chunks)
	if err != nil {
		return err
	}
	if len(embeddings) != len(chunks) {
		return appErrors.NewExternalError("pinecone",
			fmt.Errorf("embedded %d of %d chunks", len(embeddings), len(chunks)))
	}

	vectors := make([]Vector, len(chunks))
	for i, chunk := range chunks {
		meta := map[string]interface{}{textMetadataKey: chunk}
		for k, v := range metadata {
			meta[k] = v
		}
		vectors[i] = Vector{
			ID:       uuid.New().String(),
			Values:   embeddings[i],
			Metadata: meta,
		}
	}

	_, err = s.pc.UpsertVectors(ctx, s.indexHost, UpsertRequest{
		Namespace: s.qualifyNamespace(userID),
		Vectors:   vectors,
	})
	if err != nil {
		return appErrors.NewExternalError("pinecone", err)
	}
	return nil
}

// Query retrieves the topK most relevant passages for the query text
func (s *VectorStore) Query(ctx context.Context, userID, query string, topK int) ([]ports.ScoredPassage, error) {
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, appErrors.NewExternalError("pinecone", fmt.Errorf("query embedding missing"))
	}

	resp, err := s.pc.Query(ctx, s.indexHost, QueryRequest{
		Namespace:       s.qualifyNamespace(userID),
		Vector:          vectors[0],
		TopK:            topK,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, appErrors.NewExternalError("pinecone", err)
	}

	passages := make([]ports.ScoredPassage, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		text, _ := m.Metadata[textMetadataKey].(string)
		if text == "" {
			continue
		}
		passages = append(passages, ports.ScoredPassage{
			Text:  text,
			Score: float32(m.Score),
		})
	}
	return passages, nil
}

func (s *VectorStore) qualifyNamespace(ns string) string {
	ns = strings.TrimSpace(ns)
	if ns == "" {
		return s.nsPrefix
	}
	return s.nsPrefix + ":" + ns
}

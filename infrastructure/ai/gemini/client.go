// Package gemini is a minimal REST client for the Gemini generateContent
// and embedContent APIs. It backs both the ChatModel and Embedder ports.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "ideagraph-backend/pkg/errors"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Config holds Gemini client configuration
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	EmbedModel string
	Timeout    time.Duration
	MaxRetries int
}

// Client calls the Gemini REST API. It implements ports.ChatModel and
// ports.Embedder.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Gemini client
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = "text-embedding-004"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
}

// Wire types for generateContent.

type part struct {
	Text string `json:"text,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string                 `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]interface{} `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// GenerateText returns a plain text completion
func (c *Client) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := c.buildRequest(systemPrompt, userPrompt, nil)

	text, err := c.generate(ctx, req)
	if err != nil {
		return "", appErrors.NewExternalError("gemini", err)
	}
	return text, nil
}

// GenerateJSON returns a completion constrained to the given schema,
// decoded into a generic map.
func (c *Client) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema map[string]interface{}) (map[string]interface{}, error) {
	req := c.buildRequest(systemPrompt, userPrompt, schema)

	text, err := c.generate(ctx, req)
	if err != nil {
		return nil, appErrors.NewExternalError("gemini", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, appErrors.NewExternalError("gemini", fmt.Errorf("structured response is not valid JSON: %w", err))
	}
	return out, nil
}

func (c *Client) buildRequest(systemPrompt, userPrompt string, schema map[string]interface{}) generateRequest {
	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: userPrompt}}}},
	}
	if systemPrompt != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: systemPrompt}}}
	}
	if schema != nil {
		req.GenerationConfig = &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		}
	}
	return req
}

func (c *Client) generate(ctx context.Context, req generateRequest) (string, error) {
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.cfg.Model)

	var resp generateResponse
	if err := c.do(ctx, path, req, &resp); err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// Wire types for batchEmbedContents.

type embedRequestItem struct {
	Model   string  `json:"model"`
	Content content `json:"content"`
}

type batchEmbedRequest struct {
	Requests []embedRequestItem `json:"requests"`
}

type batchEmbedResponse struct {
	Embeddings []struct {
		Values []float32 `json:"values"`
	} `json:"embeddings"`
}

// Embed returns one vector per input text
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	req := batchEmbedRequest{Requests: make([]embedRequestItem, len(texts))}
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			text = " "
		}
		req.Requests[i] = embedRequestItem{
			Model:   "models/" + c.cfg.EmbedModel,
			Content: content{Parts: []part{{Text: text}}},
		}
	}

	path := fmt.Sprintf("/v1beta/models/%s:batchEmbedContents", c.cfg.EmbedModel)

	var resp batchEmbedResponse
	if err := c.do(ctx, path, req, &resp); err != nil {
		return nil, appErrors.NewExternalError("gemini", err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, appErrors.NewExternalError("gemini",
			fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings)))
	}

	out := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		out[i] = e.Values
	}
	return out, nil
}

// do posts body to path with bounded retries on throttling and server
// errors.
func (c *Client) do(ctx context.Context, path string, body, out interface{}) error {
	backoff := time.Second

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := c.doOnce(ctx, path, body, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == c.cfg.MaxRetries {
			return err
		}

		c.logger.Warn("gemini request retrying",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff *= 2
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	url := c.cfg.BaseURL + path + "?key=" + c.cfg.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &httpError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("gemini decode error: %w", err)
	}
	return nil
}

func isRetryable(err error) bool {
	if httpErr, ok := err.(*httpError); ok {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	// Transport-level failures (timeouts, resets) are worth one more try.
	return true
}

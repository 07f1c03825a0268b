// Package ingestion extracts text from uploaded documents before they
// are chunked and indexed for retrieval.
package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PDFExtractor implements ports.DocumentExtractor for PDF uploads
type PDFExtractor struct {
	logger *zap.Logger
}

// NewPDFExtractor creates a PDF text extractor
func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// Extract returns the plain text content of a PDF document
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	text := strings.TrimSpace(sb.String())
	e.logger.Debug("extracted PDF text",
		zap.Int("pages", reader.NumPage()),
		zap.Int("bytes", len(text)))
	return text, nil
}

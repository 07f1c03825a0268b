// Package jsonx extracts JSON objects from loosely formatted model output.
//
// Structured output mode makes this unnecessary for newer models, but the
// extractor remains the fallback for responses that wrap JSON in prose or
// markdown fences.
package jsonx

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractObject locates the outermost JSON object in raw text and unmarshals
// it into out. Text before the first '{' and after the last '}' is discarded,
// and control characters that commonly leak into model output are stripped
// before parsing.
func ExtractObject(raw string, out interface{}) error {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("no JSON object found in text")
	}

	candidate := stripControlChars(raw[start : end+1])

	if err := json.Unmarshal([]byte(candidate), out); err != nil {
		return fmt.Errorf("failed to parse extracted JSON: %w", err)
	}
	return nil
}

// stripControlChars removes C0/C1 control characters and non-breaking spaces.
// Model output occasionally contains these inside string values, which makes
// encoding/json reject the document.
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r <= 0x1F:
			return -1
		case r >= 0x7F && r <= 0x9F:
			return -1
		case r == 0xA0:
			return -1
		}
		return r
	}, s)
}

package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObject(t *testing.T) {
	type analysis struct {
		Analysis   string   `json:"analysis"`
		Variations []string `json:"variations"`
	}

	tests := []struct {
		name    string
		raw     string
		wantErr bool
		check   func(t *testing.T, got analysis)
	}{
		{
			name: "bare JSON object",
			raw:  `{"analysis": "solid", "variations": ["a", "b"]}`,
			check: func(t *testing.T, got analysis) {
				assert.Equal(t, "solid", got.Analysis)
				assert.Len(t, got.Variations, 2)
			},
		},
		{
			name: "JSON inside markdown fence",
			raw:  "```json\n{\"analysis\": \"niche\", \"variations\": []}\n```",
			check: func(t *testing.T, got analysis) {
				assert.Equal(t, "niche", got.Analysis)
			},
		},
		{
			name: "prose before and after",
			raw:  `Here is my assessment: {"analysis": "ok", "variations": ["x"]} Hope that helps!`,
			check: func(t *testing.T, got analysis) {
				assert.Equal(t, "ok", got.Analysis)
				assert.Equal(t, []string{"x"}, got.Variations)
			},
		},
		{
			name: "embedded control characters",
			raw:  "{\"analysis\": \"line\u0001one\u00a0two\", \"variations\": []}",
			check: func(t *testing.T, got analysis) {
				assert.Equal(t, "lineonetwo", got.Analysis)
			},
		},
		{
			name:    "no braces at all",
			raw:     "the model refused to answer",
			wantErr: true,
		},
		{
			name:    "closing brace before opening brace",
			raw:     "} nonsense {",
			wantErr: true,
		},
		{
			name:    "braces around invalid JSON",
			raw:     "{this is not json}",
			wantErr: true,
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got analysis
			err := ExtractObject(tt.raw, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestExtractObjectNestedBraces(t *testing.T) {
	var got map[string]interface{}
	err := ExtractObject(`noise {"outer": {"inner": 1}} trailing`, &got)
	require.NoError(t, err)

	outer, ok := got["outer"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), outer["inner"])
}

package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type qa struct {
	Question string `json:"question"`
	Type     string `json:"type"`
}

func TestExtractArray(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{
			name: "bare JSON array",
			raw:  `[{"question":"Q1","type":"text"},{"question":"Q2"}]`,
			want: 2,
		},
		{
			name: "fenced with json tag",
			raw:  "```json\n[{\"question\":\"Q1\",\"type\":\"text\"}]\n```",
			want: 1,
		},
		{
			name: "fenced without tag",
			raw:  "```\n[{\"question\":\"Q1\"}]\n```",
			want: 1,
		},
		{
			name: "array embedded in prose",
			raw:  "Here are the questions you asked for:\n[{\"question\":\"Q1\",\"type\":\"text\"}]\nLet me know if you need more.",
			want: 1,
		},
		{
			name: "multiline pretty-printed",
			raw:  "[\n  { \"question\": \"Q1\", \"type\": \"text\" },\n  { \"question\": \"Q2\", \"type\": \"text\" }\n]",
			want: 2,
		},
		{
			name:    "truncated output",
			raw:     `[{"question":"Q1","type":"te`,
			wantErr: true,
		},
		{
			name:    "plain refusal text",
			raw:     "I'm sorry, I can't produce questions for this role.",
			wantErr: true,
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var parsed []qa
			err := ExtractArray(tt.raw, &parsed)
			if tt.wantErr {
				require.Error(t, err)
				var malformed *MalformedOutputError
				require.True(t, errors.As(err, &malformed))
				assert.Equal(t, tt.raw, malformed.Raw, "raw text must be preserved for diagnosis")
				return
			}
			require.NoError(t, err)
			assert.Len(t, parsed, tt.want)
		})
	}
}

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "bare object", raw: `{"score":85,"strengths":["a"],"weaknesses":[],"recommendation":"ok"}`},
		{name: "object in prose", raw: "Analysis complete.\n{\"score\": 70, \"recommendation\": \"maybe\"}\nThanks."},
		{name: "fenced object", raw: "```json\n{\"score\": 50}\n```"},
		{name: "no JSON at all", raw: "the candidate seems fine", wantErr: true},
		{name: "unbalanced braces", raw: `{"score": 85,`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var parsed map[string]interface{}
			err := ExtractObject(tt.raw, &parsed)
			if tt.wantErr {
				var malformed *MalformedOutputError
				require.True(t, errors.As(err, &malformed))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, parsed, "score")
		})
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences(`{"a":1}`))
	assert.Equal(t, "", StripFences("``````"))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAIJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			name:  "pure JSON",
			input: `{"query": "snake plant", "limit": 3}`,
			want:  map[string]interface{}{"query": "snake plant", "limit": float64(3)},
		},
		{
			name:  "fenced block",
			input: "```json\n{\"query\": \"pothos\"}\n```",
			want:  map[string]interface{}{"query": "pothos"},
		},
		{
			name:  "surrounding prose",
			input: `Calling the tool with {"query": "ferns"} now.`,
			want:  map[string]interface{}{"query": "ferns"},
		},
		{
			name:  "trailing comma",
			input: `{"query": "cactus",}`,
			want:  map[string]interface{}{"query": "cactus"},
		},
		{
			name:  "unquoted keys",
			input: `{query: "orchid"}`,
			want:  map[string]interface{}{"query": "orchid"},
		},
		{
			name:  "single quotes",
			input: `{'query': 'low light plants'}`,
			want:  map[string]interface{}{"query": "low light plants"},
		},
		{name: "empty", input: "   ", wantErr: true},
		{name: "not JSON", input: "not json at all", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			err := ParseAIJSON(tt.input, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToolQuery(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{"query key", `{"query": "pet safe plants"}`, "pet safe plants"},
		{"alternate key", `{"tool_input": "monstera"}`, "monstera"},
		{"single unknown key", `{"q": "ferns"}`, "ferns"},
		{"JSON string", `"succulents"`, "succulents"},
		{"raw text", "beginner plants", "beginner plants"},
		{"empty object", `{}`, ""},
		{"blank", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToolQuery(tt.args))
		})
	}
}

func TestExtractBalanced(t *testing.T) {
	assert.Equal(t, `{"a": {"b": 2}}`, extractBalanced(`{"a": {"b": 2}} tail`, '{', '}'))
	assert.Equal(t, `{"text": "Hello {world}"}`, extractBalanced(`{"text": "Hello {world}"}`, '{', '}'))
	assert.Equal(t, "", extractBalanced(`{"open": 1`, '{', '}'))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab...", Truncate("abcdef", 2))
}

package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n[\"Go\", \"SQL\"]\n```",
			expected: `["Go", "SQL"]`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "preamble before object",
			input:    "Here is the parsed resume:\n{\"personalInfo\": {\"fullName\": \"Jane\"}}",
			expected: `{"personalInfo": {"fullName": "Jane"}}`,
		},
		{
			name:     "preamble before array",
			input:    "Suggested skills:\n[\"Go\", \"Kubernetes\"]",
			expected: `["Go", "Kubernetes"]`,
		},
		{
			name:     "trailing text",
			input:    "{\"key\": \"value\"}\n\nLet me know if you need anything else!",
			expected: `{"key": "value"}`,
		},
		{
			name:     "escaped quotes",
			input:    `Result: {"message": "He said \"hi {there}\""}`,
			expected: `{"message": "He said \"hi {there}\""}`,
		},
		{
			name:     "no JSON",
			input:    "  sorry, I cannot help  ",
			expected: "sorry, I cannot help",
		},
		{
			name:     "unbalanced",
			input:    `{"key": "value"`,
			expected: `{"key": "value"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "nested", input: `{"outer": {"inner": "value"}}`, expected: `{"outer": {"inner": "value"}}`},
		{name: "object with array", input: `{"items": [1, 2, 3]} rest`, expected: `{"items": [1, 2, 3]}`},
		{name: "braces in string", input: `{"template": "Hello {name}!"}`, expected: `{"template": "Hello {name}!"}`},
		{name: "empty input", input: "", expected: ""},
		{name: "not an object", input: "not json", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSONObject(tt.input))
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	assert.Equal(t, `[[1, 2], [3, 4]]`, extractJSONArray(`[[1, 2], [3, 4]] extra`))
	assert.Equal(t, `["a]", "b"]`, extractJSONArray(`["a]", "b"]`))
	assert.Equal(t, "", extractJSONArray(`{"a": 1}`))
}

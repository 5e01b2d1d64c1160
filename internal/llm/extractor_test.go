package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt_WithText(t *testing.T) {
	prompt := BuildExtractionPrompt(ResumeImportSchema(), "Jane Doe\nSoftware Engineer")

	assert.Contains(t, prompt, "expert resume parser")
	assert.Contains(t, prompt, `"personalInfo": {"fullName"`)
	assert.Contains(t, prompt, `"skills": [{"name"`)
	assert.Contains(t, prompt, "(required)")
	assert.Contains(t, prompt, "Input text:\n\"\"\"\nJane Doe\nSoftware Engineer\n\"\"\"")
	assert.NotContains(t, prompt, "attached")
}

func TestBuildExtractionPrompt_AttachedDocument(t *testing.T) {
	prompt := BuildExtractionPrompt(ResumeImportSchema(), "")

	assert.Contains(t, prompt, "The source document is attached.")
	assert.NotContains(t, prompt, "Input text:")
}

func TestBuildExtractionPrompt_DefaultTypeHint(t *testing.T) {
	schema := ExtractionSchema{
		Description: "Extract.",
		Fields:      []SchemaField{{Name: "a"}, {Name: "b", Type: "[\"string\"]", Description: "list"}},
	}

	prompt := BuildExtractionPrompt(schema, "x")

	assert.Contains(t, prompt, "  \"a\": string,\n")
	assert.Contains(t, prompt, "  \"b\": [\"string\"] // list\n")
}

func TestStringListSchema(t *testing.T) {
	schema := StringListSchema()

	assert.Equal(t, genai.TypeArray, schema.Type)
	assert.Equal(t, genai.TypeString, schema.Items.Type)
}

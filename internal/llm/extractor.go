package llm

import (
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "ResumeImport")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint rendered into the prompt
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
// An empty inputText means the source is attached as an inline document.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		fmt.Fprintf(&sb, "  \"%s\": %s%s", field.Name, typeHint, requiredHint)
		if field.Description != "" {
			fmt.Fprintf(&sb, " // %s", field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the source, do not invent or summarize.\n")
	sb.WriteString("- Omit fields that are not present in the source.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	if inputText == "" {
		sb.WriteString("The source document is attached.\n")
		return sb.String()
	}
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// ResumeImportSchema returns the extraction schema for turning an existing resume
// into the editor's partial resume shape. Ids are never requested.
func ResumeImportSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ResumeImport",
		Description: `You are an expert resume parser. Extract the candidate's details from the resume below.
Copy names, titles, dates and bullet points as written. Keep bullet points in the description as lines starting with "• ".`,
		Fields: []SchemaField{
			{
				Name:        "personalInfo",
				Type:        `{"fullName": "string", "email": "string", "phone": "string", "location": "string", "linkedin": "string", "website": "string", "summary": "string", "jobTitle": "string"}`,
				Description: "Contact details, professional summary and current or target job title",
				Required:    true,
			},
			{
				Name:        "experience",
				Type:        `[{"company": "string", "position": "string", "startDate": "string", "endDate": "string", "current": boolean, "description": "string"}]`,
				Description: "Work history, most recent first; current is true when the role has no end date",
				Required:    true,
			},
			{
				Name:        "education",
				Type:        `[{"institution": "string", "degree": "string", "fieldOfStudy": "string", "startDate": "string", "endDate": "string"}]`,
				Description: "Degrees and schools",
				Required:    true,
			},
			{
				Name:        "skills",
				Type:        `[{"name": "string", "level": "Beginner" | "Intermediate" | "Expert"}]`,
				Description: "Skills; level only when the resume states it",
				Required:    true,
			},
		},
	}
}

// StringListSchema is a response schema for a JSON array of strings.
func StringListSchema() *genai.Schema {
	return &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
}

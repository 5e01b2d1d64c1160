package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ResumeImport(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{name: "empty object", content: `{}`, valid: true},
		{
			name: "full import",
			content: `{
				"personalInfo": {"fullName": "Jane", "email": "jane@example.com"},
				"experience": [{"company": "Acme", "position": "Engineer", "current": true}],
				"education": [{"institution": "MIT", "degree": "BSc"}],
				"skills": [{"name": "Go", "level": "Expert"}, {"name": "SQL"}]
			}`,
			valid: true,
		},
		{
			name: "null fields and lists",
			content: `{
				"personalInfo": {"fullName": "Jane", "email": null},
				"experience": [{"company": "Acme", "endDate": null, "current": null}],
				"education": null,
				"skills": [{"name": "Go", "level": null}]
			}`,
			valid: true,
		},
		{name: "null skills and personal info", content: `{"personalInfo": null, "skills": null}`, valid: true},
		{name: "null skill name", content: `{"skills": [{"name": null}]}`},
		{name: "unknown level is tolerated", content: `{"skills": [{"name": "Go", "level": "Guru"}]}`, valid: true},
		{name: "current as string", content: `{"experience": [{"current": "yes"}]}`},
		{name: "skills as strings", content: `{"skills": ["Go", "SQL"]}`},
		{name: "skill without name", content: `{"skills": [{"level": "Expert"}]}`},
		{name: "array root", content: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(ResumeImport, tt.content)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidate_ResumeData(t *testing.T) {
	valid := `{
		"personalInfo": {"fullName": "Jane", "profileImage": null},
		"experience": [{"id": "1", "company": "Acme", "endDate": "", "current": true}],
		"skills": [{"id": "2", "name": "Go", "level": "Intermediate"}],
		"customSections": [{"id": "3", "title": "Awards", "items": [{"title": "Best paper"}]}],
		"theme": {"color": "#2563eb", "backgroundColor": "#ffffff", "font": "Lato"}
	}`
	assert.NoError(t, Validate(ResumeData, valid))

	err := Validate(ResumeData, `{"personalInfo": {}, "theme": {"color": "blue", "font": "Comic Sans"}}`)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Errors, 2)
	assert.Contains(t, err.Error(), "resume_data.schema.json validation failed")

	assert.Error(t, Validate(ResumeData, `{}`))
}

func TestValidate_NotJSON(t *testing.T) {
	err := Validate(ResumeImport, `{"personalInfo": `)

	var docErr *DocumentError
	assert.True(t, errors.As(err, &docErr))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", `{}`)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "missing.schema.json", loadErr.Path)
}

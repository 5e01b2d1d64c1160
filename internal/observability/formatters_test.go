package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestPrintImportSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	partial := &types.PartialResume{
		PersonalInfo: &types.PartialPersonalInfo{
			FullName: ptr("Jane Doe"),
			JobTitle: ptr("Staff Engineer"),
		},
		Experience: []types.Experience{
			{Company: "Acme", Position: "Engineer", StartDate: "2020", Tenure: types.Ongoing()},
			{Company: "Globex", Position: "Intern", StartDate: "2018", Tenure: types.Ended("2019")},
		},
		Education: []types.Education{{Institution: "MIT", Degree: "BSc"}},
		Skills:    []types.Skill{{Name: "Go", Level: types.LevelExpert}},
	}

	p.PrintImportSummary(partial)
	output := buf.String()

	assert.Contains(t, output, "IMPORTED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Staff Engineer")
	assert.Contains(t, output, "Email:     -")
	assert.Contains(t, output, "Summary:   no")
	assert.Contains(t, output, "Experience (2):")
	assert.Contains(t, output, "Engineer, Acme (2020 - Present)")
	assert.Contains(t, output, "Intern, Globex (2018 - 2019)")
	assert.Contains(t, output, "BSc, MIT")
	assert.Contains(t, output, "Go (Expert)")
}

func TestPrintImportSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintImportSummary(nil)

	assert.Empty(t, buf.String())
}

func TestPrintImportSummary_TruncatesLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	skills := make([]types.Skill, 8)
	for i := range skills {
		skills[i] = types.Skill{Name: "skill", Level: types.LevelBeginner}
	}
	p.PrintImportSummary(&types.PartialResume{Skills: skills})

	assert.Contains(t, buf.String(), "... and 3 more")
	assert.Equal(t, maxItemsToShow, strings.Count(buf.String(), "skill ("))
}

func TestPrintResumeOverview(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	data := types.ResumeData{
		PersonalInfo:   types.PersonalInfo{FullName: "Jane Doe"},
		Skills:         []types.Skill{{Name: "Go"}, {Name: "SQL"}},
		CustomSections: []types.CustomSection{{Title: "Awards"}},
		Theme:          types.Theme{Font: types.FontLato, Color: "#2563eb", BackgroundColor: "#ffffff"},
	}
	p.PrintResumeOverview(data)
	output := buf.String()

	assert.Contains(t, output, "RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Skills:          2")
	assert.Contains(t, output, "Custom sections: 1")
	assert.Contains(t, output, "Lato, #2563eb on #ffffff")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("é", 100))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "no dates", dateRange("", types.Ended("")))
	assert.Equal(t, "Present", dateRange("", types.Ongoing()))
	assert.Equal(t, "2020", dateRange("2020", types.Ended("")))
	assert.Equal(t, "2020 - 2021", dateRange("2020", types.Ended("2021")))
}

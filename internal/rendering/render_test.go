package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func renderDoc(t *testing.T, data types.ResumeData) *goquery.Document {
	t.Helper()
	html, err := RenderHTML(data)
	require.NoError(t, err)
	return parseHTML(t, html)
}

func sampleResume() types.ResumeData {
	data := types.NewResumeData()
	image := "data:image/png;base64,iVBORw0KGgo="
	data.PersonalInfo = types.PersonalInfo{
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		Phone:        "+1 (555) 123-4567",
		Location:     "Berlin",
		LinkedIn:     "linkedin.com/in/jane",
		Website:      "https://www.jane.dev",
		Summary:      "Builds things.",
		JobTitle:     "Staff Engineer",
		ProfileImage: &image,
	}
	data.Experience = []types.Experience{
		{ID: "e1", Company: "Acme", Position: "Engineer", StartDate: "2020", Tenure: types.NewTenure("2022", true), Description: "Line one\nLine two"},
		{ID: "e2", Company: "Initech", Position: "Intern", StartDate: "2018", Tenure: types.Ended("2019")},
	}
	data.Education = []types.Education{
		{ID: "d1", Institution: "MIT", Degree: "BSc", StartDate: "2014", Tenure: types.Ended("2018")},
	}
	data.Skills = []types.Skill{
		{ID: "s1", Name: "Go", Level: types.LevelExpert},
		{ID: "s2", Name: "SQL", Level: types.LevelIntermediate},
	}
	data.CustomSections = []types.CustomSection{
		{ID: "c1", Title: "Projects", Items: []types.CustomItem{
			{ID: "i1", Title: "Compiler", Subtitle: "ACME", Date: "2023"},
			{ID: "i2", Title: "Parser", Subtitle: "ACME"},
		}},
		{ID: "c2", Title: "Empty", Items: []types.CustomItem{}},
	}
	return data
}

func TestRenderHTML_EmptyResumeShowsPlaceholders(t *testing.T) {
	doc := renderDoc(t, types.NewResumeData())

	assert.Equal(t, NamePlaceholder, doc.Find("h1.name").Text())
	assert.Equal(t, JobTitlePlaceholder, doc.Find("p.job-title").Text())
	assert.Equal(t, "Resume", doc.Find("title").Text())
	assert.Zero(t, doc.Find(".contacts").Length())
	assert.Zero(t, doc.Find("img.avatar").Length())
	for _, sel := range []string{".section-summary", ".section-experience", ".section-education", ".section-skills", ".section-custom"} {
		assert.Zero(t, doc.Find(sel).Length(), sel)
	}
}

func TestRenderHTML_Header(t *testing.T) {
	doc := renderDoc(t, sampleResume())

	assert.Equal(t, "Jane Doe", doc.Find("h1.name").Text())
	assert.Equal(t, "Staff Engineer", doc.Find("p.job-title").Text())
	assert.Equal(t, "Jane Doe - Resume", doc.Find("title").Text())

	var kinds []string
	doc.Find(".contacts .contact").Each(func(_ int, s *goquery.Selection) {
		kinds = append(kinds, strings.TrimPrefix(s.AttrOr("class", ""), "contact contact-"))
	})
	assert.Equal(t, []string{"email", "phone", "location", "linkedin", "website"}, kinds)

	email := doc.Find(".contact-email")
	assert.Equal(t, "mailto:jane@example.com", email.AttrOr("href", ""))
	assert.Equal(t, "jane@example.com", email.Text())

	assert.Equal(t, "tel:+15551234567", doc.Find(".contact-phone").AttrOr("href", ""))

	location := doc.Find(".contact-location")
	assert.Equal(t, "div", goquery.NodeName(location))
	assert.Equal(t, "Berlin", location.Text())

	linkedin := doc.Find(".contact-linkedin")
	assert.Equal(t, "https://linkedin.com/in/jane", linkedin.AttrOr("href", ""))
	assert.Equal(t, "linkedin.com/in/jane", linkedin.Text())
	assert.Equal(t, "_blank", linkedin.AttrOr("target", ""))

	website := doc.Find(".contact-website")
	assert.Equal(t, "https://www.jane.dev", website.AttrOr("href", ""))
	assert.Equal(t, "jane.dev", website.Text())

	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", doc.Find("img.avatar").AttrOr("src", ""))
}

func TestRenderHTML_OmitsEmptyContacts(t *testing.T) {
	data := types.NewResumeData()
	data.PersonalInfo.Email = "a@b.c"
	data.PersonalInfo.Website = "example.org"
	doc := renderDoc(t, data)

	assert.Equal(t, 2, doc.Find(".contacts .contact").Length())
	assert.Zero(t, doc.Find(".contact-phone").Length())
	assert.Equal(t, "https://example.org", doc.Find(".contact-website").AttrOr("href", ""))
}

func TestRenderHTML_RejectsNonImageAvatar(t *testing.T) {
	data := types.NewResumeData()
	bad := "javascript:alert(1)"
	data.PersonalInfo.ProfileImage = &bad
	doc := renderDoc(t, data)

	assert.Zero(t, doc.Find("img.avatar").Length())
}

func TestRenderHTML_Experience(t *testing.T) {
	doc := renderDoc(t, sampleResume())

	entries := doc.Find(".section-experience .entry")
	require.Equal(t, 2, entries.Length())

	first := entries.Eq(0)
	assert.Equal(t, "e1", first.AttrOr("data-id", ""))
	assert.Equal(t, "Engineer", first.Find(".entry-title").Text())
	assert.Equal(t, "Acme", first.Find(".entry-org").Text())
	assert.Equal(t, "2020 – Present", first.Find(".entry-tag").Text())
	assert.Equal(t, "Line one\nLine two", first.Find(".prose").Text())

	assert.Equal(t, "2018 – 2019", entries.Eq(1).Find(".entry-tag").Text())
}

func TestRenderHTML_OngoingHidesStoredEndDate(t *testing.T) {
	data := sampleResume()
	data.Education[0].Tenure = types.NewTenure("2018", true)
	doc := renderDoc(t, data)

	assert.Equal(t, "2014 - Present", doc.Find(".section-education .entry-dates").Text())
	assert.NotContains(t, doc.Find(".section-experience .entry").Eq(0).Text(), "2022")
}

func TestRenderHTML_Sidebar(t *testing.T) {
	doc := renderDoc(t, sampleResume())

	edu := doc.Find(".side-column .section-education .entry")
	require.Equal(t, 1, edu.Length())
	assert.Equal(t, "MIT", edu.Find(".entry-title").Text())
	assert.Equal(t, "BSc", edu.Find(".entry-degree").Text())
	assert.Equal(t, "2014 - 2018", edu.Find(".entry-dates").Text())

	var skills []string
	doc.Find(".side-column .skill").Each(func(_ int, s *goquery.Selection) {
		skills = append(skills, s.Text())
	})
	assert.Equal(t, []string{"Go", "SQL"}, skills)
}

func TestRenderHTML_CustomItemTagPrecedence(t *testing.T) {
	doc := renderDoc(t, sampleResume())

	sections := doc.Find(".section-custom")
	require.Equal(t, 1, sections.Length(), "sections without items are skipped")
	assert.Equal(t, "Projects", sections.Find("h2").Text())

	items := sections.Find(".entry")
	require.Equal(t, 2, items.Length())

	dated := items.Eq(0)
	assert.Equal(t, "2023", dated.Find(".entry-tag").Text())
	assert.Zero(t, dated.Find(".entry-subtitle").Length())

	undated := items.Eq(1)
	assert.Equal(t, "ACME", undated.Find(".entry-tag").Text())
	assert.Equal(t, "ACME", undated.Find(".entry-subtitle").Text())
}

func TestRenderHTML_EscapesUserContent(t *testing.T) {
	data := types.NewResumeData()
	data.PersonalInfo.FullName = `<script>alert("x")</script>`
	data.PersonalInfo.Website = `javascript:alert(1)`

	html, err := RenderHTML(data)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")

	doc := parseHTML(t, html)
	assert.Equal(t, `<script>alert("x")</script>`, doc.Find("h1.name").Text())
	assert.NotContains(t, doc.Find(".contact-website").AttrOr("href", ""), "javascript:")
}

func TestRenderHTML_Deterministic(t *testing.T) {
	data := sampleResume()

	first, err := RenderHTML(data)
	require.NoError(t, err)
	second, err := RenderHTML(data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderHTML_AppliesTheme(t *testing.T) {
	data := sampleResume()
	data.Theme = types.Theme{Color: "#059669", BackgroundColor: "#fffbeb", Font: types.FontOpenSans}

	html, err := RenderHTML(data)
	require.NoError(t, err)

	assert.Contains(t, html, ".theme-text { color: #059669; }")
	assert.Contains(t, html, "rgba(5, 150, 105, 0.1)")
	assert.Contains(t, html, `font-family: "Open Sans", sans-serif;`)
	fontHref := parseHTML(t, html).Find(`link[rel="stylesheet"]`).AttrOr("href", "")
	assert.Contains(t, fontHref, "family=Open+Sans")
}

func TestRenderPrintHTML(t *testing.T) {
	screen, err := RenderHTML(sampleResume())
	require.NoError(t, err)
	assert.NotContains(t, screen, "window.print")

	printable, err := RenderPrintHTML(sampleResume())
	require.NoError(t, err)
	assert.Contains(t, printable, "window.print")
	assert.Contains(t, printable, "print-color-adjust: exact")
	assert.Contains(t, printable, "@media print")
}

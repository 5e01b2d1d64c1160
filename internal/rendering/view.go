package rendering

import (
	"html/template"

	"github.com/jonathan/resume-builder/internal/types"
)

// Placeholders shown while the header fields are empty.
const (
	NamePlaceholder     = "Your Name"
	JobTitlePlaceholder = "Target Job Title"
)

// Section headings
const (
	HeadingSummary    = "Professional Summary"
	HeadingExperience = "Work Experience"
	HeadingEducation  = "Education"
	HeadingSkills     = "Skills"
)

// pageView is the template input. Everything the template prints is decided here.
type pageView struct {
	Title      string
	FontURL    string
	ThemeCSS   template.CSS
	AutoPrint  bool
	PrintDelay int
	Name       string
	JobTitle   string
	Contacts   []contactView
	Avatar     template.URL
	HasAvatar  bool
	Summary    string
	Experience []experienceView
	Sections   []sectionView
	Education  []educationView
	Skills     []string
}

type contactView struct {
	Kind     string // email, phone, location, linkedin, website
	Text     string
	Href     any // string or template.URL; empty when not a link
	External bool
}

type experienceView struct {
	ID          string
	Position    string
	Company     string
	Dates       string
	Description string
}

type educationView struct {
	ID          string
	Institution string
	Degree      string
	Dates       string
}

type sectionView struct {
	ID    string
	Title string
	Items []itemView
}

type itemView struct {
	ID           string
	Title        string
	Tag          string
	Subtitle     string
	ShowSubtitle bool
	Description  string
}

func buildView(data types.ResumeData) pageView {
	info := data.PersonalInfo
	v := pageView{
		Title:    "Resume",
		FontURL:  fontStylesheetURL(data.Theme.Font),
		ThemeCSS: themeCSS(data.Theme),
		Name:     orDefault(info.FullName, NamePlaceholder),
		JobTitle: orDefault(info.JobTitle, JobTitlePlaceholder),
		Contacts: contacts(info),
		Summary:  info.Summary,
	}
	if info.FullName != "" {
		v.Title = info.FullName + " - Resume"
	}
	if info.ProfileImage != nil {
		v.Avatar, v.HasAvatar = imageURL(*info.ProfileImage)
	}

	for _, e := range data.Experience {
		v.Experience = append(v.Experience, experienceView{
			ID:          e.ID,
			Position:    e.Position,
			Company:     e.Company,
			Dates:       e.StartDate + " – " + e.Tenure.Display(),
			Description: e.Description,
		})
	}
	for _, e := range data.Education {
		v.Education = append(v.Education, educationView{
			ID:          e.ID,
			Institution: e.Institution,
			Degree:      e.Degree,
			Dates:       e.StartDate + " - " + e.Tenure.Display(),
		})
	}
	for _, s := range data.Skills {
		v.Skills = append(v.Skills, s.Name)
	}
	for _, s := range data.CustomSections {
		if len(s.Items) == 0 {
			continue
		}
		section := sectionView{ID: s.ID, Title: s.Title}
		for _, item := range s.Items {
			tag := item.Date
			if tag == "" {
				tag = item.Subtitle
			}
			section.Items = append(section.Items, itemView{
				ID:           item.ID,
				Title:        item.Title,
				Tag:          tag,
				Subtitle:     item.Subtitle,
				ShowSubtitle: item.Subtitle != "" && item.Date == "",
				Description:  item.Description,
			})
		}
		v.Sections = append(v.Sections, section)
	}
	return v
}

func contacts(info types.PersonalInfo) []contactView {
	var out []contactView
	if info.Email != "" {
		out = append(out, contactView{Kind: "email", Text: info.Email, Href: mailtoURL(info.Email)})
	}
	if info.Phone != "" {
		out = append(out, contactView{Kind: "phone", Text: info.Phone, Href: telURL(info.Phone)})
	}
	if info.Location != "" {
		out = append(out, contactView{Kind: "location", Text: info.Location})
	}
	if info.LinkedIn != "" {
		out = append(out, contactView{Kind: "linkedin", Text: DisplayURL(info.LinkedIn), Href: EnsureURL(info.LinkedIn), External: true})
	}
	if info.Website != "" {
		out = append(out, contactView{Kind: "website", Text: DisplayURL(info.Website), Href: EnsureURL(info.Website), External: true})
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

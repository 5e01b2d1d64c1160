package editor

import (
	"strconv"

	"github.com/jonathan/resume-builder/internal/types"
)

// Field input kinds
const (
	InputText     = "text"
	InputEmail    = "email"
	InputTextarea = "textarea"
	InputCheckbox = "checkbox"
	InputFile     = "file"
)

// Field is one input of a step form.
type Field struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
	Value       string `json:"value"`
	Disabled    bool   `json:"disabled,omitempty"`
}

// Action is a button a step offers.
type Action struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
	Busy    bool   `json:"busy,omitempty"`
}

// Entry is one list item with its own fields, actions and, for custom
// sections, nested items.
type Entry struct {
	ID      string   `json:"id"`
	Fields  []Field  `json:"fields"`
	Actions []Action `json:"actions,omitempty"`
	Items   []Entry  `json:"items,omitempty"`
}

// Form describes what the editor shows for one wizard step.
type Form struct {
	Step     Step     `json:"step"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Fields   []Field  `json:"fields,omitempty"`
	Entries  []Entry  `json:"entries,omitempty"`
	Actions  []Action `json:"actions,omitempty"`
	Empty    string   `json:"empty,omitempty"` // shown when the step has no entries
	CanBack  bool     `json:"canBack"`
	CanNext  bool     `json:"canNext"`
}

// Forms builds the form for step from the current document and activity.
func Forms(step Step, data types.ResumeData, activity Activity) Form {
	f := Form{
		Step:    step,
		CanBack: step > StepPersonal,
		CanNext: step < StepFinalize,
	}
	idle := activity.IsIdle()
	hasJobTitle := data.PersonalInfo.JobTitle != ""

	switch step {
	case StepPersonal:
		f.Title = "Let's start with the basics"
		f.Subtitle = "Fill in your details or import from an existing resume."
		f.Fields = personalFields(data.PersonalInfo)
		generating := activity.Kind() == KindGeneratingSummary
		f.Actions = []Action{
			{Name: "import", Label: "Import Resume / LinkedIn", Enabled: idle, Busy: activity.Kind() == KindImporting},
			{Name: "upload-photo", Label: "Upload Photo", Enabled: true},
			{Name: "remove-photo", Label: "Remove Image", Enabled: data.PersonalInfo.ProfileImage != nil},
			{Name: "generate-summary", Label: busyLabel(generating, "Generating...", "Auto-Generate with AI"), Enabled: hasJobTitle && idle, Busy: generating},
		}

	case StepExperience:
		f.Title = "Work Experience"
		f.Empty = "No experience added yet."
		f.Actions = []Action{{Name: "add", Label: "Add Position", Enabled: true}}
		for _, e := range data.Experience {
			enhancingID, ok := activity.ExperienceID()
			enhancing := ok && enhancingID == e.ID
			f.Entries = append(f.Entries, Entry{
				ID:     e.ID,
				Fields: experienceFields(e),
				Actions: []Action{
					{Name: "enhance", Label: busyLabel(enhancing, "Enhancing...", "Enhance with AI"), Enabled: e.Description != "" && idle, Busy: enhancing},
					{Name: "remove", Label: "Remove", Enabled: true},
				},
			})
		}

	case StepEducation:
		f.Title = "Education"
		f.Empty = "No education added."
		f.Actions = []Action{{Name: "add", Label: "Add Education", Enabled: true}}
		for _, e := range data.Education {
			f.Entries = append(f.Entries, Entry{
				ID:      e.ID,
				Fields:  educationFields(e),
				Actions: []Action{{Name: "remove", Label: "Remove", Enabled: true}},
			})
		}

	case StepSkills:
		f.Title = "Skills"
		f.Subtitle = "Add your technical and soft skills."
		f.Empty = "No skills added yet."
		f.Fields = []Field{{Name: "name", Label: "Skill", Type: InputText, Placeholder: "Add a skill (e.g. React, Python)"}}
		f.Actions = []Action{
			{Name: "suggest-skills", Label: "Suggest Skills via AI", Enabled: hasJobTitle && idle, Busy: activity.Kind() == KindSuggestingSkills},
			{Name: "add-skill", Label: "Add", Enabled: true},
		}
		for _, s := range data.Skills {
			f.Entries = append(f.Entries, Entry{
				ID: s.ID,
				Fields: []Field{
					{Name: "name", Label: "Skill", Type: InputText, Value: s.Name},
					{Name: "level", Label: "Level", Type: InputText, Value: string(s.Level)},
				},
				Actions: []Action{{Name: "remove", Label: "Remove", Enabled: true}},
			})
		}

	case StepCustom:
		f.Title = "Custom Sections"
		f.Subtitle = "Add sections for Volunteer Work, Awards, Publications, etc."
		f.Empty = `No custom sections added. Click "Add Section" to begin.`
		f.Actions = []Action{{Name: "add", Label: "Add Section", Enabled: true}}
		for _, s := range data.CustomSections {
			entry := Entry{
				ID:     s.ID,
				Fields: []Field{{Name: "title", Label: "Section Title", Type: InputText, Placeholder: "e.g. Volunteer Experience", Value: s.Title}},
				Actions: []Action{
					{Name: "add-item", Label: "Add Item to " + s.Title, Enabled: true},
					{Name: "remove", Label: "Remove", Enabled: true},
				},
			}
			for _, item := range s.Items {
				entry.Items = append(entry.Items, Entry{
					ID:      item.ID,
					Fields:  customItemFields(item),
					Actions: []Action{{Name: "remove", Label: "Remove", Enabled: true}},
				})
			}
			f.Entries = append(f.Entries, entry)
		}

	case StepFinalize:
		f.Title = "Your Resume is Ready!"
		f.Subtitle = "Review your document in the preview panel. If everything looks good, download your professional resume."
		f.Actions = []Action{
			{Name: "print", Label: "Download / Print PDF", Enabled: true},
			{Name: "pdf", Label: "Download PDF", Enabled: true},
		}
	}
	return f
}

func personalFields(p types.PersonalInfo) []Field {
	image := ""
	if p.ProfileImage != nil {
		image = *p.ProfileImage
	}
	return []Field{
		{Name: "profileImage", Label: "Profile Photo (Optional)", Type: InputFile, Placeholder: "JPG or PNG. Max 2MB.", Value: image},
		{Name: "fullName", Label: "Full Name", Type: InputText, Placeholder: "John Doe", Value: p.FullName},
		{Name: "jobTitle", Label: "Target Job Title", Type: InputText, Placeholder: "Software Engineer", Value: p.JobTitle},
		{Name: "email", Label: "Email", Type: InputEmail, Placeholder: "john@example.com", Value: p.Email},
		{Name: "phone", Label: "Phone", Type: InputText, Placeholder: "+1 555 123 4567", Value: p.Phone},
		{Name: "location", Label: "Location", Type: InputText, Placeholder: "San Francisco, CA", Value: p.Location},
		{Name: "linkedin", Label: "LinkedIn URL", Type: InputText, Placeholder: "linkedin.com/in/johndoe", Value: p.LinkedIn},
		{Name: "website", Label: "Portfolio Website", Type: InputText, Placeholder: "johndoe.com", Value: p.Website},
		{Name: "summary", Label: "Professional Summary", Type: InputTextarea, Placeholder: "Briefly describe your professional background and goals...", Value: p.Summary},
	}
}

func experienceFields(e types.Experience) []Field {
	ongoing := e.Tenure.IsOngoing()
	return []Field{
		{Name: "company", Label: "Company", Type: InputText, Placeholder: "Acme Inc", Value: e.Company},
		{Name: "position", Label: "Position", Type: InputText, Placeholder: "Senior Developer", Value: e.Position},
		{Name: "startDate", Label: "Start Date", Type: InputText, Placeholder: "MM/YYYY", Value: e.StartDate},
		{Name: "endDate", Label: "End Date", Type: InputText, Placeholder: "MM/YYYY", Value: e.Tenure.Display(), Disabled: ongoing},
		{Name: "current", Label: "Current", Type: InputCheckbox, Value: strconv.FormatBool(ongoing)},
		{Name: "description", Label: "Description", Type: InputTextarea, Placeholder: "• Developed new features...", Value: e.Description},
	}
}

func educationFields(e types.Education) []Field {
	return []Field{
		{Name: "institution", Label: "Institution", Type: InputText, Placeholder: "University of...", Value: e.Institution},
		{Name: "degree", Label: "Degree", Type: InputText, Placeholder: "Bachelor of Science", Value: e.Degree},
		{Name: "startDate", Label: "Start Date", Type: InputText, Placeholder: "YYYY", Value: e.StartDate},
		{Name: "endDate", Label: "End Date", Type: InputText, Placeholder: "YYYY", Value: e.Tenure.Display(), Disabled: e.Tenure.IsOngoing()},
	}
}

func customItemFields(item types.CustomItem) []Field {
	return []Field{
		{Name: "title", Label: "Item Title", Type: InputText, Placeholder: "e.g. Award Name", Value: item.Title},
		{Name: "date", Label: "Date / Location", Type: InputText, Placeholder: "e.g. 2023", Value: item.Date},
		{Name: "subtitle", Label: "Subtitle / Organization", Type: InputText, Placeholder: "e.g. Organization Name", Value: item.Subtitle},
		{Name: "description", Label: "Description", Type: InputTextarea, Placeholder: "Details...", Value: item.Description},
	}
}

func busyLabel(busy bool, busyText, idleText string) string {
	if busy {
		return busyText
	}
	return idleText
}

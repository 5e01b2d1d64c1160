// Package types provides the resume document types shared by the editor, renderer and adapters.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// PersonalInfo is the singleton header block of a resume.
type PersonalInfo struct {
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Location     string  `json:"location"`
	LinkedIn     string  `json:"linkedin"`
	Website      string  `json:"website"`
	Summary      string  `json:"summary"`
	JobTitle     string  `json:"jobTitle"`
	ProfileImage *string `json:"profileImage"` // data URI, nil when absent
}

// Experience is one entry of the work history.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	Tenure      Tenure `json:"-"`
	Description string `json:"description"`
}

// Education is one entry of the education history.
type Education struct {
	ID           string `json:"id"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartDate    string `json:"startDate"`
	Tenure       Tenure `json:"-"`
}

// Skill is a named skill with a proficiency level.
type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// CustomItem is one entry inside a user-defined section.
type CustomItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// CustomSection is a user-titled section of free-form items.
type CustomSection struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Items []CustomItem `json:"items"`
}

// DefaultSectionTitle is the title given to a newly added custom section.
const DefaultSectionTitle = "New Section"

// ResumeData is the aggregate root of a resume document.
type ResumeData struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []Skill         `json:"skills"`
	CustomSections []CustomSection `json:"customSections"`
	Theme          Theme           `json:"theme"`
}

// NewResumeData returns an empty resume with the default theme.
func NewResumeData() ResumeData {
	return ResumeData{
		Experience:     []Experience{},
		Education:      []Education{},
		Skills:         []Skill{},
		CustomSections: []CustomSection{},
		Theme:          DefaultTheme(),
	}
}

// tenureWire is the on-the-wire encoding of a Tenure: an end date plus a current flag.
type tenureWire struct {
	EndDate string `json:"endDate"`
	Current bool   `json:"current"`
}

// MarshalJSON encodes the tenure as endDate/current fields.
func (e Experience) MarshalJSON() ([]byte, error) {
	type alias Experience
	return json.Marshal(struct {
		alias
		tenureWire
	}{alias(e), tenureWire{EndDate: e.Tenure.RecordedEndDate(), Current: e.Tenure.IsOngoing()}})
}

// UnmarshalJSON decodes endDate/current fields into a Tenure.
func (e *Experience) UnmarshalJSON(data []byte) error {
	type alias Experience
	aux := struct {
		*alias
		tenureWire
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Tenure = NewTenure(aux.EndDate, aux.Current)
	return nil
}

// MarshalJSON encodes the tenure as endDate/current fields.
func (e Education) MarshalJSON() ([]byte, error) {
	type alias Education
	return json.Marshal(struct {
		alias
		tenureWire
	}{alias(e), tenureWire{EndDate: e.Tenure.RecordedEndDate(), Current: e.Tenure.IsOngoing()}})
}

// UnmarshalJSON decodes endDate/current fields into a Tenure.
func (e *Education) UnmarshalJSON(data []byte) error {
	type alias Education
	aux := struct {
		*alias
		tenureWire
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Tenure = NewTenure(aux.EndDate, aux.Current)
	return nil
}

package types

// PartialPersonalInfo carries only the personal fields an import returned.
// A nil field was not returned and must not overwrite the existing value.
type PartialPersonalInfo struct {
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Website  *string `json:"website,omitempty"`
	Summary  *string `json:"summary,omitempty"`
	JobTitle *string `json:"jobTitle,omitempty"`
}

// PartialResume is the structured result of importing an existing resume.
type PartialResume struct {
	PersonalInfo *PartialPersonalInfo `json:"personalInfo,omitempty"`
	Experience   []Experience         `json:"experience"`
	Education    []Education          `json:"education"`
	Skills       []Skill              `json:"skills"`
}

// MergeInto overlays the returned fields on info and returns the result.
func (p *PartialPersonalInfo) MergeInto(info PersonalInfo) PersonalInfo {
	if p == nil {
		return info
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&info.FullName, p.FullName)
	set(&info.Email, p.Email)
	set(&info.Phone, p.Phone)
	set(&info.Location, p.Location)
	set(&info.LinkedIn, p.LinkedIn)
	set(&info.Website, p.Website)
	set(&info.Summary, p.Summary)
	set(&info.JobTitle, p.JobTitle)
	return info
}

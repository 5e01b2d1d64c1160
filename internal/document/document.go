package document

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// List names an ordered collection of the document.
type List string

// Lists of the document
const (
	ListExperience     List = "experience"
	ListEducation      List = "education"
	ListSkills         List = "skills"
	ListCustomSections List = "customSections"
)

// Section names a singleton record of the document.
type Section string

// Singleton records of the document
const (
	SectionPersonalInfo Section = "personalInfo"
	SectionTheme        Section = "theme"
)

// ParseList validates a list name.
func ParseList(name string) (List, error) {
	switch l := List(name); l {
	case ListExperience, ListEducation, ListSkills, ListCustomSections:
		return l, nil
	}
	return "", &UnknownListError{List: name}
}

// IDFunc generates entity ids.
type IDFunc func() string

// Option configures a Document.
type Option func(*Document)

// WithIDFunc replaces the uuid generator, mainly for tests.
func WithIDFunc(fn IDFunc) Option {
	return func(d *Document) {
		d.newID = fn
	}
}

type customSection struct {
	title string
	items []string
}

// Document stores a resume as flat id-keyed maps plus ordered id sequences.
// Edits touch one entity in place; Snapshot materialises the aggregate.
//
// Document is not safe for concurrent use.
type Document struct {
	newID IDFunc

	personal types.PersonalInfo
	theme    types.Theme

	experience map[string]*types.Experience
	education  map[string]*types.Education
	skills     map[string]*types.Skill
	sections   map[string]*customSection
	items      map[string]*types.CustomItem
	itemOwner  map[string]string

	order map[List][]string
}

// New returns an empty document with the default theme.
func New(opts ...Option) *Document {
	d := &Document{
		newID:      func() string { return uuid.New().String() },
		theme:      types.DefaultTheme(),
		experience: make(map[string]*types.Experience),
		education:  make(map[string]*types.Education),
		skills:     make(map[string]*types.Skill),
		sections:   make(map[string]*customSection),
		items:      make(map[string]*types.CustomItem),
		itemOwner:  make(map[string]string),
		order:      make(map[List][]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load builds a document holding a copy of data. Entities without an id get one.
func Load(data types.ResumeData, opts ...Option) *Document {
	d := New(opts...)
	d.personal = data.PersonalInfo
	d.personal.ProfileImage = cloneString(data.PersonalInfo.ProfileImage)
	if data.Theme != (types.Theme{}) {
		d.theme = data.Theme
	}
	d.replaceExperience(data.Experience)
	d.replaceEducation(data.Education)
	d.replaceSkills(data.Skills)
	for _, s := range data.CustomSections {
		id := ensureID(d, s.ID, d.sections)
		d.sections[id] = &customSection{title: s.Title}
		d.order[ListCustomSections] = append(d.order[ListCustomSections], id)
		for _, item := range s.Items {
			d.appendCustomItem(id, item)
		}
	}
	return d
}

// IDs returns the ordered ids of list.
func (d *Document) IDs(list List) []string {
	return append([]string(nil), d.order[list]...)
}

// CustomItemIDs returns the ordered item ids of a custom section.
func (d *Document) CustomItemIDs(sectionID string) []string {
	s, ok := d.sections[sectionID]
	if !ok {
		return nil
	}
	return append([]string(nil), s.items...)
}

// PersonalInfo returns a copy of the personal record.
func (d *Document) PersonalInfo() types.PersonalInfo {
	info := d.personal
	info.ProfileImage = cloneString(d.personal.ProfileImage)
	return info
}

// Experience returns a copy of the experience entry with id.
func (d *Document) Experience(id string) (types.Experience, bool) {
	e, ok := d.experience[id]
	if !ok {
		return types.Experience{}, false
	}
	return *e, true
}

// UpdateField replaces one field of the personal record or the theme.
func (d *Document) UpdateField(section Section, field, value string) error {
	switch section {
	case SectionPersonalInfo:
		return setPersonalField(&d.personal, field, value)
	case SectionTheme:
		return setThemeField(&d.theme, field, value)
	}
	return &UnknownFieldError{Target: "document", Field: string(section)}
}

// AddItem appends a new empty entity to list and returns its id.
func (d *Document) AddItem(list List) (string, error) {
	switch list {
	case ListExperience:
		id := d.newID()
		d.experience[id] = &types.Experience{ID: id}
		d.order[list] = append(d.order[list], id)
		return id, nil
	case ListEducation:
		id := d.newID()
		d.education[id] = &types.Education{ID: id}
		d.order[list] = append(d.order[list], id)
		return id, nil
	case ListSkills:
		id := d.newID()
		d.skills[id] = &types.Skill{ID: id, Level: types.DefaultSkillLevel}
		d.order[list] = append(d.order[list], id)
		return id, nil
	case ListCustomSections:
		id := d.newID()
		d.sections[id] = &customSection{title: types.DefaultSectionTitle}
		d.order[list] = append(d.order[list], id)
		return id, nil
	}
	return "", &UnknownListError{List: string(list)}
}

// AddSkill appends a named skill at the default level. Blank names are ignored
// and duplicates are allowed.
func (d *Document) AddSkill(name string) (string, bool) {
	if strings.TrimSpace(name) == "" {
		return "", false
	}
	id := d.newID()
	d.skills[id] = &types.Skill{ID: id, Name: name, Level: types.DefaultSkillLevel}
	d.order[ListSkills] = append(d.order[ListSkills], id)
	return id, true
}

// UpdateItem replaces one field of the entity with id. It reports false without
// error when no such entity exists.
func (d *Document) UpdateItem(list List, id, field, value string) (bool, error) {
	switch list {
	case ListExperience:
		e, ok := d.experience[id]
		if !ok {
			return false, nil
		}
		return true, setExperienceField(e, field, value)
	case ListEducation:
		e, ok := d.education[id]
		if !ok {
			return false, nil
		}
		return true, setEducationField(e, field, value)
	case ListSkills:
		s, ok := d.skills[id]
		if !ok {
			return false, nil
		}
		return true, setSkillField(s, field, value)
	case ListCustomSections:
		s, ok := d.sections[id]
		if !ok {
			return false, nil
		}
		if field != "title" {
			return true, &UnknownFieldError{Target: "customSection", Field: field}
		}
		s.title = value
		return true, nil
	}
	return false, &UnknownListError{List: string(list)}
}

// RemoveItem removes the entity with id from list and reports whether it existed.
func (d *Document) RemoveItem(list List, id string) (bool, error) {
	switch list {
	case ListExperience:
		if _, ok := d.experience[id]; !ok {
			return false, nil
		}
		delete(d.experience, id)
	case ListEducation:
		if _, ok := d.education[id]; !ok {
			return false, nil
		}
		delete(d.education, id)
	case ListSkills:
		if _, ok := d.skills[id]; !ok {
			return false, nil
		}
		delete(d.skills, id)
	case ListCustomSections:
		s, ok := d.sections[id]
		if !ok {
			return false, nil
		}
		for _, itemID := range s.items {
			delete(d.items, itemID)
			delete(d.itemOwner, itemID)
		}
		delete(d.sections, id)
	default:
		return false, &UnknownListError{List: string(list)}
	}
	d.order[list] = without(d.order[list], id)
	return true, nil
}

// AddCustomItem appends an empty item to the section and returns its id.
func (d *Document) AddCustomItem(sectionID string) (string, bool) {
	if _, ok := d.sections[sectionID]; !ok {
		return "", false
	}
	return d.appendCustomItem(sectionID, types.CustomItem{}), true
}

// UpdateCustomItem replaces one field of an item. Both the section and the item
// id must match.
func (d *Document) UpdateCustomItem(sectionID, itemID, field, value string) (bool, error) {
	item, ok := d.customItem(sectionID, itemID)
	if !ok {
		return false, nil
	}
	return true, setCustomItemField(item, field, value)
}

// RemoveCustomItem removes an item from its section.
func (d *Document) RemoveCustomItem(sectionID, itemID string) bool {
	if _, ok := d.customItem(sectionID, itemID); !ok {
		return false
	}
	s := d.sections[sectionID]
	s.items = without(s.items, itemID)
	delete(d.items, itemID)
	delete(d.itemOwner, itemID)
	return true
}

// ApplyImport merges an imported partial resume. Personal fields present in the
// import overwrite; experience, education and skills are replaced wholesale;
// custom sections and theme are untouched.
func (d *Document) ApplyImport(p types.PartialResume) {
	d.personal = p.PersonalInfo.MergeInto(d.personal)
	for id := range d.experience {
		delete(d.experience, id)
	}
	for id := range d.education {
		delete(d.education, id)
	}
	for id := range d.skills {
		delete(d.skills, id)
	}
	d.order[ListExperience] = nil
	d.order[ListEducation] = nil
	d.order[ListSkills] = nil
	d.replaceExperience(p.Experience)
	d.replaceEducation(p.Education)
	d.replaceSkills(p.Skills)
}

// MergeSuggestedSkills appends suggested names that do not match an existing
// skill (case-insensitively) and returns the ids it created.
func (d *Document) MergeSuggestedSkills(names []string) []string {
	seen := make(map[string]bool, len(d.skills)+len(names))
	for _, s := range d.skills {
		seen[skillKey(s.Name)] = true
	}
	var added []string
	for _, name := range names {
		key := skillKey(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		id := d.newID()
		d.skills[id] = &types.Skill{ID: id, Name: name, Level: types.DefaultSkillLevel}
		d.order[ListSkills] = append(d.order[ListSkills], id)
		added = append(added, id)
	}
	return added
}

func skillKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Snapshot returns the document as a ResumeData value that shares no memory
// with the document.
func (d *Document) Snapshot() types.ResumeData {
	data := types.NewResumeData()
	data.PersonalInfo = d.PersonalInfo()
	data.Theme = d.theme
	for _, id := range d.order[ListExperience] {
		data.Experience = append(data.Experience, *d.experience[id])
	}
	for _, id := range d.order[ListEducation] {
		data.Education = append(data.Education, *d.education[id])
	}
	for _, id := range d.order[ListSkills] {
		data.Skills = append(data.Skills, *d.skills[id])
	}
	for _, id := range d.order[ListCustomSections] {
		s := d.sections[id]
		section := types.CustomSection{ID: id, Title: s.title, Items: make([]types.CustomItem, 0, len(s.items))}
		for _, itemID := range s.items {
			section.Items = append(section.Items, *d.items[itemID])
		}
		data.CustomSections = append(data.CustomSections, section)
	}
	return data
}

func (d *Document) customItem(sectionID, itemID string) (*types.CustomItem, bool) {
	if d.itemOwner[itemID] != sectionID {
		return nil, false
	}
	item, ok := d.items[itemID]
	return item, ok
}

func (d *Document) appendCustomItem(sectionID string, item types.CustomItem) string {
	item.ID = ensureID(d, item.ID, d.items)
	d.items[item.ID] = &item
	d.itemOwner[item.ID] = sectionID
	s := d.sections[sectionID]
	s.items = append(s.items, item.ID)
	return item.ID
}

func (d *Document) replaceExperience(list []types.Experience) {
	for _, e := range list {
		e.ID = ensureID(d, e.ID, d.experience)
		d.experience[e.ID] = &e
		d.order[ListExperience] = append(d.order[ListExperience], e.ID)
	}
}

func (d *Document) replaceEducation(list []types.Education) {
	for _, e := range list {
		e.ID = ensureID(d, e.ID, d.education)
		d.education[e.ID] = &e
		d.order[ListEducation] = append(d.order[ListEducation], e.ID)
	}
}

func (d *Document) replaceSkills(list []types.Skill) {
	for _, s := range list {
		s.ID = ensureID(d, s.ID, d.skills)
		if _, ok := types.ParseSkillLevel(string(s.Level)); !ok {
			s.Level = types.DefaultSkillLevel
		}
		d.skills[s.ID] = &s
		d.order[ListSkills] = append(d.order[ListSkills], s.ID)
	}
}

// ensureID keeps id unless it is empty or already taken in arena.
func ensureID[T any](d *Document, id string, arena map[string]T) string {
	if _, taken := arena[id]; id != "" && !taken {
		return id
	}
	return d.newID()
}

func setPersonalField(p *types.PersonalInfo, field, value string) error {
	switch field {
	case "fullName":
		p.FullName = value
	case "email":
		p.Email = value
	case "phone":
		p.Phone = value
	case "location":
		p.Location = value
	case "linkedin":
		p.LinkedIn = value
	case "website":
		p.Website = value
	case "summary":
		p.Summary = value
	case "jobTitle":
		p.JobTitle = value
	case "profileImage":
		if value == "" {
			p.ProfileImage = nil
		} else {
			p.ProfileImage = &value
		}
	default:
		return &UnknownFieldError{Target: string(SectionPersonalInfo), Field: field}
	}
	return nil
}

func setThemeField(t *types.Theme, field, value string) error {
	switch field {
	case "color", "backgroundColor":
		if !types.IsHexColor(value) {
			return &InvalidValueError{Field: field, Value: value, Message: "expected a hex colour like #2563eb"}
		}
		if !strings.HasPrefix(value, "#") {
			value = "#" + value
		}
		if field == "color" {
			t.Color = value
		} else {
			t.BackgroundColor = value
		}
	case "font":
		font, ok := types.ParseFont(value)
		if !ok {
			return &InvalidValueError{Field: field, Value: value, Message: "unsupported font"}
		}
		t.Font = font
	default:
		return &UnknownFieldError{Target: string(SectionTheme), Field: field}
	}
	return nil
}

func setExperienceField(e *types.Experience, field, value string) error {
	switch field {
	case "company":
		e.Company = value
	case "position":
		e.Position = value
	case "startDate":
		e.StartDate = value
	case "endDate":
		e.Tenure = e.Tenure.WithEndDate(value)
	case "current":
		current, err := parseBool(field, value)
		if err != nil {
			return err
		}
		e.Tenure = e.Tenure.WithOngoing(current)
	case "description":
		e.Description = value
	default:
		return &UnknownFieldError{Target: string(ListExperience), Field: field}
	}
	return nil
}

func setEducationField(e *types.Education, field, value string) error {
	switch field {
	case "institution":
		e.Institution = value
	case "degree":
		e.Degree = value
	case "fieldOfStudy":
		e.FieldOfStudy = value
	case "startDate":
		e.StartDate = value
	case "endDate":
		e.Tenure = e.Tenure.WithEndDate(value)
	case "current":
		current, err := parseBool(field, value)
		if err != nil {
			return err
		}
		e.Tenure = e.Tenure.WithOngoing(current)
	default:
		return &UnknownFieldError{Target: string(ListEducation), Field: field}
	}
	return nil
}

func setSkillField(s *types.Skill, field, value string) error {
	switch field {
	case "name":
		s.Name = value
	case "level":
		level, ok := types.ParseSkillLevel(value)
		if !ok {
			return &InvalidValueError{Field: field, Value: value, Message: "expected Beginner, Intermediate or Expert"}
		}
		s.Level = level
	default:
		return &UnknownFieldError{Target: string(ListSkills), Field: field}
	}
	return nil
}

func setCustomItemField(item *types.CustomItem, field, value string) error {
	switch field {
	case "title":
		item.Title = value
	case "subtitle":
		item.Subtitle = value
	case "description":
		item.Description = value
	case "date":
		item.Date = value
	default:
		return &UnknownFieldError{Target: "customItem", Field: field}
	}
	return nil
}

func parseBool(field, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, &InvalidValueError{Field: field, Value: value, Message: "expected true or false"}
	}
	return b, nil
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

package editor

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/importer"
	"github.com/jonathan/resume-builder/internal/types"
)

// Assistant writes resume content with a language model.
type Assistant interface {
	GenerateSummary(ctx context.Context, info types.PersonalInfo, experience []types.Experience) string
	EnhanceExperienceDescription(ctx context.Context, position, company, current string) string
	SuggestSkills(ctx context.Context, jobTitle, summary string) []string
}

// Importer parses an existing resume into a partial document.
type Importer interface {
	Import(ctx context.Context, in importer.Input) (types.PartialResume, error)
}

// The AI actions below share one shape: claim the activity, read their inputs,
// call out without holding the session lock, then apply the result in a single
// Mutate.

// GenerateSummary replaces the summary with one written from the header and
// work history.
func (s *Session) GenerateSummary(ctx context.Context, a Assistant) (string, error) {
	if err := s.Begin(GeneratingSummary()); err != nil {
		return "", err
	}
	defer s.End()

	data := s.Data()
	if strings.TrimSpace(data.PersonalInfo.JobTitle) == "" {
		return "", ErrJobTitleRequired
	}

	summary := a.GenerateSummary(ctx, data.PersonalInfo, data.Experience)
	err := s.Mutate(func(d *document.Document) error {
		return d.UpdateField(document.SectionPersonalInfo, "summary", summary)
	})
	if err != nil {
		return "", err
	}
	return summary, nil
}

// EnhanceExperience rewrites the description of experience id. An entry
// removed while the call was out is left alone.
func (s *Session) EnhanceExperience(ctx context.Context, a Assistant, id string) (string, error) {
	if err := s.Begin(EnhancingExperience(id)); err != nil {
		return "", err
	}
	defer s.End()

	var exp types.Experience
	var found bool
	s.withDocument(func(d *document.Document) {
		exp, found = d.Experience(id)
	})
	if !found {
		return "", &ItemNotFoundError{List: string(document.ListExperience), ID: id}
	}
	if strings.TrimSpace(exp.Description) == "" {
		return "", ErrEmptyDescription
	}

	enhanced := a.EnhanceExperienceDescription(ctx, exp.Position, exp.Company, exp.Description)
	err := s.Mutate(func(d *document.Document) error {
		_, err := d.UpdateItem(document.ListExperience, id, "description", enhanced)
		return err
	})
	if err != nil {
		return "", err
	}
	return enhanced, nil
}

// SuggestSkills adds suggested skills the resume does not list yet and returns
// the ids of the new entries.
func (s *Session) SuggestSkills(ctx context.Context, a Assistant) ([]string, error) {
	if err := s.Begin(SuggestingSkills()); err != nil {
		return nil, err
	}
	defer s.End()

	info := s.Data().PersonalInfo
	if strings.TrimSpace(info.JobTitle) == "" {
		return nil, ErrJobTitleRequired
	}

	names := a.SuggestSkills(ctx, info.JobTitle, info.Summary)
	var added []string
	err := s.Mutate(func(d *document.Document) error {
		added = d.MergeSuggestedSkills(names)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("session", s.id).Int("suggested", len(names)).Int("added", len(added)).Msg("merged suggested skills")
	return added, nil
}

// Import parses an existing resume and merges it into the document. On any
// failure the document is left untouched.
func (s *Session) Import(ctx context.Context, im Importer, in importer.Input) (types.PartialResume, error) {
	if err := s.Begin(Importing()); err != nil {
		return types.PartialResume{}, err
	}
	defer s.End()

	partial, err := im.Import(ctx, in)
	if err != nil {
		return types.PartialResume{}, err
	}
	err = s.Mutate(func(d *document.Document) error {
		d.ApplyImport(partial)
		return nil
	})
	if err != nil {
		return types.PartialResume{}, err
	}
	return partial, nil
}

func (s *Session) withDocument(fn func(d *document.Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.doc)
}

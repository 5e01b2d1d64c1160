// Package assist generates resume text with a language model: professional
// summaries, rewritten experience bullets and skill suggestions.
//
// Every operation degrades instead of failing. A missing credential yields a
// canned value without a network call; a failed or malformed reply yields the
// caller's original content.
package assist

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/rs/zerolog/log"
)

// Canned replies used when no credential is configured.
const (
	MissingKeySummary = "API Key missing. Please configure your environment."
)

// DefaultSkills is suggested when no credential is configured.
var DefaultSkills = []string{"Communication", "Teamwork", "Problem Solving"}

// skillContextRunes bounds how much of the summary is sent with a skill request.
const skillContextRunes = 200

// Assistant issues prompt-based generation requests.
type Assistant struct {
	client llm.Client
}

// New returns an Assistant. A nil client means no credential is configured.
func New(client llm.Client) *Assistant {
	return &Assistant{client: client}
}

// Available reports whether a model client is configured.
func (a *Assistant) Available() bool {
	return a != nil && a.client != nil
}

// GenerateSummary writes a professional summary from the personal record and the
// work history. On failure the existing summary is returned unchanged.
func (a *Assistant) GenerateSummary(ctx context.Context, info types.PersonalInfo, experience []types.Experience) string {
	if !a.Available() {
		return MissingKeySummary
	}

	history := make([]string, 0, len(experience))
	for _, e := range experience {
		history = append(history, e.Position+" at "+e.Company)
	}

	prompt, err := prompts.Render(prompts.AssistFile, "generate-summary", map[string]string{
		"FullName":    info.FullName,
		"JobTitle":    info.JobTitle,
		"Location":    info.Location,
		"WorkHistory": strings.Join(history, ", "),
	})
	if err != nil {
		log.Error().Err(err).Msg("summary prompt")
		return info.Summary
	}

	text, err := a.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		log.Warn().Err(err).Msg("summary generation failed, keeping existing summary")
		return info.Summary
	}
	if text = strings.TrimSpace(text); text == "" {
		log.Warn().Msg("summary generation returned nothing, keeping existing summary")
		return info.Summary
	}
	return text
}

// EnhanceExperienceDescription rewrites a description as concise action-verb
// bullets. The original is returned when no credential is configured or the
// call fails.
func (a *Assistant) EnhanceExperienceDescription(ctx context.Context, position, company, current string) string {
	if !a.Available() {
		return current
	}

	prompt, err := prompts.Render(prompts.AssistFile, "enhance-experience", map[string]string{
		"Position":    position,
		"Company":     company,
		"Description": current,
	})
	if err != nil {
		log.Error().Err(err).Msg("enhance prompt")
		return current
	}

	text, err := a.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		log.Warn().Err(err).Msg("enhancement failed, keeping original description")
		return current
	}
	if text = strings.TrimSpace(text); text == "" {
		return current
	}
	return text
}

// SuggestSkills asks for ten skills for jobTitle, using the start of the summary
// as context. Failures yield an empty list.
func (a *Assistant) SuggestSkills(ctx context.Context, jobTitle, summary string) []string {
	if !a.Available() {
		return append([]string(nil), DefaultSkills...)
	}

	prompt, err := prompts.Render(prompts.AssistFile, "suggest-skills", map[string]string{
		"JobTitle": jobTitle,
		"Context":  truncateRunes(summary, skillContextRunes),
	})
	if err != nil {
		log.Error().Err(err).Msg("skills prompt")
		return []string{}
	}

	text, err := a.client.GenerateStructured(ctx, llm.StructuredRequest{
		Prompt: prompt,
		Schema: llm.StringListSchema(),
		Tier:   llm.TierLite,
	})
	if err != nil {
		log.Warn().Err(err).Msg("skill suggestion failed")
		return []string{}
	}
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	var skills []string
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(text)), &skills); err != nil {
		log.Warn().Err(err).Msg("skill suggestion returned malformed JSON")
		return []string{}
	}

	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

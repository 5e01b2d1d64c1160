package editor

import "encoding/json"

// ActivityKind discriminates Activity.
type ActivityKind int

// Activity kinds
const (
	KindIdle ActivityKind = iota
	KindGeneratingSummary
	KindEnhancingExperience
	KindSuggestingSkills
	KindImporting
)

var kindNames = [...]string{"idle", "generating-summary", "enhancing-experience", "suggesting-skills", "importing"}

func (k ActivityKind) String() string {
	if k < KindIdle || k > KindImporting {
		return "unknown"
	}
	return kindNames[k]
}

// Activity is the single operation a session may have in flight:
// Idle | GeneratingSummary | EnhancingExperience(id) | SuggestingSkills | Importing.
// The zero value is Idle.
type Activity struct {
	kind         ActivityKind
	experienceID string
}

// Idle returns the resting activity.
func Idle() Activity { return Activity{} }

// GeneratingSummary is active while the summary is being written.
func GeneratingSummary() Activity { return Activity{kind: KindGeneratingSummary} }

// EnhancingExperience is active while the description of experience id is rewritten.
func EnhancingExperience(id string) Activity {
	return Activity{kind: KindEnhancingExperience, experienceID: id}
}

// SuggestingSkills is active while skills are being suggested.
func SuggestingSkills() Activity { return Activity{kind: KindSuggestingSkills} }

// Importing is active while an existing resume is parsed.
func Importing() Activity { return Activity{kind: KindImporting} }

// Kind returns the discriminant.
func (a Activity) Kind() ActivityKind { return a.kind }

// IsIdle reports whether nothing is in flight.
func (a Activity) IsIdle() bool { return a.kind == KindIdle }

// ExperienceID returns the entry being enhanced.
func (a Activity) ExperienceID() (string, bool) {
	if a.kind != KindEnhancingExperience {
		return "", false
	}
	return a.experienceID, true
}

func (a Activity) String() string {
	if id, ok := a.ExperienceID(); ok {
		return a.kind.String() + ":" + id
	}
	return a.kind.String()
}

// MarshalJSON encodes the activity as {"kind": ..., "experienceId": ...}.
func (a Activity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind         string `json:"kind"`
		ExperienceID string `json:"experienceId,omitempty"`
	}{a.kind.String(), a.experienceID})
}

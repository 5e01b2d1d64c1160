package types

import "strings"

// SkillLevel is the proficiency attached to a skill.
type SkillLevel string

// Skill levels
const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelExpert       SkillLevel = "Expert"
)

// DefaultSkillLevel is used for manually added, suggested and imported skills.
const DefaultSkillLevel = LevelIntermediate

// SkillLevels lists the valid levels in display order.
var SkillLevels = []SkillLevel{LevelBeginner, LevelIntermediate, LevelExpert}

// ParseSkillLevel matches s case-insensitively against the known levels.
func ParseSkillLevel(s string) (SkillLevel, bool) {
	for _, level := range SkillLevels {
		if strings.EqualFold(strings.TrimSpace(s), string(level)) {
			return level, true
		}
	}
	return "", false
}

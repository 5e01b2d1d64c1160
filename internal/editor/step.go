// Package editor holds the interactive editing state of a resume: the wizard
// step, the in-flight AI activity, the debounced preview and the registry of
// live sessions.
package editor

import "fmt"

// Step is a page of the editing wizard.
type Step int

// Wizard steps, in order.
const (
	StepPersonal Step = iota
	StepExperience
	StepEducation
	StepSkills
	StepCustom
	StepFinalize
)

var stepNames = [...]string{"personal", "experience", "education", "skills", "custom", "finalize"}

var stepLabels = [...]string{"Personal", "Experience", "Education", "Skills", "Custom", "Finalize"}

// Steps returns every step in wizard order.
func Steps() []Step {
	return []Step{StepPersonal, StepExperience, StepEducation, StepSkills, StepCustom, StepFinalize}
}

// String returns the step's wire name.
func (s Step) String() string {
	if s < StepPersonal || s > StepFinalize {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

// Label returns the step's tab label.
func (s Step) Label() string {
	if s < StepPersonal || s > StepFinalize {
		return s.String()
	}
	return stepLabels[s]
}

// Next returns the following step, staying on the last one.
func (s Step) Next() Step {
	return min(s+1, StepFinalize)
}

// Prev returns the preceding step, staying on the first one.
func (s Step) Prev() Step {
	return max(s-1, StepPersonal)
}

// ParseStep returns the step with the given wire name.
func ParseStep(name string) (Step, error) {
	for i, n := range stepNames {
		if n == name {
			return Step(i), nil
		}
	}
	return 0, &UnknownStepError{Name: name}
}

// MarshalText encodes the step by name.
func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a step name.
func (s *Step) UnmarshalText(text []byte) error {
	step, err := ParseStep(string(text))
	if err != nil {
		return err
	}
	*s = step
	return nil
}

package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_NextPrevClamp(t *testing.T) {
	assert.Equal(t, StepExperience, StepPersonal.Next())
	assert.Equal(t, StepFinalize, StepCustom.Next())
	assert.Equal(t, StepFinalize, StepFinalize.Next())

	assert.Equal(t, StepPersonal, StepPersonal.Prev())
	assert.Equal(t, StepSkills, StepCustom.Prev())
}

func TestParseStep(t *testing.T) {
	for _, step := range Steps() {
		got, err := ParseStep(step.String())
		require.NoError(t, err)
		assert.Equal(t, step, got)
	}

	_, err := ParseStep("review")
	var stepErr *UnknownStepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "review", stepErr.Name)
}

func TestStep_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Step Step `json:"step"`
	}{StepSkills})
	require.NoError(t, err)
	assert.JSONEq(t, `{"step":"skills"}`, string(data))

	var decoded struct {
		Step Step `json:"step"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"step":"custom"}`), &decoded))
	assert.Equal(t, StepCustom, decoded.Step)

	assert.Error(t, json.Unmarshal([]byte(`{"step":"nope"}`), &decoded))
}

func TestStep_Labels(t *testing.T) {
	assert.Equal(t, "Personal", StepPersonal.Label())
	assert.Equal(t, "Finalize", StepFinalize.Label())
	assert.Equal(t, "step(9)", Step(9).String())
}

func TestActivity(t *testing.T) {
	assert.True(t, Idle().IsIdle())
	assert.True(t, Activity{}.IsIdle())
	assert.False(t, Importing().IsIdle())

	id, ok := EnhancingExperience("e1").ExperienceID()
	assert.True(t, ok)
	assert.Equal(t, "e1", id)

	_, ok = SuggestingSkills().ExperienceID()
	assert.False(t, ok)

	assert.Equal(t, "enhancing-experience:e1", EnhancingExperience("e1").String())
	assert.Equal(t, "generating-summary", GeneratingSummary().String())

	data, err := json.Marshal(EnhancingExperience("e1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"enhancing-experience","experienceId":"e1"}`, string(data))

	data, err = json.Marshal(Idle())
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"idle"}`, string(data))
}

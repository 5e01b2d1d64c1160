package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenure_EndedDisplaysDate(t *testing.T) {
	tenure := Ended("2021")

	date, ok := tenure.EndDate()
	assert.True(t, ok)
	assert.Equal(t, "2021", date)
	assert.Equal(t, "2021", tenure.Display())
	assert.False(t, tenure.IsOngoing())
}

func TestTenure_OngoingHidesDate(t *testing.T) {
	tenure := Ended("2021").WithOngoing(true)

	date, ok := tenure.EndDate()
	assert.False(t, ok)
	assert.Empty(t, date)
	assert.Equal(t, PresentLabel, tenure.Display())
}

func TestTenure_ToggleRestoresRecordedDate(t *testing.T) {
	tenure := Ended("2019").WithOngoing(true).WithOngoing(false)

	date, ok := tenure.EndDate()
	assert.True(t, ok)
	assert.Equal(t, "2019", date)
}

func TestTenure_EditWhileOngoingIsKept(t *testing.T) {
	tenure := Ongoing().WithEndDate("2024")

	assert.Equal(t, PresentLabel, tenure.Display())
	assert.Equal(t, "2024", tenure.RecordedEndDate())
	assert.Equal(t, "2024", tenure.WithOngoing(false).Display())
}

func TestNewTenure(t *testing.T) {
	assert.Equal(t, Ongoing().WithEndDate("2020"), NewTenure("2020", true))
	assert.Equal(t, Ended("2020"), NewTenure("2020", false))
	assert.Equal(t, Ended(""), Tenure{})
}

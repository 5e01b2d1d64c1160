package types

// PresentLabel is shown in place of an end date for ongoing entries.
const PresentLabel = "Present"

// Tenure is either Ongoing or Ended(date).
//
// An ongoing tenure still remembers the end date it had before it was marked
// ongoing, so toggling back restores it. That date is never reported while the
// tenure is ongoing.
type Tenure struct {
	ongoing bool
	endDate string
}

// Ongoing returns a tenure with no end.
func Ongoing() Tenure {
	return Tenure{ongoing: true}
}

// Ended returns a tenure that ended on date.
func Ended(date string) Tenure {
	return Tenure{endDate: date}
}

// NewTenure builds a tenure from the legacy endDate/current pair.
func NewTenure(endDate string, current bool) Tenure {
	return Tenure{ongoing: current, endDate: endDate}
}

// IsOngoing reports whether the entry has no end.
func (t Tenure) IsOngoing() bool {
	return t.ongoing
}

// EndDate returns the end date, or false when the tenure is ongoing.
func (t Tenure) EndDate() (string, bool) {
	if t.ongoing {
		return "", false
	}
	return t.endDate, true
}

// Display returns the end date as shown on a resume.
func (t Tenure) Display() string {
	if t.ongoing {
		return PresentLabel
	}
	return t.endDate
}

// RecordedEndDate returns the stored end date regardless of state. It is only
// used for the legacy wire encoding.
func (t Tenure) RecordedEndDate() string {
	return t.endDate
}

// WithOngoing switches between Ongoing and Ended, keeping the recorded date.
func (t Tenure) WithOngoing(ongoing bool) Tenure {
	t.ongoing = ongoing
	return t
}

// WithEndDate records a new end date without changing the state.
func (t Tenure) WithEndDate(date string) Tenure {
	t.endDate = date
	return t
}

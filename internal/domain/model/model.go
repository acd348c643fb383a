// Package model contains the dashboard's data model: the three source tables
// and the status enum that drives the state-wise bar chart.
package model

// Status is an individual record's current_status value.
type Status string

// Statuses offered by the dashboard's dropdown.
const (
	StatusHospitalized Status = "Hospitalized"
	StatusRecovered    Status = "Recovered"
	StatusDeceased     Status = "Deceased"
)

// DefaultStatus is the dropdown's initial selection.
const DefaultStatus = StatusHospitalized

// Statuses returns the dropdown options in display order.
func Statuses() []Status {
	return []Status{StatusHospitalized, StatusRecovered, StatusDeceased}
}

// Valid reports whether s is one of the dropdown options. Source data may
// carry other values (e.g. "Migrated"); those still load, they are simply
// never offered for selection.
func (s Status) Valid() bool {
	switch s {
	case StatusHospitalized, StatusRecovered, StatusDeceased:
		return true
	default:
		return false
	}
}

// ParseStatus converts v as is. Matching is exact, so " Deceased " and
// "deceased" are not StatusDeceased. It never fails: unknown values are
// representable and simply match no records of interest.
func ParseStatus(v string) Status {
	return Status(v)
}

// Blank reports whether s is the empty status of a record whose
// current_status cell was empty. A blank status matches nothing.
func (s Status) Blank() bool { return s == "" }

func (s Status) String() string { return string(s) }

// IndividualRecord is one row of the individual case table.
type IndividualRecord struct {
	Status        Status
	DetectedState string
}

// StateTimeSeriesRow is one (date, state) observation.
type StateTimeSeriesRow struct {
	Date      string
	State     string
	Confirmed int
}

// AgeGroupBucket is one row of the age breakdown table.
type AgeGroupBucket struct {
	AgeGroup   string
	TotalCases int
}

// Tables bundles the three datasets. It is filled once at startup and only
// read afterwards, so it is shared between requests without locking.
type Tables struct {
	Age         []AgeGroupBucket
	States      []StateTimeSeriesRow
	Individuals []IndividualRecord
}

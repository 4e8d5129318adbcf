package model

import (
	"fmt"
	"time"
)

// ISODate is the layout for calendar date fields
const ISODate = "2006-01-02"

// VaccinationInput carries the four required fields of a vaccination event
type VaccinationInput struct {
	ChildName   string
	DateOfBirth time.Time
	Vaccine     string
	Date        time.Time
}

// AgeInMonths computes the age at a given date as a pure calendar-month
// difference: (at.year - dob.year)*12 + (at.month - dob.month).
//
// Day-of-month is ignored on purpose: Jan 31 -> Feb 1 counts as one month
// even though fewer than 30 days elapsed. This coarse approximation is the
// documented product behavior, not an oversight.
func AgeInMonths(dob, at time.Time) int {
	return (at.Year()-dob.Year())*12 + int(at.Month()) - int(dob.Month())
}

// AgeMonths returns the child's age in months at vaccination time
func (v VaccinationInput) AgeMonths() int {
	return AgeInMonths(v.DateOfBirth, v.Date)
}

// Sentence synthesizes the descriptive text that gets embedded and stored
func (v VaccinationInput) Sentence() string {
	return fmt.Sprintf("%s received %s vaccine at %d months of age on %s",
		v.ChildName, v.Vaccine, v.AgeMonths(), v.Date.Format(ISODate))
}

package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/swasthya-lab/swasthya/pkg/domain/model"
)

func TestAgeInMonths(t *testing.T) {
	cases := []struct {
		name string
		dob  string
		at   string
		want int
	}{
		{"two months", "2024-01-15", "2024-03-15", 2},
		{"one year", "2023-06-01", "2024-06-01", 12},
		{"day ignored", "2024-01-31", "2024-02-01", 1},
		{"same month", "2024-05-10", "2024-05-28", 0},
		{"year boundary", "2023-11-20", "2024-02-05", 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dob, err := time.Parse(model.ISODate, tc.dob)
			gt.NoError(t, err)
			at, err := time.Parse(model.ISODate, tc.at)
			gt.NoError(t, err)

			gt.Value(t, model.AgeInMonths(dob, at)).Equal(tc.want)
		})
	}
}

func TestVaccinationSentence(t *testing.T) {
	dob, err := time.Parse(model.ISODate, "2024-01-15")
	gt.NoError(t, err)
	date, err := time.Parse(model.ISODate, "2024-03-15")
	gt.NoError(t, err)

	input := model.VaccinationInput{
		ChildName:   "Aarav",
		DateOfBirth: dob,
		Vaccine:     "DTaP",
		Date:        date,
	}

	gt.Value(t, input.AgeMonths()).Equal(2)
	gt.Value(t, input.Sentence()).Equal("Aarav received DTaP vaccine at 2 months of age on 2024-03-15")
}

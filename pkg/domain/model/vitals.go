package model

import (
	"fmt"

	"github.com/swasthya-lab/swasthya/pkg/domain/types"
)

// VitalUnits holds the display units used when synthesizing vitals
// sentences. Blood pressure values carry their own unit in the input.
type VitalUnits struct {
	Weight string
	Height string
}

// DefaultVitalUnits returns the default measurement units
func DefaultVitalUnits() VitalUnits {
	return VitalUnits{Weight: "kg", Height: "cm"}
}

// VitalsInput carries up to three independent optional measurements.
// Absent values produce no record; a single call may therefore yield
// zero to three records.
type VitalsInput struct {
	Weight        *float64
	Height        *float64
	BloodPressure string
}

// VitalsEntry is one synthesized measurement sentence ready for embedding
type VitalsEntry struct {
	Metric  types.VitalMetric
	Content string
}

// Entries synthesizes one sentence per present measurement, keyed to the
// given ISO-8601 date.
func (v VitalsInput) Entries(date string, units VitalUnits) []VitalsEntry {
	var entries []VitalsEntry

	if v.Weight != nil {
		entries = append(entries, VitalsEntry{
			Metric:  types.VitalMetricWeight,
			Content: fmt.Sprintf("Weight recorded: %v %s on %s", *v.Weight, units.Weight, date),
		})
	}
	if v.Height != nil {
		entries = append(entries, VitalsEntry{
			Metric:  types.VitalMetricHeight,
			Content: fmt.Sprintf("Height recorded: %v %s on %s", *v.Height, units.Height, date),
		})
	}
	if v.BloodPressure != "" {
		entries = append(entries, VitalsEntry{
			Metric:  types.VitalMetricBP,
			Content: fmt.Sprintf("Blood Pressure recorded: %s on %s", v.BloodPressure, date),
		})
	}

	return entries
}

package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/swasthya-lab/swasthya/pkg/domain/model"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
)

func TestVitalsEntries(t *testing.T) {
	units := model.DefaultVitalUnits()

	t.Run("all three measurements", func(t *testing.T) {
		weight := 12.5
		height := 88.0
		input := model.VitalsInput{
			Weight:        &weight,
			Height:        &height,
			BloodPressure: "110/70",
		}

		entries := input.Entries("2024-03-15", units)
		gt.Array(t, entries).Length(3)

		gt.Value(t, entries[0].Metric).Equal(types.VitalMetricWeight)
		gt.Value(t, entries[0].Content).Equal("Weight recorded: 12.5 kg on 2024-03-15")
		gt.Value(t, entries[1].Metric).Equal(types.VitalMetricHeight)
		gt.Value(t, entries[1].Content).Equal("Height recorded: 88 cm on 2024-03-15")
		gt.Value(t, entries[2].Metric).Equal(types.VitalMetricBP)
		gt.Value(t, entries[2].Content).Equal("Blood Pressure recorded: 110/70 on 2024-03-15")
	})

	t.Run("single measurement", func(t *testing.T) {
		weight := 9.8
		entries := model.VitalsInput{Weight: &weight}.Entries("2024-01-01", units)
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].Metric).Equal(types.VitalMetricWeight)
	})

	t.Run("custom units", func(t *testing.T) {
		weight := 27.0
		entries := model.VitalsInput{Weight: &weight}.Entries("2024-01-01", model.VitalUnits{Weight: "lb", Height: "in"})
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].Content).Equal("Weight recorded: 27 lb on 2024-01-01")
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		gt.Array(t, model.VitalsInput{}.Entries("2024-01-01", units)).Length(0)
	})
}

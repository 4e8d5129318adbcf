package types

import "fmt"

// VitalMetric represents a kind of vital sign measurement
type VitalMetric string

const (
	VitalMetricWeight VitalMetric = "weight"
	VitalMetricHeight VitalMetric = "height"
	VitalMetricBP     VitalMetric = "bp"
)

// AllVitalMetrics returns all valid vital metrics
func AllVitalMetrics() []VitalMetric {
	return []VitalMetric{
		VitalMetricWeight,
		VitalMetricHeight,
		VitalMetricBP,
	}
}

// IsValid checks if the vital metric is valid
func (m VitalMetric) IsValid() bool {
	switch m {
	case VitalMetricWeight, VitalMetricHeight, VitalMetricBP:
		return true
	default:
		return false
	}
}

// String returns the string representation of the vital metric
func (m VitalMetric) String() string {
	return string(m)
}

// ParseVitalMetric parses a string into a VitalMetric
func ParseVitalMetric(s string) (VitalMetric, error) {
	metric := VitalMetric(s)
	if !metric.IsValid() {
		return "", fmt.Errorf("invalid vital metric: %s", s)
	}
	return metric, nil
}

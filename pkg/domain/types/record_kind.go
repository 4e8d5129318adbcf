package types

import "fmt"

// RecordKind represents the category of a health record
type RecordKind string

const (
	RecordKindPrescription RecordKind = "prescription"
	RecordKindReport       RecordKind = "report"
	RecordKindVitals       RecordKind = "vitals"
	RecordKindVaccination  RecordKind = "vaccination"
)

// AllRecordKinds returns all valid record kinds
func AllRecordKinds() []RecordKind {
	return []RecordKind{
		RecordKindPrescription,
		RecordKindReport,
		RecordKindVitals,
		RecordKindVaccination,
	}
}

// IsValid checks if the record kind is valid
func (k RecordKind) IsValid() bool {
	switch k {
	case RecordKindPrescription,
		RecordKindReport,
		RecordKindVitals,
		RecordKindVaccination:
		return true
	default:
		return false
	}
}

// String returns the string representation of the record kind
func (k RecordKind) String() string {
	return string(k)
}

// ParseRecordKind parses a string into a RecordKind
func ParseRecordKind(s string) (RecordKind, error) {
	kind := RecordKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid record kind: %s", s)
	}
	return kind, nil
}

package types

import "fmt"

// Modality represents the input medium a record originated from
type Modality string

const (
	ModalityPDF        Modality = "pdf"
	ModalityImage      Modality = "image"
	ModalityStructured Modality = "structured"
)

// IsValid checks if the modality is valid
func (m Modality) IsValid() bool {
	switch m {
	case ModalityPDF, ModalityImage, ModalityStructured:
		return true
	default:
		return false
	}
}

// String returns the string representation of the modality
func (m Modality) String() string {
	return string(m)
}

// ParseModality parses a string into a Modality
func ParseModality(s string) (Modality, error) {
	modality := Modality(s)
	if !modality.IsValid() {
		return "", fmt.Errorf("invalid modality: %s", s)
	}
	return modality, nil
}

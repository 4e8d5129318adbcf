package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/swasthya-lab/swasthya/pkg/domain/types"
)

// EmbeddingDimension is the dimension of the embedding vector
// (all-MiniLM-L6-v2 and the Gemini embedding endpoint are both requested
// at this size).
const EmbeddingDimension = 384

// ContentPreviewLength bounds the content excerpt returned by record
// listings. Full content is never returned by the listing operation.
const ContentPreviewLength = 200

// RecordID is a UUID-based identifier for HealthRecord
type RecordID string

// NewRecordID generates a new UUID v4 RecordID
func NewRecordID() RecordID {
	return RecordID(uuid.New().String())
}

// HealthRecord is the sole persisted entity: a unit of personal health
// memory with its text content and embedding. Records are append-only;
// once written they are never mutated or deleted by the application.
type HealthRecord struct {
	ID        RecordID
	Kind      types.RecordKind
	Modality  types.Modality // empty when the kind has a single input form
	Content   string
	Embedding []float32

	// Vitals only
	Metric types.VitalMetric

	// Vitals and vaccination: the calendar date the observation pertains
	// to, as an ISO-8601 date string (lexicographic order equals
	// chronological order).
	Date string

	// Prescription and report: ingestion time
	UploadedAt time.Time

	// Vaccination only
	ChildName string
	Vaccine   string
	AgeMonths int
}

// ContentPreview returns the first ContentPreviewLength characters of the
// record content. Truncation happens on rune boundaries so that multi-byte
// text (common in OCR output) never yields an invalid UTF-8 preview.
func (r *HealthRecord) ContentPreview() string {
	if len(r.Content) <= ContentPreviewLength {
		return r.Content
	}
	runes := []rune(r.Content)
	if len(runes) <= ContentPreviewLength {
		return r.Content
	}
	return string(runes[:ContentPreviewLength])
}

// ScoredRecord pairs a record with its cosine similarity score against a
// query embedding. Higher score means more relevant.
type ScoredRecord struct {
	Record *HealthRecord
	Score  float64
}

// RecordFilter selects records by equality on kind and metric. Zero
// values match everything.
type RecordFilter struct {
	Kind   types.RecordKind
	Metric types.VitalMetric
}

// Matches reports whether the record satisfies the filter
func (f RecordFilter) Matches(r *HealthRecord) bool {
	if f.Kind != "" && r.Kind != f.Kind {
		return false
	}
	if f.Metric != "" && r.Metric != f.Metric {
		return false
	}
	return true
}

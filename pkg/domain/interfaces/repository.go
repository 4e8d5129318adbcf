package interfaces

import (
	"context"

	"github.com/swasthya-lab/swasthya/pkg/domain/model"
)

// Repository aggregates the persistence backends of the application
type Repository interface {
	Record() RecordRepository

	// Close releases backend resources
	Close() error
}

// RecordRepository defines the persistence contract for HealthRecord.
// The store is append-only from the application's point of view: there is
// no update or delete operation.
type RecordRepository interface {
	// Insert persists a new record. Every call creates a new record; the
	// ID is generated when empty. Semantically identical content is not
	// deduplicated.
	Insert(ctx context.Context, record *model.HealthRecord) (*model.HealthRecord, error)

	// FindByEmbedding performs cosine similarity search and returns up to
	// limit records ordered by descending score.
	FindByEmbedding(ctx context.Context, embedding []float32, limit int) ([]*model.ScoredRecord, error)

	// Scan returns up to limit records matching the equality filter. No
	// ordering is guaranteed beyond the store default.
	Scan(ctx context.Context, filter model.RecordFilter, limit int) ([]*model.HealthRecord, error)
}

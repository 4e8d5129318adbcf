package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/interfaces"
)

// DefaultCollection is the Firestore collection holding health records
const DefaultCollection = "health_memory"

// Firestore is the production repository backend. Vector search relies on
// the vector index provisioned by the migrate command.
type Firestore struct {
	client *firestore.Client
	record *recordRepository
}

var _ interfaces.Repository = &Firestore{}

// Option is a functional option for the Firestore repository
type Option func(*Firestore)

// WithCollection overrides the records collection name
func WithCollection(name string) Option {
	return func(f *Firestore) {
		f.record.collection = name
	}
}

// New creates a Firestore-backed repository
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client: client,
		record: newRecordRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Record() interfaces.RecordRepository {
	return f.record
}

// Close releases the underlying client
func (f *Firestore) Close() error {
	return f.client.Close()
}

package chromem

import (
	"github.com/m-mizutani/goerr/v2"
	chromem "github.com/philippgille/chromem-go"

	"github.com/swasthya-lab/swasthya/pkg/domain/interfaces"
)

// DefaultCollection is the chromem collection holding health records
const DefaultCollection = "health_memory"

// Chromem is an embedded local repository backend on top of chromem-go.
// The collection is created idempotently when the repository is opened,
// which covers the provisioning step the service needs before traffic.
type Chromem struct {
	db     *chromem.DB
	record *recordRepository
}

var _ interfaces.Repository = &Chromem{}

// Option is a functional option for the chromem repository
type Option func(*config)

type config struct {
	collection string
}

// WithCollection overrides the records collection name
func WithCollection(name string) Option {
	return func(c *config) {
		if name != "" {
			c.collection = name
		}
	}
}

// New creates a chromem-backed repository. With an empty path the store
// lives in memory only; otherwise it persists under the given directory.
func New(path string, opts ...Option) (*Chromem, error) {
	cfg := &config{collection: DefaultCollection}
	for _, opt := range opts {
		opt(cfg)
	}

	var db *chromem.DB
	var err error
	if path == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(path, false)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open chromem database", goerr.V("path", path))
		}
	}

	// Embeddings are always precomputed, so no embedding func is wired
	col, err := db.GetOrCreateCollection(cfg.collection, nil, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create collection", goerr.V("collection", cfg.collection))
	}

	return &Chromem{
		db:     db,
		record: newRecordRepository(col),
	}, nil
}

func (c *Chromem) Record() interfaces.RecordRepository {
	return c.record
}

// Close is a no-op; chromem flushes persistent collections on write
func (c *Chromem) Close() error {
	return nil
}

package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/interfaces"
	"github.com/swasthya-lab/swasthya/pkg/domain/model"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
)

// Default retrieval caps
const (
	DefaultAskLimit     = 5
	DefaultTrendLimit   = 50
	DefaultListingLimit = 100
)

type UseCases struct {
	repo     interfaces.Repository
	embedder interfaces.Embedder

	Ingest      *IngestUseCase
	Vitals      *VitalsUseCase
	Vaccination *VaccinationUseCase
	Recall      *RecallUseCase
	Trend       *TrendUseCase
	Listing     *ListingUseCase

	units        model.VitalUnits
	askLimit     int
	trendLimit   int
	listingLimit int
}

type Option func(*UseCases)

// WithUnits overrides the measurement units used in vitals sentences
func WithUnits(units model.VitalUnits) Option {
	return func(uc *UseCases) {
		uc.units = units
	}
}

// WithAskLimit overrides the similarity search result cap
func WithAskLimit(limit int) Option {
	return func(uc *UseCases) {
		uc.askLimit = limit
	}
}

// WithTrendLimit overrides the weight trend retrieval cap
func WithTrendLimit(limit int) Option {
	return func(uc *UseCases) {
		uc.trendLimit = limit
	}
}

// WithListingLimit overrides the memory listing cap
func WithListingLimit(limit int) Option {
	return func(uc *UseCases) {
		uc.listingLimit = limit
	}
}

func New(repo interfaces.Repository, embedder interfaces.Embedder, extractor interfaces.Extractor, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:         repo,
		embedder:     embedder,
		units:        model.DefaultVitalUnits(),
		askLimit:     DefaultAskLimit,
		trendLimit:   DefaultTrendLimit,
		listingLimit: DefaultListingLimit,
	}

	for _, opt := range opts {
		opt(uc)
	}

	writer := &recordWriter{repo: repo, embedder: embedder}

	uc.Ingest = &IngestUseCase{extractor: extractor, writer: writer}
	uc.Vitals = &VitalsUseCase{writer: writer, units: uc.units}
	uc.Vaccination = &VaccinationUseCase{writer: writer}
	uc.Recall = &RecallUseCase{repo: repo, embedder: embedder, limit: uc.askLimit}
	uc.Trend = &TrendUseCase{repo: repo, limit: uc.trendLimit}
	uc.Listing = &ListingUseCase{repo: repo, limit: uc.listingLimit}

	return uc
}

// recordWriter embeds normalized text and performs the single insert.
// One call yields exactly one persisted record; callers needing several
// records call it once per record.
type recordWriter struct {
	repo     interfaces.Repository
	embedder interfaces.Embedder
}

func (w *recordWriter) write(ctx context.Context, record *model.HealthRecord) (*model.HealthRecord, error) {
	embedding, err := w.embedder.Embed(ctx, record.Content)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed content",
			goerr.T(types.TagPersistenceFailure))
	}
	record.Embedding = embedding

	created, err := w.repo.Record().Insert(ctx, record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to persist record",
			goerr.T(types.TagPersistenceFailure),
			goerr.V("kind", record.Kind))
	}

	return created, nil
}

// today returns the current calendar date as an ISO-8601 string
func today() string {
	return time.Now().UTC().Format(model.ISODate)
}

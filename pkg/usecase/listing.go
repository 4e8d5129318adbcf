package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/interfaces"
	"github.com/swasthya-lab/swasthya/pkg/domain/model"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
)

// ListingUseCase enumerates stored records with bounded previews
type ListingUseCase struct {
	repo  interfaces.Repository
	limit int
}

// ListedRecord is the bounded view of one stored record. Full content is
// never exposed through the listing.
type ListedRecord struct {
	ID             model.RecordID
	Kind           types.RecordKind
	Modality       types.Modality
	ContentPreview string
}

// ListingResult holds the enumerated records
type ListingResult struct {
	TotalRecords int
	Records      []ListedRecord
}

// All enumerates up to the listing cap of stored records, in store
// default order.
func (uc *ListingUseCase) All(ctx context.Context) (*ListingResult, error) {
	records, err := uc.repo.Record().Scan(ctx, model.RecordFilter{}, uc.limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan records",
			goerr.T(types.TagPersistenceFailure))
	}

	listed := make([]ListedRecord, len(records))
	for i, r := range records {
		listed[i] = ListedRecord{
			ID:             r.ID,
			Kind:           r.Kind,
			Modality:       r.Modality,
			ContentPreview: r.ContentPreview(),
		}
	}

	return &ListingResult{
		TotalRecords: len(listed),
		Records:      listed,
	}, nil
}

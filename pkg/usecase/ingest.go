package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/interfaces"
	"github.com/swasthya-lab/swasthya/pkg/domain/model"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
	"github.com/swasthya-lab/swasthya/pkg/utils/logging"
)

// IngestUseCase normalizes uploaded documents and stores them as health
// records. Prescription and report uploads share this single path; only
// the record kind differs.
type IngestUseCase struct {
	extractor interfaces.Extractor
	writer    *recordWriter
}

// IngestResult reports a successful document ingestion
type IngestResult struct {
	RecordID        model.RecordID
	Kind            types.RecordKind
	Modality        types.Modality
	CharactersSaved int
}

// UploadDocument extracts text from the uploaded file and persists one
// record. Documents yielding only whitespace are rejected before any
// embedding or store call.
func (uc *IngestUseCase) UploadDocument(ctx context.Context, kind types.RecordKind, filename string, data []byte) (*IngestResult, error) {
	if !kind.IsValid() {
		return nil, goerr.New("invalid record kind",
			goerr.T(types.TagValidationFailure),
			goerr.V("kind", kind))
	}
	if len(data) == 0 {
		return nil, goerr.New("uploaded file is empty",
			goerr.T(types.TagValidationFailure),
			goerr.V("filename", filename))
	}

	extraction, err := uc.extractor.Extract(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	record := &model.HealthRecord{
		Kind:       kind,
		Modality:   extraction.Modality,
		Content:    extraction.Text,
		UploadedAt: time.Now().UTC(),
	}

	created, err := uc.writer.write(ctx, record)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("document ingested",
		"record_id", created.ID,
		"kind", kind,
		"modality", extraction.Modality,
		"characters", len(extraction.Text),
	)

	return &IngestResult{
		RecordID:        created.ID,
		Kind:            kind,
		Modality:        extraction.Modality,
		CharactersSaved: len(extraction.Text),
	}, nil
}

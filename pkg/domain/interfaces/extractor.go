package interfaces

import (
	"context"

	"github.com/swasthya-lab/swasthya/pkg/domain/types"
)

// Extraction is the result of normalizing an uploaded document
type Extraction struct {
	Text     string
	Modality types.Modality
}

// Extractor turns uploaded document bytes into text. The modality is
// chosen from the filename suffix; unsupported suffixes fail with the
// UnsupportedFormat tag, unparseable documents with CorruptDocument, and
// documents yielding only whitespace with EmptyExtraction.
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) (*Extraction, error)
}
